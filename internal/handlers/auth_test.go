package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"user_accounts/internal/models"
	"user_accounts/internal/service"
)

func postLogin(r http.Handler, username, password string, withAuth bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	if withAuth {
		req.SetBasicAuth(username, password)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	auth := &mockAuth{loginToken: models.Token{AccessToken: "tok123", TokenType: "bearer", ExpiresIn: 30}}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postLogin(r, "alice", "secret123", true)
	env := decodeEnvelope(t, w)

	if env.Response.Code != models.CodeSuccess {
		t.Fatalf("expected SUCCESS, got %s (body=%s)", env.Response.Code, w.Body.String())
	}
	var result struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	mustUnmarshal(t, env.Result, &result)
	if result.AccessToken != "tok123" || result.TokenType != "bearer" || result.ExpiresIn != 30 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if auth.lastLoginUsername != "alice" || auth.lastLoginPassword != "secret123" {
		t.Fatalf("credentials not passed through: %q/%q", auth.lastLoginUsername, auth.lastLoginPassword)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth := &mockAuth{loginErr: service.ErrInvalidCredentials}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postLogin(r, "alice", "wrong", true)
	env := decodeEnvelope(t, w)

	if env.Response.Code != models.CodeInvalidCredentials {
		t.Fatalf("expected INVALID_CREDENTIALS, got %s", env.Response.Code)
	}
	if env.Error == "" {
		t.Fatalf("expected error text in envelope")
	}
}

func TestLogin_MissingBasicAuthHeader(t *testing.T) {
	auth := &mockAuth{}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postLogin(r, "", "", false)
	env := decodeEnvelope(t, w)

	if env.Response.Code != models.CodeInvalidCredentials {
		t.Fatalf("expected INVALID_CREDENTIALS for missing header, got %s", env.Response.Code)
	}
	if auth.lastLoginUsername != "" {
		t.Fatalf("service must not be called without credentials")
	}
}

func TestLogin_ServiceFault(t *testing.T) {
	auth := &mockAuth{loginErr: errors.New("store unavailable")}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postLogin(r, "alice", "secret123", true)
	env := decodeEnvelope(t, w)

	if env.Response.Code != models.CodeServerError {
		t.Fatalf("expected SERVER_ERROR, got %s", env.Response.Code)
	}
	if env.Error != "store unavailable" {
		t.Fatalf("expected fault text in error field, got %q", env.Error)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}
