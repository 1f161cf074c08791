package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"user_accounts/internal/models"
	"user_accounts/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	authOK      bool
	authErr     error
	role        string
	roleErr     error
	loginToken  models.Token
	loginErr    error
	parseClaims *service.Claims
	parseErr    error

	lastAuthUsername  string
	lastAuthPassword  string
	lastLoginUsername string
	lastLoginPassword string
	lastParseToken    string
}

func (m *mockAuth) Authenticate(_ context.Context, username, password string) (bool, error) {
	m.lastAuthUsername = username
	m.lastAuthPassword = password
	return m.authOK, m.authErr
}

func (m *mockAuth) Role(_ context.Context, _ string) (string, error) {
	return m.role, m.roleErr
}

func (m *mockAuth) Login(_ context.Context, username, password string) (models.Token, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (*service.Claims, error) {
	m.lastParseToken = token
	return m.parseClaims, m.parseErr
}

type mockUsers struct {
	getResp    []models.UserResponse
	getErr     error
	createResp models.UserResponse
	createErr  error
	updateResp *models.UserResponse
	updateErr  error
	deleteOK   bool
	deleteErr  error

	lastFilter models.UserFilter
	lastCreate service.CreateUserParams
	lastUpdate models.UserUpdate
	lastDelete int
}

func (m *mockUsers) GetUsers(_ context.Context, f models.UserFilter) ([]models.UserResponse, error) {
	m.lastFilter = f
	return m.getResp, m.getErr
}

func (m *mockUsers) CreateUser(_ context.Context, p service.CreateUserParams) (models.UserResponse, error) {
	m.lastCreate = p
	return m.createResp, m.createErr
}

func (m *mockUsers) UpdateUser(_ context.Context, u models.UserUpdate) (*models.UserResponse, error) {
	m.lastUpdate = u
	return m.updateResp, m.updateErr
}

func (m *mockUsers) DeleteUser(_ context.Context, id int) (bool, error) {
	m.lastDelete = id
	return m.deleteOK, m.deleteErr
}

type mockAudit struct {
	resp     []models.AuditEvent
	err      error
	recorded []models.AuditEvent

	lastFilter service.AuditFilter
}

func (m *mockAudit) Record(_ context.Context, e models.AuditEvent) {
	m.recorded = append(m.recorded, e)
}

func (m *mockAudit) List(_ context.Context, f service.AuditFilter) ([]models.AuditEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// envelopeBody mirrors models.Envelope for assertions without losing the raw
// result payload.
type envelopeBody struct {
	Response struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"response"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

func mustUnmarshal(t *testing.T, raw json.RawMessage, dst any) {
	t.Helper()
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("unmarshal result: %v (raw=%s)", err, string(raw))
	}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("envelope endpoints always answer 200, got %d (body=%s)", w.Code, w.Body.String())
	}
	var env envelopeBody
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v (body=%s)", err, w.Body.String())
	}
	return env
}
