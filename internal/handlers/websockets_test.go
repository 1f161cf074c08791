package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"user_accounts/internal/models"
	"user_accounts/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

func TestParseInterval(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  time.Duration
	}{
		{name: "default when absent", query: "", want: defaultInterval},
		{name: "interval duration", query: "interval=2s", want: 2 * time.Second},
		{name: "interval above max falls back", query: "interval=30s", want: defaultInterval},
		{name: "interval zero falls back", query: "interval=0s", want: defaultInterval},
		{name: "interval garbage falls back", query: "interval=soon", want: defaultInterval},
		{name: "interval_ms", query: "interval_ms=250", want: 250 * time.Millisecond},
		{name: "interval_ms above max falls back", query: "interval_ms=60000", want: defaultInterval},
		{name: "interval wins over interval_ms", query: "interval=3s&interval_ms=250", want: 3 * time.Second},
	}

	h := NewHandler(nil, nil)
	gin.SetMode(gin.TestMode)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/ws?"+tc.query, nil)

			if got := h.parseInterval(c); got != tc.want {
				t.Fatalf("parseInterval(%q): got %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}

func TestWSConnect_StreamsBacklogFrame(t *testing.T) {
	events := []models.AuditEvent{
		{EventID: "e1", Type: models.AuditUserCreated, Description: "user created: alice"},
		{EventID: "e2", Type: models.AuditLoginOK, Description: "login ok: alice"},
	}
	audit := &mockAudit{resp: events}
	auth := &mockAuth{parseClaims: &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
		Role:             "admin",
	}}
	r := newTestRouter(&service.Service{Authorization: auth, AuditLog: audit})

	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?type=USER_CREATED"
	header := http.Header{"Authorization": []string{"Bearer stream-token"}}
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()
	defer func() { _ = resp.Body.Close() }()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var frame struct {
		Type string              `json:"type"`
		Data []models.AuditEvent `json:"data"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read initial frame: %v", err)
	}
	if frame.Type != "audit" {
		t.Fatalf("frame type: got %q, want %q", frame.Type, "audit")
	}
	if len(frame.Data) != len(events) {
		t.Fatalf("frame events: got %d, want %d", len(frame.Data), len(events))
	}
	if frame.Data[0].EventID != "e1" {
		t.Fatalf("first event id: got %q, want %q", frame.Data[0].EventID, "e1")
	}
	if audit.lastFilter.Type != "USER_CREATED" {
		t.Fatalf("type filter: got %q, want %q", audit.lastFilter.Type, "USER_CREATED")
	}
	if audit.lastFilter.From.IsZero() {
		t.Fatal("backlog frame should query with a non-zero lower bound")
	}
}

func TestWSConnect_RejectsWithoutToken(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}})

	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		_ = conn.Close()
		t.Fatal("dial should fail without a bearer token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected %d handshake response, got %+v", http.StatusUnauthorized, resp)
	}
	_ = resp.Body.Close()
}
