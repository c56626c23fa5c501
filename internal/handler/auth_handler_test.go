//go:build unit

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kasrah-cms/internal/config"
	"kasrah-cms/internal/session"
)

// mockSessionManager is a mock implementation of the session.Manager interface.
type mockSessionManager struct {
	destroyCalled bool
	putKey        string
	putValue      interface{}
	storedSubject string
}

// Ensure mockSessionManager implements the session.Manager interface.
var _ session.Manager = (*mockSessionManager)(nil)

func (m *mockSessionManager) LoadAndSave(next http.Handler) http.Handler { return next }
func (m *mockSessionManager) Put(ctx context.Context, key string, val interface{}) {
	m.putKey = key
	m.putValue = val
}
func (m *mockSessionManager) GetString(ctx context.Context, key string) string {
	return m.storedSubject
}
func (m *mockSessionManager) PopString(ctx context.Context, key string) string { return "" }
func (m *mockSessionManager) Remove(ctx context.Context, key string)           {}
func (m *mockSessionManager) Destroy(ctx context.Context) error {
	m.destroyCalled = true
	return nil
}

func testAdminConfig() config.AdminConfig {
	return config.AdminConfig{Username: "admin", Password: "s3cret"}
}

func TestLoginHandlerSuccess(t *testing.T) {
	mockSession := &mockSessionManager{}
	authHandler := NewAuthHandler(testAdminConfig(), mockSession)

	body := strings.NewReader(`{"username":"admin","password":"s3cret"}`)
	req := httptest.NewRequest("POST", "/api/auth/login", body)
	rr := httptest.NewRecorder()

	if appErr := authHandler.loginHandler(rr, req); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}
	if mockSession.putKey != "user_subject" || mockSession.putValue != "admin" {
		t.Errorf("session put = (%q, %v), want (user_subject, admin)", mockSession.putKey, mockSession.putValue)
	}
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	mockSession := &mockSessionManager{}
	authHandler := NewAuthHandler(testAdminConfig(), mockSession)

	body := strings.NewReader(`{"username":"admin","password":"wrong"}`)
	req := httptest.NewRequest("POST", "/api/auth/login", body)
	rr := httptest.NewRecorder()

	appErr := authHandler.loginHandler(rr, req)
	if appErr == nil || appErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 error, got %+v", appErr)
	}
	if mockSession.putKey != "" {
		t.Error("session should not be written on failed login")
	}
}

func TestLoginHandlerUnconfiguredAdmin(t *testing.T) {
	authHandler := NewAuthHandler(config.AdminConfig{}, &mockSessionManager{})

	body := strings.NewReader(`{"username":"","password":""}`)
	req := httptest.NewRequest("POST", "/api/auth/login", body)
	rr := httptest.NewRecorder()

	appErr := authHandler.loginHandler(rr, req)
	if appErr == nil || appErr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 error, got %+v", appErr)
	}
}

func TestLogoutHandlerDestroysSession(t *testing.T) {
	mockSession := &mockSessionManager{}
	authHandler := NewAuthHandler(testAdminConfig(), mockSession)

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	rr := httptest.NewRecorder()

	if appErr := authHandler.logoutHandler(rr, req); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}
	if !mockSession.destroyCalled {
		t.Error("expected session.Destroy to be called, but it wasn't")
	}
}

func TestStatusHandler(t *testing.T) {
	mockSession := &mockSessionManager{storedSubject: "admin"}
	authHandler := NewAuthHandler(testAdminConfig(), mockSession)

	req := httptest.NewRequest("GET", "/api/auth/status", nil)
	rr := httptest.NewRecorder()

	if appErr := authHandler.statusHandler(rr, req); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}

	var resp struct {
		Authenticated bool   `json:"authenticated"`
		Username      string `json:"username"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Authenticated || resp.Username != "admin" {
		t.Errorf("response = %+v, want authenticated admin", resp)
	}
}
