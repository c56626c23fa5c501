//go:build unit

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockRegenerator is a mock implementation of the Regenerator interface.
type mockRegenerator struct {
	succeeded   int
	failed      int
	errToReturn error
}

var _ Regenerator = (*mockRegenerator)(nil)

func (m *mockRegenerator) RegenerateAll(ctx context.Context) (int, int, error) {
	return m.succeeded, m.failed, m.errToReturn
}
func (m *mockRegenerator) RegenerateHomepage(ctx context.Context) error { return m.errToReturn }
func (m *mockRegenerator) RegenerateSitemap(ctx context.Context) (string, error) {
	return "public/sitemap.xml", m.errToReturn
}

func TestAllArticlesHandlerReportsCounts(t *testing.T) {
	h := NewGenerateHandler(&mockRegenerator{succeeded: 12, failed: 2}, testLogger())

	rr := httptest.NewRecorder()
	if appErr := h.allArticlesHandler(rr, httptest.NewRequest("POST", "/api/admin/generate-all-articles", nil)); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}

	var resp struct {
		Success      bool `json:"success"`
		SuccessCount int  `json:"successCount"`
		ErrorCount   int  `json:"errorCount"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.SuccessCount != 12 || resp.ErrorCount != 2 {
		t.Errorf("response = %+v", resp)
	}
}

func TestAllArticlesHandlerFailure(t *testing.T) {
	h := NewGenerateHandler(&mockRegenerator{errToReturn: errors.New("no articles source")}, testLogger())

	rr := httptest.NewRecorder()
	appErr := h.allArticlesHandler(rr, httptest.NewRequest("POST", "/api/admin/generate-all-articles", nil))
	if appErr == nil || appErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 error, got %+v", appErr)
	}
}

func TestSitemapHandlerReturnsPath(t *testing.T) {
	h := NewGenerateHandler(&mockRegenerator{}, testLogger())

	rr := httptest.NewRecorder()
	if appErr := h.sitemapHandler(rr, httptest.NewRequest("POST", "/api/admin/generate-sitemap", nil)); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr.Message)
	}

	var resp struct {
		Success bool   `json:"success"`
		Path    string `json:"path"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Path != "public/sitemap.xml" {
		t.Errorf("response = %+v", resp)
	}
}
