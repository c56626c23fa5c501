//go:build unit

package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newStaticSite(t *testing.T) *StaticHandler {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "articles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "pages"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"index.html":              "<html>الرئيسية</html>",
		"articles/maqal.html":     "<html>مقال</html>",
		"pages/competitions.html": "<html>البطولات</html>",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewStaticHandler(root, "articles")
}

func TestHomeHandlerServesGeneratedIndex(t *testing.T) {
	h := newStaticSite(t)

	rr := httptest.NewRecorder()
	h.homeHandler(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "الرئيسية") {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestArticleHandlerServesFileAndAddsExtension(t *testing.T) {
	h := newStaticSite(t)

	for _, file := range []string{"maqal.html", "maqal"} {
		req := newSlugRequest("GET", "/articles/"+file, "file", file)
		rr := httptest.NewRecorder()
		h.articleHandler(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", file, rr.Code)
		}
	}
}

func TestArticleHandlerBlocksTraversal(t *testing.T) {
	root := t.TempDir()
	secret := filepath.Join(root, "secret.txt")
	if err := os.WriteFile(secret, []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := NewStaticHandler(filepath.Join(root, "site"), "articles")

	req := newSlugRequest("GET", "/articles/x", "file", "../secret.txt")
	rr := httptest.NewRecorder()
	h.articleHandler(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "secret") {
		t.Error("traversal leaked file contents")
	}
}

func TestMissingPageGetsArabic404(t *testing.T) {
	h := newStaticSite(t)

	req := newSlugRequest("GET", "/articles/missing", "file", "missing")
	rr := httptest.NewRecorder()
	h.articleHandler(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "الصفحة") {
		t.Errorf("404 body should be the Arabic not-found page, got %q", rr.Body.String())
	}
}

func TestPagesHandlerServesSectionPage(t *testing.T) {
	h := newStaticSite(t)

	req := httptest.NewRequest("GET", "/pages/competitions.html", nil)
	rr := httptest.NewRecorder()
	h.pagesHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "البطولات") {
		t.Errorf("body = %q", rr.Body.String())
	}
}
