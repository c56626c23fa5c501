package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// StaticHandler serves the generated site files: the homepage, the per-article
// HTML pages, and the static section pages.
type StaticHandler struct {
	outputRoot  string
	articlesDir string
}

// NewStaticHandler creates a new StaticHandler rooted at the generated site
// directory.
func NewStaticHandler(outputRoot, articlesDir string) *StaticHandler {
	return &StaticHandler{outputRoot: outputRoot, articlesDir: articlesDir}
}

// notFoundPage is served for missing generated files.
const notFoundPage = `<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
<meta charset="UTF-8">
<title>الصفحة غير موجودة</title>
</head>
<body style="font-family: sans-serif; text-align: center; padding: 4rem;">
<h1>404</h1>
<p>عذراً، الصفحة التي تبحث عنها غير موجودة.</p>
<a href="/">العودة إلى الصفحة الرئيسية</a>
</body>
</html>
`

// homeHandler serves the generated homepage.
func (h *StaticHandler) homeHandler(w http.ResponseWriter, r *http.Request) {
	h.serveGenerated(w, r, filepath.Join(h.outputRoot, "index.html"))
}

// articleHandler serves one generated article page. The file name comes from
// the URL and is reduced to its base name so it cannot escape the articles
// directory.
func (h *StaticHandler) articleHandler(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "file"))
	if !strings.HasSuffix(name, ".html") {
		name += ".html"
	}
	h.serveGenerated(w, r, filepath.Join(h.outputRoot, h.articlesDir, name))
}

// pagesHandler serves the static section pages (news index, competitions,
// favorites, more) from the generated tree.
func (h *StaticHandler) pagesHandler(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/")
	// Clean resolves any dot segments; a path that still climbs out of the
	// root is rejected.
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		h.notFound(w)
		return
	}
	h.serveGenerated(w, r, filepath.Join(h.outputRoot, rel))
}

func (h *StaticHandler) serveGenerated(w http.ResponseWriter, r *http.Request, path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		h.notFound(w)
		return
	}
	http.ServeFile(w, r, path)
}

func (h *StaticHandler) notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(notFoundPage))
}
