package main

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// spaHandler serves files from the public directory and falls back to index.html so
// client-side routes resolve. Dot-prefixed segments are never served from disk.
func (app *application) spaHandler(w http.ResponseWriter, r *http.Request) {
	dir := app.config.publicDir

	clean := path.Clean("/" + r.URL.Path)
	if clean != "/" && !hasDotSegment(clean) {
		full := filepath.Join(dir, filepath.FromSlash(clean))
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			http.ServeFile(w, r, full)
			return
		}
	}

	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		app.notFoundResponse(w, r, errors.New("index.html not found in "+dir))
		return
	}

	w.Header().Set("Cache-Control", "no-store, max-age=0")
	http.ServeFile(w, r, index)
}

func hasDotSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
