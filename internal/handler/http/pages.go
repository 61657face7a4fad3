package http

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
)

//go:embed static
var embedded embed.FS

// notFoundMessage is rendered into page_not_found.html.
const notFoundMessage = "404 Not Found: The requested URL was not found on the server. " +
	"If you entered the URL manually please check your spelling and try again."

// Pages serves the browser front end. Files under Dir take precedence over
// the copies built into the binary.
type Pages struct {
	fsys fs.FS
}

// NewPages returns Pages reading from dir first. An empty dir serves only the embedded pages.
func NewPages(dir string) *Pages {
	builtin, _ := fs.Sub(embedded, "static")
	if dir == "" {
		return &Pages{fsys: builtin}
	}
	return &Pages{fsys: overlayFS{primary: os.DirFS(dir), fallback: builtin}}
}

// File serves a single page, or the not-found page when it does not exist.
func (p *Pages) File(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := fs.Stat(p.fsys, name); err != nil {
			p.NotFound(w, r)
			return
		}
		http.ServeFileFS(w, r, p.fsys, name)
	})
}

// NotFound renders page_not_found.html with a 404 status.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFS(p.fsys, "page_not_found.html")
	if err != nil {
		slog.Default().Warn("pages: not-found template unavailable", slog.Any("error", err))
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := tmpl.Execute(w, notFoundMessage); err != nil {
		slog.Default().Error("pages: render not-found page", slog.Any("error", err))
	}
}

// overlayFS opens from primary and falls back when the file does not exist there.
type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return o.fallback.Open(name)
	}
	return f, err
}
