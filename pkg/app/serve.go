package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/net/html"

	"github.com/go-glaze/glaze/pkg/errors"
	"github.com/go-glaze/glaze/pkg/registry"
	"github.com/go-glaze/glaze/pkg/render"
	"github.com/go-glaze/glaze/pkg/style"
)

// Routes the dev server claims for itself.
const (
	stylesheetRoute = "/style.css"
	reloadRoute     = "/__reload"
)

// reloadScript subscribes a served page to the reload event stream.
const reloadScript = `new EventSource("` + reloadRoute + `").addEventListener("reload",function(){location.reload()})`

// Serve runs the development server until ctx is canceled. Pages render
// per request in development mode, formatted for reading. When a watch
// directory is configured, source changes push a reload event to every
// connected page over server-sent events.
func (a *App) Serve(ctx context.Context) error {
	const op = "app.Serve"
	if len(a.pages) == 0 {
		return errors.Configuration(op, fmt.Errorf("no pages registered"))
	}
	if a.opts.WatchDir != "" {
		watcher, err := watchDir(a.opts.WatchDir, a.logf, func(event fsnotify.Event) {
			a.logf("source change: %s", event.Name)
			a.reload.send("reload", event.Name)
		})
		if err != nil {
			return errors.Configuration(op, err)
		}
		defer watcher.Close()
	}

	addr := a.opts.Addr
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{Addr: addr, Handler: a.Handler()}
	failed := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()
	a.logf("dev server for %s listening on %s", a.opts.Name, addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-failed:
		return err
	}
}

// Handler returns the dev server's routing handler: every registered
// page, the bundled stylesheet, the reload event stream, and, when an
// asset library is configured, the asset files themselves.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	_, hasRoot := a.pages["/"]
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && hasRoot {
			a.servePage(w, "/")
			return
		}
		if a.serveAsset(w, r) {
			return
		}
		http.NotFound(w, r)
	})
	for _, route := range a.Routes() {
		if route == "/" {
			continue
		}
		mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
			a.servePage(w, route)
		})
	}
	mux.HandleFunc(stylesheetRoute, a.serveStylesheet)
	mux.Handle(reloadRoute, a.reload)
	return mux
}

func (a *App) servePage(w http.ResponseWriter, route string) {
	document, err := a.renderPage(route)
	if err != nil {
		a.logf("render %s: %v", route, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, document)
}

// renderPage mounts the page's root widget in development mode and
// wraps the formatted markup in a document shell. Renders serialize on
// the app mutex, so concurrent requests never share a mounted tree.
func (a *App) renderPage(route string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	build, ok := a.pages[route]
	if !ok {
		return "", errors.Configuration("app.renderPage", fmt.Errorf("no page for route %q", route))
	}
	tree, err := render.Mount(build(), render.Options{
		Mode:     registry.Development,
		Registry: a.opts.Registry,
	})
	if err != nil {
		return "", err
	}
	defer tree.Unmount()
	body, err := tree.FormattedHTML()
	if err != nil {
		return "", err
	}
	return a.devDocument(route, body), nil
}

// devDocument wraps formatted page markup in a readable document shell.
// Unlike a frozen page it links the whole style library, loads the
// stylesheet synchronously, and carries the reload subscription when
// watching is enabled.
func (a *App) devDocument(route, body string) string {
	var b strings.Builder
	b.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\"/>\n")
	b.WriteString("<meta content=\"width=device-width,initial-scale=1\" name=\"viewport\"/>\n")
	b.WriteString("<title>" + html.EscapeString(a.pageTitle(route)) + "</title>\n")
	b.WriteString("<link href=\"" + stylesheetRoute + "\" rel=\"stylesheet\"/>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	if a.opts.WatchDir != "" {
		b.WriteString("<script>" + reloadScript + "</script>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func (a *App) serveStylesheet(w http.ResponseWriter, r *http.Request) {
	lib := a.library()
	css, err := style.Bundle(lib, lib.Names())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	io.WriteString(w, css)
}

// serveAsset serves the request from the asset library when its path
// resolves there. Reports whether the request was handled.
func (a *App) serveAsset(w http.ResponseWriter, r *http.Request) bool {
	if a.opts.Assets == nil {
		return false
	}
	info, ok := a.opts.Assets.Lookup(r.URL.Path)
	if !ok {
		return false
	}
	file := filepath.Join(a.opts.Assets.Root(), filepath.FromSlash(strings.TrimPrefix(info.Path, "/")))
	http.ServeFile(w, r, file)
	return true
}
