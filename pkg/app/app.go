// Package app assembles registered pages into a runnable application.
// An App maps routes to root widget builders and runs in one of two
// modes: Serve renders pages live for development, with source watching
// and reload push, while FreezeTo writes the static production site,
// reusing cached compiler output for pages whose content is unchanged.
package app

import (
	"fmt"
	"log"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/go-glaze/glaze/pkg/assets"
	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/errors"
	"github.com/go-glaze/glaze/pkg/minify"
	"github.com/go-glaze/glaze/pkg/registry"
	"github.com/go-glaze/glaze/pkg/style"
)

// PageBuilder returns the root widget for one render of a page. An App
// serializes all widget work, so builders never run concurrently.
type PageBuilder func() core.Widget

// Options configures an App.
type Options struct {
	// Name is the application name, used in page titles.
	Name string

	// Registry is the widget type registry. Nil means registry.Default.
	Registry *registry.Registry

	// Styles is the style library pages draw from. Nil means
	// style.Default.
	Styles *style.Library

	// Assets, when set, supplies the freezer's intrinsic image
	// dimensions and lets the dev server serve the asset tree.
	Assets *assets.Library

	// Compiler minifies frozen documents. Nil means the passthrough
	// compiler.
	Compiler minify.Compiler

	// Addr is the dev server listen address. Empty means ":8080".
	Addr string

	// WatchDir, when set, makes the dev server watch this directory
	// tree and push a reload event to connected pages on change.
	WatchDir string

	// StorePath, when set, enables the frozen-page cache at this file.
	// FreezeTo then skips the compiler for pages whose pre-minified
	// content and compiler version match the cached entry.
	StorePath string

	// BaseURL prefixes sitemap locations, e.g. "https://example.org".
	BaseURL string

	// Logf receives progress output. Nil means log.Printf.
	Logf func(format string, args ...any)
}

// App is a set of pages keyed by route, sharing one registry, style
// library, and asset library.
type App struct {
	opts   Options
	reload *broadcaster

	mu    sync.Mutex
	pages map[string]PageBuilder
}

// New returns an App with no pages registered.
func New(opts Options) *App {
	if opts.Name == "" {
		opts.Name = "glaze"
	}
	return &App{
		opts:   opts,
		reload: newBroadcaster(),
		pages:  make(map[string]PageBuilder),
	}
}

// Page registers build under route. Routes are clean absolute paths
// without a trailing slash, "/" for the root page, and must be unique.
func (a *App) Page(route string, build PageBuilder) error {
	const op = "app.Page"
	if build == nil {
		return errors.Configuration(op, fmt.Errorf("nil builder for route %q", route))
	}
	if !strings.HasPrefix(route, "/") || path.Clean(route) != route {
		return errors.Configuration(op, fmt.Errorf("route %q is not a clean absolute path", route))
	}
	if strings.ContainsAny(route, "{}") {
		return errors.Configuration(op, fmt.Errorf("route %q contains pattern metacharacters", route))
	}
	if route == stylesheetRoute || route == reloadRoute {
		return errors.Configuration(op, fmt.Errorf("route %q is reserved", route))
	}
	if _, ok := a.pages[route]; ok {
		return errors.Configuration(op, fmt.Errorf("route %q registered twice", route))
	}
	a.pages[route] = build
	return nil
}

// MustPage is Page, panicking on error. Intended for main functions.
func (a *App) MustPage(route string, build PageBuilder) {
	if err := a.Page(route, build); err != nil {
		panic(err)
	}
}

// Routes returns the registered routes in sorted order.
func (a *App) Routes() []string {
	routes := make([]string, 0, len(a.pages))
	for route := range a.pages {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

func (a *App) library() *style.Library {
	if a.opts.Styles != nil {
		return a.opts.Styles
	}
	return style.Default
}

func (a *App) compiler() minify.Compiler {
	if a.opts.Compiler != nil {
		return a.opts.Compiler
	}
	return minify.Passthrough{}
}

func (a *App) pageTitle(route string) string {
	if route == "/" {
		return a.opts.Name
	}
	return a.opts.Name + " - " + strings.TrimPrefix(route, "/")
}

func (a *App) logf(format string, args ...any) {
	if a.opts.Logf != nil {
		a.opts.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}
