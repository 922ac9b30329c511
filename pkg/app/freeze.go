package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-glaze/glaze/pkg/errors"
	"github.com/go-glaze/glaze/pkg/freeze"
	"github.com/go-glaze/glaze/pkg/minify"
	"github.com/go-glaze/glaze/pkg/store"
	"github.com/go-glaze/glaze/pkg/style"
)

// FrozenPage describes one page FreezeTo wrote.
type FrozenPage struct {
	// Route is the page's registered route.
	Route string
	// Path is the file the page was written to.
	Path string
	// Cached reports whether the document came from the page cache
	// instead of a compiler run.
	Cached bool
}

// FreezeTo freezes every registered page into dir: one index.html per
// route, a shared style.css covering every style the site uses, and a
// sitemap. With a page cache configured, a page whose pre-minified
// content and compiler version match its cached entry reuses the
// cached document instead of invoking the compiler, and cache entries
// for routes no longer registered are dropped.
func (a *App) FreezeTo(ctx context.Context, dir string) ([]FrozenPage, error) {
	const op = "app.FreezeTo"
	routes := a.Routes()
	if len(routes) == 0 {
		return nil, errors.Configuration(op, fmt.Errorf("no pages registered"))
	}

	compiler := a.compiler()
	version, err := compiler.Version(ctx)
	if err != nil {
		return nil, err
	}

	var cache *store.Store
	if a.opts.StorePath != "" {
		cache, err = store.Open(a.opts.StorePath)
		if err != nil {
			return nil, err
		}
		defer cache.Close()
	}

	results := make([]FrozenPage, 0, len(routes))
	used := make(map[string]struct{})
	for _, route := range routes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := a.freezePage(ctx, cache, compiler, version, route)
		if err != nil {
			return nil, err
		}
		for _, name := range page.styles {
			used[name] = struct{}{}
		}
		target, err := writePage(dir, route, page.document)
		if err != nil {
			return nil, err
		}
		results = append(results, FrozenPage{Route: route, Path: target, Cached: page.cached})
	}

	if err := a.writeStylesheet(dir, used); err != nil {
		return nil, err
	}
	if err := a.writeSitemap(dir, routes); err != nil {
		return nil, err
	}
	if cache != nil {
		if err := pruneStale(cache, routes); err != nil {
			return nil, err
		}
	}
	return results, nil
}

type frozenPage struct {
	document string
	styles   []string
	cached   bool
}

// freezePage freezes one route. The freeze itself always runs with the
// passthrough compiler: keying the cache on pre-minified content lets
// an unchanged page skip the external minifier entirely, while style
// usage still reflects the current build.
func (a *App) freezePage(ctx context.Context, cache *store.Store, compiler minify.Compiler, version, route string) (frozenPage, error) {
	a.mu.Lock()
	raw, err := freeze.Freeze(ctx, a.pages[route](), freeze.Options{
		Title:    a.pageTitle(route),
		Registry: a.opts.Registry,
		Styles:   a.opts.Styles,
		Assets:   a.opts.Assets,
		Compiler: minify.Passthrough{},
	})
	a.mu.Unlock()
	if err != nil {
		return frozenPage{}, err
	}

	hash := store.Fingerprint(raw.Document)
	if cache != nil {
		entry, err := cache.LookupPage(route)
		switch {
		case err == nil && entry.Fresh(hash, version):
			return frozenPage{document: entry.Document, styles: raw.Styles, cached: true}, nil
		case err != nil && !errors.Is(err, store.ErrNoCachedPage):
			return frozenPage{}, err
		}
	}

	document, err := compiler.Compile(ctx, raw.Document)
	if err != nil {
		return frozenPage{}, err
	}
	if cache != nil {
		entry := store.Page{
			Hash:            hash,
			CompilerVersion: version,
			Document:        document,
			CSS:             raw.CSS,
			Styles:          raw.Styles,
		}
		if err := cache.SavePage(route, entry); err != nil {
			return frozenPage{}, err
		}
	}
	return frozenPage{document: document, styles: raw.Styles}, nil
}

// writePage writes document at the route's index.html under dir.
func writePage(dir, route, document string) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(route, "/")), "index.html")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, []byte(document), 0o644); err != nil {
		return "", err
	}
	return target, nil
}

// writeStylesheet bundles the union of every style the site used into
// dir/style.css. Nothing is written when no page used a style.
func (a *App) writeStylesheet(dir string, used map[string]struct{}) error {
	if len(used) == 0 {
		return nil
	}
	names := make([]string, 0, len(used))
	for name := range used {
		names = append(names, name)
	}
	sort.Strings(names)
	css, err := style.Bundle(a.library(), names)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "style.css"), []byte(css), 0o644)
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// writeSitemap writes dir/sitemap.xml listing every route, prefixed
// with the configured base URL.
func (a *App) writeSitemap(dir string, routes []string) error {
	base := strings.TrimSuffix(a.opts.BaseURL, "/")
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n")
	for _, route := range routes {
		b.WriteString("  <url><loc>")
		b.WriteString(xmlEscaper.Replace(base + route))
		b.WriteString("</loc></url>\n")
	}
	b.WriteString("</urlset>\n")
	return os.WriteFile(filepath.Join(dir, "sitemap.xml"), []byte(b.String()), 0o644)
}

// pruneStale drops cache entries for routes that are no longer
// registered.
func pruneStale(cache *store.Store, routes []string) error {
	keep := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		keep[route] = struct{}{}
	}
	stored, err := cache.Routes()
	if err != nil {
		return err
	}
	for _, route := range stored {
		if _, ok := keep[route]; !ok {
			if err := cache.DeletePage(route); err != nil {
				return err
			}
		}
	}
	return nil
}
