// Package style stores named CSS and collects the subset a widget tree
// actually uses.
//
// CSS text is opaque to the framework. A Library maps style names to text,
// a Registry accumulates the names encountered while walking a tree, and
// Bundle concatenates the collected subset in first-use order. Styles a
// page never touches are simply absent from its bundle.
package style

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-glaze/glaze/pkg/errors"
)

// Library maps style names to CSS text. The text is never parsed.
type Library struct {
	mu     sync.RWMutex
	sheets map[string]string
	order  []string
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{sheets: make(map[string]string)}
}

// Add registers css under name. Names are unique per library.
func (l *Library) Add(name, css string) error {
	const op = "style.Add"
	if strings.TrimSpace(name) == "" {
		return errors.Configuration(op, fmt.Errorf("style name must not be empty"))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, dup := l.sheets[name]; dup {
		return errors.Configuration(op, fmt.Errorf("style %q already registered", name))
	}
	l.sheets[name] = css
	l.order = append(l.order, name)
	return nil
}

// MustAdd is Add, panicking on failure.
// Intended for package-level style declarations.
func (l *Library) MustAdd(name, css string) {
	if err := l.Add(name, css); err != nil {
		panic(err)
	}
}

// Get returns the CSS registered under name.
func (l *Library) Get(name string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	css, ok := l.sheets[name]
	return css, ok
}

// Names returns all registered names in registration order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.order...)
}

// Registry accumulates style names in first-use order, duplicate-free.
// A renderer or freezer feeds it the style references of every type chain
// it resolves; the result is exactly the set the emitted tree can need.
type Registry struct {
	mu   sync.Mutex
	used []string
	seen map[string]bool
}

// NewRegistry creates an empty collector.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]bool)}
}

// Use records names, keeping only first occurrences.
func (r *Registry) Use(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		if n == "" || r.seen[n] {
			continue
		}
		r.seen[n] = true
		r.used = append(r.used, n)
	}
}

// Used returns the collected names in first-use order.
func (r *Registry) Used() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.used...)
}

// Reset clears the collector for a fresh pass.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.used = nil
	r.seen = make(map[string]bool)
}

// Bundle concatenates the named styles from lib in the given order.
// Referencing a style the library does not hold is a configuration error;
// a type must not name styles that cannot be emitted.
func Bundle(lib *Library, names []string) (string, error) {
	const op = "style.Bundle"
	var b strings.Builder
	for _, n := range names {
		css, ok := lib.Get(n)
		if !ok {
			return "", errors.Configuration(op, fmt.Errorf("style %q referenced but not registered", n))
		}
		b.WriteString(css)
		if !strings.HasSuffix(css, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// Markers of the non-blocking stylesheet reference emitted for frozen
// pages: a preload that swaps itself to a stylesheet once fetched, so
// style download never blocks first paint.
const (
	AsyncRel    = "preload"
	AsyncAs     = "style"
	AsyncOnload = "this.onload=null;this.rel='stylesheet'"
)

// Default is the library package-level widget declarations register into.
var Default = NewLibrary()

// Add registers css in the Default library.
func Add(name, css string) error { return Default.Add(name, css) }

// MustAdd registers css in the Default library, panicking on failure.
func MustAdd(name, css string) { Default.MustAdd(name, css) }
