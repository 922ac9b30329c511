package core

import (
	"slices"
	"sync"

	"github.com/go-glaze/glaze/pkg/registry"
	"github.com/go-glaze/glaze/pkg/style"
)

// BuildOwner coordinates a widget tree: it carries the resolution mode
// and type registry, tracks dirty elements, guards against re-entrant
// state mutation during builds, and optionally feeds a style collector.
type BuildOwner struct {
	reg    *registry.Registry
	mode   registry.Mode
	styles *style.Registry
	strict bool

	mu         sync.Mutex
	dirty      []Element
	dirtySet   map[Element]bool
	buildDepth int

	seed    Snapshot
	hasSeed bool
}

// NewBuildOwner creates a build owner over the given registry and mode.
// A nil registry means the package-level default.
func NewBuildOwner(reg *registry.Registry, mode registry.Mode) *BuildOwner {
	if reg == nil {
		reg = registry.Default
	}
	return &BuildOwner{reg: reg, mode: mode}
}

// Mode returns the resolution mode of this tree.
func (b *BuildOwner) Mode() registry.Mode {
	return b.mode
}

// Registry returns the type registry of this tree.
func (b *BuildOwner) Registry() *registry.Registry {
	return b.reg
}

// CollectStyles routes the style references of every resolved type chain
// into collector. Freezing uses this to gather the exact style subset a
// page needs.
func (b *BuildOwner) CollectStyles(collector *style.Registry) {
	b.styles = collector
}

// SetStrict makes failed builds abort the walk instead of rendering an
// error placeholder. Freezing runs strict; no partial output may survive.
func (b *BuildOwner) SetStrict(strict bool) {
	b.strict = strict
}

// Strict reports whether failed builds abort the walk.
func (b *BuildOwner) Strict() bool {
	return b.strict
}

// resolveType resolves a host widget type in this tree's mode and feeds
// the chain's style references to the collector, if any.
func (b *BuildOwner) resolveType(id registry.TypeID, instanceAttrs map[string]string) (registry.Resolved, error) {
	resolved, err := b.reg.Resolve(id, instanceAttrs, b.mode)
	if err != nil {
		return registry.Resolved{}, err
	}
	if b.styles != nil {
		b.styles.Use(resolved.Styles...)
	}
	return resolved, nil
}

// ScheduleBuild marks an element as needing rebuild.
func (b *BuildOwner) ScheduleBuild(element Element) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dirtySet[element] {
		return
	}
	if b.dirtySet == nil {
		b.dirtySet = make(map[Element]bool)
	}
	b.dirtySet[element] = true
	b.dirty = append(b.dirty, element)
}

// FlushBuild rebuilds all dirty elements in depth order, shallowest
// first, until no dirty elements remain. SetState calls this before
// returning, which makes state transitions synchronous end to end.
func (b *BuildOwner) FlushBuild() {
	for {
		b.mu.Lock()
		if len(b.dirty) == 0 {
			b.mu.Unlock()
			return
		}

		slices.SortFunc(b.dirty, func(x, y Element) int {
			return x.Depth() - y.Depth()
		})

		dirty := b.dirty
		b.dirty = nil
		clear(b.dirtySet)
		b.mu.Unlock()

		for _, element := range dirty {
			if mountable, ok := element.(interface{ isMounted() bool }); ok && !mountable.isMounted() {
				continue
			}
			element.RebuildIfNeeded()
		}
	}
}

// InBuild reports whether a build is currently executing in this tree.
// SetState consults this to reject re-entrant mutation.
func (b *BuildOwner) InBuild() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buildDepth > 0
}

func (b *BuildOwner) beginBuild() {
	b.mu.Lock()
	b.buildDepth++
	b.mu.Unlock()
}

func (b *BuildOwner) endBuild() {
	b.mu.Lock()
	if b.buildDepth > 0 {
		b.buildDepth--
	}
	b.mu.Unlock()
}

// setSeed stages a hydration snapshot for the next stateful mount.
func (b *BuildOwner) setSeed(seed Snapshot) {
	b.seed = seed
	b.hasSeed = true
}

func (b *BuildOwner) clearSeed() {
	b.seed = Snapshot{}
	b.hasSeed = false
}

// takeSeed consumes the staged hydration snapshot, if any. The first
// stateful element mounted after staging receives it.
func (b *BuildOwner) takeSeed() (Snapshot, bool) {
	if !b.hasSeed {
		return Snapshot{}, false
	}
	seed := b.seed
	b.clearSeed()
	return seed, true
}
