package hydrate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/dom"
	"github.com/go-glaze/glaze/pkg/errors"
)

// clientEntry is the runtime function frozen pages call to hand a
// stateful anchor back to the live widget system.
const clientEntry = "glaze.rehydrate"

// bootstrapMarker is the call prefix inside a bootstrap script. The
// anchor variable name is fixed, so the in-process parser can key off
// the full prefix.
const bootstrapMarker = clientEntry + "(a,"

// Bootstrap builds the inline script embedded as the last child of a
// stateful anchor. The script captures its parent element while it
// still executes synchronously during parsing, then defers the handoff
// to the next animation frame so hydration never blocks first paint.
// State serializes with sorted keys, keeping frozen bytes stable.
func Bootstrap(typeName string, state core.Snapshot) (string, error) {
	const op = "hydrate.Bootstrap"
	name, err := json.Marshal(typeName)
	if err != nil {
		return "", errors.New(op, errors.KindFreeze, fmt.Errorf("encode type name: %w", err))
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return "", errors.New(op, errors.KindFreeze, fmt.Errorf("encode state for %s: %w", typeName, err))
	}
	var b strings.Builder
	b.WriteString("(function(){var a=document.currentScript.parentElement;")
	b.WriteString("(window.requestAnimationFrame||window.setTimeout)(function(){")
	b.WriteString(bootstrapMarker)
	b.Write(name)
	b.WriteString(",")
	b.Write(payload)
	b.WriteString(")})})();")
	return b.String(), nil
}

// ParseBootstrap decodes the type name and state payload out of a
// bootstrap script. It accepts exactly what Bootstrap emits; anything
// else is a hydrate error.
func ParseBootstrap(script string) (string, core.Snapshot, error) {
	const op = "hydrate.ParseBootstrap"
	i := strings.Index(script, bootstrapMarker)
	if i < 0 {
		return "", core.Snapshot{}, errors.New(op, errors.KindHydrate, fmt.Errorf("script has no %s call", clientEntry))
	}
	rest := script[i+len(bootstrapMarker):]

	dec := json.NewDecoder(strings.NewReader(rest))
	var name string
	if err := dec.Decode(&name); err != nil {
		return "", core.Snapshot{}, errors.New(op, errors.KindHydrate, fmt.Errorf("decode type name: %w", err))
	}
	rest = rest[dec.InputOffset():]
	rest = strings.TrimPrefix(rest, ",")

	dec = json.NewDecoder(strings.NewReader(rest))
	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return "", core.Snapshot{}, errors.New(op, errors.KindHydrate, fmt.Errorf("decode state for %s: %w", name, err))
	}
	state, err := core.SnapshotOf(values)
	if err != nil {
		return "", core.Snapshot{}, errors.New(op, errors.KindHydrate, fmt.Errorf("state for %s: %w", name, err))
	}
	return name, state, nil
}

// ExtractBootstrap returns the bootstrap script text of an anchor. The
// contract places the script as the anchor's last element child; a
// trailing script without the runtime call is not a bootstrap.
func ExtractBootstrap(anchor *dom.Node) (string, bool) {
	children := anchor.Children()
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		if c.Kind() != dom.ElementNode {
			continue
		}
		if c.Tag() != "script" {
			return "", false
		}
		text := c.TextContent()
		if !strings.Contains(text, bootstrapMarker) {
			return "", false
		}
		return text, true
	}
	return "", false
}
