// Package minify defines the boundary to the external minifying
// compiler. The freezer hands a complete document across this boundary
// and trusts the result; symbol-level consistency between markup and
// scripts is the freezer's precondition, renaming is the compiler's
// business, and nothing on this side inspects the output beyond
// non-emptiness.
package minify

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/mod/semver"

	"github.com/go-glaze/glaze/pkg/errors"
)

// Compiler minifies a frozen document.
type Compiler interface {
	// Compile returns the minified form of document.
	Compile(ctx context.Context, document string) (string, error)
	// Version reports the compiler's version.
	Version(ctx context.Context) (string, error)
}

// Passthrough is the identity compiler for development and tests.
type Passthrough struct{}

// Compile returns document unchanged.
func (Passthrough) Compile(ctx context.Context, document string) (string, error) {
	return document, nil
}

// Version reports the fixed passthrough version.
func (Passthrough) Version(ctx context.Context) (string, error) {
	return "passthrough", nil
}

// External shells out to a minifier binary. The document goes to the
// process on stdin and the minified result comes back on stdout; a
// non-zero exit aborts with the process's stderr attached.
type External struct {
	// Command is the binary to run.
	Command string
	// Args are passed before the stdin/stdout exchange.
	Args []string
	// MinVersion and MaxVersion bound the supported compiler releases,
	// inclusive at the bottom and exclusive at the top. Empty means
	// unbounded on that side.
	MinVersion string
	MaxVersion string

	once       sync.Once
	versionErr error
	version    string
}

// NewExternal creates an external compiler boundary over command.
func NewExternal(command string, args ...string) *External {
	return &External{Command: command, Args: args}
}

// Compile runs the external compiler over document. The first call
// probes the binary's version and rejects releases outside the
// supported range; later calls reuse the probe.
func (e *External) Compile(ctx context.Context, document string) (string, error) {
	const op = "minify.Compile"
	if err := e.checkVersion(ctx); err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Command, e.Args...)
	cmd.Stdin = strings.NewReader(document)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", errors.New(op, errors.KindFreeze, ctx.Err())
		}
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", errors.New(op, errors.KindFreeze, fmt.Errorf("%s failed: %w: %s", e.Command, err, detail))
		}
		return "", errors.New(op, errors.KindFreeze, fmt.Errorf("%s failed: %w", e.Command, err))
	}

	out := stdout.String()
	if strings.TrimSpace(out) == "" {
		return "", errors.New(op, errors.KindFreeze, fmt.Errorf("%s produced no output", e.Command))
	}
	return out, nil
}

// Version reports the external binary's version, probing it on first
// use with a --version invocation.
func (e *External) Version(ctx context.Context) (string, error) {
	e.once.Do(func() { e.probeVersion(ctx) })
	return e.version, e.versionErr
}

func (e *External) probeVersion(ctx context.Context) {
	const op = "minify.Version"
	out, err := exec.CommandContext(ctx, e.Command, "--version").Output()
	if err != nil {
		e.versionErr = errors.Configuration(op, fmt.Errorf("probe %s --version: %w", e.Command, err))
		return
	}
	e.version = parseVersion(string(out))
	if e.version == "" {
		e.versionErr = errors.Configuration(op, fmt.Errorf("%s --version output %q has no version", e.Command, strings.TrimSpace(string(out))))
	}
}

func (e *External) checkVersion(ctx context.Context) error {
	const op = "minify.Compile"
	if e.MinVersion == "" && e.MaxVersion == "" {
		return nil
	}
	v, err := e.Version(ctx)
	if err != nil {
		return err
	}
	if e.MinVersion != "" && semver.Compare(v, canonical(e.MinVersion)) < 0 {
		return errors.Configuration(op, fmt.Errorf("%s version %s below supported minimum %s", e.Command, v, e.MinVersion))
	}
	if e.MaxVersion != "" && semver.Compare(v, canonical(e.MaxVersion)) >= 0 {
		return errors.Configuration(op, fmt.Errorf("%s version %s at or above unsupported %s", e.Command, v, e.MaxVersion))
	}
	return nil
}

// parseVersion extracts the first semver-looking token from a
// --version banner like "minihtml v2.4.1 (linux/amd64)".
func parseVersion(banner string) string {
	for _, field := range strings.Fields(banner) {
		if v := canonical(field); semver.IsValid(v) {
			return v
		}
	}
	return ""
}

// canonical normalizes a bare "2.4.1" to the "v2.4.1" form x/mod/semver
// expects.
func canonical(version string) string {
	if version == "" || strings.HasPrefix(version, "v") {
		return version
	}
	if version[0] >= '0' && version[0] <= '9' {
		return "v" + version
	}
	return version
}
