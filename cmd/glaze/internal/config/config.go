// Package config reads the optional glaze.yaml project configuration
// and resolves it against the Go module the project lives in.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Config represents the optional glaze.yaml configuration.
type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Build BuildConfig `yaml:"build"`
	Serve ServeConfig `yaml:"serve"`
}

// SiteConfig contains site metadata.
type SiteConfig struct {
	Name    string `yaml:"name,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// BuildConfig contains freeze settings.
type BuildConfig struct {
	Out      string `yaml:"out,omitempty"`
	Cache    string `yaml:"cache,omitempty"`
	Compiler string `yaml:"compiler,omitempty"`
}

// ServeConfig contains dev server settings.
type ServeConfig struct {
	Addr  string `yaml:"addr,omitempty"`
	Watch string `yaml:"watch,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	SiteName   string
	BaseURL    string
	OutDir     string
	CachePath  string
	Compiler   string
	Addr       string
	WatchDir   string
}

// LoadOptional reads glaze.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "glaze.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read glaze.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse glaze.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads glaze.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	siteName := strings.TrimSpace(cfg.Site.Name)
	if siteName == "" {
		siteName = defaultSiteName(modulePath, dir)
	}

	out := strings.TrimSpace(cfg.Build.Out)
	if out == "" {
		out = "dist"
	}

	cache := strings.TrimSpace(cfg.Build.Cache)
	if cache == "" {
		cache = filepath.Join(".glaze", "pages.db")
	}

	addr := strings.TrimSpace(cfg.Serve.Addr)
	if addr == "" {
		addr = "localhost:8080"
	}

	watch := strings.TrimSpace(cfg.Serve.Watch)
	if watch == "" {
		watch = "."
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		SiteName:   siteName,
		BaseURL:    strings.TrimSpace(cfg.Site.BaseURL),
		OutDir:     out,
		CachePath:  cache,
		Compiler:   strings.TrimSpace(cfg.Build.Compiler),
		Addr:       addr,
		WatchDir:   watch,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultSiteName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" {
		return "glaze_site"
	}
	return base
}
