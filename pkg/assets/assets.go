// Package assets indexes a static asset directory for the freezer.
// Image files are probed for their intrinsic dimensions so frozen
// pages can reserve layout space before the image loads. Raster
// formats are decoded with Go's image package; webp, bmp, and tiff
// register through golang.org/x/image.
package assets

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/go-glaze/glaze/pkg/errors"
)

// Info describes one asset file.
type Info struct {
	// Path is the asset's URL path, rooted at the library directory.
	Path string
	// Size is the file size in bytes.
	Size int64
	// Width and Height are the intrinsic pixel dimensions, zero for
	// files that are not decodable images.
	Width  int
	Height int
	// Format names the decoded image format, empty for non-images.
	Format string
}

// Library is a scanned asset directory. Lookups hit the scan's cache;
// nothing touches the filesystem between scans, so repeated freezes
// over an unchanged directory see identical dimensions.
type Library struct {
	root string

	mu    sync.RWMutex
	infos map[string]Info
}

// Open creates a library over dir and runs the initial scan.
func Open(dir string) (*Library, error) {
	const op = "assets.Open"
	st, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Configuration(op, fmt.Errorf("asset directory: %w", err))
	}
	if !st.IsDir() {
		return nil, errors.Configuration(op, fmt.Errorf("asset path %q is not a directory", dir))
	}
	l := &Library{root: dir}
	if err := l.Scan(); err != nil {
		return nil, err
	}
	return l, nil
}

// Root returns the scanned directory.
func (l *Library) Root() string {
	return l.root
}

// Scan rebuilds the cache from the directory's current contents.
// Dotfiles and dot-directories are skipped.
func (l *Library) Scan() error {
	const op = "assets.Scan"
	infos := make(map[string]Info)

	err := filepath.WalkDir(l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && p != l.root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.root, p)
		if err != nil {
			return err
		}
		info, err := probe(p, path.Clean("/"+filepath.ToSlash(rel)))
		if err != nil {
			return err
		}
		infos[info.Path] = info
		return nil
	})
	if err != nil {
		return errors.Configuration(op, fmt.Errorf("scan %s: %w", l.root, err))
	}

	l.mu.Lock()
	l.infos = infos
	l.mu.Unlock()
	return nil
}

// Lookup resolves a src path against the library. Query and fragment
// suffixes are ignored; absolute URLs never resolve.
func (l *Library) Lookup(src string) (Info, bool) {
	key, ok := canonicalPath(src)
	if !ok {
		return Info{}, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	info, ok := l.infos[key]
	return info, ok
}

// Dimensions returns the intrinsic size of an image asset. ok is false
// when src is not in the library or not a decodable image.
func (l *Library) Dimensions(src string) (width, height int, ok bool) {
	info, ok := l.Lookup(src)
	if !ok || info.Width <= 0 || info.Height <= 0 {
		return 0, 0, false
	}
	return info.Width, info.Height, true
}

// Paths returns every indexed asset path in sorted order.
func (l *Library) Paths() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	paths := make([]string, 0, len(l.infos))
	for p := range l.infos {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of indexed assets.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.infos)
}

// probe stats the file and, for image extensions, decodes the header
// for intrinsic dimensions. A file with an image extension that fails
// to decode is kept without dimensions.
func probe(filename, urlPath string) (Info, error) {
	st, err := os.Stat(filename)
	if err != nil {
		return Info{}, err
	}
	info := Info{Path: urlPath, Size: st.Size()}

	if !imageExt(path.Ext(urlPath)) {
		return info, nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return info, nil
	}
	info.Width = cfg.Width
	info.Height = cfg.Height
	info.Format = format
	return info, nil
}

func imageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

// canonicalPath maps a src attribute to a cache key. External URLs and
// empty sources do not resolve.
func canonicalPath(src string) (string, bool) {
	if src == "" || strings.Contains(src, "://") || strings.HasPrefix(src, "//") {
		return "", false
	}
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	if src == "" {
		return "", false
	}
	return path.Clean("/" + src), true
}
