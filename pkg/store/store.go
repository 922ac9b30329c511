// Package store persists frozen page artifacts between builds so
// unchanged pages skip the external minifier.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketPages = "pages"

// ErrNoCachedPage is returned by LookupPage when the route has no entry.
var ErrNoCachedPage = errors.New("no cached page for route")

// Page is one frozen page artifact: the final document plus the
// fingerprint of the inputs that produced it.
type Page struct {
	// Hash fingerprints the pre-minified document.
	Hash string `json:"hash"`
	// CompilerVersion identifies the minifier that produced Document.
	CompilerVersion string `json:"compilerVersion"`
	// Document is the final minified markup.
	Document string `json:"document"`
	// CSS is the page's style bundle.
	CSS string `json:"css"`
	// Styles lists the style names the page used.
	Styles []string `json:"styles,omitempty"`
}

// Fresh reports whether the artifact still matches a page whose
// pre-minified document hashes to hash under the given compiler.
func (p Page) Fresh(hash, compilerVersion string) bool {
	return p.Hash == hash && p.CompilerVersion == compilerVersion
}

// Store is a bbolt-backed page cache.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the store file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open page store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPages))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize page store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the store file.
func (s *Store) Close() error {
	return s.db.Close()
}

// LookupPage returns the cached artifact for route, or ErrNoCachedPage.
func (s *Store) LookupPage(route string) (Page, error) {
	var page Page
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPages))
		v := b.Get([]byte(route))
		if v == nil {
			return ErrNoCachedPage
		}
		return json.Unmarshal(v, &page)
	})
	return page, err
}

// SavePage stores the artifact for route, replacing any previous entry.
func (s *Store) SavePage(route string, page Page) error {
	v, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode page %q: %w", route, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPages))
		return b.Put([]byte(route), v)
	})
}

// DeletePage removes the artifact for route. Deleting a missing route
// is not an error.
func (s *Store) DeletePage(route string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPages))
		return b.Delete([]byte(route))
	})
}

// Routes lists the cached routes in key order.
func (s *Store) Routes() ([]string, error) {
	var routes []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPages))
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			routes = append(routes, string(k))
		}
		return nil
	})
	return routes, err
}

// Purge drops every cached page.
func (s *Store) Purge() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketPages)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPages))
		return err
	})
}

// Fingerprint hashes a pre-minified document for cache comparison.
func Fingerprint(document string) string {
	sum := sha256.Sum256([]byte(document))
	return hex.EncodeToString(sum[:])
}
