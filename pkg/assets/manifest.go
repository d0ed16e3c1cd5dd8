// Package assets provides runtime resolution of fingerprinted asset paths.
//
// A build step emits a manifest.json mapping source asset names to their
// fingerprinted versions:
//
//	{
//	  "loom.js": "loom.a1b2c3d4.min.js",
//	  "styles.css": "styles.e5f6g7h8.css"
//	}
//
// The manifest can be loaded from disk or from an S3 bucket, and a
// Resolver turns source names into servable URLs for page stylesheets and
// the hydration client script.
package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Manifest holds the mapping from source asset paths to fingerprinted
// paths. Safe for concurrent use.
type Manifest struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		entries: make(map[string]string),
	}
}

// Load reads a manifest.json file from disk.
//
// In development you may want to ignore a missing file and use
// NewPassthroughResolver instead.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a Manifest from raw manifest.json bytes.
func Parse(data []byte) (*Manifest, error) {
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("assets: invalid manifest: %w", err)
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	return &Manifest{entries: entries}, nil
}

// Resolve returns the fingerprinted path for the given source path, or
// the source unchanged when unmapped.
func (m *Manifest) Resolve(source string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Has reports whether the manifest maps the given source path.
func (m *Manifest) Has(source string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[source]
	return ok
}

// Set adds or updates an entry. Primarily useful for tests and dynamic
// manifest building.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[source] = resolved
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// All returns a copy of every entry.
func (m *Manifest) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		result[k] = v
	}
	return result
}
