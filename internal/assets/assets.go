// Package assets loads bundled and user-supplied files: the reference
// model, its textures and the audio cue.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

//go:embed data
var bundled embed.FS

// Bundled asset names.
const (
	DefaultModel = "models/sphere.obj"
	CueSound     = "sounds/cue.wav"
)

// ErrNotFound is returned when no source has the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager resolves asset names against layered sources.
// Sources are searched in reverse order (last added = highest priority);
// the embedded bundle is always the lowest.
type Manager struct {
	sources []fs.FS
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a manager over the embedded bundle.
func NewManager() *Manager {
	data, err := fs.Sub(bundled, "data")
	if err != nil {
		panic(err) // the embed directive guarantees the directory
	}
	return &Manager{
		sources: []fs.FS{data},
		cache:   NewCache(),
	}
}

// AddDir layers a directory over the current sources.
func (m *Manager) AddDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("adding asset dir %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding asset dir %s: not a directory", path)
	}

	m.mu.Lock()
	m.sources = append(m.sources, os.DirFS(path))
	m.mu.Unlock()
	m.cache.Clear()
	return nil
}

// Load returns the contents of a slash-separated asset name.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.sources[i], name)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Open implements fs.FS over the layered sources, so a Manager can be
// handed to LoadModel.
func (m *Manager) Open(name string) (fs.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.sources) - 1; i >= 0; i-- {
		f, err := m.sources[i].Open(name)
		if err == nil {
			return f, nil
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// ReadFile implements fs.ReadFileFS through the cache.
func (m *Manager) ReadFile(name string) ([]byte, error) {
	data, err := m.Load(name)
	if errors.Is(err, ErrNotFound) {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return data, err
}

// Close drops all sources but the bundle and clears the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	m.sources = m.sources[:1]
	m.mu.Unlock()
	m.cache.Clear()
}

// CacheStats returns cache hits and misses.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
