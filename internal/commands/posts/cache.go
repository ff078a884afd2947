package postscmd

import (
	"context"
	"path"
	"strings"
	"sync"

	"github.com/goliatone/go-blog/internal/posts"
)

// CollectionCache remembers the last collection loaded per directory so
// render-by-id requests can resolve posts without rescanning the tree.
type CollectionCache struct {
	mu      sync.RWMutex
	entries map[string]*posts.Collection
}

// NewCollectionCache returns an empty cache.
func NewCollectionCache() *CollectionCache {
	return &CollectionCache{entries: map[string]*posts.Collection{}}
}

// Get returns the cached collection for dir.
func (c *CollectionCache) Get(dir string) (*posts.Collection, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	collection, ok := c.entries[cacheKey(dir)]
	return collection, ok
}

// Store replaces the cached collection for dir.
func (c *CollectionCache) Store(dir string, collection *posts.Collection) {
	if collection == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(dir)] = collection
}

// Invalidate drops dir from the cache.
func (c *CollectionCache) Invalidate(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(dir))
}

func cacheKey(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "."
	}
	return path.Clean(strings.ReplaceAll(dir, "\\", "/"))
}

// CachedCollections is implemented by services that can hand back an already
// loaded collection.
type CachedCollections interface {
	CachedCollection(dir string) (*posts.Collection, bool)
}

// CachingService stores every collection it loads. Single-document loads pass
// through untouched.
type CachingService struct {
	PostService
	cache *CollectionCache
}

var _ CachedCollections = (*CachingService)(nil)

// NewCachingService wraps service with cache. A nil cache gets a fresh one.
func NewCachingService(service PostService, cache *CollectionCache) *CachingService {
	if cache == nil {
		cache = NewCollectionCache()
	}
	return &CachingService{PostService: service, cache: cache}
}

// LoadCollection always reads the collection and refreshes the cache. A
// failed load drops the cached entry.
func (s *CachingService) LoadCollection(ctx context.Context, dir string) (*posts.Collection, posts.LoadReport, error) {
	collection, report, err := s.PostService.LoadCollection(ctx, dir)
	if err != nil {
		s.cache.Invalidate(dir)
		return nil, report, err
	}
	s.cache.Store(dir, collection)
	return collection, report, nil
}

// CachedCollection returns the last collection loaded for dir.
func (s *CachingService) CachedCollection(dir string) (*posts.Collection, bool) {
	return s.cache.Get(dir)
}
