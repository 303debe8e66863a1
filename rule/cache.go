package rule

import lru "github.com/hashicorp/golang-lru/v2"

// ProgramCache stores compiled condition programs keyed by expression
// strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

const defaultProgramCacheSize = 128

// LRUProgramCache bounds the number of retained programs, evicting the least
// recently used expression first.
type LRUProgramCache struct {
	cache *lru.Cache[string, any]
}

// NewLRUProgramCache constructs a cache holding at most size programs; a
// non-positive size falls back to the default.
func NewLRUProgramCache(size int) (*LRUProgramCache, error) {
	if size <= 0 {
		size = defaultProgramCacheSize
	}
	cache, err := lru.New[string, any](size)
	if err != nil {
		return nil, err
	}
	return &LRUProgramCache{cache: cache}, nil
}

// Get implements ProgramCache.
func (c *LRUProgramCache) Get(key string) (any, bool) {
	if c == nil || c.cache == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

// Set implements ProgramCache.
func (c *LRUProgramCache) Set(key string, value any) {
	if c == nil || c.cache == nil {
		return
	}
	c.cache.Add(key, value)
}
