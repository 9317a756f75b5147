package linereader

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jtmoon79/s4/internal/blockreader"
)

// findLineLRUSize matches the spec's "~8" suggestion (§9).
const findLineLRUSize = 8

// findLineCache is the small, disable-able LRU cache in front of find_line
// (§4.2 step 1, §9 "must be disable-able for determinism testing").
// Correctness never depends on it: a miss simply falls through to the
// lines/foend_to_fobeg maps.
type findLineCache struct {
	enabled bool
	cache   *lru.Cache[blockreader.FileOffset, Result4[*Line]]
}

func newFindLineCache(enabled bool) *findLineCache {
	c := &findLineCache{enabled: enabled}
	if enabled {
		l, err := lru.New[blockreader.FileOffset, Result4[*Line]](findLineLRUSize)
		if err != nil {
			// Only returns an error for a non-positive size, which
			// findLineLRUSize never is.
			panic(err)
		}
		c.cache = l
	}
	return c
}

func (c *findLineCache) get(fo blockreader.FileOffset) (Result4[*Line], bool) {
	if !c.enabled {
		return Result4[*Line]{}, false
	}
	return c.cache.Get(fo)
}

func (c *findLineCache) put(fo blockreader.FileOffset, r Result4[*Line]) {
	if !c.enabled {
		return
	}
	c.cache.Add(fo, r)
}
