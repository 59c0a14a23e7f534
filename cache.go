package pyzip

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes a codec's Encode and Decode results. Entries are keyed by an
// xxhash of the input and verified against the stored input on a hit, so a
// hash collision costs a recomputation, never a wrong answer.
//
// A Cache is safe for concurrent use.
type Cache struct {
	codec   *Codec
	encoded *lru.Cache[uint64, cacheEntry]
	decoded *lru.Cache[uint64, cacheEntry]
}

type cacheEntry struct {
	in  string
	out string
}

// NewCache wraps codec with two LRU caches of size entries each.
func NewCache(codec *Codec, size int) (*Cache, error) {
	enc, err := lru.New[uint64, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	dec, err := lru.New[uint64, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{codec: codec, encoded: enc, decoded: dec}, nil
}

// Encode returns the cached artifact for text, encoding it on a miss.
func (c *Cache) Encode(text string) (string, error) {
	return c.lookup(c.encoded, text, c.codec.Encode)
}

// Decode returns the cached text for artifact, decoding it on a miss.
// Errors are not cached.
func (c *Cache) Decode(artifact string) (string, error) {
	return c.lookup(c.decoded, artifact, c.codec.Decode)
}

// Len returns the number of cached encode and decode entries.
func (c *Cache) Len() (encoded, decoded int) {
	return c.encoded.Len(), c.decoded.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.encoded.Purge()
	c.decoded.Purge()
}

func (c *Cache) lookup(cache *lru.Cache[uint64, cacheEntry], in string, fn func(string) (string, error)) (string, error) {
	key := xxhash.Sum64String(in)
	if e, ok := cache.Get(key); ok && e.in == in {
		return e.out, nil
	}
	out, err := fn(in)
	if err != nil {
		return "", err
	}
	cache.Add(key, cacheEntry{in: in, out: out})
	return out, nil
}
