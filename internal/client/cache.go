package client

import (
	"strings"
	"sync"
)

// cache is the per-client query cache, keyed by resource name plus
// parameters ("accounts", "account:<id>", ...).
type cache struct {
	mu      sync.Mutex
	entries map[string]interface{}
}

func newCache() *cache {
	return &cache{entries: make(map[string]interface{})}
}

func (c *cache) get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *cache) set(key string, v interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = v
}

// drop removes every entry whose key equals the pattern or, for patterns
// ending in ':', starts with it (detail entries for any id).
func (c *cache) drop(patterns ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range patterns {
		if strings.HasSuffix(p, ":") {
			for key := range c.entries {
				if strings.HasPrefix(key, p) {
					delete(c.entries, key)
				}
			}
			continue
		}
		delete(c.entries, p)
	}
}

// invalidations is the explicit table mapping each mutation to the cache
// keys it must drop. Silent staleness is a bug: any new mutation has to be
// added here before it ships.
var invalidations = map[string][]string{
	"accounts.create":         {"accounts", "summary"},
	"accounts.update":         {"accounts", "account:", "summary"},
	"accounts.delete":         {"accounts", "account:", "transactions", "transactions:", "transaction:", "summary"},
	"accounts.bulkDelete":     {"accounts", "account:", "transactions", "transactions:", "transaction:", "summary"},
	"categories.create":       {"categories", "summary"},
	"categories.update":       {"categories", "category:", "summary"},
	"categories.delete":       {"categories", "category:", "transactions", "transactions:", "transaction:", "summary"},
	"categories.bulkDelete":   {"categories", "category:", "transactions", "transactions:", "transaction:", "summary"},
	"transactions.create":     {"transactions", "transactions:", "summary"},
	"transactions.update":     {"transactions", "transactions:", "transaction:", "summary"},
	"transactions.delete":     {"transactions", "transactions:", "transaction:", "summary"},
	"transactions.bulkDelete": {"transactions", "transactions:", "transaction:", "summary"},
}

// invalidate applies the table entry for one mutation.
func (c *Client) invalidate(mutation string) {
	c.cache.drop(invalidations[mutation]...)
}
