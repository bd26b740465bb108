package lawregistry

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/coolbeans/legigraph/pkg/hierarchy"
)

// cacheKey identifies one compiled registry: a jurisdiction plus the
// snapshot date it was built for.
type cacheKey struct {
	jurisdiction hierarchy.Jurisdiction
	date         hierarchy.Date
}

// LoaderFunc builds the alias set for one jurisdiction, to be filtered down
// to a single date's Registry by Cache.Get.
type LoaderFunc func(jurisdiction hierarchy.Jurisdiction) ([]Alias, error)

// Cache is the per-worker frozen registry cache spec §5/§9 calls for:
// "loaded once per worker on first use and cached for the worker's
// lifetime". One Cache is meant to be owned by a single worker goroutine;
// it is not safe for concurrent use from multiple goroutines, matching the
// "one registry load per worker, not per item" sizing the pipeline
// requires to keep per-item execute() calls allocation-light.
type Cache struct {
	load    LoaderFunc
	aliases map[hierarchy.Jurisdiction][]Alias
	built   *lru.Cache[cacheKey, *Registry]
}

// NewCache creates a worker-local registry cache of the given capacity
// (number of distinct snapshot dates to keep compiled at once).
func NewCache(load LoaderFunc, size int) (*Cache, error) {
	built, err := lru.New[cacheKey, *Registry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		load:    load,
		aliases: map[hierarchy.Jurisdiction][]Alias{},
		built:   built,
	}, nil
}

// Get returns the Registry for (jurisdiction, date), building and caching
// it on first use. The underlying alias list is itself cached per
// jurisdiction so repeated Get calls across many dates only hit the
// loader once.
func (c *Cache) Get(jurisdiction hierarchy.Jurisdiction, date hierarchy.Date) (*Registry, error) {
	key := cacheKey{jurisdiction: jurisdiction, date: date}
	if reg, ok := c.built.Get(key); ok {
		return reg, nil
	}

	aliases, ok := c.aliases[jurisdiction]
	if !ok {
		var err error
		aliases, err = c.load(jurisdiction)
		if err != nil {
			return nil, err
		}
		c.aliases[jurisdiction] = aliases
	}

	reg := Build(aliases, date, jurisdiction)
	c.built.Add(key, reg)
	return reg, nil
}
