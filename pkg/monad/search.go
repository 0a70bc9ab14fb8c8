package monad

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Order selects which valid digit sequence the search keeps.
type Order int

const (
	Highest Order = iota
	Lowest
)

func (o Order) String() string {
	if o == Lowest {
		return "lowest"
	}
	return "highest"
}

// Route is one point per chunk, in chunk order: Route[0] holds the most
// significant digit.
type Route []Point

// Digits returns the digits of the route concatenated in chunk order.
func (r Route) Digits() string {
	var b strings.Builder
	b.Grow(len(r))
	for _, p := range r {
		b.WriteString(strconv.FormatInt(p.N, 10))
	}
	return b.String()
}

// better reports whether digits of a (plus tail digit na) beat those of b
// (plus nb) under order. Routes of a subproblem always have equal length.
func better(order Order, a Route, na int64, b Route, nb int64) bool {
	for i := range a {
		if a[i].N != b[i].N {
			return (a[i].N > b[i].N) == (order == Highest)
		}
	}
	if na != nb {
		return (na > nb) == (order == Highest)
	}
	return false
}

type cacheKey struct {
	remaining int
	target    int64
}

type cacheEntry struct {
	route Route
	ok    bool
}

// Cache memoizes Search subproblems keyed by (chunks remaining, target).
// A cache belongs to one Order and one chunk list; entries never change
// once stored.
type Cache struct {
	order   Order
	chunks  []Chunk // longest chunk list searched so far
	entries map[cacheKey]cacheEntry
	hits    int
}

// NewCache returns an empty cache for searches in the given order. The
// first Search binds it to a chunk list. Later searches may use that list,
// a prefix of it, or an extension of it; any other list panics.
func NewCache(order Order) *Cache {
	return &Cache{
		order:   order,
		entries: make(map[cacheKey]cacheEntry, 1024),
	}
}

// Order returns the order the cache was built for.
func (c *Cache) Order() Order {
	return c.order
}

// Len returns the number of memoized subproblems.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Hits returns how many lookups were answered from the cache.
func (c *Cache) Hits() int {
	return c.hits
}

// bind ties c to chunks. Entries for the first k chunks stay valid for every
// list that shares those k chunks.
func (c *Cache) bind(chunks []Chunk) {
	n := min(len(chunks), len(c.chunks))
	if !slices.Equal(chunks[:n], c.chunks[:n]) {
		panic(fmt.Sprintf("monad: cache built for chunks %v reused with %v", c.chunks, chunks))
	}
	if len(chunks) > len(c.chunks) {
		c.chunks = slices.Clone(chunks)
	}
}

func (c *Cache) get(k cacheKey) (cacheEntry, bool) {
	e, ok := c.entries[k]
	if ok {
		c.hits++
	}
	return e, ok
}

func (c *Cache) put(k cacheKey, route Route, ok bool) {
	if _, exists := c.entries[k]; exists {
		return
	}
	c.entries[k] = cacheEntry{route: route, ok: ok}
}

// Search finds the best route through chunks that leaves the accumulator
// equal to target after the last chunk, starting from z = 0 before the
// first. It reports false when no digit sequence qualifies.
//
// The search runs backward: the last chunk is inverted with FindValues and
// each candidate's accumulator becomes the target for the chunks before it.
// The returned route must not be modified; it may be shared with the cache.
func Search(chunks []Chunk, target int64, cache *Cache) (Route, bool) {
	cache.bind(chunks)
	return search(chunks, target, cache)
}

func search(chunks []Chunk, target int64, cache *Cache) (Route, bool) {
	key := cacheKey{remaining: len(chunks), target: target}
	if e, ok := cache.get(key); ok {
		return e.route, e.ok
	}

	if len(chunks) == 0 {
		ok := target == 0
		var route Route
		if ok {
			route = Route{}
		}
		cache.put(key, route, ok)
		return route, ok
	}

	last := chunks[len(chunks)-1]
	rest := chunks[:len(chunks)-1]

	var (
		best     Route
		bestTail Point
		found    bool
	)
	for _, p := range last.FindValues(target) {
		prefix, ok := search(rest, p.Z, cache)
		if !ok {
			continue
		}
		if !found || better(cache.order, prefix, p.N, best, bestTail.N) {
			best, bestTail, found = prefix, p, true
		}
	}

	if !found {
		cache.put(key, nil, false)
		return nil, false
	}

	route := make(Route, 0, len(best)+1)
	route = append(route, best...)
	route = append(route, bestTail)
	cache.put(key, route, true)
	return route, true
}
