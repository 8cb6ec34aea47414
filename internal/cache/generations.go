package cache

import (
	"strings"
	"sync"
)

// generations records which prefixes were invalidated while a cached GET
// was running, so a response computed before a mutation is not stored
// after that mutation dropped the prefix.
type generations struct {
	mu       sync.Mutex
	seq      uint64
	inflight int
	bumped   map[string]uint64
}

var trackers sync.Map // Store -> *generations

func trackerFor(store Store) *generations {
	g, _ := trackers.LoadOrStore(store, &generations{bumped: map[string]uint64{}})
	return g.(*generations)
}

// begin marks a read as in flight and returns the generation it started at.
func (g *generations) begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inflight++
	return g.seq
}

// end reports whether key was invalidated after start. The history is
// dropped once no read is in flight.
func (g *generations) end(key string, start uint64) (stale bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for prefix, at := range g.bumped {
		if at > start && strings.HasPrefix(key, prefix) {
			stale = true
			break
		}
	}
	g.inflight--
	if g.inflight == 0 {
		clear(g.bumped)
	}
	return stale
}

func (g *generations) bump(prefix string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	if g.inflight > 0 {
		g.bumped[prefix] = g.seq
	}
}
