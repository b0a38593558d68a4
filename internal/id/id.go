package id

import (
	"fmt"
	"strconv"
	"unicode"
)

// Generator issues account ids from per-namespace monotonic counters.
// Ids look like "c0", "c1", "s0", "u3": a namespace prefix followed by a
// sequence number. A namespace never reissues a sequence number, even after
// the account that held it is closed.
type Generator struct {
	counters map[string]int
}

// NewGenerator creates a Generator with all counters at zero.
func NewGenerator() *Generator {
	return &Generator{counters: make(map[string]int)}
}

// Next returns the next id in a namespace, e.g. Next("c") -> "c0", "c1", ...
func (g *Generator) Next(namespace string) string {
	n := g.counters[namespace]
	g.counters[namespace] = n + 1
	return fmt.Sprintf("%s%d", namespace, n)
}

// Observe bumps a namespace counter past an existing id so that Next never
// reissues it. Used when rebuilding a bank from a stored snapshot.
// Unparseable ids are ignored.
func (g *Generator) Observe(id string) {
	ns, seq, err := Parse(id)
	if err != nil {
		return
	}
	if seq >= g.counters[ns] {
		g.counters[ns] = seq + 1
	}
}

// Counters returns a copy of the per-namespace counters, for persistence.
func (g *Generator) Counters() map[string]int {
	out := make(map[string]int, len(g.counters))
	for ns, n := range g.counters {
		out[ns] = n
	}
	return out
}

// SetFloor raises a namespace counter to at least next. Counters never move
// backwards; a floor below the current value is a no-op.
func (g *Generator) SetFloor(namespace string, next int) {
	if next > g.counters[namespace] {
		g.counters[namespace] = next
	}
}

// Parse splits an id into namespace and sequence number.
// "c12" -> ("c", 12).
func Parse(id string) (namespace string, seq int, err error) {
	i := 0
	for i < len(id) && !unicode.IsDigit(rune(id[i])) {
		i++
	}
	if i == 0 || i == len(id) {
		return "", 0, fmt.Errorf("invalid id format: %q", id)
	}

	seq, err = strconv.Atoi(id[i:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid sequence in id %q: %w", id, err)
	}
	return id[:i], seq, nil
}
