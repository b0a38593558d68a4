package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	g := NewGenerator()

	assert.Equal(t, "c0", g.Next("c"))
	assert.Equal(t, "c1", g.Next("c"))
	assert.Equal(t, "s0", g.Next("s"))
	assert.Equal(t, "c2", g.Next("c"))
	assert.Equal(t, "u0", g.Next("u"))
}

func TestNext_IndependentGenerators(t *testing.T) {
	g1 := NewGenerator()
	g2 := NewGenerator()

	assert.Equal(t, "c0", g1.Next("c"))
	assert.Equal(t, "c0", g2.Next("c"), "generators must not share counters")
}

func TestObserve(t *testing.T) {
	g := NewGenerator()
	g.Observe("c4")
	g.Observe("c2")
	g.Observe("s0")

	assert.Equal(t, "c5", g.Next("c"))
	assert.Equal(t, "s1", g.Next("s"))
	assert.Equal(t, "u0", g.Next("u"))
}

func TestObserve_IgnoresInvalid(t *testing.T) {
	g := NewGenerator()
	g.Observe("")
	g.Observe("nodigits")
	g.Observe("42")

	assert.Equal(t, "c0", g.Next("c"))
}

func TestCountersAndSetFloor(t *testing.T) {
	g := NewGenerator()
	g.Next("c")
	g.Next("c")
	g.Next("s")

	counters := g.Counters()
	assert.Equal(t, map[string]int{"c": 2, "s": 1}, counters)

	// A copy, not a view.
	counters["c"] = 99
	assert.Equal(t, "c2", g.Next("c"))

	g2 := NewGenerator()
	g2.SetFloor("c", 3)
	g2.SetFloor("c", 1) // never moves backwards
	assert.Equal(t, "c3", g2.Next("c"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		wantNS  string
		wantSeq int
	}{
		{"c0", "c", 0},
		{"c12", "c", 12},
		{"s3", "s", 3},
		{"u100", "u", 100},
	}
	for _, tt := range tests {
		ns, seq, err := Parse(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantNS, ns)
		assert.Equal(t, tt.wantSeq, seq)
	}
}

func TestParse_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"c",
		"12",
		"checking",
	}
	for _, input := range badInputs {
		_, _, err := Parse(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}
