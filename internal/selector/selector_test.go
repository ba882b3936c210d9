package selector

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/magic-orb/internal/catalog"
)

func newSelector(t *testing.T) *Selector {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return New(c)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"\t\nwill it work?\r\n", "will it work?"},
		{"keep  internal   spaces", "keep  internal   spaces"},
		{"\uFEFFbom prefixed", "bom prefixed"},
		{"\u00A0nbsp\u00A0", "nbsp"},
		{"\u2028line sep\u3000", "line sep"},
		// NEL is content, not whitespace.
		{"\u0085Will it?\u0085", "\u0085Will it?\u0085"},
		{" \u0085Will it? ", "\u0085Will it?"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestSeed(t *testing.T) {
	tests := []struct {
		question string
		want     uint64
	}{
		{"abc", 294},
		{"Will my idea spark something incredible?", 3824},
		{"   Will my idea spark something incredible?   ", 3824},
		{"Should I learn Go?", 1567},
		{"Café tomorrow?", 1499},
		// U+1F327 contributes its high surrogate 0xD83C.
		{"Will it rain 🌧?", 56570},
		{"Will it?", 724},
		{"\u0085Will it?", 857},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Seed(tt.question), "Seed(%q)", tt.question)
	}
}

func TestSeedCollisionsAreAccepted(t *testing.T) {
	// Anagrams share a seed and therefore a reading.
	require.Equal(t, Seed("listen"), Seed("silent"))
	s := newSelector(t)
	assert.Equal(t, s.Select("listen", catalog.FilterAll), s.Select("silent", catalog.FilterAll))
}

func TestSelectExamples(t *testing.T) {
	s := newSelector(t)
	tests := []struct {
		question string
		filter   catalog.Filter
		want     string
	}{
		{"Will my idea spark something incredible?", catalog.FilterAll, "destiny-aligned"},
		{"abc", catalog.FilterAll, "crystal-clear"},
		{"Is today the day?", catalog.FilterAll, "listen-closely"},
		{"Should I learn Go?", catalog.FilterPositive, "destiny-aligned"},
		{"Should I learn Go?", catalog.FilterTentative, "foggy-horizon"},
		{"Should I learn Go?", catalog.FilterNegative, "cosmic-detour"},
		{"Will the deploy go smoothly?", catalog.FilterTentative, "ask-again"},
		{"Will it rain 🌧?", catalog.FilterAll, "shift-course"},
		{"Café tomorrow?", catalog.FilterNegative, "let-go"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.filter, tt.question), func(t *testing.T) {
			assert.Equal(t, tt.want, s.Select(tt.question, tt.filter).ID)
		})
	}
}

func TestIndex(t *testing.T) {
	s := newSelector(t)

	idx, n := s.Index("Will my idea spark something incredible?", catalog.FilterAll)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 14, n)

	idx, n = s.Index("Should I learn Go?", catalog.FilterTentative)
	assert.Equal(t, 3, idx)
	assert.Equal(t, 4, n)

	// Select is the candidate at Index.
	for _, f := range catalog.Filters {
		idx, _ := s.Index("Is today the day?", f)
		assert.Equal(t, s.Catalog().Candidates(f)[idx], s.Select("Is today the day?", f))
	}
}

func TestSelectCoversEveryEntry(t *testing.T) {
	s := newSelector(t)
	for _, f := range catalog.Filters {
		seen := map[string]bool{}
		// Consecutive final characters walk the seed through every residue.
		for r := 'a'; r <= 'z'; r++ {
			seen[s.Select("why"+string(r), f).ID] = true
		}
		for _, e := range s.Catalog().Candidates(f) {
			assert.True(t, seen[e.ID], "filter %s: entry %s unreachable", f, e.ID)
		}
	}
}

func TestSelectUnknownFilterPanics(t *testing.T) {
	s := newSelector(t)
	assert.Panics(t, func() { s.Select("anything", catalog.Filter("ecstatic")) })
}
