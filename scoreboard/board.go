// Package scoreboard ranks match results, persists them and advances tier progression.
package scoreboard

import (
	"fmt"
	"math"
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/lixenwraith/ringside/config"
)

// Entry is one ranked line of a match result
type Entry struct {
	Rank  int
	Name  string
	Value string
	Raw   float64
}

// Result is a ranked match result, rank 1 first
type Result []Entry

// Names returns competitor names in rank order
func (r Result) Names() []string {
	names := make([]string, len(r))
	for i, e := range r {
		names[i] = e.Name
	}
	return names
}

// Find returns the entry for name
func (r Result) Find(name string) (Entry, bool) {
	for _, e := range r {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Board keeps raw values per competitor and recomputes ranks on every change
// Equal values keep insertion order
type Board struct {
	scoring config.Scoring
	values  *orderedmap.OrderedMap[string, float64]
	ranked  Result
}

func NewBoard(scoring config.Scoring) *Board {
	return &Board{
		scoring: scoring,
		values:  orderedmap.NewOrderedMap[string, float64](),
	}
}

// Set records or replaces a competitor's value
func (b *Board) Set(name string, value float64) {
	b.values.Set(name, value)
	b.rerank()
}

func (b *Board) Len() int {
	return b.values.Len()
}

// Result returns a copy of the ranked entries
func (b *Board) Result() Result {
	out := make(Result, len(b.ranked))
	copy(out, b.ranked)
	return out
}

func (b *Board) rerank() {
	keys := b.values.Keys()
	entries := make(Result, 0, len(keys))
	for _, k := range keys {
		v, _ := b.values.Get(k)
		entries = append(entries, Entry{Name: k, Raw: v, Value: b.format(v)})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if b.scoring == config.ScoringTime {
			return entries[i].Raw < entries[j].Raw
		}
		return entries[i].Raw > entries[j].Raw
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	b.ranked = entries
}

func (b *Board) format(v float64) string {
	if b.scoring == config.ScoringTime {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%d", int64(math.Round(v)))
}
