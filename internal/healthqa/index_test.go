package healthqa

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultIndex(t *testing.T) *Index {
	t.Helper()
	entries, err := DefaultEntries()
	require.NoError(t, err)
	return NewIndex(entries)
}

func miniIndex() *Index {
	return NewIndex([]Entry{
		{ID: "a", Keywords: []string{"iron"}, Question: "Need iron?", Answer: "Eat spinach."},
		{ID: "b", Keywords: []string{"sleep"}, Question: "How to sleep?", Answer: "Iron sheets, sleep on your side."},
		{ID: "c", Keywords: []string{"walking"}, Question: "Walk daily?", Answer: "Yes, walk."},
		{ID: "d", Keywords: []string{"sleeping"}, Question: "Sleeping position?", Answer: "Left side."},
	})
}

func TestSearch_PapayaScenario(t *testing.T) {
	idx := defaultIndex(t)

	results := idx.Search("papaya safe to eat")
	require.NotEmpty(t, results)
	assert.Equal(t, "papaya-safety", results[0].ID)
	assert.Equal(t, "WHO Nutrition Guidelines, 2023", results[0].Source)
}

func TestSearch_Scoring(t *testing.T) {
	idx := miniIndex()

	matches := idx.Rank("iron")
	require.Len(t, matches, 2)
	// keyword + question
	assert.Equal(t, Match{Entry: idx.entries[0].entry, Score: 5}, matches[0])
	// answer only, case-insensitive
	assert.Equal(t, "b", matches[1].Entry.ID)
	assert.Equal(t, 1, matches[1].Score)
}

func TestSearch_BidirectionalKeywordContainment(t *testing.T) {
	idx := miniIndex()

	// token contains keyword "walking"
	m := idx.Rank("walkingpoles")
	require.Len(t, m, 1)
	assert.Equal(t, "c", m[0].Entry.ID)
	assert.Equal(t, 3, m[0].Score)

	// token contained in keyword "walking"; also in question and answer
	m = idx.Rank("walk")
	require.Len(t, m, 1)
	assert.Equal(t, 6, m[0].Score)
}

func TestSearch_StableTieBreak(t *testing.T) {
	idx := miniIndex()

	// "side" appears only in the answers of b and d
	m := idx.Rank("side")
	require.Len(t, m, 2)
	assert.Equal(t, "b", m[0].Entry.ID)
	assert.Equal(t, "d", m[1].Entry.ID)
	assert.Equal(t, m[0].Score, m[1].Score)
}

func TestSearch_ShortTokensOnly(t *testing.T) {
	idx := defaultIndex(t)

	for _, q := range []string{"", "   ", "is it ok", "a an to of"} {
		assert.Empty(t, idx.Search(q), "query %q", q)
	}
}

func TestSearch_ResultBound(t *testing.T) {
	var entries []Entry
	for i := 0; i < 20; i++ {
		entries = append(entries, Entry{ID: fmt.Sprintf("e%d", i), Keywords: []string{"pregnancy"}})
	}
	idx := NewIndex(entries)

	results := idx.Search("pregnancy")
	require.Len(t, results, MaxResults)
	assert.Equal(t, "e0", results[0].ID)
	assert.Equal(t, "e2", results[2].ID)

	assert.LessOrEqual(t, len(defaultIndex(t).Search("safe pregnancy during baby vitamin iron")), MaxResults)
}

func TestSearch_Monotonicity(t *testing.T) {
	idx := defaultIndex(t)

	base := []string{"safe", "pain", "sleep", "coffee", "vitamin", "walk", "swelling"}
	for i := range base {
		query := strings.Join(base[:i], " ")
		extended := strings.Join(base[:i+1], " ")

		before := scoresByID(idx.Rank(query))
		after := scoresByID(idx.Rank(extended))
		for id, score := range before {
			assert.GreaterOrEqual(t, after[id], score, "entry %s, query %q", id, extended)
		}
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"papaya", "safe", "eat"}, Tokenize("Papaya  SAFE\tto eat"))
	assert.Empty(t, Tokenize("to be"))
}

func TestEntryAppliesTo(t *testing.T) {
	assert.True(t, Entry{}.AppliesTo(2))
	assert.True(t, Entry{Trimester: TrimesterAll}.AppliesTo(3))
	assert.True(t, Entry{Trimester: "1"}.AppliesTo(1))
	assert.False(t, Entry{Trimester: "1"}.AppliesTo(2))
}

func TestLoadEntries(t *testing.T) {
	entries, err := DefaultEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 17)

	_, err = LoadEntries(strings.NewReader("entries:\n  - id: x\n  - id: x\n"))
	assert.Error(t, err)

	_, err = LoadEntries(strings.NewReader("entries:\n  - question: no id\n"))
	assert.Error(t, err)
}

func TestIndex_Get(t *testing.T) {
	idx := defaultIndex(t)

	e, ok := idx.Get("folic-acid")
	require.True(t, ok)
	assert.Equal(t, Trimester("1"), e.Trimester)

	_, ok = idx.Get("missing")
	assert.False(t, ok)
}

func scoresByID(matches []Match) map[string]int {
	out := make(map[string]int, len(matches))
	for _, m := range matches {
		out[m.Entry.ID] = m.Score
	}
	return out
}

func TestRank_KeywordCaseInsensitive(t *testing.T) {
	entries := []Entry{{ID: "folate", Keywords: []string{"Folic"}, Question: "Supplements?", Answer: "Take them."}}
	idx := NewIndex(entries)

	matches := idx.Rank("FOLIC acid")
	require.Len(t, matches, 1)
	assert.Equal(t, 3, matches[0].Score)
	assert.Equal(t, []string{"Folic"}, entries[0].Keywords)
}
