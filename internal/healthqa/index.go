package healthqa

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	MaxResults = 3

	minTokenLen = 3

	keywordWeight  = 3
	questionWeight = 2
	answerWeight   = 1
)

//go:embed entries.yaml
var defaultEntriesYAML []byte

type entriesFile struct {
	Version int     `yaml:"version"`
	Entries []Entry `yaml:"entries"`
}

func LoadEntries(r io.Reader) ([]Entry, error) {
	var f entriesFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode health q&a catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Entries))
	for i, e := range f.Entries {
		if e.ID == "" {
			return nil, fmt.Errorf("entry at index %d has no id", i)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("duplicate entry id %q", e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return f.Entries, nil
}

func DefaultEntries() ([]Entry, error) {
	return LoadEntries(bytes.NewReader(defaultEntriesYAML))
}

type indexedEntry struct {
	entry    Entry
	keywords []string
	question string
	answer   string
}

// Index scores a fixed catalog against free-text queries. It is read-only
// after construction and safe for concurrent use.
type Index struct {
	entries []indexedEntry
}

func NewIndex(entries []Entry) *Index {
	idx := &Index{entries: make([]indexedEntry, len(entries))}
	for i, e := range entries {
		e.Keywords = append([]string(nil), e.Keywords...)
		keywords := make([]string, len(e.Keywords))
		for j, k := range e.Keywords {
			keywords[j] = strings.ToLower(k)
		}
		idx.entries[i] = indexedEntry{
			entry:    e,
			keywords: keywords,
			question: strings.ToLower(e.Question),
			answer:   strings.ToLower(e.Answer),
		}
	}
	return idx
}

func (idx *Index) Len() int {
	return len(idx.entries)
}

func (idx *Index) Get(id string) (Entry, bool) {
	for _, ie := range idx.entries {
		if ie.entry.ID == id {
			return ie.entry, true
		}
	}
	return Entry{}, false
}

// Search returns at most MaxResults entries, best first.
func (idx *Index) Search(query string) []Entry {
	matches := idx.Rank(query)
	if len(matches) > MaxResults {
		matches = matches[:MaxResults]
	}

	results := make([]Entry, len(matches))
	for i, m := range matches {
		results[i] = m.Entry
	}
	return results
}

// Rank scores every entry and returns those with a positive score in
// descending score order. Equal scores keep catalog order.
func (idx *Index) Rank(query string) []Match {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return []Match{}
	}

	matches := make([]Match, 0, len(idx.entries))
	for _, ie := range idx.entries {
		if score := ie.score(terms); score > 0 {
			matches = append(matches, Match{Entry: ie.entry, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Tokenize lowercases the query, splits on whitespace and drops tokens of
// two characters or fewer.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenLen {
			terms = append(terms, f)
		}
	}
	return terms
}

func (ie indexedEntry) score(terms []string) int {
	score := 0
	for _, term := range terms {
		for _, kw := range ie.keywords {
			if strings.Contains(kw, term) || strings.Contains(term, kw) {
				score += keywordWeight
				break
			}
		}
		if strings.Contains(ie.question, term) {
			score += questionWeight
		}
		if strings.Contains(ie.answer, term) {
			score += answerWeight
		}
	}
	return score
}
