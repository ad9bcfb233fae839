package knowledge

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Store is an in-memory lexical knowledge base. Entries are indexed by
// token set at insert time and scored against queries by Dice coefficient
// over token overlap.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	tokens  [][]string // tokenized questions, parallel to entries
}

func NewStore(entries []Entry) *Store {
	s := &Store{}
	for _, e := range entries {
		s.add(e)
	}
	return s
}

func (s *Store) add(e Entry) {
	s.entries = append(s.entries, e)
	s.tokens = append(s.tokens, tokenize(e.Question+" "+strings.Join(e.Topics, " ")))
}

// Add inserts an entry into the store.
func (s *Store) Add(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(e)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Search finds the entries most similar to query, sorted by score
// descending. Results below minScore are dropped and at most topK are
// returned.
func (s *Store) Search(query string, topK int, minScore float64) []SearchResult {
	qt := tokenize(query)
	if len(qt) == 0 || topK <= 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]SearchResult, 0, len(s.entries))
	for i, e := range s.entries {
		score := overlap(qt, s.tokens[i])
		if score < minScore {
			continue
		}
		results = append(results, SearchResult{Entry: e, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Entry.ID < results[j].Entry.ID
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// stopwords excluded from similarity so that filler does not inflate scores.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "can": {}, "do": {}, "does": {},
	"for": {}, "how": {}, "i": {}, "in": {}, "is": {}, "it": {}, "my": {},
	"of": {}, "on": {}, "or": {}, "should": {}, "the": {}, "to": {},
	"what": {}, "whats": {}, "when": {}, "why": {}, "you": {},
}

func tokenize(text string) []string {
	parts := nonWord.Split(strings.ToLower(text), -1)
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, stop := stopwords[p]; stop {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// overlap computes the Dice coefficient between two token sets.
func overlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	common := 0
	for _, t := range b {
		if _, ok := set[t]; ok {
			common++
		}
	}
	return 2 * float64(common) / float64(len(a)+len(b))
}
