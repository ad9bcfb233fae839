package knowledge

// Entry is one curated question/answer pair in the knowledge base.
type Entry struct {
	ID       string
	Question string
	Answer   string
	Topics   []string // coarse topic labels, e.g. "investing", "credit"
}

// SearchResult is one scored match.
type SearchResult struct {
	Entry Entry
	Score float64 // token-overlap similarity in [0,1]
}
