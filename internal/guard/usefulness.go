package guard

import (
	"regexp"
	"strings"

	"finance-assistant/config"
	"finance-assistant/internal/intent"
	"finance-assistant/internal/model"
)

// Complexity buckets a query for threshold selection.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// analyticalIntents are the intents whose answers need real synthesis; they
// raise the complexity floor to medium.
var analyticalIntents = map[intent.Intent]bool{
	intent.IntentGetSpendingSummary: true,
	intent.IntentGetGoalProgress:    true,
}

// ComplexityFor derives query complexity from word count and intent type.
func ComplexityFor(question string, in intent.Intent) Complexity {
	words := len(strings.Fields(question))
	switch {
	case words > 14:
		return ComplexityHigh
	case words > 6 || analyticalIntents[in]:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}

// Scorer computes usefulness scores against configured minimums.
type Scorer struct {
	cfg config.UsefulnessConfig
}

func NewScorer(cfg config.UsefulnessConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// MinScore returns the passing threshold for a complexity bucket.
func (s *Scorer) MinScore(c Complexity) float64 {
	switch c {
	case ComplexityHigh:
		return s.cfg.MinHigh
	case ComplexityMedium:
		return s.cfg.MinMedium
	default:
		return s.cfg.MinLow
	}
}

var numberPattern = regexp.MustCompile(`[$€£]\s?\d|\d+(\.\d+)?\s?%|\b\d{2,}\b`)

// Usefulness scores how well a message addresses the question: keyword
// overlap (up to 0.5), concrete or actionable content (up to 0.25), and a
// length heuristic (up to 0.25).
func (s *Scorer) Usefulness(question, message string, hasActions bool) float64 {
	if strings.TrimSpace(message) == "" {
		return 0
	}

	score := 0.5 * overlapShare(tokenSet(question), tokenSet(message))

	if hasActions || numberPattern.MatchString(message) {
		score += 0.25
	}

	const idealLength = 80.0
	length := float64(len(message))
	if length > idealLength {
		length = idealLength
	}
	score += 0.25 * (length / idealLength)

	if score > 1 {
		score = 1
	}
	return score
}

// Verdict is one usefulness evaluation.
type Verdict struct {
	Score      float64
	MinScore   float64
	Complexity Complexity
	Pass       bool
}

// Evaluate scores a response against the question it should answer.
func (s *Scorer) Evaluate(question string, in intent.Intent, resp *model.ChatResponse) Verdict {
	c := ComplexityFor(question, in)
	min := s.MinScore(c)
	score := s.Usefulness(question, resp.Message+" "+resp.Details, len(resp.Actions) > 0)
	return Verdict{Score: score, MinScore: min, Complexity: c, Pass: score >= min}
}

// OnTopic reports whether the message shares at least one non-trivial token
// with the question. Single-token questions are always considered on topic.
func OnTopic(question, message string) bool {
	qt := tokenSet(question)
	if len(qt) == 0 {
		return true
	}
	mt := tokenSet(message)
	for tok := range qt {
		if mt[tok] {
			return true
		}
	}
	return false
}

var wordSplit = regexp.MustCompile(`[^a-z0-9]+`)

// trivial tokens carry no topical signal.
var trivial = map[string]bool{
	"a": true, "about": true, "an": true, "and": true, "are": true, "be": true,
	"can": true, "do": true, "does": true, "for": true, "have": true, "how": true,
	"i": true, "in": true, "is": true, "it": true, "me": true, "my": true,
	"of": true, "on": true, "or": true, "s": true, "should": true, "tell": true,
	"the": true, "to": true, "what": true, "whats": true, "when": true,
	"which": true, "why": true, "you": true, "your": true,
}

func tokenSet(text string) map[string]bool {
	out := make(map[string]bool)
	for _, tok := range wordSplit.Split(strings.ToLower(text), -1) {
		if tok == "" || trivial[tok] {
			continue
		}
		out[tok] = true
	}
	return out
}

// overlapShare is the fraction of question tokens present in the message.
func overlapShare(question, message map[string]bool) float64 {
	if len(question) == 0 {
		return 0
	}
	hit := 0
	for tok := range question {
		if message[tok] {
			hit++
		}
	}
	return float64(hit) / float64(len(question))
}
