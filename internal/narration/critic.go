package narration

import (
	"regexp"
	"strings"

	"finance-assistant/internal/grounding"
)

// Review is the critic's verdict on one narration.
type Review struct {
	OK     bool
	Text   string
	Issues []string
}

const minNarrationLength = 20

// bannedPatterns reject investment directives, guarantees, and medical or
// legal style claims. Matched case-insensitively against the narration.
var bannedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)guarantee[ds]?\s+(a\s+)?returns?`),
	regexp.MustCompile(`(?i)\bguaranteed\b`),
	regexp.MustCompile(`(?i)\brisk[- ]free\b`),
	regexp.MustCompile(`(?i)\bcan'?t\s+lose\b`),
	regexp.MustCompile(`(?i)you\s+(should|must|need\s+to)\s+(buy|sell|invest\s+in|short)\b`),
	regexp.MustCompile(`(?i)\b(buy|sell)\s+(this|that|the)\s+(stock|crypto|coin|fund)\b`),
	regexp.MustCompile(`(?i)\blegal\s+advice\b`),
	regexp.MustCompile(`(?i)\b(diagnos\w+|prescri\w+)\b`),
	regexp.MustCompile(`(?i)as\s+your\s+(lawyer|attorney|doctor)`),
}

// personalClaims are phrases asserting knowledge of the user's data. They are
// only acceptable when a grounded fact backs them.
var personalClaims = []string{
	"your budget", "your spending", "your balance", "your account",
	"your goal", "your transactions", "your subscriptions", "you spent", "you saved",
}

// Critic is the rule-based gate between narration and the user.
type Critic struct{}

func NewCritic() *Critic {
	return &Critic{}
}

// Review validates a narration against the fact it was generated from.
// It never modifies the text; a rejection routes the caller to the template
// fallback or escalation.
func (c *Critic) Review(fact grounding.Fact, text string) Review {
	var issues []string

	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minNarrationLength {
		issues = append(issues, "narration too short")
	}

	for _, p := range bannedPatterns {
		if p.MatchString(trimmed) {
			issues = append(issues, "forbidden content: "+p.String())
		}
	}

	if fact == nil {
		lower := strings.ToLower(trimmed)
		for _, claim := range personalClaims {
			if strings.Contains(lower, claim) {
				issues = append(issues, "personalized claim without grounding: "+claim)
				break
			}
		}
	}

	return Review{OK: len(issues) == 0, Text: trimmed, Issues: issues}
}
