package fastlane

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"finance-assistant/internal/model"
)

// SolverStrategy answers deterministic formula questions matched by regex.
// It is the cheapest lane step: no model call, no lookup.
type SolverStrategy struct{}

func NewSolverStrategy() *SolverStrategy {
	return &SolverStrategy{}
}

func (s *SolverStrategy) Name() string { return "solver" }

var (
	// "interest on $1000 at 5%" / "how much interest would 2500 earn at 4.5 percent"
	interestPattern = regexp.MustCompile(`(?i)interest\b.*?[$€£]?\s?(\d+(?:[.,]\d+)?)\b.*?(\d+(?:\.\d+)?)\s?(?:%|percent)`)
	// "what is 20% of 350" / "15 percent of $90"
	percentOfPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s?(?:%|percent)\s+of\s+[$€£]?\s?(\d+(?:[.,]\d+)?)`)
	// "how long to save $5000 at 250 per month"
	saveTimePattern = regexp.MustCompile(`(?i)(?:save|saving)\b.*?[$€£]?\s?(\d+(?:[.,]\d+)?)\b.*?[$€£]?\s?(\d+(?:[.,]\d+)?)\s?(?:per month|a month|monthly|/month)`)
)

func (s *SolverStrategy) Try(_ context.Context, req *Request) (*model.ChatResponse, error) {
	pattern, answer := s.solve(req.Message)
	if pattern == "" {
		return nil, nil
	}

	key := "solver:" + pattern
	if req.Session != nil {
		if req.Session.RecentlyAnswered(key, req.Now) && frustrated(req.Message) {
			return nil, nil
		}
		req.Session.MarkAnswered(key, req.Now)
	}

	return &model.ChatResponse{
		Message: answer,
		Sources: []model.Source{{Kind: model.SourceLocalML, Note: "deterministic solver"}},
		Cost:    model.Cost{Model: model.TierMini, EstTokens: 0},
	}, nil
}

// solve returns the matched pattern name and the computed answer, or empty
// strings when no solver applies.
func (s *SolverStrategy) solve(message string) (pattern, answer string) {
	if m := interestPattern.FindStringSubmatch(message); m != nil {
		principal := parseAmount(m[1])
		rate := parseAmount(m[2])
		yearly := principal * rate / 100
		return "interest-estimate", fmt.Sprintf(
			"At %.2f%% per year, $%.2f would earn about $%.2f in interest annually (roughly $%.2f per month). Actual returns depend on compounding and the account's terms.",
			rate, principal, yearly, yearly/12)
	}

	if m := percentOfPattern.FindStringSubmatch(message); m != nil {
		pct := parseAmount(m[1])
		base := parseAmount(m[2])
		return "percent-of", fmt.Sprintf("%.2f%% of $%.2f is $%.2f.", pct, base, pct*base/100)
	}

	if m := saveTimePattern.FindStringSubmatch(message); m != nil {
		target := parseAmount(m[1])
		monthly := parseAmount(m[2])
		if monthly > 0 && target > monthly {
			months := int(math.Ceil(target / monthly))
			return "save-time", fmt.Sprintf(
				"Saving $%.2f per month, you would reach $%.2f in about %d months.",
				monthly, target, months)
		}
	}

	return "", ""
}

func parseAmount(s string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v
}
