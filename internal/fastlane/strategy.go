package fastlane

import (
	"context"
	"strings"
	"time"

	"finance-assistant/internal/guard"
	"finance-assistant/internal/intent"
	"finance-assistant/internal/model"
	"finance-assistant/internal/session"
	"finance-assistant/pkg/log"
)

// Request is one fast-lane attempt.
type Request struct {
	Message string
	Locale  string
	Intent  intent.Intent
	Session *session.Session
	Now     time.Time

	// AllowModel permits the model-backed strategy. Grounded personal-data
	// questions keep it off: those must be answered from facts, not from a
	// cheap model guessing without them.
	AllowModel bool
}

// Strategy is one cheap answer source. Try returns (nil, nil) when the
// strategy has no answer; errors are treated the same way by the lane.
type Strategy interface {
	Name() string
	Try(ctx context.Context, req *Request) (*model.ChatResponse, error)
}

// Result is a successful fast-lane answer.
type Result struct {
	Response *model.ChatResponse
	Strategy string
}

// Lane runs strategies in order and returns the first answer that clears the
// usefulness gate. Weak answers are rejected and fall through rather than
// being returned.
type Lane struct {
	strategies []Strategy
	scorer     *guard.Scorer
	l          log.Logger
}

func NewLane(scorer *guard.Scorer, l log.Logger, strategies ...Strategy) *Lane {
	return &Lane{strategies: strategies, scorer: scorer, l: l}
}

// Answer runs the cascade. Returns nil when no strategy produced a useful
// answer; the caller then proceeds to the grounded path.
func (ln *Lane) Answer(ctx context.Context, req *Request) *Result {
	minScore := ln.scorer.MinScore(guard.ComplexityFor(req.Message, req.Intent))

	for _, s := range ln.strategies {
		resp, err := s.Try(ctx, req)
		if err != nil {
			ln.l.Warnf(ctx, "fast lane strategy %s failed: %v", s.Name(), err)
			continue
		}
		if resp == nil {
			continue
		}

		score := ln.scorer.Usefulness(req.Message, resp.Message, len(resp.Actions) > 0)
		if score < minScore {
			ln.l.Debug(ctx, "fast lane answer below usefulness gate",
				"strategy", s.Name(), "score", score, "min", minScore)
			continue
		}

		return &Result{Response: resp, Strategy: s.Name()}
	}
	return nil
}

// frustrated reports whether the phrasing signals the user already got this
// answer and wants something else.
func frustrated(message string) bool {
	msg := strings.ToLower(message)
	for _, marker := range []string{"already", "you told me", "you said", "again"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
