package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"finance-assistant/internal/model"
	"finance-assistant/internal/session"
)

var (
	affirmativePattern = regexp.MustCompile(`(?i)^\s*(yes|yeah|yep|sure|ok(ay)?|do it|please do|go ahead|confirm)\b`)
	negativePattern    = regexp.MustCompile(`(?i)^\s*(no|nope|nah|cancel|don'?t|never\s?mind|stop)\b`)
)

// resolvePending consumes a pending action when the message is a plain
// yes/no. Any other message leaves the pending action in place and returns
// nil so normal routing proceeds.
func (uc *implUseCase) resolvePending(ctx context.Context, sess *session.Session, message string) *model.ChatResponse {
	pending := sess.Pending()
	if pending == nil {
		return nil
	}

	switch {
	case affirmativePattern.MatchString(message):
		p := sess.TakePending()
		uc.l.Info(ctx, "pending action confirmed", "action_id", p.ID, "kind", p.Kind)
		return &model.ChatResponse{
			Message: "Okay, tap the button below to finish setting that up.",
			Actions: []model.Action{{ID: actionForKind(p.Kind), Label: "Open", Params: p.Params}},
			Sources: []model.Source{{Kind: model.SourceDB, Note: "confirmed action"}},
			Cost:    model.Cost{Model: model.TierMini, EstTokens: 0},
		}
	case negativePattern.MatchString(message):
		p := sess.TakePending()
		uc.l.Info(ctx, "pending action discarded", "action_id", p.ID, "kind", p.Kind)
		return &model.ChatResponse{
			Message: "No problem, I've dropped that. Anything else?",
			Sources: []model.Source{{Kind: model.SourceDB, Note: "discarded action"}},
			Cost:    model.Cost{Model: model.TierMini, EstTokens: 0},
		}
	default:
		return nil
	}
}

// proposeBudget registers a create-budget pending action and rewrites the
// response into a consent question.
func (uc *implUseCase) proposeBudget(sess *session.Session, message string, now time.Time, resp *model.ChatResponse) {
	params := map[string]string{}
	if name := extractBudgetName(message); name != "" {
		params["name"] = name
	}
	sess.SetPending(&session.PendingAction{
		ID:        uuid.NewString(),
		Kind:      "create_budget",
		Params:    params,
		CreatedAt: now,
	})

	question := "Want me to set that budget up for you? Just say yes."
	if name := params["name"]; name != "" {
		question = fmt.Sprintf("Want me to set up a %s budget for you? Just say yes.", name)
	}
	resp.Details = question
}

var budgetNamePattern = regexp.MustCompile(`(?i)budget\s+for\s+([a-z ]{2,30})`)

// filler words that trail the actual budget name in polite phrasing.
var budgetNameFiller = map[string]bool{"please": true, "thanks": true, "now": true}

func extractBudgetName(message string) string {
	m := budgetNamePattern.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	words := strings.Fields(strings.ToLower(m[1]))
	for len(words) > 0 && budgetNameFiller[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func actionForKind(kind string) model.ActionID {
	switch kind {
	case "create_budget":
		return model.ActionCreateBudget
	case "create_goal":
		return model.ActionOpenGoalWizard
	default:
		return model.ActionOpenBudgets
	}
}
