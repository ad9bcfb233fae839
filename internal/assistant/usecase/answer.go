package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"finance-assistant/internal/answerability"
	"finance-assistant/internal/assistant"
	"finance-assistant/internal/factpack"
	"finance-assistant/internal/fastlane"
	"finance-assistant/internal/grounding"
	"finance-assistant/internal/intent"
	"finance-assistant/internal/model"
	"finance-assistant/internal/narration"
	"finance-assistant/internal/session"
)

// Answer runs the pipeline: pending-action check, FactPack build and
// validation, answerability, routing, fast lane, grounding, narration with
// critic, usefulness guard with one escalation, and a final topicality
// check. The terminal state is always a non-nil ChatResponse.
func (uc *implUseCase) Answer(ctx context.Context, sc model.Scope, input assistant.AnswerInput) (out assistant.AnswerOutput, err error) {
	message := strings.TrimSpace(input.Context.Message)
	if message == "" {
		return assistant.AnswerOutput{}, assistant.ErrEmptyMessage
	}

	out.RequestID = uuid.NewString()

	// Outermost boundary: nothing past this point may surface a panic or an
	// empty response to the caller.
	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "answer pipeline panic: %v", r)
			out.Response = narration.ComposeGeneric()
			err = nil
		}
		if err == nil && out.Response == nil {
			out.Response = narration.ComposeGeneric()
		}
	}()

	now := uc.now()
	sess := uc.sessions.Get(sc.ConversationID)

	// Pending-action protocol: a yes/no to an earlier proposal resolves
	// before any routing happens.
	if resp := uc.resolvePending(ctx, sess, message); resp != nil {
		out.Response = resp
		out.Intent = sess.Focus(now)
		out.RouteType = intent.RouteGrounded
		return out, nil
	}

	pack := factpack.Build(factpack.Input{
		Now:          now,
		Timezone:     uc.chatCfg.Timezone,
		Profile:      input.Context.Profile,
		Balances:     input.Context.Balances,
		Budgets:      input.Context.Budgets,
		Goals:        input.Context.Goals,
		Transactions: input.Context.Transactions,
		Recurring:    input.Context.Recurring,
	})
	if mismatches := factpack.Validate(pack, now); len(mismatches) > 0 {
		// Derived-field drift is a data bug, not a user-facing failure; the
		// response is still served from the pack as built.
		uc.l.Warn(ctx, "fact pack validation failed",
			"conversation_id", sc.ConversationID, "mismatches", len(mismatches))
	}

	scores := uc.router.Score(ctx, message, intent.Context{
		HasBudgets:      len(pack.Budgets) > 0,
		HasGoals:        len(pack.Goals) > 0,
		HasTransactions: len(pack.RecentTransactions) > 0,
		HasBalances:     len(pack.Balances) > 0,
		HasRecurring:    len(pack.Recurring) > 0,
	})
	decision := uc.router.Decide(ctx, scores, sess.History(), now)

	if forced, ok := uc.topicOverride(ctx, sc, message, decision); ok {
		decision = forced
	}

	uc.emitter.RouteDecision(ctx, sc.ConversationID, decision)
	shadowCh := uc.computeShadow(ctx, decision, scores, pack, message)

	out.Intent = decision.Primary.Intent
	out.RouteType = decision.RouteType
	sess.SetFocus(decision.Primary.Intent, now)

	ans := answerability.Evaluate(decision.Primary.Intent, pack)

	resp := uc.answerRouted(ctx, sc, sess, message, decision, ans, pack, input.Context.Quota, now)
	resp = uc.checkTopicality(ctx, sc, sess, message, decision.Primary.Intent, resp, now)

	if decision.Primary.Intent == intent.IntentCreateBudget && sess.Pending() == nil {
		uc.proposeBudget(sess, message, now, resp)
	}

	out.Shadow = uc.joinShadow(shadowCh)
	out.Response = resp
	uc.emitter.CostSummary(ctx, sc.ConversationID, resp.Cost, hasSource(resp, model.SourceCache))
	return out, nil
}

// answerRouted picks the lane for a routed request and always returns a
// response.
func (uc *implUseCase) answerRouted(
	ctx context.Context,
	sc model.Scope,
	sess *session.Session,
	message string,
	decision intent.RouteDecision,
	ans answerability.Result,
	pack *factpack.FactPack,
	quota model.QuotaSnapshot,
	now time.Time,
) *model.ChatResponse {
	laneReq := &fastlane.Request{
		Message: message,
		Locale:  sc.Locale,
		Intent:  decision.Primary.Intent,
		Session: sess,
		Now:     now,
		// The model step only serves questions that do not need the user's
		// data. Gating on the intent rather than the route outcome keeps the
		// model away from personal-data questions even when the data is
		// missing; those degrade to the actionable ask below.
		AllowModel: !intent.Groundable(decision.Primary.Intent),
	}
	if laneRes := uc.lane.Answer(ctx, laneReq); laneRes != nil {
		uc.l.Debug(ctx, "fast lane hit", "strategy", laneRes.Strategy)
		return laneRes.Response
	}

	// Grounded data questions continue to the fact path; everything else
	// that the fast lane could not answer degrades to the actionable ask.
	if decision.RouteType == intent.RouteUnknown || !intent.Groundable(decision.Primary.Intent) {
		uc.emitter.FallbackUsed(ctx, sc.ConversationID, "fastlane", "no useful answer")
		if len(ans.Missing) > 0 {
			return narration.ComposeAsk(ans.Missing)
		}
		return narration.ComposeGeneric()
	}

	if !ans.Answerable() {
		uc.emitter.FallbackUsed(ctx, sc.ConversationID, "answerability", ans.Reason)
		return narration.ComposeAsk(ans.Missing)
	}

	ground := grounding.Ground(decision.Primary.Intent, pack, message)
	if ground == nil {
		uc.emitter.FallbackUsed(ctx, sc.ConversationID, "grounding", "insufficient facts")
		return narration.ComposeAsk(ans.Missing)
	}

	return uc.narrateGuarded(ctx, sc, message, decision, ground, ans, quota)
}

// narrateGuarded runs narration, critic, the usefulness guard, and at most
// one escalation to the top tier.
func (uc *implUseCase) narrateGuarded(
	ctx context.Context,
	sc model.Scope,
	message string,
	decision intent.RouteDecision,
	ground *grounding.Result,
	ans answerability.Result,
	quota model.QuotaSnapshot,
) *model.ChatResponse {
	in := decision.Primary.Intent
	tier := narration.SelectTier(in, decision.Primary.Calibrated, quota, false)

	resp := uc.narrateOnce(ctx, sc, message, ground, tier)
	if resp != nil {
		if verdict := uc.scorer.Evaluate(message, in, resp); verdict.Pass {
			return resp
		}
	}

	// One escalation to the top tier, then degrade.
	topTier := narration.SelectTier(in, decision.Primary.Calibrated, quota, true)
	if topTier != tier {
		uc.emitter.FallbackUsed(ctx, sc.ConversationID, "guard", "escalating narration tier")
		if escalated := uc.narrateOnce(ctx, sc, message, ground, topTier); escalated != nil {
			if verdict := uc.scorer.Evaluate(message, in, escalated); verdict.Pass {
				return escalated
			}
		}
	}

	uc.emitter.FallbackUsed(ctx, sc.ConversationID, "guard", "degrading to facts")
	if len(ans.Missing) > 0 {
		return narration.ComposeAsk(ans.Missing)
	}
	return narration.Compose(ground.Fact)
}

// narrateOnce generates one narration at the given tier and runs the critic.
// Returns nil when the model call fails or the critic rejects the text; the
// caller decides whether to escalate or fall back to templates.
func (uc *implUseCase) narrateOnce(ctx context.Context, sc model.Scope, message string, ground *grounding.Result, tier model.ModelTier) *model.ChatResponse {
	text, usage, err := uc.narrator.Narrate(ctx, message, ground.Fact, tier)
	if err != nil {
		uc.l.Warnf(ctx, "narration failed on tier %s: %v", tier, err)
		uc.emitter.FallbackUsed(ctx, sc.ConversationID, "narration", err.Error())
		return nil
	}

	review := uc.critic.Review(ground.Fact, text)
	if !review.OK {
		uc.l.Warn(ctx, "critic rejected narration", "tier", string(tier), "issues", strings.Join(review.Issues, "; "))
		uc.emitter.FallbackUsed(ctx, sc.ConversationID, "critic", strings.Join(review.Issues, "; "))
		return nil
	}

	tokens := 0
	if usage != nil {
		tokens = usage.TotalTokens
	}

	// Template compose carries the cards and actions; narration replaces
	// only the prose.
	resp := narration.Compose(ground.Fact)
	resp.Message = review.Text
	resp.Sources = append(resp.Sources, model.Source{Kind: model.SourceGPT, Note: "narration"})
	resp.Cost = model.Cost{Model: tier, EstTokens: tokens}
	resp.Confidence = ground.Confidence
	return resp
}

// Feedback applies one labeled routing outcome to the calibrator.
func (uc *implUseCase) Feedback(ctx context.Context, sc model.Scope, input assistant.FeedbackInput) error {
	expected, ok := parseIntent(input.ExpectedIntent)
	if !ok {
		return assistant.ErrUnknownIntent
	}
	actual, ok := parseIntent(input.ActualIntent)
	if !ok {
		return assistant.ErrUnknownIntent
	}

	uc.cal.ApplyFeedback(intent.Feedback{ExpectedIntent: expected, ActualIntent: actual})
	uc.emitter.UserOutcome(ctx, sc.ConversationID, expected, actual)
	uc.l.Info(ctx, "calibration feedback applied",
		"expected", string(expected), "actual", string(actual), "temperature", uc.cal.Temperature())
	return nil
}

var knownIntents = map[string]intent.Intent{
	string(intent.IntentGetBudgetStatus):    intent.IntentGetBudgetStatus,
	string(intent.IntentGetSpendingSummary): intent.IntentGetSpendingSummary,
	string(intent.IntentGetGoalProgress):    intent.IntentGetGoalProgress,
	string(intent.IntentGetBalance):         intent.IntentGetBalance,
	string(intent.IntentGetRecurring):       intent.IntentGetRecurring,
	string(intent.IntentGetTransactions):    intent.IntentGetTransactions,
	string(intent.IntentCreateBudget):       intent.IntentCreateBudget,
	string(intent.IntentSimpleQA):           intent.IntentSimpleQA,
	string(intent.IntentUnknown):            intent.IntentUnknown,
}

func parseIntent(name string) (intent.Intent, bool) {
	in, ok := knownIntents[strings.ToUpper(strings.TrimSpace(name))]
	return in, ok
}

func hasSource(resp *model.ChatResponse, kind model.SourceKind) bool {
	for _, s := range resp.Sources {
		if s.Kind == kind {
			return true
		}
	}
	return false
}
