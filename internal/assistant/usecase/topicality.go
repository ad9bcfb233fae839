package usecase

import (
	"context"
	"strings"
	"time"

	"finance-assistant/internal/fastlane"
	"finance-assistant/internal/guard"
	"finance-assistant/internal/intent"
	"finance-assistant/internal/model"
	"finance-assistant/internal/session"
)

// investingTerms mark questions that must never be answered with the user's
// budget data, even when budget words also appear in the message.
var investingTerms = []string{
	"invest", "investing", "investment", "stocks", "stock market",
	"index fund", "etf", "crypto", "bitcoin", "bonds", "portfolio",
}

func mentionsInvesting(message string) bool {
	msg := strings.ToLower(message)
	for _, term := range investingTerms {
		if strings.Contains(msg, term) {
			return true
		}
	}
	return false
}

// topicOverride forces the general-question lane when a grounded route was
// chosen for a message that is really about investing. Misroutes like this
// otherwise survive the topicality check because budget words in the message
// overlap with the budget answer.
func (uc *implUseCase) topicOverride(ctx context.Context, sc model.Scope, message string, decision intent.RouteDecision) (intent.RouteDecision, bool) {
	if decision.Primary.Intent == intent.IntentSimpleQA || decision.Primary.Intent == intent.IntentUnknown {
		return decision, false
	}
	if !mentionsInvesting(message) {
		return decision, false
	}

	uc.l.Info(ctx, "topic override to general lane",
		"conversation_id", sc.ConversationID, "from_intent", string(decision.Primary.Intent))
	uc.emitter.FallbackUsed(ctx, sc.ConversationID, "router", "topic override: investing")

	forced := decision
	forced.Primary = intent.IntentScore{
		Intent:     intent.IntentSimpleQA,
		Raw:        decision.Primary.Raw,
		Calibrated: decision.Primary.Calibrated,
		Confidence: decision.Primary.Confidence,
	}
	forced.RouteType = intent.RouteLLM
	return forced, true
}

// checkTopicality is the final gate: a response that shares no non-trivial
// token with the question gets one rescue attempt through the mini-model
// lane; failing that, the original response stands. The rescue honors the
// same model gate as the fast lane, so personal-data questions are never
// rescued by the model either.
func (uc *implUseCase) checkTopicality(ctx context.Context, sc model.Scope, sess *session.Session, message string, routed intent.Intent, resp *model.ChatResponse, now time.Time) *model.ChatResponse {
	if guard.OnTopic(message, resp.Message) {
		return resp
	}

	uc.emitter.FallbackUsed(ctx, sc.ConversationID, "topicality", "off-topic response, attempting rescue")

	rescued, err := uc.rescue.Try(ctx, &fastlane.Request{
		Message:    message,
		Locale:     sc.Locale,
		Intent:     intent.IntentSimpleQA,
		Session:    sess,
		Now:        now,
		AllowModel: !intent.Groundable(routed),
	})
	if err != nil || rescued == nil || !guard.OnTopic(message, rescued.Message) {
		uc.l.Warn(ctx, "topicality rescue failed, keeping original response",
			"conversation_id", sc.ConversationID)
		return resp
	}
	return rescued
}
