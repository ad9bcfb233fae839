package analytics

import (
	"context"

	"finance-assistant/internal/intent"
	"finance-assistant/internal/model"
	"finance-assistant/pkg/log"
)

// Emitter ships engine telemetry to the external collector. Every method is
// fire-and-forget: implementations must never fail the request path.
type Emitter interface {
	RouteDecision(ctx context.Context, conversationID string, d intent.RouteDecision)
	FallbackUsed(ctx context.Context, conversationID, stage, reason string)
	CostSummary(ctx context.Context, conversationID string, cost model.Cost, cacheHit bool)
	UserOutcome(ctx context.Context, conversationID string, expected, actual intent.Intent)
}

type logEmitter struct {
	l log.Logger
}

// NewLogEmitter returns an Emitter that writes structured log events; the
// log pipeline is the transport to the collector.
func NewLogEmitter(l log.Logger) Emitter {
	return &logEmitter{l: l}
}

func (e *logEmitter) RouteDecision(ctx context.Context, conversationID string, d intent.RouteDecision) {
	e.l.Info(ctx, "analytics.route_decision",
		"conversation_id", conversationID,
		"intent", string(d.Primary.Intent),
		"calibrated", d.Primary.Calibrated,
		"confidence", string(d.Primary.Confidence),
		"route_type", string(d.RouteType),
		"has_shadow", d.Shadow != nil,
	)
}

func (e *logEmitter) FallbackUsed(ctx context.Context, conversationID, stage, reason string) {
	e.l.Info(ctx, "analytics.fallback_used",
		"conversation_id", conversationID,
		"stage", stage,
		"reason", reason,
	)
}

func (e *logEmitter) CostSummary(ctx context.Context, conversationID string, cost model.Cost, cacheHit bool) {
	e.l.Info(ctx, "analytics.cost_summary",
		"conversation_id", conversationID,
		"model", string(cost.Model),
		"est_tokens", cost.EstTokens,
		"cache_hit", cacheHit,
	)
}

func (e *logEmitter) UserOutcome(ctx context.Context, conversationID string, expected, actual intent.Intent) {
	e.l.Info(ctx, "analytics.user_outcome",
		"conversation_id", conversationID,
		"expected_intent", string(expected),
		"actual_intent", string(actual),
	)
}

// Nop is an Emitter that drops everything; used in tests.
type Nop struct{}

func (Nop) RouteDecision(context.Context, string, intent.RouteDecision)       {}
func (Nop) FallbackUsed(context.Context, string, string, string)              {}
func (Nop) CostSummary(context.Context, string, model.Cost, bool)             {}
func (Nop) UserOutcome(context.Context, string, intent.Intent, intent.Intent) {}
