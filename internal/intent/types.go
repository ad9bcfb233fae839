package intent

import "time"

// Intent is the closed set of recognized user goals.
type Intent string

const (
	IntentGetBudgetStatus    Intent = "GET_BUDGET_STATUS"
	IntentGetSpendingSummary Intent = "GET_SPENDING_SUMMARY"
	IntentGetGoalProgress    Intent = "GET_GOAL_PROGRESS"
	IntentGetBalance         Intent = "GET_BALANCE"
	IntentGetRecurring       Intent = "GET_RECURRING"
	IntentGetTransactions    Intent = "GET_TRANSACTIONS"
	IntentCreateBudget       Intent = "CREATE_BUDGET"
	IntentSimpleQA           Intent = "SIMPLE_QA"
	IntentUnknown            Intent = "UNKNOWN"
)

// ConfidenceLevel buckets a calibrated probability.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// IntentScore is one intent's score for an utterance.
type IntentScore struct {
	Intent     Intent
	Raw        float64
	Calibrated float64 // in [0,1]
	Confidence ConfidenceLevel
}

// RouteType classifies how a request will be answered.
type RouteType string

const (
	RouteGrounded RouteType = "grounded"
	RouteLLM      RouteType = "llm"
	RouteUnknown  RouteType = "unknown"
)

// ShadowRoute carries the second-best intent's would-be answer, attached for
// offline misroute analysis only.
type ShadowRoute struct {
	AlternativeIntent   Intent
	AlternativeResponse string
	Delta               float64 // primary calibrated minus alternative calibrated
}

// RouteDecision is the immutable routing outcome for one request.
type RouteDecision struct {
	Primary   IntentScore
	Secondary []IntentScore
	RouteType RouteType
	Shadow    *ShadowRoute
}

// Context is the data-availability context that boosts intent scores.
type Context struct {
	HasBudgets      bool
	HasGoals        bool
	HasTransactions bool
	HasBalances     bool
	HasRecurring    bool
}

// Sample is one hysteresis observation.
type Sample struct {
	At         time.Time
	Calibrated float64
}

// History is the bounded ring buffer of recent confidence samples used only
// for hysteresis. One History belongs to one conversation.
type History struct {
	cap            int
	samples        []Sample
	lastDecisionAt time.Time
	lastIntent     Intent
}

// NewHistory creates a History bounded to capacity entries.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 10
	}
	return &History{cap: capacity}
}

// Record appends a sample, evicting the oldest beyond capacity, and marks the
// decision time.
func (h *History) Record(s Sample, intent Intent) {
	h.samples = append(h.samples, s)
	if len(h.samples) > h.cap {
		h.samples = h.samples[len(h.samples)-h.cap:]
	}
	h.lastDecisionAt = s.At
	h.lastIntent = intent
}

// LastDecisionAt returns when the previous route decision was made.
func (h *History) LastDecisionAt() time.Time {
	return h.lastDecisionAt
}

// LastIntent returns the previously routed intent.
func (h *History) LastIntent() Intent {
	return h.lastIntent
}

// RecentWithin returns the samples whose timestamps fall inside the window
// ending at now.
func (h *History) RecentWithin(window time.Duration, now time.Time) []Sample {
	var out []Sample
	for _, s := range h.samples {
		if now.Sub(s.At) <= window {
			out = append(out, s)
		}
	}
	return out
}
