package narration

import (
	"finance-assistant/internal/intent"
	"finance-assistant/internal/model"
	"finance-assistant/pkg/llmprovider"
)

// complexIntents need multi-fact synthesis and start one tier up.
var complexIntents = map[intent.Intent]bool{
	intent.IntentGetSpendingSummary: true,
	intent.IntentGetGoalProgress:    true,
}

// SelectTier picks the model tier for narration from intent complexity and
// calibrated routing confidence. Escalation forces the top tier. An
// exhausted premium quota caps the choice at std.
func SelectTier(in intent.Intent, calibrated float64, quota model.QuotaSnapshot, escalated bool) model.ModelTier {
	tier := model.TierMini
	switch {
	case escalated:
		tier = model.TierPro
	case complexIntents[in], calibrated < 0.4:
		tier = model.TierStd
	}

	if tier == model.TierPro && quota.PremiumExhausted() {
		tier = model.TierStd
	}
	return tier
}

// ProviderTier maps the response-facing tier onto the provider manager's.
func ProviderTier(t model.ModelTier) llmprovider.Tier {
	switch t {
	case model.TierPro:
		return llmprovider.TierPro
	case model.TierStd:
		return llmprovider.TierStd
	default:
		return llmprovider.TierMini
	}
}
