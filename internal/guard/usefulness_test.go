package guard

import (
	"testing"

	"finance-assistant/config"
	"finance-assistant/internal/intent"
	"finance-assistant/internal/model"
)

func testCfg() config.UsefulnessConfig {
	return config.UsefulnessConfig{MinLow: 0.30, MinMedium: 0.45, MinHigh: 0.60}
}

func TestComplexityFor(t *testing.T) {
	tests := []struct {
		name     string
		question string
		intent   intent.Intent
		want     Complexity
	}{
		{"short lookup", "my balance?", intent.IntentGetBalance, ComplexityLow},
		{"longer question", "how much did I spend on groceries this month overall", intent.IntentGetBudgetStatus, ComplexityMedium},
		{"analytical intent raises floor", "spending?", intent.IntentGetSpendingSummary, ComplexityMedium},
		{"long question", "can you walk me through everything I spent over the last month and tell me where I could realistically cut back", intent.IntentSimpleQA, ComplexityHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComplexityFor(tt.question, tt.intent); got != tt.want {
				t.Errorf("ComplexityFor = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUsefulness(t *testing.T) {
	s := NewScorer(testCfg())
	question := "how is my groceries budget doing"

	t.Run("relevant concrete answer scores high", func(t *testing.T) {
		msg := "Your Groceries budget has $200 remaining of the $400 limit, with 50% used halfway through the month."
		if got := s.Usefulness(question, msg, false); got < 0.6 {
			t.Errorf("Usefulness = %f, want >= 0.6", got)
		}
	})

	t.Run("vague answer scores low", func(t *testing.T) {
		msg := "Sorry, I can't help."
		if got := s.Usefulness(question, msg, false); got >= 0.3 {
			t.Errorf("Usefulness = %f, want < 0.3", got)
		}
	})

	t.Run("actions count as actionable content", func(t *testing.T) {
		msg := "You have no budget yet. Set one up to track groceries."
		withActions := s.Usefulness(question, msg, true)
		without := s.Usefulness(question, msg, false)
		if withActions <= without {
			t.Errorf("with actions %f should exceed without %f", withActions, without)
		}
	})

	t.Run("empty message scores zero", func(t *testing.T) {
		if got := s.Usefulness(question, "   ", false); got != 0 {
			t.Errorf("Usefulness = %f, want 0", got)
		}
	})

	t.Run("score bounded to one", func(t *testing.T) {
		msg := question + " groceries budget groceries budget with $123 and plenty of detail to fill out the length heuristic completely"
		if got := s.Usefulness(question, msg, true); got > 1 {
			t.Errorf("Usefulness = %f, want <= 1", got)
		}
	})
}

func TestEvaluate(t *testing.T) {
	s := NewScorer(testCfg())
	resp := &model.ChatResponse{
		Message: "Your Groceries budget has $200 remaining of the $400 limit this month.",
	}
	v := s.Evaluate("how is my groceries budget", intent.IntentGetBudgetStatus, resp)
	if !v.Pass {
		t.Errorf("verdict = %+v, want pass", v)
	}
	if v.MinScore != 0.30 {
		t.Errorf("MinScore = %f, want 0.30 for low complexity", v.MinScore)
	}
}

func TestOnTopic(t *testing.T) {
	tests := []struct {
		name     string
		question string
		message  string
		want     bool
	}{
		{"shared token", "how is my budget doing", "Your budget has $200 left.", true},
		{"no shared tokens", "should I invest in index funds", "Your Groceries spending was $200 this month.", false},
		{"trivial-only question", "what is it", "anything at all", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OnTopic(tt.question, tt.message); got != tt.want {
				t.Errorf("OnTopic = %v, want %v", got, tt.want)
			}
		})
	}
}
