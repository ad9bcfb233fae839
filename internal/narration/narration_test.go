package narration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"finance-assistant/internal/factpack"
	"finance-assistant/internal/grounding"
	"finance-assistant/internal/intent"
	"finance-assistant/internal/model"
	"finance-assistant/pkg/llmprovider"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, arg ...any)                    {}
func (nopLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Info(ctx context.Context, arg ...any)                     {}
func (nopLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Warn(ctx context.Context, arg ...any)                     {}
func (nopLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Error(ctx context.Context, arg ...any)                    {}
func (nopLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (nopLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (nopLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (nopLogger) Panic(ctx context.Context, arg ...any)                    {}
func (nopLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func budgetFact() grounding.BudgetFact {
	return grounding.BudgetFact{
		Budgets: []factpack.BudgetSnapshot{
			{Name: "Groceries", Spent: 200, Limit: 400, Remaining: 200, Utilization: 50, Status: factpack.BudgetUnder},
		},
		TotalSpent: 200,
		TotalLimit: 400,
		Period:     "August 2026",
	}
}

func TestSelectTier(t *testing.T) {
	quota := model.QuotaSnapshot{}
	exhausted := model.QuotaSnapshot{PremiumCallsUsed: 10, PremiumCallsLimit: 10}

	tests := []struct {
		name       string
		intent     intent.Intent
		calibrated float64
		quota      model.QuotaSnapshot
		escalated  bool
		want       model.ModelTier
	}{
		{"simple lookup on mini", intent.IntentGetBalance, 0.8, quota, false, model.TierMini},
		{"analytical intent on std", intent.IntentGetSpendingSummary, 0.8, quota, false, model.TierStd},
		{"low confidence on std", intent.IntentGetBalance, 0.35, quota, false, model.TierStd},
		{"escalation forces pro", intent.IntentGetBalance, 0.8, quota, true, model.TierPro},
		{"exhausted quota caps pro at std", intent.IntentGetBalance, 0.8, exhausted, true, model.TierStd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectTier(tt.intent, tt.calibrated, tt.quota, tt.escalated)
			if got != tt.want {
				t.Errorf("SelectTier = %s, want %s", got, tt.want)
			}
		})
	}
}

type scriptedProvider struct {
	text string
	err  error
}

func (p *scriptedProvider) GenerateContent(context.Context, *llmprovider.Request) (*llmprovider.Response, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &llmprovider.Response{
		Content: llmprovider.Message{Role: "assistant", Parts: []llmprovider.Part{{Text: p.text}}},
		Usage:   &llmprovider.Usage{TotalTokens: 42},
	}, nil
}
func (p *scriptedProvider) Name() string  { return "scripted" }
func (p *scriptedProvider) Model() string { return "test-model" }

func testManager(p llmprovider.Provider) *llmprovider.Manager {
	return llmprovider.NewManager(
		map[llmprovider.Tier][]llmprovider.Provider{llmprovider.TierMini: {p}},
		&llmprovider.Config{FallbackEnabled: true, RetryAttempts: 1},
		nopLogger{},
	)
}

func TestNarrate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns trimmed narration", func(t *testing.T) {
		n := NewNarrator(testManager(&scriptedProvider{text: "  You have $200 left in Groceries.  "}), nopLogger{})
		text, usage, err := n.Narrate(ctx, "budget status?", budgetFact(), model.TierMini)
		if err != nil {
			t.Fatalf("Narrate error: %v", err)
		}
		if text != "You have $200 left in Groceries." {
			t.Errorf("text = %q", text)
		}
		if usage == nil || usage.TotalTokens != 42 {
			t.Errorf("usage = %+v, want 42 tokens", usage)
		}
	})

	t.Run("provider failure is an error", func(t *testing.T) {
		n := NewNarrator(testManager(&scriptedProvider{err: errors.New("down")}), nopLogger{})
		if _, _, err := n.Narrate(ctx, "budget status?", budgetFact(), model.TierMini); err == nil {
			t.Error("want error")
		}
	})

	t.Run("empty narration is an error", func(t *testing.T) {
		n := NewNarrator(testManager(&scriptedProvider{text: "   "}), nopLogger{})
		if _, _, err := n.Narrate(ctx, "budget status?", budgetFact(), model.TierMini); err == nil {
			t.Error("want error")
		}
	})
}

func TestFactSummary(t *testing.T) {
	t.Run("budget fact lists amounts", func(t *testing.T) {
		s := FactSummary(budgetFact())
		for _, want := range []string{"Groceries", "$200.00", "$400.00", "50%"} {
			if !strings.Contains(s, want) {
				t.Errorf("summary missing %q:\n%s", want, s)
			}
		}
	})

	t.Run("nil fact renders placeholder", func(t *testing.T) {
		if s := FactSummary(nil); !strings.Contains(s, "no personal data") {
			t.Errorf("summary = %q", s)
		}
	})
}

func TestCritic(t *testing.T) {
	c := NewCritic()
	fact := budgetFact()

	t.Run("clean narration passes", func(t *testing.T) {
		r := c.Review(fact, "You have $200.00 remaining in your Groceries budget this month.")
		if !r.OK {
			t.Errorf("Review = %+v, want OK", r)
		}
	})

	t.Run("guaranteed return is rejected", func(t *testing.T) {
		r := c.Review(fact, "Move it into this fund for a guaranteed return of 12% a year.")
		if r.OK {
			t.Error("want rejection")
		}
		if len(r.Issues) == 0 {
			t.Error("want issues listed")
		}
	})

	t.Run("investment directive is rejected", func(t *testing.T) {
		if r := c.Review(fact, "With that surplus you should buy tech stocks right now."); r.OK {
			t.Error("want rejection")
		}
	})

	t.Run("too short is rejected", func(t *testing.T) {
		if r := c.Review(fact, "OK."); r.OK {
			t.Error("want rejection")
		}
	})

	t.Run("personal claim without facts is rejected", func(t *testing.T) {
		r := c.Review(nil, "Your budget shows you spent $500 on dining last week alone.")
		if r.OK {
			t.Error("want rejection")
		}
	})

	t.Run("personal claim with facts is fine", func(t *testing.T) {
		r := c.Review(fact, "Your budget for Groceries has $200.00 remaining this month.")
		if !r.OK {
			t.Errorf("Review = %+v, want OK", r)
		}
	})
}

func TestCompose(t *testing.T) {
	t.Run("budget template mentions remaining", func(t *testing.T) {
		resp := Compose(budgetFact())
		if !strings.Contains(resp.Message, "$200.00") {
			t.Errorf("message %q, want $200.00 mentioned", resp.Message)
		}
		if resp.Sources[0].Kind != model.SourceDB {
			t.Errorf("source = %s, want db", resp.Sources[0].Kind)
		}
		if len(resp.Cards) != 1 {
			t.Errorf("cards = %d, want 1", len(resp.Cards))
		}
	})

	t.Run("nil fact degrades to generic", func(t *testing.T) {
		resp := Compose(nil)
		if resp == nil || resp.Message == "" {
			t.Fatal("generic compose must always produce a message")
		}
	})

	t.Run("ask enumerates missing data", func(t *testing.T) {
		resp := ComposeAsk([]string{"monthly income", "transactions"})
		if !strings.Contains(resp.Message, "monthly income") {
			t.Errorf("message %q, want missing items named", resp.Message)
		}
		var hasIncome bool
		for _, a := range resp.Actions {
			if a.ID == model.ActionOpenIncomeForm {
				hasIncome = true
			}
		}
		if !hasIncome {
			t.Errorf("actions %v, want OPEN_INCOME_FORM", resp.Actions)
		}
	})
}
