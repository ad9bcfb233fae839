package narration

import (
	"context"
	"fmt"
	"strings"

	"finance-assistant/internal/grounding"
	"finance-assistant/internal/model"
	"finance-assistant/pkg/llmprovider"
	"finance-assistant/pkg/log"
)

const narrationSystemPrompt = `You are a personal finance assistant. Write a short, warm, concrete answer (2-4 sentences) using ONLY the facts provided below. Do not invent numbers, accounts, or data that is not listed. Never give investment directives, never promise or guarantee returns, never give legal or medical advice. Mention the most important amounts explicitly with a dollar sign.`

// Narrator turns grounded facts into prose via the tiered provider manager.
type Narrator struct {
	manager *llmprovider.Manager
	l       log.Logger
}

func NewNarrator(manager *llmprovider.Manager, l log.Logger) *Narrator {
	return &Narrator{manager: manager, l: l}
}

// Narrate generates prose strictly from the grounded fact. The prompt only
// ever contains the fact slice, never the full snapshot.
func (n *Narrator) Narrate(ctx context.Context, question string, fact grounding.Fact, tier model.ModelTier) (string, *llmprovider.Usage, error) {
	prompt := fmt.Sprintf("Facts:\n%s\n\nQuestion: %s", FactSummary(fact), question)

	resp, err := n.manager.Generate(ctx, ProviderTier(tier), &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: narrationSystemPrompt}},
		},
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: prompt}}},
		},
		Temperature: 0.5,
		MaxTokens:   350,
	})
	if err != nil {
		return "", nil, err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", resp.Usage, fmt.Errorf("empty narration from %s", resp.ProviderName)
	}
	return text, resp.Usage, nil
}

// FactSummary renders a fact as compact prompt lines. Exhaustive over the
// fact union; unknown kinds render nothing.
func FactSummary(fact grounding.Fact) string {
	if fact == nil {
		return "(no personal data available)"
	}

	var b strings.Builder
	switch f := fact.(type) {
	case grounding.BudgetFact:
		fmt.Fprintf(&b, "Period: %s\n", f.Period)
		for _, bud := range f.Budgets {
			fmt.Fprintf(&b, "Budget %q: spent $%.2f of $%.2f, $%.2f remaining, %d%% used, status %s\n",
				bud.Name, bud.Spent, bud.Limit, bud.Remaining, bud.Utilization, bud.Status)
		}
		fmt.Fprintf(&b, "All budgets combined: $%.2f spent of $%.2f", f.TotalSpent, f.TotalLimit)

	case grounding.SpendingFact:
		fmt.Fprintf(&b, "Period: %s\n", f.Period)
		fmt.Fprintf(&b, "Total spent: $%.2f, daily average $%.2f\n", f.TotalSpent, f.DailyAverage)
		for _, c := range f.TopCategories {
			fmt.Fprintf(&b, "Top category %q: $%.2f\n", c.Category, c.Amount)
		}
		if f.MonthlyIncome > 0 {
			fmt.Fprintf(&b, "Monthly income: $%.2f", f.MonthlyIncome)
		}

	case grounding.GoalFact:
		for _, g := range f.Goals {
			fmt.Fprintf(&b, "Goal %q: $%.2f saved of $%.2f target, %d%% progress, status %s",
				g.Name, g.Current, g.Target, g.Progress, g.Status)
			if !g.Deadline.IsZero() {
				fmt.Fprintf(&b, ", deadline %s", g.Deadline.Format("2006-01-02"))
			}
			b.WriteString("\n")
		}

	case grounding.BalanceFact:
		for _, a := range f.Accounts {
			fmt.Fprintf(&b, "Account %q: $%.2f\n", a.AccountName, a.Balance)
		}
		fmt.Fprintf(&b, "Total balance: $%.2f", f.Total)

	case grounding.RecurringFact:
		for _, r := range f.Items {
			fmt.Fprintf(&b, "Recurring %q: $%.2f every %d days, next due %s\n",
				r.Name, r.Amount, r.CadenceDays, r.NextDue.Format("2006-01-02"))
		}
		fmt.Fprintf(&b, "Estimated monthly total: $%.2f", f.MonthlyTotal)

	case grounding.TransactionFact:
		fmt.Fprintf(&b, "Period: %s\n", f.Period)
		for _, t := range f.Transactions {
			fmt.Fprintf(&b, "%s %q (%s): $%.2f\n",
				t.Date.Format("2006-01-02"), t.Merchant, t.Category, t.Amount)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
