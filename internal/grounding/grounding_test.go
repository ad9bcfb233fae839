package grounding

import (
	"testing"
	"time"

	"finance-assistant/internal/factpack"
	"finance-assistant/internal/intent"
	"finance-assistant/internal/model"
)

func testPack() *factpack.FactPack {
	return &factpack.FactPack{
		TimeWindow: factpack.TimeWindow{Period: "August 2026"},
		Budgets: []factpack.BudgetSnapshot{
			{ID: "b1", Name: "Groceries", Category: "food", Spent: 200, Limit: 400, Remaining: 200},
			{ID: "b2", Name: "Dining", Category: "restaurants", Spent: 90, Limit: 150, Remaining: 60},
		},
		Goals: []factpack.GoalSnapshot{
			{ID: "g1", Name: "Vacation", Target: 2000, Current: 800, Progress: 40},
		},
		Balances: []model.BalanceRecord{
			{AccountName: "Checking", Balance: 1200},
			{AccountName: "Savings", Balance: 3400},
		},
		Recurring: []factpack.RecurringSnapshot{
			{Name: "Streaming", Amount: 15, CadenceDays: 30},
		},
		RecentTransactions: []factpack.TransactionSnapshot{
			{Merchant: "Cafe", Amount: 12.5},
		},
		SpendingPatterns: factpack.SpendingPatterns{TotalSpent: 290, DailyAverage: 19.3},
		Profile:          model.UserProfile{MonthlyIncome: 4200},
	}
}

func TestGround(t *testing.T) {
	pack := testPack()

	t.Run("budget intent returns budget fact", func(t *testing.T) {
		res := Ground(intent.IntentGetBudgetStatus, pack, "what's my budget status?")
		if res == nil {
			t.Fatal("got nil, want a result")
		}
		fact, ok := res.Fact.(BudgetFact)
		if !ok {
			t.Fatalf("Fact is %T, want BudgetFact", res.Fact)
		}
		if len(fact.Budgets) != 2 {
			t.Errorf("Budgets = %d, want all 2", len(fact.Budgets))
		}
		if fact.TotalSpent != 290 || fact.TotalLimit != 550 {
			t.Errorf("totals = %.0f/%.0f, want 290/550", fact.TotalSpent, fact.TotalLimit)
		}
	})

	t.Run("named budget narrows the slice", func(t *testing.T) {
		res := Ground(intent.IntentGetBudgetStatus, pack, "how is my groceries budget doing?")
		fact := res.Fact.(BudgetFact)
		if len(fact.Budgets) != 1 || fact.Budgets[0].ID != "b1" {
			t.Errorf("Budgets = %v, want only Groceries", fact.Budgets)
		}
		if fact.TotalSpent != 200 {
			t.Errorf("TotalSpent = %.0f, want 200", fact.TotalSpent)
		}
	})

	t.Run("balance intent sums accounts", func(t *testing.T) {
		res := Ground(intent.IntentGetBalance, pack, "what's my balance?")
		fact := res.Fact.(BalanceFact)
		if fact.Total != 4600 {
			t.Errorf("Total = %.0f, want 4600", fact.Total)
		}
		if res.Confidence != 1.0 {
			t.Errorf("Confidence = %f, want 1.0", res.Confidence)
		}
	})

	t.Run("recurring monthly total normalizes cadence", func(t *testing.T) {
		res := Ground(intent.IntentGetRecurring, pack, "what subscriptions do I have?")
		fact := res.Fact.(RecurringFact)
		if fact.MonthlyTotal != 15 {
			t.Errorf("MonthlyTotal = %.2f, want 15", fact.MonthlyTotal)
		}
	})

	t.Run("insufficient data returns nil", func(t *testing.T) {
		empty := &factpack.FactPack{}
		for _, in := range []intent.Intent{
			intent.IntentGetBudgetStatus,
			intent.IntentGetGoalProgress,
			intent.IntentGetBalance,
			intent.IntentGetRecurring,
			intent.IntentGetTransactions,
			intent.IntentGetSpendingSummary,
		} {
			if res := Ground(in, empty, "anything"); res != nil {
				t.Errorf("Ground(%s, empty) = %v, want nil", in, res)
			}
		}
	})

	t.Run("simple qa has no grounding", func(t *testing.T) {
		if res := Ground(intent.IntentSimpleQA, pack, "what is an index fund?"); res != nil {
			t.Errorf("got %v, want nil", res)
		}
	})

	t.Run("confidence reflects completeness", func(t *testing.T) {
		partial := &factpack.FactPack{Goals: pack.Goals}
		res := Ground(intent.IntentGetGoalProgress, partial, "goal progress")
		if res.Confidence != 0.75 {
			t.Errorf("Confidence = %f, want 0.75", res.Confidence)
		}
		full := Ground(intent.IntentGetGoalProgress, pack, "goal progress")
		if full.Confidence != 1.0 {
			t.Errorf("Confidence = %f, want 1.0", full.Confidence)
		}
	})

	t.Run("nil pack returns nil", func(t *testing.T) {
		if res := Ground(intent.IntentGetBalance, nil, "balance"); res != nil {
			t.Errorf("got %v, want nil", res)
		}
	})
}

func TestGroundPeriodPhrases(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 8, d, 12, 0, 0, 0, time.UTC) }
	pack := &factpack.FactPack{
		TimeWindow: factpack.TimeWindow{
			Start:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2026, 8, 15, 18, 0, 0, 0, time.UTC),
			Timezone: "UTC",
			Period:   "August 2026",
		},
		RecentTransactions: []factpack.TransactionSnapshot{
			{Date: day(14), Merchant: "Cafe", Category: "dining", Amount: 12.5},
			{Date: day(14), Merchant: "Market", Category: "food", Amount: 40},
			{Date: day(5), Merchant: "Gas Station", Category: "transport", Amount: 30},
		},
		SpendingPatterns: factpack.SpendingPatterns{TotalSpent: 82.5, DailyAverage: 5.5},
	}

	t.Run("yesterday narrows transactions", func(t *testing.T) {
		res := Ground(intent.IntentGetTransactions, pack, "show my transactions from yesterday")
		fact := res.Fact.(TransactionFact)
		if len(fact.Transactions) != 2 {
			t.Fatalf("Transactions = %d, want 2", len(fact.Transactions))
		}
		if fact.Period != "yesterday" {
			t.Errorf("Period = %q, want yesterday", fact.Period)
		}
	})

	t.Run("spending re-aggregates for the phrase window", func(t *testing.T) {
		res := Ground(intent.IntentGetSpendingSummary, pack, "how much did I spend yesterday?")
		fact := res.Fact.(SpendingFact)
		if fact.TotalSpent != 52.5 {
			t.Errorf("TotalSpent = %.2f, want 52.50", fact.TotalSpent)
		}
		if fact.Period != "yesterday" {
			t.Errorf("Period = %q, want yesterday", fact.Period)
		}
		if len(fact.TopCategories) != 2 || fact.TopCategories[0].Category != "food" {
			t.Errorf("TopCategories = %v, want food first", fact.TopCategories)
		}
	})

	t.Run("no phrase keeps the default window", func(t *testing.T) {
		res := Ground(intent.IntentGetTransactions, pack, "show my recent transactions")
		fact := res.Fact.(TransactionFact)
		if len(fact.Transactions) != 3 || fact.Period != "August 2026" {
			t.Errorf("got %d transactions for %q, want all 3 for August 2026", len(fact.Transactions), fact.Period)
		}
	})
}
