package factpack

import (
	"sort"
	"time"

	"finance-assistant/internal/model"
)

const maxRecentTransactions = 10

// Input is the raw data a FactPack is built from.
type Input struct {
	Now          time.Time
	Timezone     string
	Profile      model.UserProfile
	Balances     []model.BalanceRecord
	Budgets      []model.BudgetRecord
	Goals        []model.GoalRecord
	Transactions []model.TransactionRecord
	Recurring    []model.RecurringRecord
}

// Build produces a FactPack with every derived field computed by the pure
// functions in this package. The result carries its own hash in Metadata.
func Build(in Input) *FactPack {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	loc, err := time.LoadLocation(in.Timezone)
	if err != nil {
		loc = time.UTC
	}
	now = now.In(loc)

	pack := &FactPack{
		TimeWindow:         monthWindow(now),
		Balances:           in.Balances,
		Budgets:            buildBudgets(in.Budgets, in.Transactions),
		Goals:              buildGoals(in.Goals, now),
		Recurring:          buildRecurring(in.Recurring),
		RecentTransactions: buildTransactions(in.Transactions),
		SpendingPatterns:   buildPatterns(in.Transactions, now),
		Profile:            in.Profile,
	}

	pack.Metadata = Metadata{
		GeneratedAt: now,
		Hash:        Hash(pack),
		Source:      "builder",
		Freshness:   "realtime",
	}
	return pack
}

func monthWindow(now time.Time) TimeWindow {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return TimeWindow{
		Start:    start,
		End:      end,
		Timezone: now.Location().String(),
		Period:   now.Format("January 2006"),
	}
}

func buildBudgets(budgets []model.BudgetRecord, txns []model.TransactionRecord) []BudgetSnapshot {
	out := make([]BudgetSnapshot, 0, len(budgets))
	for _, b := range budgets {
		util := Utilization(b.Spent, b.Limit)
		out = append(out, BudgetSnapshot{
			ID:            b.ID,
			Name:          b.Name,
			Category:      b.Category,
			Spent:         b.Spent,
			Limit:         b.Limit,
			Remaining:     b.Limit - b.Spent,
			Utilization:   util,
			Status:        StatusForUtilization(util),
			TopCategories: topCategories(txns, b.Category, 3),
		})
	}
	return out
}

func buildGoals(goals []model.GoalRecord, now time.Time) []GoalSnapshot {
	out := make([]GoalSnapshot, 0, len(goals))
	for _, g := range goals {
		progress := GoalProgress(g.Current, g.Target)
		out = append(out, GoalSnapshot{
			ID:        g.ID,
			Name:      g.Name,
			Target:    g.Target,
			Current:   g.Current,
			Remaining: g.Target - g.Current,
			Progress:  progress,
			Status:    StatusForGoal(progress, g.Deadline, now),
			Deadline:  g.Deadline,
		})
	}
	return out
}

func buildRecurring(recs []model.RecurringRecord) []RecurringSnapshot {
	out := make([]RecurringSnapshot, 0, len(recs))
	for _, r := range recs {
		out = append(out, RecurringSnapshot{
			Name:        r.Name,
			Amount:      r.Amount,
			CadenceDays: r.CadenceDays,
			NextDue:     r.NextDue,
		})
	}
	return out
}

func buildTransactions(txns []model.TransactionRecord) []TransactionSnapshot {
	sorted := make([]model.TransactionRecord, len(txns))
	copy(sorted, txns)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	if len(sorted) > maxRecentTransactions {
		sorted = sorted[:maxRecentTransactions]
	}

	out := make([]TransactionSnapshot, 0, len(sorted))
	for _, t := range sorted {
		out = append(out, TransactionSnapshot{
			Date:     t.Date,
			Merchant: t.Merchant,
			Category: t.Category,
			Amount:   t.Amount,
		})
	}
	return out
}

func buildPatterns(txns []model.TransactionRecord, now time.Time) SpendingPatterns {
	var total float64
	for _, t := range txns {
		if t.Amount > 0 {
			total += t.Amount
		}
	}

	days := float64(now.Day())
	var daily float64
	if days > 0 {
		daily = total / days
	}

	return SpendingPatterns{
		TotalSpent:    total,
		DailyAverage:  daily,
		TopCategories: topCategories(txns, "", 5),
	}
}

// topCategories aggregates spend per category, optionally filtered to one
// category's merchants, sorted descending by amount.
func topCategories(txns []model.TransactionRecord, category string, limit int) []CategorySpend {
	totals := make(map[string]float64)
	for _, t := range txns {
		if t.Amount <= 0 {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		key := t.Category
		if category != "" {
			key = t.Merchant
		}
		totals[key] += t.Amount
	}

	out := make([]CategorySpend, 0, len(totals))
	for cat, amount := range totals {
		out = append(out, CategorySpend{Category: cat, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount == out[j].Amount {
			return out[i].Category < out[j].Category
		}
		return out[i].Amount > out[j].Amount
	})

	if len(out) > limit {
		out = out[:limit]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
