package grounding

import (
	"sort"
	"strings"

	"finance-assistant/internal/factpack"
	"finance-assistant/internal/intent"
	"finance-assistant/internal/model"
	"finance-assistant/pkg/datemath"
)

// FactKind discriminates the Fact union.
type FactKind string

const (
	KindBudget      FactKind = "budget"
	KindSpending    FactKind = "spending"
	KindGoal        FactKind = "goal"
	KindBalance     FactKind = "balance"
	KindRecurring   FactKind = "recurring"
	KindTransaction FactKind = "transaction"
)

// Fact is the minimal slice of the snapshot relevant to one intent.
// Narration, critic, and template composition switch exhaustively on Kind.
type Fact interface {
	Kind() FactKind
}

// BudgetFact grounds budget-status questions.
type BudgetFact struct {
	Budgets    []factpack.BudgetSnapshot
	TotalSpent float64
	TotalLimit float64
	Period     string
}

func (BudgetFact) Kind() FactKind { return KindBudget }

// SpendingFact grounds spending-summary questions.
type SpendingFact struct {
	TotalSpent    float64
	DailyAverage  float64
	TopCategories []factpack.CategorySpend
	MonthlyIncome float64
	Period        string
}

func (SpendingFact) Kind() FactKind { return KindSpending }

// GoalFact grounds goal-progress questions.
type GoalFact struct {
	Goals []factpack.GoalSnapshot
}

func (GoalFact) Kind() FactKind { return KindGoal }

// BalanceFact grounds balance questions.
type BalanceFact struct {
	Accounts []model.BalanceRecord
	Total    float64
}

func (BalanceFact) Kind() FactKind { return KindBalance }

// RecurringFact grounds recurring-expense questions.
type RecurringFact struct {
	Items        []factpack.RecurringSnapshot
	MonthlyTotal float64
}

func (RecurringFact) Kind() FactKind { return KindRecurring }

// TransactionFact grounds recent-transaction questions.
type TransactionFact struct {
	Transactions []factpack.TransactionSnapshot
	Period       string
}

func (TransactionFact) Kind() FactKind { return KindTransaction }

// Result pairs a fact slice with a confidence derived from data completeness.
type Result struct {
	Fact       Fact
	Confidence float64
}

// Ground extracts the fact slice for the given intent. When the message names
// a specific budget or goal, the slice narrows to that item. Returns nil on
// insufficient data rather than guessing.
func Ground(in intent.Intent, pack *factpack.FactPack, message string) *Result {
	if pack == nil {
		return nil
	}

	switch in {
	case intent.IntentGetBudgetStatus, intent.IntentCreateBudget:
		if len(pack.Budgets) == 0 {
			return nil
		}
		budgets := matchBudgets(pack.Budgets, message)
		var spent, limit float64
		for _, b := range budgets {
			spent += b.Spent
			limit += b.Limit
		}
		return &Result{
			Fact: BudgetFact{
				Budgets:    budgets,
				TotalSpent: spent,
				TotalLimit: limit,
				Period:     pack.TimeWindow.Period,
			},
			Confidence: completeness(len(pack.Budgets) > 0, len(pack.RecentTransactions) > 0),
		}

	case intent.IntentGetSpendingSummary:
		if len(pack.RecentTransactions) == 0 && pack.SpendingPatterns.TotalSpent == 0 {
			return nil
		}
		fact := SpendingFact{
			TotalSpent:    pack.SpendingPatterns.TotalSpent,
			DailyAverage:  pack.SpendingPatterns.DailyAverage,
			TopCategories: pack.SpendingPatterns.TopCategories,
			MonthlyIncome: pack.Profile.MonthlyIncome,
			Period:        pack.TimeWindow.Period,
		}
		// A period phrase in the question re-aggregates over that window only.
		if r, ok := queryRange(pack.TimeWindow, message); ok {
			fact = spendingForRange(pack, r)
		}
		return &Result{
			Fact:       fact,
			Confidence: completeness(len(pack.RecentTransactions) > 0, pack.Profile.MonthlyIncome > 0),
		}

	case intent.IntentGetGoalProgress:
		if len(pack.Goals) == 0 {
			return nil
		}
		return &Result{
			Fact:       GoalFact{Goals: matchGoals(pack.Goals, message)},
			Confidence: completeness(len(pack.Goals) > 0, pack.Profile.MonthlyIncome > 0),
		}

	case intent.IntentGetBalance:
		if len(pack.Balances) == 0 {
			return nil
		}
		var total float64
		for _, b := range pack.Balances {
			total += b.Balance
		}
		return &Result{
			Fact:       BalanceFact{Accounts: pack.Balances, Total: total},
			Confidence: 1.0,
		}

	case intent.IntentGetRecurring:
		if len(pack.Recurring) == 0 {
			return nil
		}
		var monthly float64
		for _, r := range pack.Recurring {
			if r.CadenceDays > 0 {
				monthly += r.Amount * 30.0 / float64(r.CadenceDays)
			}
		}
		return &Result{
			Fact:       RecurringFact{Items: pack.Recurring, MonthlyTotal: monthly},
			Confidence: completeness(len(pack.Recurring) > 0, len(pack.RecentTransactions) > 0),
		}

	case intent.IntentGetTransactions:
		if len(pack.RecentTransactions) == 0 {
			return nil
		}
		txns := pack.RecentTransactions
		period := pack.TimeWindow.Period
		if r, ok := queryRange(pack.TimeWindow, message); ok {
			txns = filterByRange(txns, r)
			period = r.Label
		}
		return &Result{
			Fact:       TransactionFact{Transactions: txns, Period: period},
			Confidence: 1.0,
		}
	}

	return nil
}

// matchBudgets narrows to the budget the message names, if any.
func matchBudgets(budgets []factpack.BudgetSnapshot, message string) []factpack.BudgetSnapshot {
	msg := strings.ToLower(message)
	for _, b := range budgets {
		if name := strings.ToLower(b.Name); name != "" && strings.Contains(msg, name) {
			return []factpack.BudgetSnapshot{b}
		}
		if cat := strings.ToLower(b.Category); cat != "" && strings.Contains(msg, cat) {
			return []factpack.BudgetSnapshot{b}
		}
	}
	return budgets
}

func matchGoals(goals []factpack.GoalSnapshot, message string) []factpack.GoalSnapshot {
	msg := strings.ToLower(message)
	for _, g := range goals {
		if name := strings.ToLower(g.Name); name != "" && strings.Contains(msg, name) {
			return []factpack.GoalSnapshot{g}
		}
	}
	return goals
}

// queryRange resolves a relative period phrase in the message against the
// snapshot's timezone and reference time.
func queryRange(win factpack.TimeWindow, message string) (datemath.Range, bool) {
	parser, err := datemath.NewParser(win.Timezone)
	if err != nil {
		return datemath.Range{}, false
	}
	return parser.FindRange(message, win.End)
}

func filterByRange(txns []factpack.TransactionSnapshot, r datemath.Range) []factpack.TransactionSnapshot {
	out := make([]factpack.TransactionSnapshot, 0, len(txns))
	for _, t := range txns {
		if r.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// spendingForRange re-aggregates totals over the requested window from the
// raw transactions.
func spendingForRange(pack *factpack.FactPack, r datemath.Range) SpendingFact {
	byCategory := map[string]float64{}
	var total float64
	for _, t := range pack.RecentTransactions {
		if !r.Contains(t.Date) {
			continue
		}
		total += t.Amount
		byCategory[t.Category] += t.Amount
	}

	top := make([]factpack.CategorySpend, 0, len(byCategory))
	for cat, amount := range byCategory {
		top = append(top, factpack.CategorySpend{Category: cat, Amount: amount})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Amount != top[j].Amount {
			return top[i].Amount > top[j].Amount
		}
		return top[i].Category < top[j].Category
	})
	if len(top) > 3 {
		top = top[:3]
	}

	days := r.End.Sub(r.Start).Hours() / 24
	var daily float64
	if days > 0 {
		daily = total / days
	}

	return SpendingFact{
		TotalSpent:    total,
		DailyAverage:  daily,
		TopCategories: top,
		MonthlyIncome: pack.Profile.MonthlyIncome,
		Period:        r.Label,
	}
}

// completeness maps how many supporting sections are populated into [0.5, 1].
func completeness(sections ...bool) float64 {
	if len(sections) == 0 {
		return 0.5
	}
	present := 0
	for _, s := range sections {
		if s {
			present++
		}
	}
	return 0.5 + 0.5*float64(present)/float64(len(sections))
}
