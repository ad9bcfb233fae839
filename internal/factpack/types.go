package factpack

import (
	"time"

	"finance-assistant/internal/model"
)

// BudgetStatus classifies a budget's utilization.
type BudgetStatus string

const (
	BudgetUnder   BudgetStatus = "under"
	BudgetAtLimit BudgetStatus = "at_limit"
	BudgetOver    BudgetStatus = "over"
)

// GoalStatus classifies goal progress against the expected-progress curve.
type GoalStatus string

const (
	GoalBehind  GoalStatus = "behind"
	GoalOnTrack GoalStatus = "on_track"
	GoalAhead   GoalStatus = "ahead"
)

// TimeWindow is the period a FactPack describes.
type TimeWindow struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Timezone string    `json:"timezone"`
	Period   string    `json:"period"` // human label, e.g. "August 2026"
}

// CategorySpend is one category's total within the window.
type CategorySpend struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// BudgetSnapshot is one budget with every derived field computed.
type BudgetSnapshot struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Spent         float64         `json:"spent"`
	Limit         float64         `json:"limit"`
	Remaining     float64         `json:"remaining"`
	Utilization   int             `json:"utilization"` // percent, clamped [0,100]
	Status        BudgetStatus    `json:"status"`
	TopCategories []CategorySpend `json:"top_categories,omitempty"`
}

// GoalSnapshot is one savings goal with derived progress.
type GoalSnapshot struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Target    float64    `json:"target"`
	Current   float64    `json:"current"`
	Remaining float64    `json:"remaining"`
	Progress  int        `json:"progress"` // percent, clamped [0,100]
	Status    GoalStatus `json:"status"`
	Deadline  time.Time  `json:"deadline,omitempty"`
}

// RecurringSnapshot is one recurring expense.
type RecurringSnapshot struct {
	Name        string    `json:"name"`
	Amount      float64   `json:"amount"`
	CadenceDays int       `json:"cadence_days"`
	NextDue     time.Time `json:"next_due"`
}

// TransactionSnapshot is one recent transaction.
type TransactionSnapshot struct {
	Date     time.Time `json:"date"`
	Merchant string    `json:"merchant"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
}

// SpendingPatterns summarizes transactions within the window.
type SpendingPatterns struct {
	TotalSpent    float64         `json:"total_spent"`
	DailyAverage  float64         `json:"daily_average"`
	TopCategories []CategorySpend `json:"top_categories,omitempty"`
}

// Metadata describes how and when the pack was produced. It is excluded
// from the hash.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Hash        string    `json:"hash"`
	Source      string    `json:"source"`
	Freshness   string    `json:"freshness"` // e.g. "realtime"
}

// FactPack is a deterministic, hashable snapshot of a user's financial state
// for one time window. Every derived field must equal the pure calculation
// from its inputs; Validate enforces this.
type FactPack struct {
	TimeWindow         TimeWindow            `json:"time_window"`
	Balances           []model.BalanceRecord `json:"balances,omitempty"`
	Budgets            []BudgetSnapshot      `json:"budgets,omitempty"`
	Goals              []GoalSnapshot        `json:"goals,omitempty"`
	Recurring          []RecurringSnapshot   `json:"recurring,omitempty"`
	RecentTransactions []TransactionSnapshot `json:"recent_transactions,omitempty"`
	SpendingPatterns   SpendingPatterns      `json:"spending_patterns"`
	Profile            model.UserProfile     `json:"profile"`
	Metadata           Metadata              `json:"metadata"`
}
