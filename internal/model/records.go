package model

import "time"

// BudgetRecord is a raw budget row as stored by the budgeting surface.
type BudgetRecord struct {
	ID       string
	Name     string
	Category string
	Limit    float64 // budgeted amount for the period
	Spent    float64 // amount spent so far
}

// GoalRecord is a raw savings goal row.
type GoalRecord struct {
	ID       string
	Name     string
	Target   float64
	Current  float64
	Deadline time.Time // zero value means no deadline
}

// TransactionRecord is a raw transaction row.
type TransactionRecord struct {
	ID       string
	Date     time.Time
	Merchant string
	Category string
	Amount   float64 // negative for refunds
}

// RecurringRecord is a detected recurring expense (subscription, bill).
type RecurringRecord struct {
	ID          string
	Name        string
	Amount      float64
	CadenceDays int
	NextDue     time.Time
}

// BalanceRecord is an account balance snapshot.
type BalanceRecord struct {
	AccountID   string
	AccountName string
	Balance     float64
}

// UserProfile holds the self-reported financial profile.
type UserProfile struct {
	MonthlyIncome float64
	SavingsGoal   string
	RiskProfile   string // conservative, balanced, aggressive
}

// QuotaSnapshot is the caller's paid-model usage quota at request time.
type QuotaSnapshot struct {
	PremiumCallsUsed  int
	PremiumCallsLimit int
}

// PremiumExhausted reports whether the top model tier is still available.
func (q QuotaSnapshot) PremiumExhausted() bool {
	return q.PremiumCallsLimit > 0 && q.PremiumCallsUsed >= q.PremiumCallsLimit
}
