package answerability

import (
	"finance-assistant/internal/factpack"
	"finance-assistant/internal/intent"
	"finance-assistant/internal/model"
)

// Level grades how well the available data supports answering an intent.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
	LevelNone   Level = "none"
)

// Result is the gate's verdict for one (intent, FactPack) pair. Missing
// names feed directly into UI action suggestions.
type Result struct {
	Level   Level
	Missing []string
	Reason  string
}

// Answerable reports whether the grounded path is worth attempting.
func (r Result) Answerable() bool {
	return r.Level == LevelHigh || r.Level == LevelMedium
}

// Missing-data names; each maps to a setup action via ActionsFor.
const (
	MissingBudgets       = "budgets"
	MissingGoals         = "goals"
	MissingTransactions  = "transactions"
	MissingBalances      = "linked accounts"
	MissingRecurring     = "recurring expenses"
	MissingMonthlyIncome = "monthly income"
)

// Evaluate grades the pack's coverage for the given intent. The gate never
// blocks: even LevelNone only steers the pipeline to its fallback path.
func Evaluate(in intent.Intent, pack *factpack.FactPack) Result {
	if pack == nil {
		return Result{Level: LevelNone, Reason: "no financial data snapshot"}
	}

	switch in {
	case intent.IntentGetBudgetStatus, intent.IntentCreateBudget:
		return gradeSections(pack,
			section{MissingBudgets, len(pack.Budgets) > 0, true},
			section{MissingTransactions, len(pack.RecentTransactions) > 0, false},
		)
	case intent.IntentGetSpendingSummary:
		return gradeSections(pack,
			section{MissingTransactions, len(pack.RecentTransactions) > 0, true},
			section{MissingBudgets, len(pack.Budgets) > 0, false},
			section{MissingMonthlyIncome, pack.Profile.MonthlyIncome > 0, false},
		)
	case intent.IntentGetGoalProgress:
		return gradeSections(pack,
			section{MissingGoals, len(pack.Goals) > 0, true},
			section{MissingMonthlyIncome, pack.Profile.MonthlyIncome > 0, false},
		)
	case intent.IntentGetBalance:
		return gradeSections(pack,
			section{MissingBalances, len(pack.Balances) > 0, true},
		)
	case intent.IntentGetRecurring:
		return gradeSections(pack,
			section{MissingRecurring, len(pack.Recurring) > 0, true},
			section{MissingTransactions, len(pack.RecentTransactions) > 0, false},
		)
	case intent.IntentGetTransactions:
		return gradeSections(pack,
			section{MissingTransactions, len(pack.RecentTransactions) > 0, true},
		)
	case intent.IntentSimpleQA:
		// General questions need no personal data at all.
		return Result{Level: LevelHigh, Reason: "general question, no personal data required"}
	default:
		return Result{Level: LevelLow, Reason: "unrecognized intent"}
	}
}

type section struct {
	name     string
	present  bool
	required bool
}

// gradeSections derives the level from which sections are populated: all
// present → high; required present but optional missing → medium; required
// missing with some optional data → low; nothing → none.
func gradeSections(pack *factpack.FactPack, sections ...section) Result {
	var missing []string
	requiredMissing := false
	anyPresent := false
	for _, s := range sections {
		if s.present {
			anyPresent = true
			continue
		}
		missing = append(missing, s.name)
		if s.required {
			requiredMissing = true
		}
	}

	switch {
	case len(missing) == 0:
		return Result{Level: LevelHigh, Reason: "all relevant data available"}
	case !requiredMissing:
		return Result{Level: LevelMedium, Missing: missing, Reason: "core data available, some context missing"}
	case anyPresent:
		return Result{Level: LevelLow, Missing: missing, Reason: "core data missing"}
	default:
		return Result{Level: LevelNone, Missing: missing, Reason: "no relevant data available"}
	}
}

// ActionsFor maps missing-data names to the setup actions a UI can offer.
func ActionsFor(missing []string) []model.Action {
	var out []model.Action
	for _, m := range missing {
		switch m {
		case MissingBudgets:
			out = append(out, model.Action{ID: model.ActionCreateBudget, Label: "Create a budget"})
		case MissingGoals:
			out = append(out, model.Action{ID: model.ActionOpenGoalWizard, Label: "Set a savings goal"})
		case MissingTransactions:
			out = append(out, model.Action{ID: model.ActionOpenTransactions, Label: "Add transactions"})
		case MissingBalances:
			out = append(out, model.Action{ID: model.ActionLinkAccount, Label: "Link an account"})
		case MissingRecurring:
			out = append(out, model.Action{ID: model.ActionOpenSubscriptions, Label: "Review subscriptions"})
		case MissingMonthlyIncome:
			out = append(out, model.Action{ID: model.ActionOpenIncomeForm, Label: "Add your monthly income"})
		}
	}
	return out
}
