package intent

import "regexp"

// Rule is one pattern rule in the versionable detection table. Rules are
// data: adding an intent or locale means adding rows, not routing logic.
type Rule struct {
	Intent       Intent
	Pattern      string  // regular expression over the normalized utterance
	Exact        string  // exact phrase earning the exact-match bonus
	BaseScore    float64 // contribution when the pattern matches
	ContextBoost string  // context key ("budgets", "goals", ...) boosting the score
}

// RuleTableVersion identifies the shipped rule set.
const RuleTableVersion = "2026-07-rev4"

const (
	exactMatchBonus   = 0.25
	contextBoostValue = 0.15
)

// DefaultRules returns the built-in English rule table.
func DefaultRules() []Rule {
	return []Rule{
		{Intent: IntentGetBudgetStatus, Pattern: `budget`, BaseScore: 0.6, ContextBoost: "budgets"},
		{Intent: IntentGetBudgetStatus, Pattern: `(left|remaining) (in|on|for)`, BaseScore: 0.5, ContextBoost: "budgets"},
		{Intent: IntentGetBudgetStatus, Pattern: `over ?spen[dt]`, BaseScore: 0.55, ContextBoost: "budgets"},
		{Intent: IntentGetBudgetStatus, Exact: "what's my budget status?", Pattern: `budget status`, BaseScore: 0.7, ContextBoost: "budgets"},

		{Intent: IntentGetSpendingSummary, Pattern: `(spending|spend|spent)`, BaseScore: 0.55, ContextBoost: "transactions"},
		{Intent: IntentGetSpendingSummary, Pattern: `where (did|does|is) my money`, BaseScore: 0.7, ContextBoost: "transactions"},
		{Intent: IntentGetSpendingSummary, Exact: "how's my spending?", Pattern: `how'?s my spending`, BaseScore: 0.7, ContextBoost: "transactions"},

		{Intent: IntentGetGoalProgress, Pattern: `goal`, BaseScore: 0.6, ContextBoost: "goals"},
		{Intent: IntentGetGoalProgress, Pattern: `(saving|save[dn]?) (up|for|progress)`, BaseScore: 0.55, ContextBoost: "goals"},
		{Intent: IntentGetGoalProgress, Pattern: `on track`, BaseScore: 0.5, ContextBoost: "goals"},

		{Intent: IntentGetBalance, Pattern: `balance`, BaseScore: 0.65, ContextBoost: "balances"},
		{Intent: IntentGetBalance, Pattern: `how much (money )?(do i have|is in)`, BaseScore: 0.6, ContextBoost: "balances"},

		{Intent: IntentGetRecurring, Pattern: `(subscription|recurring|bill)s?`, BaseScore: 0.6, ContextBoost: "recurring"},
		{Intent: IntentGetRecurring, Pattern: `pay(ing)? (every|each) (month|week)`, BaseScore: 0.5, ContextBoost: "recurring"},

		{Intent: IntentGetTransactions, Pattern: `transactions?`, BaseScore: 0.6, ContextBoost: "transactions"},
		{Intent: IntentGetTransactions, Pattern: `(recent|last|latest) (purchase|payment|charge)s?`, BaseScore: 0.6, ContextBoost: "transactions"},

		{Intent: IntentCreateBudget, Pattern: `(create|set ?up|add|new) .*budget`, BaseScore: 0.65},
		{Intent: IntentCreateBudget, Pattern: `budget for`, BaseScore: 0.45},

		{Intent: IntentSimpleQA, Pattern: `(invest|investing|investment|stocks?|etfs?|bonds?)`, BaseScore: 0.6},
		{Intent: IntentSimpleQA, Pattern: `(what is|what'?s|explain|how does) .*(interest|apr|apy|credit score|inflation|compound)`, BaseScore: 0.65},
		{Intent: IntentSimpleQA, Pattern: `(should i|is it (worth|better))`, BaseScore: 0.4},
	}
}

// compiledRule pairs a rule with its compiled pattern.
type compiledRule struct {
	rule Rule
	re   *regexp.Regexp
}

// compileRules compiles the table, skipping rows with invalid patterns.
func compileRules(rules []Rule) []compiledRule {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			continue
		}
		out = append(out, compiledRule{rule: r, re: re})
	}
	return out
}

// contextHas reports whether the boost key's data section is present.
func contextHas(pctx Context, key string) bool {
	switch key {
	case "budgets":
		return pctx.HasBudgets
	case "goals":
		return pctx.HasGoals
	case "transactions":
		return pctx.HasTransactions
	case "balances":
		return pctx.HasBalances
	case "recurring":
		return pctx.HasRecurring
	default:
		return false
	}
}
