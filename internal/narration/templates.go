package narration

import (
	"fmt"
	"strings"

	"finance-assistant/internal/answerability"
	"finance-assistant/internal/factpack"
	"finance-assistant/internal/grounding"
	"finance-assistant/internal/model"
)

// Compose renders a response directly from facts with fixed templates, one
// per fact variant. This is the no-LLM fallback path and must always produce
// a usable response.
func Compose(fact grounding.Fact) *model.ChatResponse {
	if fact == nil {
		return ComposeGeneric()
	}

	resp := &model.ChatResponse{
		Sources: []model.Source{{Kind: model.SourceDB, Note: "your financial data"}},
		Cost:    model.Cost{Model: model.TierMini, EstTokens: 0},
	}

	switch f := fact.(type) {
	case grounding.BudgetFact:
		composeBudgets(resp, f)
	case grounding.SpendingFact:
		composeSpending(resp, f)
	case grounding.GoalFact:
		composeGoals(resp, f)
	case grounding.BalanceFact:
		composeBalances(resp, f)
	case grounding.RecurringFact:
		composeRecurring(resp, f)
	case grounding.TransactionFact:
		composeTransactions(resp, f)
	default:
		return ComposeGeneric()
	}
	return resp
}

func composeBudgets(resp *model.ChatResponse, f grounding.BudgetFact) {
	if len(f.Budgets) == 1 {
		b := f.Budgets[0]
		resp.Message = fmt.Sprintf("Your %s budget: you've spent $%.2f of $%.2f, with $%.2f remaining (%d%% used).",
			b.Name, b.Spent, b.Limit, b.Remaining, b.Utilization)
		if b.Status == factpack.BudgetOver {
			resp.Message += " You're over this budget."
		}
	} else {
		remaining := f.TotalLimit - f.TotalSpent
		resp.Message = fmt.Sprintf("Across your %d budgets you've spent $%.2f of $%.2f this period, with $%.2f remaining.",
			len(f.Budgets), f.TotalSpent, f.TotalLimit, remaining)
	}
	for _, b := range f.Budgets {
		resp.Cards = append(resp.Cards, model.Card{
			Title:    b.Name,
			Subtitle: fmt.Sprintf("%d%% used, %s", b.Utilization, b.Status),
			Value:    fmt.Sprintf("$%.2f left", b.Remaining),
		})
	}
	resp.Actions = append(resp.Actions, model.Action{ID: model.ActionOpenBudgets, Label: "View budgets"})
}

func composeSpending(resp *model.ChatResponse, f grounding.SpendingFact) {
	resp.Message = fmt.Sprintf("You've spent $%.2f in %s, averaging $%.2f per day.", f.TotalSpent, f.Period, f.DailyAverage)
	if len(f.TopCategories) > 0 {
		top := f.TopCategories[0]
		resp.Message += fmt.Sprintf(" Your biggest category is %s at $%.2f.", top.Category, top.Amount)
	}
	for _, c := range f.TopCategories {
		resp.Cards = append(resp.Cards, model.Card{Title: c.Category, Value: fmt.Sprintf("$%.2f", c.Amount)})
	}
	resp.Actions = append(resp.Actions, model.Action{ID: model.ActionOpenTransactions, Label: "View transactions"})
}

func composeGoals(resp *model.ChatResponse, f grounding.GoalFact) {
	if len(f.Goals) == 1 {
		g := f.Goals[0]
		resp.Message = fmt.Sprintf("Your %s goal is %d%% funded: $%.2f saved of $%.2f, $%.2f to go. You're %s.",
			g.Name, g.Progress, g.Current, g.Target, g.Remaining, strings.ReplaceAll(string(g.Status), "_", " "))
	} else {
		resp.Message = fmt.Sprintf("You're tracking %d savings goals.", len(f.Goals))
	}
	for _, g := range f.Goals {
		resp.Cards = append(resp.Cards, model.Card{
			Title:    g.Name,
			Subtitle: strings.ReplaceAll(string(g.Status), "_", " "),
			Value:    fmt.Sprintf("%d%%", g.Progress),
		})
	}
	resp.Actions = append(resp.Actions, model.Action{ID: model.ActionOpenGoals, Label: "View goals"})
}

func composeBalances(resp *model.ChatResponse, f grounding.BalanceFact) {
	resp.Message = fmt.Sprintf("Your total balance across %d accounts is $%.2f.", len(f.Accounts), f.Total)
	for _, a := range f.Accounts {
		resp.Cards = append(resp.Cards, model.Card{Title: a.AccountName, Value: fmt.Sprintf("$%.2f", a.Balance)})
	}
}

func composeRecurring(resp *model.ChatResponse, f grounding.RecurringFact) {
	resp.Message = fmt.Sprintf("You have %d recurring expenses totaling about $%.2f per month.", len(f.Items), f.MonthlyTotal)
	for _, r := range f.Items {
		resp.Cards = append(resp.Cards, model.Card{
			Title:    r.Name,
			Subtitle: fmt.Sprintf("next due %s", r.NextDue.Format("Jan 2")),
			Value:    fmt.Sprintf("$%.2f", r.Amount),
		})
	}
	resp.Actions = append(resp.Actions, model.Action{ID: model.ActionOpenSubscriptions, Label: "Review subscriptions"})
}

func composeTransactions(resp *model.ChatResponse, f grounding.TransactionFact) {
	var total float64
	for _, t := range f.Transactions {
		total += t.Amount
	}
	switch {
	case len(f.Transactions) == 0:
		resp.Message = fmt.Sprintf("No transactions recorded for %s.", f.Period)
	case f.Period != "":
		resp.Message = fmt.Sprintf("You have %d transactions for %s, totaling $%.2f.", len(f.Transactions), f.Period, total)
	default:
		resp.Message = fmt.Sprintf("Here are your %d most recent transactions, totaling $%.2f.", len(f.Transactions), total)
	}
	for _, t := range f.Transactions {
		resp.Cards = append(resp.Cards, model.Card{
			Title:    t.Merchant,
			Subtitle: fmt.Sprintf("%s, %s", t.Category, t.Date.Format("Jan 2")),
			Value:    fmt.Sprintf("$%.2f", t.Amount),
		})
	}
	resp.Actions = append(resp.Actions, model.Action{ID: model.ActionOpenTransactions, Label: "View all transactions"})
}

// ComposeAsk builds the actionable-ask response: it names what data is
// missing and offers the setup actions to fix it, instead of apologizing.
func ComposeAsk(missing []string) *model.ChatResponse {
	msg := "I don't have enough of your data to answer that yet."
	if len(missing) > 0 {
		msg = fmt.Sprintf("To answer that, I still need: %s. Add them and I can give you a real answer.",
			strings.Join(missing, ", "))
	}
	return &model.ChatResponse{
		Message: msg,
		Actions: answerability.ActionsFor(missing),
		Sources: []model.Source{{Kind: model.SourceDB, Note: "data availability check"}},
		Cost:    model.Cost{Model: model.TierMini, EstTokens: 0},
	}
}

// ComposeGeneric is the outermost fallback; it must never be the common path
// but must always work.
func ComposeGeneric() *model.ChatResponse {
	return &model.ChatResponse{
		Message: "I can help with your budgets, spending, savings goals, balances, and subscriptions. What would you like to know?",
		Actions: []model.Action{
			{ID: model.ActionOpenBudgets, Label: "View budgets"},
			{ID: model.ActionOpenGoals, Label: "View goals"},
		},
		Sources: []model.Source{{Kind: model.SourceLocalML, Note: "assistant"}},
		Cost:    model.Cost{Model: model.TierMini, EstTokens: 0},
	}
}
