package test

// RouteTestRequest simulates one routed message. The Has* flags stand in for
// the data-availability context a real request derives from its snapshot.
type RouteTestRequest struct {
	Message         string `json:"message" binding:"required"`
	HasBudgets      bool   `json:"has_budgets"`
	HasGoals        bool   `json:"has_goals"`
	HasTransactions bool   `json:"has_transactions"`
	HasBalances     bool   `json:"has_balances"`
	HasRecurring    bool   `json:"has_recurring"`
}

// ScoreView is one intent's score in a dry-run response.
type ScoreView struct {
	Intent     string  `json:"intent"`
	Raw        float64 `json:"raw"`
	Calibrated float64 `json:"calibrated"`
	Confidence string  `json:"confidence"`
}

// RouteTestResponse is the routing outcome without any answer generation.
type RouteTestResponse struct {
	Intent      string      `json:"intent"`
	RouteType   string      `json:"route_type"`
	Scores      []ScoreView `json:"scores"`
	Temperature float64     `json:"temperature"`
}
