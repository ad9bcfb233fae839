package model

// ChatContext is the full input snapshot for one chat request. It is the
// engine's only view of the user's data; the engine never reaches back into
// storage on its own.
type ChatContext struct {
	Message      string              `json:"message"`
	Profile      UserProfile         `json:"profile"`
	Balances     []BalanceRecord     `json:"balances"`
	Budgets      []BudgetRecord      `json:"budgets"`
	Goals        []GoalRecord        `json:"goals"`
	Transactions []TransactionRecord `json:"transactions"`
	Recurring    []RecurringRecord   `json:"recurring"`
	Quota        QuotaSnapshot       `json:"quota"`
}

// SourceKind identifies where response content came from, for provenance
// badges in the UI.
type SourceKind string

const (
	SourceCache   SourceKind = "cache"
	SourceLocalML SourceKind = "localML"
	SourceDB      SourceKind = "db"
	SourceGPT     SourceKind = "gpt"
)

// Source is one provenance entry on a response.
type Source struct {
	Kind SourceKind `json:"kind"`
	Note string     `json:"note,omitempty"`
}

// ModelTier is the cost/quality level of a model call.
type ModelTier string

const (
	TierMini ModelTier = "mini"
	TierStd  ModelTier = "std"
	TierPro  ModelTier = "pro"
)

// Cost summarizes the model spend of one response.
type Cost struct {
	Model     ModelTier `json:"model"`
	EstTokens int       `json:"est_tokens"`
}

// ActionID is a UI-navigable action identifier. The engine only emits
// identifiers; executing them is the UI's responsibility.
type ActionID string

const (
	ActionOpenBudgets       ActionID = "OPEN_BUDGETS"
	ActionCreateBudget      ActionID = "CREATE_BUDGET"
	ActionOpenGoals         ActionID = "OPEN_GOALS"
	ActionOpenGoalWizard    ActionID = "OPEN_GOAL_WIZARD"
	ActionOpenIncomeForm    ActionID = "OPEN_INCOME_FORM"
	ActionOpenTransactions  ActionID = "OPEN_TRANSACTIONS"
	ActionLinkAccount       ActionID = "LINK_ACCOUNT"
	ActionOpenSubscriptions ActionID = "OPEN_SUBSCRIPTIONS"
)

// Action is one suggested UI action on a response.
type Action struct {
	ID     ActionID          `json:"id"`
	Label  string            `json:"label"`
	Params map[string]string `json:"params,omitempty"`
}

// Card is a structured content block the UI can render alongside the message.
type Card struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Value    string `json:"value,omitempty"`
}

// ChatResponse is the sole contract between the engine and every UI consumer.
type ChatResponse struct {
	Message    string   `json:"message"`
	Details    string   `json:"details,omitempty"`
	Cards      []Card   `json:"cards,omitempty"`
	Actions    []Action `json:"actions,omitempty"`
	Sources    []Source `json:"sources"`
	Cost       Cost     `json:"cost"`
	Confidence float64  `json:"confidence,omitempty"`
	Insights   []string `json:"insights,omitempty"`
	Rationale  string   `json:"rationale,omitempty"`
}
