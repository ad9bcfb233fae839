package knowledge

// DefaultEntries is the built-in personal finance knowledge base used by
// the fast answer lane for general questions that need no user data.
func DefaultEntries() []Entry {
	return []Entry{
		{
			ID:       "kb-emergency-fund",
			Question: "how big should my emergency fund be",
			Answer:   "A common guideline is to keep three to six months of essential expenses in an easily accessible account. Start with one month and build from there.",
			Topics:   []string{"saving", "emergency fund"},
		},
		{
			ID:       "kb-50-30-20",
			Question: "what is the 50 30 20 budget rule",
			Answer:   "The 50/30/20 rule splits after-tax income into 50% needs, 30% wants, and 20% savings or debt repayment. It is a starting point, not a strict law.",
			Topics:   []string{"budgeting", "rule"},
		},
		{
			ID:       "kb-compound-interest",
			Question: "how does compound interest work",
			Answer:   "Compound interest means you earn interest on both your original deposit and previously earned interest. The longer money stays invested, the faster it grows.",
			Topics:   []string{"investing", "interest"},
		},
		{
			ID:       "kb-credit-utilization",
			Question: "what credit utilization is good for my credit score",
			Answer:   "Keeping credit card balances below 30% of your limits is generally recommended, and below 10% is even better for your score.",
			Topics:   []string{"credit", "score"},
		},
		{
			ID:       "kb-pay-debt-or-save",
			Question: "should i pay off debt or save first",
			Answer:   "Build a small emergency buffer first, then prioritize high-interest debt. Once expensive debt is gone, redirect those payments into savings.",
			Topics:   []string{"debt", "saving"},
		},
		{
			ID:       "kb-index-funds",
			Question: "what is an index fund",
			Answer:   "An index fund is a low-cost investment that tracks a market index instead of picking individual stocks. It offers broad diversification with minimal fees.",
			Topics:   []string{"investing", "funds"},
		},
		{
			ID:       "kb-apr-apy",
			Question: "what is the difference between apr and apy",
			Answer:   "APR is the simple yearly rate without compounding; APY includes compounding, so it reflects what you actually earn or pay over a year.",
			Topics:   []string{"interest", "rates"},
		},
		{
			ID:       "kb-sinking-fund",
			Question: "what is a sinking fund",
			Answer:   "A sinking fund is money you set aside monthly for a known future expense, like insurance premiums or holiday gifts, so the bill never surprises you.",
			Topics:   []string{"saving", "budgeting"},
		},
		{
			ID:       "kb-net-worth",
			Question: "how do i calculate my net worth",
			Answer:   "Add up everything you own (cash, investments, property) and subtract everything you owe (loans, credit cards). Tracking it over time matters more than the number itself.",
			Topics:   []string{"net worth", "tracking"},
		},
		{
			ID:       "kb-subscription-audit",
			Question: "how can i reduce my subscription spending",
			Answer:   "Review recurring charges once a quarter, cancel anything unused for two months, and consider annual plans only for services you are sure about.",
			Topics:   []string{"subscriptions", "spending"},
		},
	}
}
