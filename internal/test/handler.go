package test

import (
	"time"

	"github.com/gin-gonic/gin"

	"finance-assistant/internal/intent"
	pkgResponse "finance-assistant/pkg/response"
)

// HandleRouteTest scores and routes a message without generating an answer.
// It uses a throwaway history, so hysteresis from live conversations never
// leaks into the dry run.
func (h *handler) HandleRouteTest(c *gin.Context) {
	ctx := c.Request.Context()

	var req RouteTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		pkgResponse.Error(c, err, nil)
		return
	}

	scores := h.router.Score(ctx, req.Message, intent.Context{
		HasBudgets:      req.HasBudgets,
		HasGoals:        req.HasGoals,
		HasTransactions: req.HasTransactions,
		HasBalances:     req.HasBalances,
		HasRecurring:    req.HasRecurring,
	})
	decision := h.router.Decide(ctx, scores, intent.NewHistory(1), time.Now())

	views := make([]ScoreView, 0, len(scores))
	for _, s := range scores {
		views = append(views, ScoreView{
			Intent:     string(s.Intent),
			Raw:        s.Raw,
			Calibrated: s.Calibrated,
			Confidence: string(s.Confidence),
		})
	}

	pkgResponse.OK(c, RouteTestResponse{
		Intent:      string(decision.Primary.Intent),
		RouteType:   string(decision.RouteType),
		Scores:      views,
		Temperature: h.cal.Temperature(),
	})
}
