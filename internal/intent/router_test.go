package intent

import (
	"context"
	"testing"
	"time"

	"finance-assistant/config"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, arg ...any)                    {}
func (nopLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Info(ctx context.Context, arg ...any)                     {}
func (nopLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Warn(ctx context.Context, arg ...any)                     {}
func (nopLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Error(ctx context.Context, arg ...any)                    {}
func (nopLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (nopLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (nopLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (nopLogger) Panic(ctx context.Context, arg ...any)                    {}
func (nopLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func testRouterConfig() config.RouterConfig {
	return config.RouterConfig{
		Temperature:     0.85,
		Bias:            0.02,
		Scale:           1.0,
		EnterThreshold:  0.55,
		ExitThreshold:   0.40,
		MinStableTime:   8 * time.Second,
		StabilityWindow: 30 * time.Second,
		VarianceEpsilon: 0.0025,
		HistorySize:     10,
		MinTemperature:  0.5,
		MaxTemperature:  2.0,
	}
}

func newTestRouter(cfg config.RouterConfig) *Router {
	return New(DefaultRules(), NewCalibrator(cfg), cfg, nopLogger{})
}

func TestScore(t *testing.T) {
	r := newTestRouter(testRouterConfig())
	ctx := context.Background()

	t.Run("budget question scores budget intent first", func(t *testing.T) {
		scores := r.Score(ctx, "What's my budget status?", Context{HasBudgets: true})
		if scores[0].Intent != IntentGetBudgetStatus {
			t.Fatalf("expected GET_BUDGET_STATUS, got %s", scores[0].Intent)
		}
		if scores[0].Confidence != ConfidenceHigh {
			t.Errorf("exact phrase with context should be high confidence, got %s", scores[0].Confidence)
		}
	})

	t.Run("context boost raises the score", func(t *testing.T) {
		with := r.Score(ctx, "how is my budget", Context{HasBudgets: true})
		without := r.Score(ctx, "how is my budget", Context{})
		if with[0].Calibrated <= without[0].Calibrated {
			t.Errorf("budget presence should boost the budget intent: %v <= %v",
				with[0].Calibrated, without[0].Calibrated)
		}
	})

	t.Run("gibberish yields UNKNOWN", func(t *testing.T) {
		scores := r.Score(ctx, "xyzzy plugh", Context{})
		if scores[0].Intent != IntentUnknown {
			t.Fatalf("expected UNKNOWN, got %s", scores[0].Intent)
		}
		if scores[0].Calibrated != 0.5 {
			t.Errorf("UNKNOWN should score 0.5, got %v", scores[0].Calibrated)
		}
	})

	t.Run("empty string yields UNKNOWN", func(t *testing.T) {
		scores := r.Score(ctx, "", Context{})
		if scores[0].Intent != IntentUnknown {
			t.Fatalf("expected UNKNOWN for empty input, got %s", scores[0].Intent)
		}
	})

	t.Run("calibrated probability is always within unit interval", func(t *testing.T) {
		inputs := []string{
			"", " ", "budget budget budget budget", "how's my spending?",
			"invest all my savings into stocks right now",
			"??!!", "a", "what is compound interest and how does it work",
		}
		for _, in := range inputs {
			for _, s := range r.Score(ctx, in, Context{HasBudgets: true, HasTransactions: true}) {
				if s.Calibrated < 0 || s.Calibrated > 1 {
					t.Errorf("input %q: calibrated %v outside [0,1]", in, s.Calibrated)
				}
			}
		}
	})

	t.Run("identical input scores identically", func(t *testing.T) {
		a := r.Score(ctx, "What's my budget status?", Context{HasBudgets: true})
		b := r.Score(ctx, "What's my budget status?", Context{HasBudgets: true})
		if a[0].Intent != b[0].Intent || a[0].Calibrated != b[0].Calibrated {
			t.Error("scoring must be deterministic for identical input")
		}
	})
}

func TestDecideHysteresis(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	// Wide gap between thresholds so a mid-confidence score routes
	// differently depending on which threshold applies.
	cfg := testRouterConfig()
	cfg.EnterThreshold = 0.90
	cfg.ExitThreshold = 0.30
	r := newTestRouter(cfg)

	midScore := []IntentScore{{
		Intent:     IntentGetBudgetStatus,
		Raw:        0.6,
		Calibrated: 0.65,
		Confidence: ConfidenceMedium,
	}}

	t.Run("fresh history uses enter threshold", func(t *testing.T) {
		hist := NewHistory(10)
		d := r.Decide(ctx, midScore, hist, now)
		if d.RouteType != RouteLLM {
			t.Errorf("0.65 under enter threshold 0.90 should route llm, got %s", d.RouteType)
		}
	})

	t.Run("second call within minStableTime uses exit threshold", func(t *testing.T) {
		hist := NewHistory(10)
		first := []IntentScore{{Intent: IntentGetSpendingSummary, Raw: 0.7, Calibrated: 0.95, Confidence: ConfidenceHigh}}
		r.Decide(ctx, first, hist, now)

		// Different raw intent, 2 seconds later: stability applies.
		d := r.Decide(ctx, midScore, hist, now.Add(2*time.Second))
		if d.RouteType != RouteGrounded {
			t.Errorf("0.65 over exit threshold 0.30 should route grounded under hysteresis, got %s", d.RouteType)
		}
	})

	t.Run("quiet samples within window trigger stability", func(t *testing.T) {
		hist := NewHistory(10)
		base := now
		for i := 0; i < 3; i++ {
			hist.Record(Sample{At: base.Add(time.Duration(i) * time.Second), Calibrated: 0.651}, IntentGetBudgetStatus)
		}
		// Force last decision outside minStableTime so only variance applies.
		d := r.Decide(ctx, midScore, hist, base.Add(10*time.Second))
		if d.RouteType != RouteGrounded {
			t.Errorf("low-variance history should apply exit threshold, got %s", d.RouteType)
		}
	})

	t.Run("history is bounded", func(t *testing.T) {
		hist := NewHistory(10)
		for i := 0; i < 25; i++ {
			hist.Record(Sample{At: now.Add(time.Duration(i) * time.Second), Calibrated: 0.5}, IntentUnknown)
		}
		if got := len(hist.RecentWithin(time.Hour, now.Add(time.Hour))); got > 10 {
			t.Errorf("history must be capped at 10, got %d", got)
		}
	})
}

func TestCalibratorFeedback(t *testing.T) {
	cal := NewCalibrator(testRouterConfig())
	start := cal.Temperature()

	cal.ApplyFeedback(Feedback{ExpectedIntent: IntentGetBudgetStatus, ActualIntent: IntentGetGoalProgress})
	if cal.Temperature() >= start {
		t.Error("misroute feedback should lower the temperature")
	}

	cooled := cal.Temperature()
	cal.ApplyFeedback(Feedback{ExpectedIntent: IntentGetBudgetStatus, ActualIntent: IntentGetBudgetStatus})
	if cal.Temperature() <= cooled {
		t.Error("correct-route feedback should raise the temperature slightly")
	}

	// Temperature stays clamped under sustained feedback.
	for i := 0; i < 200; i++ {
		cal.ApplyFeedback(Feedback{ExpectedIntent: IntentGetBudgetStatus, ActualIntent: IntentGetGoalProgress})
	}
	if cal.Temperature() < 0.5 {
		t.Errorf("temperature %v fell below the clamp floor", cal.Temperature())
	}
}
