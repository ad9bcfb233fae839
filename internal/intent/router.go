package intent

import (
	"context"
	"sort"
	"strings"
	"time"

	"finance-assistant/config"
	"finance-assistant/pkg/log"
)

// minViableCalibrated is the floor below which no intent is considered
// detected at all and UNKNOWN takes over.
const minViableCalibrated = 0.3

// unknownScore is the fixed calibrated probability assigned to UNKNOWN when
// nothing else clears the floor.
const unknownScore = 0.5

// Router scores utterances against the rule table and turns scores into
// route decisions with per-conversation hysteresis.
type Router struct {
	rules []compiledRule
	cal   *Calibrator
	cfg   config.RouterConfig
	l     log.Logger
}

// New creates a Router over the given rule table.
func New(rules []Rule, cal *Calibrator, cfg config.RouterConfig, l log.Logger) *Router {
	return &Router{
		rules: compileRules(rules),
		cal:   cal,
		cfg:   cfg,
		l:     l,
	}
}

// Score evaluates every rule against the normalized utterance and returns
// per-intent scores sorted best first. The result always has at least one
// entry: UNKNOWN is prepended at a fixed score when no intent clears the
// detection floor.
func (r *Router) Score(ctx context.Context, message string, pctx Context) []IntentScore {
	normalized := strings.ToLower(strings.TrimSpace(message))

	best := make(map[Intent]float64)
	for _, cr := range r.rules {
		if normalized == "" || !cr.re.MatchString(normalized) {
			continue
		}

		score := cr.rule.BaseScore
		if cr.rule.Exact != "" && normalized == strings.ToLower(cr.rule.Exact) {
			score += exactMatchBonus
		}
		if cr.rule.ContextBoost != "" && contextHas(pctx, cr.rule.ContextBoost) {
			score += contextBoostValue
		}

		// Keep the maximum score per intent across all its rules.
		if score > best[cr.rule.Intent] {
			best[cr.rule.Intent] = score
		}
	}

	scores := make([]IntentScore, 0, len(best))
	for in, raw := range best {
		calibrated := r.cal.Calibrate(raw)
		scores = append(scores, IntentScore{
			Intent:     in,
			Raw:        raw,
			Calibrated: calibrated,
			Confidence: ConfidenceFor(calibrated),
		})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Calibrated == scores[j].Calibrated {
			return scores[i].Intent < scores[j].Intent
		}
		return scores[i].Calibrated > scores[j].Calibrated
	})

	if len(scores) == 0 || scores[0].Calibrated < minViableCalibrated {
		unknown := IntentScore{
			Intent:     IntentUnknown,
			Raw:        0,
			Calibrated: unknownScore,
			Confidence: ConfidenceFor(unknownScore),
		}
		scores = append([]IntentScore{unknown}, scores...)
	}

	return scores
}

// Decide turns scores into a RouteDecision, applying hysteresis against the
// conversation's history: while a route is stable, the lower exit threshold
// keeps small confidence dips from flapping the route.
func (r *Router) Decide(ctx context.Context, scores []IntentScore, hist *History, now time.Time) RouteDecision {
	primary := scores[0]
	secondary := scores[1:]

	threshold := r.cfg.EnterThreshold
	if r.stable(hist, now) {
		threshold = r.cfg.ExitThreshold
	}

	decision := RouteDecision{
		Primary:   primary,
		Secondary: secondary,
		RouteType: r.routeFor(primary, threshold),
	}

	hist.Record(Sample{At: now, Calibrated: primary.Calibrated}, primary.Intent)

	r.l.Debugf(ctx, "route decision: intent=%s calibrated=%.3f route=%s threshold=%.2f",
		primary.Intent, primary.Calibrated, decision.RouteType, threshold)

	return decision
}

// stable reports whether hysteresis applies: either the last decision is
// recent, or the recent confidence samples are numerous and quiet.
func (r *Router) stable(hist *History, now time.Time) bool {
	last := hist.LastDecisionAt()
	if last.IsZero() {
		return false
	}
	if now.Sub(last) < r.cfg.MinStableTime {
		return true
	}

	recent := hist.RecentWithin(r.cfg.StabilityWindow, now)
	if len(recent) < 3 {
		return false
	}
	return variance(recent) < r.cfg.VarianceEpsilon
}

func variance(samples []Sample) float64 {
	var sum float64
	for _, s := range samples {
		sum += s.Calibrated
	}
	mean := sum / float64(len(samples))

	var sq float64
	for _, s := range samples {
		d := s.Calibrated - mean
		sq += d * d
	}
	return sq / float64(len(samples))
}

// routeFor maps the primary score to a route type at the given threshold.
func (r *Router) routeFor(primary IntentScore, threshold float64) RouteType {
	if primary.Intent == IntentUnknown {
		return RouteUnknown
	}
	if primary.Calibrated >= threshold {
		if primary.Intent == IntentSimpleQA {
			return RouteLLM
		}
		return RouteGrounded
	}
	if primary.Calibrated >= minViableCalibrated {
		return RouteLLM
	}
	return RouteUnknown
}

// Groundable reports whether an intent answers from FactPack data.
func Groundable(in Intent) bool {
	switch in {
	case IntentGetBudgetStatus, IntentGetSpendingSummary, IntentGetGoalProgress,
		IntentGetBalance, IntentGetRecurring, IntentGetTransactions:
		return true
	default:
		return false
	}
}
