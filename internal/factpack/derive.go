package factpack

import (
	"math"
	"time"
)

// expectedProgressHorizon is the span of the linear expected-progress curve:
// a goal due in 30+ days expects 0% progress, a goal due today expects 100%.
const expectedProgressHorizonDays = 30.0

// clampPercent clamps a rounded percentage into [0,100].
func clampPercent(v float64) int {
	p := int(math.Round(v))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Utilization computes budget utilization percent. A non-positive limit
// yields 0.
func Utilization(spent, limit float64) int {
	if limit <= 0 {
		return 0
	}
	return clampPercent(spent / limit * 100)
}

// StatusForUtilization maps a utilization percent to a budget status.
func StatusForUtilization(utilization int) BudgetStatus {
	switch {
	case utilization >= 100:
		return BudgetOver
	case utilization >= 95:
		return BudgetAtLimit
	default:
		return BudgetUnder
	}
}

// GoalProgress computes goal progress percent. A non-positive target yields 0.
func GoalProgress(current, target float64) int {
	if target <= 0 {
		return 0
	}
	return clampPercent(current / target * 100)
}

// ExpectedProgress computes the expected progress percent for a goal with
// the given deadline, linearly decaying over the 30-day horizon.
func ExpectedProgress(deadline, now time.Time) int {
	daysLeft := deadline.Sub(now).Hours() / 24
	if daysLeft < 0 {
		daysLeft = 0
	}
	return clampPercent((expectedProgressHorizonDays - daysLeft) / expectedProgressHorizonDays * 100)
}

// StatusForGoal compares actual progress to the expected-progress curve.
// A passed deadline is ahead only when the goal is fully funded.
func StatusForGoal(progress int, deadline, now time.Time) GoalStatus {
	if deadline.IsZero() {
		// No deadline: any progress counts as on track.
		return GoalOnTrack
	}

	if now.After(deadline) {
		if progress >= 100 {
			return GoalAhead
		}
		return GoalBehind
	}

	expected := ExpectedProgress(deadline, now)
	switch {
	case progress >= expected+10:
		return GoalAhead
	case progress < expected-10:
		return GoalBehind
	default:
		return GoalOnTrack
	}
}
