package factpack

import (
	"testing"
	"time"

	"finance-assistant/internal/model"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func testInput() Input {
	return Input{
		Now:      testNow,
		Timezone: "UTC",
		Profile:  model.UserProfile{MonthlyIncome: 5000},
		Budgets: []model.BudgetRecord{
			{ID: "b1", Name: "Groceries", Category: "groceries", Limit: 400, Spent: 200},
			{ID: "b2", Name: "Dining", Category: "dining", Limit: 150, Spent: 149},
			{ID: "b3", Name: "Transport", Category: "transport", Limit: 100, Spent: 130},
		},
		Goals: []model.GoalRecord{
			{ID: "g1", Name: "Emergency fund", Target: 1000, Current: 800, Deadline: testNow.AddDate(0, 0, 10)},
		},
		Transactions: []model.TransactionRecord{
			{ID: "t1", Date: testNow.AddDate(0, 0, -1), Merchant: "Store A", Category: "groceries", Amount: 50},
			{ID: "t2", Date: testNow.AddDate(0, 0, -2), Merchant: "Cafe B", Category: "dining", Amount: 20},
		},
	}
}

func TestUtilization(t *testing.T) {
	tests := []struct {
		name  string
		spent float64
		limit float64
		want  int
	}{
		{"half spent", 200, 400, 50},
		{"overspent clamps at 100", 500, 400, 100},
		{"zero limit", 100, 0, 0},
		{"negative limit", 100, -50, 0},
		{"rounding up", 149, 150, 99},
		{"negative spent clamps at 0", -10, 100, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Utilization(tc.spent, tc.limit); got != tc.want {
				t.Errorf("Utilization(%v, %v) = %d, want %d", tc.spent, tc.limit, got, tc.want)
			}
		})
	}
}

func TestStatusForUtilization(t *testing.T) {
	if got := StatusForUtilization(100); got != BudgetOver {
		t.Errorf("100%% should be over, got %s", got)
	}
	if got := StatusForUtilization(96); got != BudgetAtLimit {
		t.Errorf("96%% should be at_limit, got %s", got)
	}
	if got := StatusForUtilization(94); got != BudgetUnder {
		t.Errorf("94%% should be under, got %s", got)
	}
}

func TestGoalStatus(t *testing.T) {
	t.Run("ahead of curve", func(t *testing.T) {
		// 10 days left: expected = (30-10)/30*100 = 67. Progress 80 >= 77 → ahead.
		deadline := testNow.AddDate(0, 0, 10)
		if got := StatusForGoal(80, deadline, testNow); got != GoalAhead {
			t.Errorf("expected ahead, got %s", got)
		}
	})

	t.Run("behind the curve", func(t *testing.T) {
		deadline := testNow.AddDate(0, 0, 10)
		if got := StatusForGoal(40, deadline, testNow); got != GoalBehind {
			t.Errorf("expected behind, got %s", got)
		}
	})

	t.Run("on track within band", func(t *testing.T) {
		deadline := testNow.AddDate(0, 0, 10)
		if got := StatusForGoal(67, deadline, testNow); got != GoalOnTrack {
			t.Errorf("expected on_track, got %s", got)
		}
	})

	t.Run("deadline passed incomplete", func(t *testing.T) {
		deadline := testNow.AddDate(0, 0, -1)
		if got := StatusForGoal(99, deadline, testNow); got != GoalBehind {
			t.Errorf("expected behind after deadline, got %s", got)
		}
	})

	t.Run("deadline passed complete", func(t *testing.T) {
		deadline := testNow.AddDate(0, 0, -1)
		if got := StatusForGoal(100, deadline, testNow); got != GoalAhead {
			t.Errorf("expected ahead after deadline at 100%%, got %s", got)
		}
	})

	t.Run("far deadline expects nothing", func(t *testing.T) {
		deadline := testNow.AddDate(0, 0, 60)
		if got := StatusForGoal(15, deadline, testNow); got != GoalAhead {
			t.Errorf("15%% with 60 days left should be ahead, got %s", got)
		}
	})
}

func TestBuildDerivations(t *testing.T) {
	pack := Build(testInput())

	for i, b := range pack.Budgets {
		if b.Utilization != Utilization(b.Spent, b.Limit) {
			t.Errorf("budget %d: stored utilization %d differs from derivation", i, b.Utilization)
		}
		if b.Remaining != b.Limit-b.Spent {
			t.Errorf("budget %d: stored remaining %v differs from limit-spent", i, b.Remaining)
		}
	}

	if pack.Budgets[0].Status != BudgetUnder {
		t.Errorf("groceries at 50%% should be under, got %s", pack.Budgets[0].Status)
	}
	if pack.Budgets[1].Status != BudgetAtLimit {
		t.Errorf("dining at 99%% should be at_limit, got %s", pack.Budgets[1].Status)
	}
	if pack.Budgets[2].Status != BudgetOver {
		t.Errorf("transport at 130%% should be over, got %s", pack.Budgets[2].Status)
	}

	if pack.Metadata.Hash == "" {
		t.Error("built pack must carry a hash")
	}
	if pack.TimeWindow.Period != "August 2026" {
		t.Errorf("unexpected period label %q", pack.TimeWindow.Period)
	}
}

func TestValidate(t *testing.T) {
	t.Run("clean pack has no mismatches", func(t *testing.T) {
		pack := Build(testInput())
		if got := Validate(pack, testNow); len(got) != 0 {
			t.Errorf("expected no mismatches, got %v", got)
		}
	})

	t.Run("tampered utilization is reported not corrected", func(t *testing.T) {
		pack := Build(testInput())
		pack.Budgets[0].Utilization = 75
		pack.Metadata.Hash = "" // hash check out of scope here

		mismatches := Validate(pack, testNow)
		if len(mismatches) != 1 {
			t.Fatalf("expected 1 mismatch, got %d: %v", len(mismatches), mismatches)
		}
		if mismatches[0].Field != "budgets[0].utilization" {
			t.Errorf("unexpected field %q", mismatches[0].Field)
		}
		if pack.Budgets[0].Utilization != 75 {
			t.Error("validation must not silently correct the stored value")
		}
	})

	t.Run("tampered goal status is reported", func(t *testing.T) {
		pack := Build(testInput())
		pack.Goals[0].Status = GoalBehind
		pack.Metadata.Hash = ""

		mismatches := Validate(pack, testNow)
		if len(mismatches) != 1 {
			t.Fatalf("expected 1 mismatch, got %d: %v", len(mismatches), mismatches)
		}
		if mismatches[0].Field != "goals[0].status" {
			t.Errorf("unexpected field %q", mismatches[0].Field)
		}
	})
}

func TestHash(t *testing.T) {
	t.Run("identical inputs produce identical hashes", func(t *testing.T) {
		a := Build(testInput())
		b := Build(testInput())
		if Hash(a) != Hash(b) {
			t.Error("hash must be a pure function of non-metadata fields")
		}
	})

	t.Run("metadata does not affect the hash", func(t *testing.T) {
		a := Build(testInput())
		h1 := Hash(a)
		a.Metadata.Source = "replay"
		a.Metadata.GeneratedAt = a.Metadata.GeneratedAt.Add(time.Hour)
		if Hash(a) != h1 {
			t.Error("metadata changes must not change the hash")
		}
	})

	t.Run("single leaf change changes the hash", func(t *testing.T) {
		a := Build(testInput())
		h1 := Hash(a)
		a.Budgets[0].Spent = 200.01
		if Hash(a) == h1 {
			t.Error("changing one leaf value must change the hash")
		}
	})
}
