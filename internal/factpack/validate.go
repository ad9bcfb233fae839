package factpack

import (
	"fmt"
	"time"
)

// Mismatch describes one derived field that does not equal its recomputed
// value. Validation reports; it never corrects.
type Mismatch struct {
	Field string
	Got   string
	Want  string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: got %s, want %s", m.Field, m.Got, m.Want)
}

// Validate re-derives every stored calculated field and returns the list of
// mismatches. An empty list means the pack is internally consistent.
// Callers decide whether a non-empty list is fatal.
func Validate(p *FactPack, now time.Time) []Mismatch {
	var out []Mismatch

	for i, b := range p.Budgets {
		if want := Utilization(b.Spent, b.Limit); b.Utilization != want {
			out = append(out, Mismatch{
				Field: fmt.Sprintf("budgets[%d].utilization", i),
				Got:   fmt.Sprintf("%d", b.Utilization),
				Want:  fmt.Sprintf("%d", want),
			})
		}
		if want := b.Limit - b.Spent; b.Remaining != want {
			out = append(out, Mismatch{
				Field: fmt.Sprintf("budgets[%d].remaining", i),
				Got:   fmt.Sprintf("%.2f", b.Remaining),
				Want:  fmt.Sprintf("%.2f", want),
			})
		}
		if want := StatusForUtilization(Utilization(b.Spent, b.Limit)); b.Status != want {
			out = append(out, Mismatch{
				Field: fmt.Sprintf("budgets[%d].status", i),
				Got:   string(b.Status),
				Want:  string(want),
			})
		}
	}

	for i, g := range p.Goals {
		want := GoalProgress(g.Current, g.Target)
		if g.Progress != want {
			out = append(out, Mismatch{
				Field: fmt.Sprintf("goals[%d].progress", i),
				Got:   fmt.Sprintf("%d", g.Progress),
				Want:  fmt.Sprintf("%d", want),
			})
		}
		if wantRem := g.Target - g.Current; g.Remaining != wantRem {
			out = append(out, Mismatch{
				Field: fmt.Sprintf("goals[%d].remaining", i),
				Got:   fmt.Sprintf("%.2f", g.Remaining),
				Want:  fmt.Sprintf("%.2f", wantRem),
			})
		}
		if wantStatus := StatusForGoal(want, g.Deadline, now); g.Status != wantStatus {
			out = append(out, Mismatch{
				Field: fmt.Sprintf("goals[%d].status", i),
				Got:   string(g.Status),
				Want:  string(wantStatus),
			})
		}
	}

	if p.Metadata.Hash != "" {
		if want := Hash(p); p.Metadata.Hash != want {
			out = append(out, Mismatch{
				Field: "metadata.hash",
				Got:   p.Metadata.Hash,
				Want:  want,
			})
		}
	}

	return out
}
