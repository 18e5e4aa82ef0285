package analytics

import (
	"math"
	"time"

	"carteira/internal/core"
)

// Warning and exceeded thresholds are fixed policy, in percent.
const (
	goalWarningPct  = 80
	goalExceededPct = 100
)

// GoalProgressAll derives spend-to-date for every goal against the
// expense list. Inactive goals are still tracked; activity only affects
// display filtering upstream.
func GoalProgressAll(goals []core.Goal, expenses []core.Expense, now time.Time) ([]core.GoalProgress, error) {
	out := make([]core.GoalProgress, 0, len(goals))
	for _, g := range goals {
		p, err := GoalProgress(g, expenses, now)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// GoalProgress computes one goal's window spend, capped percent and
// status. PercentUsed never exceeds 100 even on overspend; the status is
// decided on the uncapped ratio (spent >= limit means exceeded).
func GoalProgress(goal core.Goal, expenses []core.Expense, now time.Time) (core.GoalProgress, error) {
	start, err := GoalWindowStart(goal.Period, now)
	if err != nil {
		return core.GoalProgress{}, err
	}

	var spent int64
	for _, e := range expenses {
		if e.Category == goal.Category && !e.Date.Before(start) {
			spent += e.Amount.Cents
		}
	}

	var pct float64
	if goal.Limit.Cents > 0 {
		pct = 100 * float64(spent) / float64(goal.Limit.Cents)
	}
	capped := math.Round(math.Min(pct, 100)*10) / 10

	status := core.GoalStatusOK
	switch {
	case goal.Limit.Cents > 0 && spent >= goal.Limit.Cents:
		status = core.GoalStatusExceeded
	case pct >= goalWarningPct:
		status = core.GoalStatusWarning
	}

	remaining := goal.Limit.Cents - spent
	if remaining < 0 {
		remaining = 0
	}
	over := spent - goal.Limit.Cents
	if over < 0 {
		over = 0
	}

	return core.GoalProgress{
		Goal:        goal,
		Spent:       core.Money{Cents: spent},
		PercentUsed: capped,
		Remaining:   core.Money{Cents: remaining},
		OverBudget:  core.Money{Cents: over},
		Status:      status,
	}, nil
}
