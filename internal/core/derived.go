package core

import "time"

// Derived view models. These are engine-owned, recomputed on every call
// from the raw lists plus "now", and never persisted.

const (
	GoalStatusOK       GoalStatus = "ok"
	GoalStatusWarning  GoalStatus = "warning"
	GoalStatusExceeded GoalStatus = "exceeded"

	ReminderCompleted ReminderStatus = "completed"
	ReminderOverdue   ReminderStatus = "overdue"
	ReminderUrgent    ReminderStatus = "urgent"
	ReminderNormal    ReminderStatus = "normal"
)

const (
	WindowWeek    ReportWindow = "week"
	WindowMonth   ReportWindow = "month"
	WindowQuarter ReportWindow = "quarter"
	WindowYear    ReportWindow = "year"
)

type (
	GoalStatus     string
	ReminderStatus string
	ReportWindow   string

	// CategoryBreakdown is one row of a percentage-annotated grouping,
	// sorted descending by total. Rank starts at 1.
	CategoryBreakdown struct {
		Name           string `json:"name"`
		Total          Money  `json:"total"`
		PercentOfTotal int    `json:"percent_of_total"`
		Rank           int    `json:"rank"`
	}

	// PeriodBucket is a labeled total for one time slot (weekday or month).
	// ChangePct is set only on trend buckets whose previous bucket had a
	// non-zero total.
	PeriodBucket struct {
		Label     string   `json:"label"`
		Total     Money    `json:"total"`
		ChangePct *float64 `json:"change_pct,omitempty"`
	}

	// GoalProgress is the spend-to-date of one goal inside its current
	// window. PercentUsed is capped at 100 so a progress bar never
	// overflows; OverBudget carries the uncapped excess.
	GoalProgress struct {
		Goal        Goal       `json:"goal"`
		Spent       Money      `json:"spent"`
		PercentUsed float64    `json:"percent_used"`
		Remaining   Money      `json:"remaining"`
		OverBudget  Money      `json:"over_budget"`
		Status      GoalStatus `json:"status"`
	}

	// ReminderUrgency classifies one reminder against "now".
	ReminderUrgency struct {
		Reminder     Reminder       `json:"reminder"`
		DaysUntilDue int            `json:"days_until_due"`
		Status       ReminderStatus `json:"status"`
	}

	// DailyPoint is one day of the report time series.
	DailyPoint struct {
		Date         time.Time `json:"date"`
		ExpenseTotal Money     `json:"expense_total"`
		IncomeTotal  Money     `json:"income_total"`
	}

	// ReportView combines ledger aggregates over one window.
	ReportView struct {
		Window       ReportWindow        `json:"window"`
		Start        time.Time           `json:"start"`
		End          time.Time           `json:"end"`
		ElapsedDays  int                 `json:"elapsed_days"`
		ExpenseTotal Money               `json:"expense_total"`
		IncomeTotal  Money               `json:"income_total"`
		Balance      Money               `json:"balance"`
		ExpenseCount int                 `json:"expense_count"`
		IncomeCount  int                 `json:"income_count"`
		ByCategory   []CategoryBreakdown `json:"by_category"`
		ByOrigin     []CategoryBreakdown `json:"by_origin"`
		Daily        []DailyPoint        `json:"daily"`
		AvgExpense   Money               `json:"avg_expense"`
		MedExpense   Money               `json:"median_expense"`
		DailyAvgOut  float64             `json:"daily_avg_expense"`
		DailyAvgIn   float64             `json:"daily_avg_income"`
	}
)

func (w ReportWindow) Valid() bool {
	switch w {
	case WindowWeek, WindowMonth, WindowQuarter, WindowYear:
		return true
	}
	return false
}
