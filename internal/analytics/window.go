package analytics

import (
	"fmt"
	"time"

	"carteira/internal/core"
)

// WindowStrategy computes the inclusive start of a reporting window.
// Each window kind encapsulates its own calendar arithmetic.
type WindowStrategy interface {
	Start(now time.Time) time.Time
}

// WeekWindow starts on the most recent Sunday at midnight (Sun=0).
type WeekWindow struct{}

func (WeekWindow) Start(now time.Time) time.Time {
	day := startOfDay(now)
	return day.AddDate(0, 0, -int(now.Weekday()))
}

// MonthWindow starts on the first day of the current calendar month.
type MonthWindow struct{}

func (MonthWindow) Start(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// QuarterWindow starts on the first day of the current 3-month block.
type QuarterWindow struct{}

func (QuarterWindow) Start(now time.Time) time.Time {
	first := time.Month((int(now.Month())-1)/3*3 + 1)
	return time.Date(now.Year(), first, 1, 0, 0, 0, 0, now.Location())
}

// YearWindow starts on January 1 of the current year.
type YearWindow struct{}

func (YearWindow) Start(now time.Time) time.Time {
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
}

var goalWindows = map[core.GoalPeriod]WindowStrategy{
	core.PeriodMonthly: MonthWindow{},
	core.PeriodWeekly:  WeekWindow{},
}

var reportWindows = map[core.ReportWindow]WindowStrategy{
	core.WindowWeek:    WeekWindow{},
	core.WindowMonth:   MonthWindow{},
	core.WindowQuarter: QuarterWindow{},
	core.WindowYear:    YearWindow{},
}

// GoalWindowStart resolves the current window start for a goal period.
func GoalWindowStart(p core.GoalPeriod, now time.Time) (time.Time, error) {
	s, ok := goalWindows[p]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown goal period: %s", p)
	}
	return s.Start(now), nil
}

// ReportWindowStart resolves the window start for a report selection.
func ReportWindowStart(w core.ReportWindow, now time.Time) (time.Time, error) {
	s, ok := reportWindows[w]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown report window: %s", w)
	}
	return s.Start(now), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
