package analytics

import (
	"time"

	"carteira/internal/core"
)

// maxDailyPoints bounds the report time series for charting, even when
// the window spans more days.
const maxDailyPoints = 30

// ComposeReport filters both ledgers to the selected window and combines
// totals, net balance, breakdowns and a bounded daily series. The view is
// fully recomputable from the inputs plus "now".
func ComposeReport(expenses []core.Expense, incomes []core.Income, window core.ReportWindow, now time.Time) (core.ReportView, error) {
	start, err := ReportWindowStart(window, now)
	if err != nil {
		return core.ReportView{}, err
	}

	var inWindowExp []core.Expense
	for _, e := range expenses {
		if !e.Date.Before(start) {
			inWindowExp = append(inWindowExp, e)
		}
	}
	var inWindowInc []core.Income
	for _, in := range incomes {
		if !in.Date.Before(start) {
			inWindowInc = append(inWindowInc, in)
		}
	}

	byCategory, expTotal := ByCategory(inWindowExp)
	byOrigin, incTotal := IncomeByOrigin(inWindowInc)

	// Elapsed days floor at 1 to keep daily averages defined on day one.
	elapsed := int(now.Sub(start).Hours() / 24)
	if now.Sub(start)%(24*time.Hour) != 0 {
		elapsed++
	}
	if elapsed < 1 {
		elapsed = 1
	}

	points := elapsed
	if points > maxDailyPoints {
		points = maxDailyPoints
	}
	daily := make([]core.DailyPoint, 0, points)
	for i := 0; i < points; i++ {
		day := start.AddDate(0, 0, i)
		var out, in int64
		for _, e := range inWindowExp {
			if sameDay(e.Date, day) {
				out += e.Amount.Cents
			}
		}
		for _, inc := range inWindowInc {
			if sameDay(inc.Date, day) {
				in += inc.Amount.Cents
			}
		}
		daily = append(daily, core.DailyPoint{
			Date:         day,
			ExpenseTotal: core.Money{Cents: out},
			IncomeTotal:  core.Money{Cents: in},
		})
	}

	return core.ReportView{
		Window:       window,
		Start:        start,
		End:          now,
		ElapsedDays:  elapsed,
		ExpenseTotal: expTotal,
		IncomeTotal:  incTotal,
		Balance:      core.Money{Cents: incTotal.Cents - expTotal.Cents},
		ExpenseCount: len(inWindowExp),
		IncomeCount:  len(inWindowInc),
		ByCategory:   byCategory,
		ByOrigin:     byOrigin,
		Daily:        daily,
		AvgExpense:   AveragePerExpense(inWindowExp),
		MedExpense:   MedianExpense(inWindowExp),
		DailyAvgOut:  expTotal.Reais() / float64(elapsed),
		DailyAvgIn:   incTotal.Reais() / float64(elapsed),
	}, nil
}

// Summary holds the dashboard's headline numbers.
type Summary struct {
	TodayTotal core.Money `json:"today_total"`
	MonthTotal core.Money `json:"month_total"`
	TodayCount int        `json:"today_count"`
}

// Summarize computes the dashboard figures: spend today, spend this
// calendar month, and today's entry count.
func Summarize(expenses []core.Expense, now time.Time) Summary {
	monthStart := MonthWindow{}.Start(now)
	var s Summary
	for _, e := range expenses {
		if sameDay(e.Date, now) {
			s.TodayTotal.Cents += e.Amount.Cents
			s.TodayCount++
		}
		if !e.Date.Before(monthStart) {
			s.MonthTotal.Cents += e.Amount.Cents
		}
	}
	return s
}
