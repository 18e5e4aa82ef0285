// Package analytics is the ledger derivation engine: pure functions that
// turn raw expense/income/goal/reminder lists plus "now" into read-only
// view models. No caller input is ever mutated and no state is kept
// between calls, so concurrent recomputation is safe by construction.
package analytics

import (
	"math"
	"sort"
	"time"

	"carteira/internal/core"
)

// WeekdayLabels are the fixed Sun-Sat bucket labels.
var WeekdayLabels = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

var monthLabels = [12]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

type labeledAmount struct {
	label string
	cents int64
}

// breakdownOf groups totals by label, keeping first-seen order for ties,
// and annotates each row with a rounded percent of the grand total. An
// empty input yields an empty breakdown and a zero total, not an error.
func breakdownOf(items []labeledAmount) ([]core.CategoryBreakdown, core.Money) {
	totals := make(map[string]int64)
	var order []string
	var grand int64

	for _, it := range items {
		if _, seen := totals[it.label]; !seen {
			order = append(order, it.label)
		}
		totals[it.label] += it.cents
		grand += it.cents
	}

	rows := make([]core.CategoryBreakdown, 0, len(order))
	for _, name := range order {
		pct := 0
		if grand > 0 {
			pct = int(math.Round(100 * float64(totals[name]) / float64(grand)))
		}
		rows = append(rows, core.CategoryBreakdown{
			Name:           name,
			Total:          core.Money{Cents: totals[name]},
			PercentOfTotal: pct,
		})
	}

	// Stable sort keeps insertion order for equal totals.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.Cents > rows[j].Total.Cents
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows, core.Money{Cents: grand}
}

// ByCategory sums expense amounts grouped by category, sorted descending
// by total. The second return is the grand total.
func ByCategory(expenses []core.Expense) ([]core.CategoryBreakdown, core.Money) {
	items := make([]labeledAmount, len(expenses))
	for i, e := range expenses {
		items[i] = labeledAmount{label: e.Category, cents: e.Amount.Cents}
	}
	return breakdownOf(items)
}

// IncomeByOrigin sums income amounts grouped by origin.
func IncomeByOrigin(incomes []core.Income) ([]core.CategoryBreakdown, core.Money) {
	items := make([]labeledAmount, len(incomes))
	for i, in := range incomes {
		items[i] = labeledAmount{label: string(in.Origin), cents: in.Amount.Cents}
	}
	return breakdownOf(items)
}

// ByWeekday buckets expense totals by the day of week of each entry.
// All seven buckets are always present, zeroed when empty.
func ByWeekday(expenses []core.Expense) []core.PeriodBucket {
	var cents [7]int64
	for _, e := range expenses {
		cents[int(e.Date.Weekday())] += e.Amount.Cents
	}
	buckets := make([]core.PeriodBucket, 7)
	for i := range buckets {
		buckets[i] = core.PeriodBucket{Label: WeekdayLabels[i], Total: core.Money{Cents: cents[i]}}
	}
	return buckets
}

// MonthlyTrend computes per-month totals for the trailing monthsBack
// months including the current one. Each bucket covers
// [monthStart, nextMonthStart). ChangePct is left nil when the previous
// month's total is zero, so an all-zero history carries no change figures.
func MonthlyTrend(expenses []core.Expense, monthsBack int, now time.Time) []core.PeriodBucket {
	if monthsBack < 1 {
		monthsBack = 1
	}

	buckets := make([]core.PeriodBucket, 0, monthsBack)
	var prev int64
	for i := monthsBack - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		next := start.AddDate(0, 1, 0)

		var total int64
		for _, e := range expenses {
			if !e.Date.Before(start) && e.Date.Before(next) {
				total += e.Amount.Cents
			}
		}

		b := core.PeriodBucket{
			Label: monthLabels[start.Month()-1],
			Total: core.Money{Cents: total},
		}
		if i < monthsBack-1 && prev != 0 {
			pct := float64(total-prev) / float64(prev) * 100
			b.ChangePct = &pct
		}
		prev = total
		buckets = append(buckets, b)
	}
	return buckets
}

// AveragePerExpense is grandTotal / count, guarding the empty case.
func AveragePerExpense(expenses []core.Expense) core.Money {
	var total int64
	for _, e := range expenses {
		total += e.Amount.Cents
	}
	n := int64(len(expenses))
	if n < 1 {
		n = 1
	}
	return core.Money{Cents: total / n}
}

// MedianExpense is the middle amount, or the mean of the middle pair for
// an even count. Empty input yields zero.
func MedianExpense(expenses []core.Expense) core.Money {
	if len(expenses) == 0 {
		return core.Money{}
	}
	cents := make([]int64, len(expenses))
	for i, e := range expenses {
		cents[i] = e.Amount.Cents
	}
	sort.Slice(cents, func(i, j int) bool { return cents[i] < cents[j] })

	mid := len(cents) / 2
	if len(cents)%2 == 1 {
		return core.Money{Cents: cents[mid]}
	}
	return core.Money{Cents: (cents[mid-1] + cents[mid]) / 2}
}
