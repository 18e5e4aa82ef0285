package analytics

import (
	"math"
	"sort"
	"time"

	"carteira/internal/core"
)

// urgentHorizonDays is the due-date proximity that marks a reminder urgent.
const urgentHorizonDays = 3

// ClassifyReminder derives the urgency of one reminder against "now".
// A completed reminder is always "completed" regardless of date.
func ClassifyReminder(r core.Reminder, now time.Time) core.ReminderUrgency {
	days := int(math.Ceil(r.DueDate.Sub(now).Hours() / 24))
	u := core.ReminderUrgency{Reminder: r, DaysUntilDue: days}

	switch {
	case r.Done:
		u.Status = core.ReminderCompleted
	case days < 0:
		u.Status = core.ReminderOverdue
	case days <= urgentHorizonDays:
		u.Status = core.ReminderUrgent
	default:
		u.Status = core.ReminderNormal
	}
	return u
}

// SortForDisplay returns a copy ordered for lists: incomplete before
// completed, then ascending by due date within each group. The input is
// left untouched.
func SortForDisplay(reminders []core.Reminder) []core.Reminder {
	out := make([]core.Reminder, len(reminders))
	copy(out, reminders)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Done != out[j].Done {
			return !out[i].Done
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// PendingCounts tallies overdue and urgent reminders among the incomplete
// set, for badge counters.
func PendingCounts(reminders []core.Reminder, now time.Time) (overdue, urgent int) {
	for _, r := range reminders {
		if r.Done {
			continue
		}
		switch ClassifyReminder(r, now).Status {
		case core.ReminderOverdue:
			overdue++
		case core.ReminderUrgent:
			urgent++
		}
	}
	return overdue, urgent
}
