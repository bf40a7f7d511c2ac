package core

import "time"

// dueSoonWindowDays is the inclusive window ahead of today in which an
// invoice is flagged as due soon.
const dueSoonWindowDays = 7

// dateOnly truncates t to its calendar date, normalized to UTC so that dates
// observed in different locations compare by their printed value.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DeriveStatus maps a due date and the current time to a lifecycle status.
// Comparison uses calendar-day granularity: a due date of today is due-soon,
// not overdue, regardless of time of day. The current time is an explicit
// parameter so the function stays pure.
func DeriveStatus(dueDate *time.Time, now time.Time) InvoiceStatus {
	if dueDate == nil {
		return StatusSent
	}

	due := dateOnly(*dueDate)
	today := dateOnly(now)

	switch {
	case due.Before(today):
		return StatusOverdue
	case !due.After(today.AddDate(0, 0, dueSoonWindowDays)):
		return StatusDueSoon
	default:
		return StatusSent
	}
}

// AnnotateStatuses derives and sets the status of every invoice in place,
// as of the given time.
func AnnotateStatuses(invoices []Invoice, now time.Time) {
	for i := range invoices {
		invoices[i].Status = DeriveStatus(invoices[i].DueDate, now)
	}
}
