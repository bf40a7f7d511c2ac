package core

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

type SortKey string

const (
	SortByDate   SortKey = "date"   // invoice date, newest first
	SortByAmount SortKey = "amount" // total, highest first
	SortByClient SortKey = "client" // client name, A-Z
	SortByStatus SortKey = "status" // status label, A-Z
)

// StatusAny is the status filter value that matches every status.
const StatusAny = "all"

// ListQuery describes a filtered, sorted view over an owner's invoices.
// Invoices must already carry derived statuses (see AnnotateStatuses).
type ListQuery struct {
	Search string
	Status string // StatusAny (or empty) matches all
	SortBy SortKey
}

// Summary holds the aggregates shown alongside an invoice list. They are
// always computed over the full unfiltered collection, not the filtered view.
type Summary struct {
	Count        int             `json:"count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	OverdueCount int             `json:"overdue_count"`
	DueSoonCount int             `json:"due_soon_count"`
}

func matchesSearch(inv Invoice, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(inv.ClientName), strings.ToLower(term)) {
		return true
	}
	// Invoice number matching is a case-sensitive substring check on the
	// stored numeric string.
	return inv.InvoiceNumber != "" && strings.Contains(inv.InvoiceNumber, term)
}

// FilterInvoices keeps invoices matching the query's search text and status
// filter, preserving input order. An empty search matches everything.
func FilterInvoices(invoices []Invoice, q ListQuery) []Invoice {
	out := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if !matchesSearch(inv, q.Search) {
			continue
		}
		if q.Status != "" && q.Status != StatusAny && string(inv.Status) != q.Status {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// SortInvoices sorts in place by the given key. The sort is stable: ties keep
// their input order. An unknown key leaves the slice untouched.
func SortInvoices(invoices []Invoice, key SortKey) {
	switch key {
	case SortByDate:
		sort.SliceStable(invoices, func(i, j int) bool {
			return invoices[i].InvoiceDate.After(invoices[j].InvoiceDate)
		})
	case SortByAmount:
		sort.SliceStable(invoices, func(i, j int) bool {
			return invoices[i].Total.GreaterThan(invoices[j].Total)
		})
	case SortByClient:
		sort.SliceStable(invoices, func(i, j int) bool {
			return invoices[i].ClientName < invoices[j].ClientName
		})
	case SortByStatus:
		sort.SliceStable(invoices, func(i, j int) bool {
			return invoices[i].Status < invoices[j].Status
		})
	}
}

// Summarize computes list aggregates over the full collection.
func Summarize(invoices []Invoice) Summary {
	s := Summary{Count: len(invoices), TotalAmount: decimal.Zero}
	for _, inv := range invoices {
		s.TotalAmount = s.TotalAmount.Add(inv.Total)
		switch inv.Status {
		case StatusOverdue:
			s.OverdueCount++
		case StatusDueSoon:
			s.DueSoonCount++
		}
	}
	return s
}
