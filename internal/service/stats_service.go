package service

import (
	"sort"
	"time"

	"github.com/andy/gstbill/internal/domain"
)

// ClientRevenue is one row of the top-clients table
type ClientRevenue struct {
	Name  string
	Total float64
	Count int
}

// DashboardStats provides billing analytics over the loaded invoices
type DashboardStats struct {
	TotalBilled  float64 // every invoice regardless of status
	Collected    float64 // finished invoices
	Outstanding  float64 // pending plus delayed invoices
	CountTotal   int
	CountByState map[domain.InvoiceStatus]int
	ByMonth      map[string]float64 // "2026-01" -> billed amount
	TopClients   []ClientRevenue
	Recent       []*domain.Invoice // newest five
}

// ComputeStats aggregates the dashboard figures. The input is the already
// loaded invoice list, so the dashboard never issues its own queries.
func ComputeStats(invoices []*domain.Invoice) *DashboardStats {
	stats := &DashboardStats{
		CountByState: make(map[domain.InvoiceStatus]int),
		ByMonth:      make(map[string]float64),
	}

	byClient := make(map[string]*ClientRevenue)
	for _, inv := range invoices {
		amount := inv.TotalAmount
		stats.TotalBilled += amount
		stats.CountTotal++
		stats.CountByState[inv.Status]++

		switch inv.Status {
		case domain.StatusFinished:
			stats.Collected += amount
		default:
			stats.Outstanding += amount
		}

		if month := monthKey(inv); month != "" {
			stats.ByMonth[month] += amount
		}

		name := inv.Client.Name
		if name == "" {
			continue
		}
		cr, ok := byClient[name]
		if !ok {
			cr = &ClientRevenue{Name: name}
			byClient[name] = cr
		}
		cr.Total += amount
		cr.Count++
	}

	for _, cr := range byClient {
		stats.TopClients = append(stats.TopClients, *cr)
	}
	sort.Slice(stats.TopClients, func(i, j int) bool {
		if stats.TopClients[i].Total != stats.TopClients[j].Total {
			return stats.TopClients[i].Total > stats.TopClients[j].Total
		}
		return stats.TopClients[i].Name < stats.TopClients[j].Name
	})
	if len(stats.TopClients) > 5 {
		stats.TopClients = stats.TopClients[:5]
	}

	stats.Recent = invoices
	if len(stats.Recent) > 5 {
		stats.Recent = stats.Recent[:5]
	}

	return stats
}

// monthKey buckets an invoice by its issue date, falling back to the row
// creation time when the date field is blank or malformed.
func monthKey(inv *domain.Invoice) string {
	if t, err := time.Parse("2006-01-02", inv.Date); err == nil {
		return t.Format("2006-01")
	}
	if !inv.CreatedAt.IsZero() {
		return inv.CreatedAt.Format("2006-01")
	}
	return ""
}
