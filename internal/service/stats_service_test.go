package service

import (
	"testing"

	"github.com/andy/gstbill/internal/domain"
)

func stubInvoice(client string, amount float64, status domain.InvoiceStatus, date string) *domain.Invoice {
	return &domain.Invoice{
		Client:      domain.Client{Name: client},
		TotalAmount: amount,
		Status:      status,
		Date:        date,
	}
}

func TestComputeStats(t *testing.T) {
	invoices := []*domain.Invoice{
		stubInvoice("Acme", 1000, domain.StatusFinished, "2026-01-10"),
		stubInvoice("Acme", 500, domain.StatusPending, "2026-01-20"),
		stubInvoice("Globex", 2000, domain.StatusDelayed, "2026-02-05"),
	}

	stats := ComputeStats(invoices)

	if stats.TotalBilled != 3500 {
		t.Errorf("TotalBilled = %v, want 3500", stats.TotalBilled)
	}
	if stats.Collected != 1000 {
		t.Errorf("Collected = %v, want 1000", stats.Collected)
	}
	if stats.Outstanding != 2500 {
		t.Errorf("Outstanding = %v, want 2500", stats.Outstanding)
	}
	if stats.CountByState[domain.StatusPending] != 1 {
		t.Errorf("pending count = %d, want 1", stats.CountByState[domain.StatusPending])
	}
	if stats.ByMonth["2026-01"] != 1500 {
		t.Errorf("ByMonth[2026-01] = %v, want 1500", stats.ByMonth["2026-01"])
	}
	if len(stats.TopClients) != 2 || stats.TopClients[0].Name != "Globex" {
		t.Errorf("TopClients = %+v, want Globex first", stats.TopClients)
	}
	if stats.TopClients[1].Count != 2 {
		t.Errorf("Acme count = %d, want 2", stats.TopClients[1].Count)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.CountTotal != 0 || stats.TotalBilled != 0 {
		t.Errorf("stats = %+v, want zeroes", stats)
	}
	if len(stats.Recent) != 0 {
		t.Errorf("Recent = %+v, want empty", stats.Recent)
	}
}

func TestComputeStatsRecentCapsAtFive(t *testing.T) {
	var invoices []*domain.Invoice
	for i := 0; i < 8; i++ {
		invoices = append(invoices, stubInvoice("C", 100, domain.StatusPending, "2026-03-01"))
	}
	stats := ComputeStats(invoices)
	if len(stats.Recent) != 5 {
		t.Errorf("len(Recent) = %d, want 5", len(stats.Recent))
	}
}
