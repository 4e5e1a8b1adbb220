package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/gstbill/internal/app"
	"github.com/andy/gstbill/internal/domain"
	"github.com/andy/gstbill/internal/service"
)

// DashboardModel shows billing analytics over the loaded invoices
type DashboardModel struct {
	app   *app.App
	stats *service.DashboardStats
}

// NewDashboardModel creates the dashboard screen
func NewDashboardModel(a *app.App) *DashboardModel {
	return &DashboardModel{app: a}
}

// Init implements tea.Model
func (m *DashboardModel) Init() tea.Cmd {
	m.recompute()
	return nil
}

func (m *DashboardModel) recompute() {
	m.stats = service.ComputeStats(m.app.Invoices())
}

// Update implements tea.Model
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case dataLoadedMsg:
		m.recompute()
	}
	return m, nil
}

// View implements tea.Model
func (m *DashboardModel) View() string {
	if m.stats == nil {
		return "Loading..."
	}
	s := m.stats

	var b strings.Builder
	if u := m.app.User(); u != nil {
		b.WriteString(subtitleStyle.Render("Signed in as "+u.Email) + "\n\n")
	}

	cards := []string{
		fmt.Sprintf("Total Billed\n%s", amountStyle.Render(formatAmount(s.TotalBilled))),
		fmt.Sprintf("Collected\n%s", statusFinishedStyle.Render(formatAmount(s.Collected))),
		fmt.Sprintf("Outstanding\n%s", statusPendingStyle.Render(formatAmount(s.Outstanding))),
	}
	for _, c := range cards {
		b.WriteString(boxStyle.Render(c))
		b.WriteString("  ")
	}
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Invoices") + "\n")
	b.WriteString(fmt.Sprintf("  %d total:  %s %d   %s %d   %s %d\n\n",
		s.CountTotal,
		statusBadge(domain.StatusPending), s.CountByState[domain.StatusPending],
		statusBadge(domain.StatusFinished), s.CountByState[domain.StatusFinished],
		statusBadge(domain.StatusDelayed), s.CountByState[domain.StatusDelayed],
	))

	if len(s.Recent) > 0 {
		b.WriteString(titleStyle.Render("Recent") + "\n")
		for _, inv := range s.Recent {
			num := inv.InvoiceNumber
			if num == "" {
				num = "(draft)"
			}
			b.WriteString(fmt.Sprintf("  %-14s %-24s %12s  %s\n",
				truncateStr(num, 14),
				truncateStr(inv.Client.Name, 24),
				formatAmount(inv.TotalAmount),
				statusBadge(inv.Status),
			))
		}
		b.WriteString("\n")
	}

	if len(s.TopClients) > 0 {
		b.WriteString(titleStyle.Render("Top Clients") + "\n")
		for _, cr := range s.TopClients {
			b.WriteString(fmt.Sprintf("  %-24s %12s  (%d invoices)\n",
				truncateStr(cr.Name, 24), formatAmount(cr.Total), cr.Count))
		}
		b.WriteString("\n")
	}

	if len(s.ByMonth) > 0 {
		b.WriteString(titleStyle.Render("Billed by Month") + "\n")
		months := make([]string, 0, len(s.ByMonth))
		for mo := range s.ByMonth {
			months = append(months, mo)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(months)))
		if len(months) > 6 {
			months = months[:6]
		}
		for _, mo := range months {
			b.WriteString(fmt.Sprintf("  %s  %12s\n", mo, formatAmount(s.ByMonth[mo])))
		}
	}

	if s.CountTotal == 0 {
		b.WriteString(subtitleStyle.Render("No invoices yet. Press n to create your first invoice."))
	}

	return b.String()
}
