package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/gstbill/internal/app"
	"github.com/andy/gstbill/internal/domain"
	"github.com/andy/gstbill/internal/render"
)

type invoicesMode int

const (
	invoicesModeList invoicesMode = iota
	invoicesModeConfirmDelete
	invoicesModeExport
	invoicesModePreview
)

var exportFormats = []render.Format{render.FormatPDF, render.FormatHTML, render.FormatTxt}
var exportCopies = []string{"all", "original", "duplicate", "triplicate"}

// InvoicesModel lists invoices with status, export and delete actions
type InvoicesModel struct {
	app  *app.App
	mode invoicesMode

	filtered []*domain.Invoice
	cursor   int

	searching bool
	search    textinput.Model

	// export picker state
	formatIdx int
	copiesIdx int

	preview  viewport.Model
	lastPath string
	width    int
	height   int
}

// NewInvoicesModel creates the invoices screen
func NewInvoicesModel(a *app.App) *InvoicesModel {
	search := textinput.New()
	search.Placeholder = "invoice number or client"
	search.CharLimit = 60

	return &InvoicesModel{
		app:     a,
		search:  search,
		preview: viewport.New(80, 20),
	}
}

// Init implements tea.Model
func (m *InvoicesModel) Init() tea.Cmd {
	m.refilter()
	return nil
}

// IsCapturingInput implements InputCapturer
func (m *InvoicesModel) IsCapturingInput() bool {
	return m.searching || m.mode != invoicesModeList
}

func (m *InvoicesModel) refilter() {
	query := m.search.Value()
	m.filtered = m.filtered[:0]
	for _, inv := range m.app.Invoices() {
		if matchesSearch(query, inv.InvoiceNumber, inv.Client.Name) {
			m.filtered = append(m.filtered, inv)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *InvoicesModel) selected() *domain.Invoice {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	return m.filtered[m.cursor]
}

// Update implements tea.Model
func (m *InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = msg.Width - 10
		m.preview.Height = msg.Height - 12
		return m, nil

	case dataLoadedMsg:
		m.refilter()
		return m, nil

	case invoiceMutatedMsg:
		return m, func() tea.Msg { return RefreshDataMsg{} }

	case exportDoneMsg:
		m.mode = invoicesModeList
		if msg.err != nil {
			return m, func() tea.Msg { return ErrorMsg{Err: msg.err} }
		}
		m.lastPath = msg.path
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case invoicesModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case invoicesModeExport:
			return m.updateExport(msg)
		case invoicesModePreview:
			return m.updatePreview(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *InvoicesModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			if msg.String() == "esc" {
				m.search.SetValue("")
				m.refilter()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.refilter()
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "/":
		m.searching = true
		m.lastPath = ""
		return m, m.search.Focus()
	case "enter", "e":
		if inv := m.selected(); inv != nil {
			return m, func() tea.Msg { return EditInvoiceMsg{Invoice: inv} }
		}
	case "s":
		if inv := m.selected(); inv != nil {
			return m, m.cycleStatusCmd(inv)
		}
	case "x":
		if m.selected() != nil {
			m.mode = invoicesModeConfirmDelete
		}
	case "p":
		if m.selected() != nil {
			m.mode = invoicesModeExport
		}
	case "v":
		if inv := m.selected(); inv != nil {
			m.preview.SetContent(render.Text(inv, m.app.Config.Business, render.AllCopies))
			m.preview.GotoTop()
			m.mode = invoicesModePreview
		}
	case "R":
		return m, func() tea.Msg { return RefreshDataMsg{} }
	}
	return m, nil
}

func (m *InvoicesModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = invoicesModeList
		inv := m.selected()
		if inv == nil {
			return m, nil
		}
		a := m.app
		return m, func() tea.Msg {
			if err := a.InvoiceService.DeleteInvoice(context.Background(), inv.ID); err != nil {
				return ErrorMsg{Err: err}
			}
			return invoiceMutatedMsg{}
		}
	case "n", "N", "esc":
		m.mode = invoicesModeList
	}
	return m, nil
}

func (m *InvoicesModel) updateExport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = invoicesModeList
	case "left", "h":
		m.formatIdx = (m.formatIdx - 1 + len(exportFormats)) % len(exportFormats)
	case "right", "l":
		m.formatIdx = (m.formatIdx + 1) % len(exportFormats)
	case "up", "k":
		m.copiesIdx = (m.copiesIdx - 1 + len(exportCopies)) % len(exportCopies)
	case "down", "j":
		m.copiesIdx = (m.copiesIdx + 1) % len(exportCopies)
	case "enter":
		inv := m.selected()
		if inv == nil {
			m.mode = invoicesModeList
			return m, nil
		}
		format := exportFormats[m.formatIdx]
		copies, err := render.CopySet(exportCopies[m.copiesIdx])
		if err != nil {
			return m, func() tea.Msg { return exportDoneMsg{err: err} }
		}
		biz := m.app.Config.Business
		dir := m.app.Config.Export.OutputDir
		return m, func() tea.Msg {
			path, err := render.Export(inv, biz, format, copies, dir)
			return exportDoneMsg{path: path, err: err}
		}
	}
	return m, nil
}

func (m *InvoicesModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "v":
		m.mode = invoicesModeList
		return m, nil
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m *InvoicesModel) cycleStatusCmd(inv *domain.Invoice) tea.Cmd {
	next := inv.Status.Next()
	a := m.app
	return func() tea.Msg {
		if err := a.InvoiceService.SetStatus(context.Background(), inv.ID, next); err != nil {
			return ErrorMsg{Err: err}
		}
		return invoiceMutatedMsg{}
	}
}

// View implements tea.Model
func (m *InvoicesModel) View() string {
	switch m.mode {
	case invoicesModeConfirmDelete:
		inv := m.selected()
		name := ""
		if inv != nil {
			name = inv.InvoiceNumber
		}
		return boxStyle.Render(fmt.Sprintf("Delete invoice %s?\n\nThis cannot be undone.\n\n[y] delete   [n] cancel", name))

	case invoicesModeExport:
		var b strings.Builder
		b.WriteString(titleStyle.Render("Export invoice") + "\n\n")
		b.WriteString("Format:  ")
		for i, f := range exportFormats {
			label := " " + strings.ToUpper(string(f)) + " "
			if i == m.formatIdx {
				label = selectedStyle.Render(label)
			}
			b.WriteString(label + " ")
		}
		b.WriteString("\n\nCopies:\n")
		for i, c := range exportCopies {
			line := "  " + c
			if i == m.copiesIdx {
				line = selectedStyle.Render("> " + c)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString(helpStyle.Render("\n←/→ format  ↑/↓ copies  enter: export  esc: cancel"))
		return b.String()

	case invoicesModePreview:
		return m.preview.View() + "\n" + helpStyle.Render("↑/↓ scroll  esc: close")
	}

	var b strings.Builder
	if m.searching || m.search.Value() != "" {
		b.WriteString("Search: " + m.search.View() + "\n\n")
	}

	if len(m.filtered) == 0 {
		if m.search.Value() != "" {
			b.WriteString(subtitleStyle.Render("No invoices match the search."))
		} else {
			b.WriteString(subtitleStyle.Render("No invoices yet. Press n to create one."))
		}
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %-14s %-10s %-24s %14s  %s\n",
		"Number", "Date", "Client", "Amount", "Status"))
	for i, inv := range m.filtered {
		num := inv.InvoiceNumber
		if num == "" {
			num = "(draft)"
		}
		line := fmt.Sprintf("%-14s %-10s %-24s %14s  %s",
			truncateStr(num, 14),
			domain.FormatDate(inv.Date),
			truncateStr(inv.Client.Name, 24),
			formatAmount(inv.TotalAmount),
			statusBadge(inv.Status),
		)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if m.lastPath != "" {
		b.WriteString("\n" + statusFinishedStyle.Render("Exported to "+m.lastPath) + "\n")
	}

	b.WriteString(helpStyle.Render("\nenter: edit  s: status  v: preview  p: export  x: delete  /: search  R: reload"))
	return b.String()
}
