package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/gstbill/internal/app"
	"github.com/andy/gstbill/internal/domain"
)

type clientsMode int

const (
	clientsModeList clientsMode = iota
	clientsModeForm
	clientsModeDetails
	clientsModeConfirmDelete
)

// Field indices for the client form
const (
	clientFieldName = iota
	clientFieldEmail
	clientFieldPhone
	clientFieldAddress
	clientFieldGSTIN
	clientFieldStateName
	clientFieldStateCode
	clientFieldCount
)

var clientFieldLabels = [clientFieldCount]string{
	"Name", "Email", "Phone", "Address", "GSTIN/UIN", "State Name", "State Code",
}

// ClientsModel lists clients with a detail view and an edit form
type ClientsModel struct {
	app  *app.App
	mode clientsMode

	filtered []*domain.Client
	cursor   int

	searching bool
	search    textinput.Model

	// form state
	inputs  [clientFieldCount]textinput.Model
	focus   int
	editing *domain.Client // nil when creating
	formErr string
}

// NewClientsModel creates the clients screen
func NewClientsModel(a *app.App) *ClientsModel {
	search := textinput.New()
	search.Placeholder = "name, email or GSTIN"
	search.CharLimit = 60

	m := &ClientsModel{app: a, search: search}
	for i := range m.inputs {
		in := textinput.New()
		in.CharLimit = 200
		in.Placeholder = clientFieldLabels[i]
		m.inputs[i] = in
	}
	return m
}

// Init implements tea.Model
func (m *ClientsModel) Init() tea.Cmd {
	m.refilter()
	return nil
}

// IsCapturingInput implements InputCapturer
func (m *ClientsModel) IsCapturingInput() bool {
	return m.searching || m.mode == clientsModeForm || m.mode == clientsModeConfirmDelete
}

func (m *ClientsModel) refilter() {
	query := m.search.Value()
	m.filtered = m.filtered[:0]
	for _, c := range m.app.Clients() {
		if matchesSearch(query, c.Name, c.Email, c.GSTIN) {
			m.filtered = append(m.filtered, c)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *ClientsModel) selected() *domain.Client {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	return m.filtered[m.cursor]
}

func (m *ClientsModel) openForm(c *domain.Client) tea.Cmd {
	m.mode = clientsModeForm
	m.editing = c
	m.formErr = ""
	values := [clientFieldCount]string{}
	if c != nil {
		values = [clientFieldCount]string{
			c.Name, c.Email, c.Phone, c.Address, c.GSTIN, c.StateName, c.StateCode,
		}
	}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].Blur()
	}
	m.focus = clientFieldName
	return m.inputs[m.focus].Focus()
}

// Update implements tea.Model
func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dataLoadedMsg:
		m.refilter()
		return m, nil

	case clientSavedMsg, clientDeletedMsg:
		m.mode = clientsModeList
		return m, func() tea.Msg { return RefreshDataMsg{} }

	case tea.KeyMsg:
		switch m.mode {
		case clientsModeForm:
			return m.updateForm(msg)
		case clientsModeDetails:
			return m.updateDetails(msg)
		case clientsModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *ClientsModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		return m, m.search.Focus()
	case "a":
		return m, m.openForm(nil)
	case "e":
		if c := m.selected(); c != nil {
			return m, m.openForm(c)
		}
	case "enter":
		if m.selected() != nil {
			m.mode = clientsModeDetails
		}
	case "x":
		if m.selected() != nil {
			m.mode = clientsModeConfirmDelete
		}
	case "b":
		if c := m.selected(); c != nil {
			return m, func() tea.Msg { return NewInvoiceMsg{Prefill: c} }
		}
	}
	return m, nil
}

func (m *ClientsModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = clientsModeList
		return m, nil
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % clientFieldCount)
	case "shift+tab", "up":
		return m, m.setFocus((m.focus - 1 + clientFieldCount) % clientFieldCount)
	case "enter":
		if m.focus < clientFieldCount-1 {
			return m, m.setFocus(m.focus + 1)
		}
		return m, m.saveForm()
	case "ctrl+s":
		return m, m.saveForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m *ClientsModel) saveForm() tea.Cmd {
	client := domain.NewClient(m.inputs[clientFieldName].Value())
	client.Email = strings.TrimSpace(m.inputs[clientFieldEmail].Value())
	client.Phone = strings.TrimSpace(m.inputs[clientFieldPhone].Value())
	client.Address = m.inputs[clientFieldAddress].Value()
	client.GSTIN = strings.TrimSpace(m.inputs[clientFieldGSTIN].Value())
	client.StateName = strings.TrimSpace(m.inputs[clientFieldStateName].Value())
	client.StateCode = strings.TrimSpace(m.inputs[clientFieldStateCode].Value())
	if m.editing != nil {
		client.ID = m.editing.ID
		client.CreatedAt = m.editing.CreatedAt
	}

	if err := client.Validate(); err != nil {
		m.formErr = err.Error()
		return nil
	}

	a := m.app
	return func() tea.Msg {
		if err := a.InvoiceService.SaveClient(context.Background(), a.UserID(), client); err != nil {
			return ErrorMsg{Err: err}
		}
		return clientSavedMsg{}
	}
}

func (m *ClientsModel) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.mode = clientsModeList
	case "e":
		if c := m.selected(); c != nil {
			return m, m.openForm(c)
		}
	case "b":
		if c := m.selected(); c != nil {
			return m, func() tea.Msg { return NewInvoiceMsg{Prefill: c} }
		}
	}
	return m, nil
}

func (m *ClientsModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = clientsModeList
		c := m.selected()
		if c == nil {
			return m, nil
		}
		a := m.app
		return m, func() tea.Msg {
			if err := a.InvoiceService.DeleteClient(context.Background(), c.ID); err != nil {
				return ErrorMsg{Err: err}
			}
			return clientDeletedMsg{}
		}
	case "n", "N", "esc":
		m.mode = clientsModeList
	}
	return m, nil
}

// clientInvoices returns the loaded invoices billed to the client
func (m *ClientsModel) clientInvoices(c *domain.Client) []*domain.Invoice {
	var out []*domain.Invoice
	for _, inv := range m.app.Invoices() {
		if inv.ClientID == c.ID {
			out = append(out, inv)
		}
	}
	return out
}

// View implements tea.Model
func (m *ClientsModel) View() string {
	switch m.mode {
	case clientsModeForm:
		return m.viewForm()
	case clientsModeDetails:
		return m.viewDetails()
	case clientsModeConfirmDelete:
		c := m.selected()
		name := ""
		if c != nil {
			name = c.Name
		}
		return boxStyle.Render(fmt.Sprintf(
			"Delete client %q?\n\nExisting invoices keep their copy of the details.\n\n[y] delete   [n] cancel", name))
	}

	var b strings.Builder
	if m.searching || m.search.Value() != "" {
		b.WriteString("Search: " + m.search.View() + "\n\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(subtitleStyle.Render("No clients yet. Press a to add one."))
		b.WriteString(helpStyle.Render("\n\na: add  /: search"))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %-26s %-26s %-16s %s\n", "Name", "Email", "GSTIN", "State"))
	for i, c := range m.filtered {
		line := fmt.Sprintf("%-26s %-26s %-16s %s",
			truncateStr(c.Name, 26),
			truncateStr(c.Email, 26),
			truncateStr(c.GSTIN, 16),
			truncateStr(c.StateName, 14),
		)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString(helpStyle.Render("\nenter: details  a: add  e: edit  b: bill  x: delete  /: search"))
	return b.String()
}

func (m *ClientsModel) viewForm() string {
	var b strings.Builder
	if m.editing != nil {
		b.WriteString(titleStyle.Render("Edit Client") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render("New Client") + "\n\n")
	}

	for i := range m.inputs {
		label := clientFieldLabels[i]
		if i == m.focus {
			label = selectedStyle.Render(" " + label + " ")
		}
		b.WriteString(fmt.Sprintf("%-24s %s\n", label, m.inputs[i].View()))
	}

	if m.formErr != "" {
		b.WriteString("\n" + statusDelayedStyle.Render(m.formErr))
	}
	b.WriteString(helpStyle.Render("\n\ntab: next  ctrl+s: save  esc: cancel"))
	return b.String()
}

func (m *ClientsModel) viewDetails() string {
	c := m.selected()
	if c == nil {
		return "No client selected."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Name) + "\n\n")
	rows := []struct{ label, value string }{
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Address", strings.ReplaceAll(c.Address, "\n", ", ")},
		{"GSTIN/UIN", c.GSTIN},
		{"State", strings.TrimSpace(c.StateName + " " + c.StateCode)},
	}
	for _, r := range rows {
		if r.value != "" {
			b.WriteString(fmt.Sprintf("  %-12s %s\n", r.label+":", r.value))
		}
	}

	invoices := m.clientInvoices(c)
	var total float64
	for _, inv := range invoices {
		total += inv.TotalAmount
	}
	b.WriteString(fmt.Sprintf("\n%s  %d invoices, %s billed\n",
		titleStyle.Render("Billing"), len(invoices), formatAmount(total)))
	for _, inv := range invoices {
		num := inv.InvoiceNumber
		if num == "" {
			num = "(draft)"
		}
		b.WriteString(fmt.Sprintf("  %-14s %-10s %14s  %s\n",
			truncateStr(num, 14), domain.FormatDate(inv.Date),
			formatAmount(inv.TotalAmount), statusBadge(inv.Status)))
	}

	b.WriteString(helpStyle.Render("\ne: edit  b: bill this client  esc: back"))
	return b.String()
}
