package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/gstbill/internal/ai"
	"github.com/andy/gstbill/internal/app"
	"github.com/andy/gstbill/internal/domain"
	"github.com/andy/gstbill/internal/render"
)

type editorMode int

const (
	editorModeNav editorMode = iota
	editorModeEdit
	editorModeQuickFill
	editorModePreview
	editorModeConfirmLeave
)

// editorField is one editable line of the form, bound to the draft.
type editorField struct {
	label   string
	section string
	get     func() string
	set     func(string)
	item    int // item row index, -1 for scalar fields
}

// EditorModel is the invoice form with AI quick fill and preview
type EditorModel struct {
	app  *app.App
	mode editorMode

	draft  *domain.Invoice
	fields []editorField
	cursor int
	dirty  bool

	input     textinput.Model
	quickFill textarea.Model
	preview   viewport.Model
	spinner   spinner.Model
	busy      bool
	notice    string

	width  int
	height int
}

// NewEditorModel creates the editor screen
func NewEditorModel(a *app.App) *EditorModel {
	input := textinput.New()
	input.CharLimit = 400

	qf := textarea.New()
	qf.Placeholder = "Paste or type a description of the work and goods, e.g.\n\"10 bags of cement at 420 each and 2 days of labour at 1500 for Acme Traders\""
	qf.CharLimit = 4000
	qf.SetHeight(8)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &EditorModel{
		app:       a,
		input:     input,
		quickFill: qf,
		preview:   viewport.New(80, 20),
		spinner:   sp,
	}
	m.reset(nil)
	return m
}

// Init implements tea.Model
func (m *EditorModel) Init() tea.Cmd {
	return nil
}

// IsCapturingInput implements InputCapturer; the editor owns the keyboard
// so list shortcuts never fire while a draft is open.
func (m *EditorModel) IsCapturingInput() bool {
	return true
}

// reset loads a fresh draft or an existing invoice into the form.
func (m *EditorModel) reset(inv *domain.Invoice) {
	if inv == nil {
		m.draft = domain.NewInvoice(m.app.Config.Business)
	} else {
		// Edit a copy so abandoning the form leaves the list untouched.
		dup := *inv
		dup.Items = append([]domain.InvoiceItem(nil), inv.Items...)
		dup.Consignee = inv.Consignee.Copy()
		m.draft = &dup
	}
	m.mode = editorModeNav
	m.cursor = 0
	m.dirty = false
	m.notice = ""
	m.rebuildFields()
}

// rebuildFields lays out the form: invoice details, buyer, item rows and
// logistics, in document order.
func (m *EditorModel) rebuildFields() {
	d := m.draft
	str := func(p *string) (func() string, func(string)) {
		return func() string { return *p }, func(v string) { *p = v }
	}
	num := func(p *float64) (func() string, func(string)) {
		return func() string { return formatNum(*p) }, func(v string) { *p = parseAmount(v) }
	}

	var fields []editorField
	add := func(section, label string, get func() string, set func(string)) {
		fields = append(fields, editorField{label: label, section: section, get: get, set: set, item: -1})
	}

	g, s := str(&d.InvoiceNumber)
	add("Invoice", "Invoice No.", g, s)
	g, s = str(&d.Date)
	add("Invoice", "Date (YYYY-MM-DD)", g, s)
	g, s = str(&d.DueDate)
	add("Invoice", "Due Date (YYYY-MM-DD)", g, s)
	g, s = num(&d.TaxRate)
	add("Invoice", "GST Rate %", g, s)
	g, s = num(&d.Discount)
	add("Invoice", "Discount", g, s)

	g, s = str(&d.Client.Name)
	add("Buyer", "Name", g, s)
	g, s = str(&d.Client.GSTIN)
	add("Buyer", "GSTIN/UIN", g, s)
	g, s = str(&d.Client.Address)
	add("Buyer", "Address", g, s)
	g, s = str(&d.Client.Email)
	add("Buyer", "Email", g, s)
	g, s = str(&d.Client.StateName)
	add("Buyer", "State Name", g, s)
	g, s = str(&d.Client.StateCode)
	add("Buyer", "State Code", g, s)

	// Consignee fields allocate on first input and collapse back to nil
	// when cleared, so a blank section keeps the ship-to defaulting to
	// the buyer.
	con := func(get func(*domain.Client) string, set func(*domain.Client, string)) (func() string, func(string)) {
		return func() string {
				if d.Consignee == nil {
					return ""
				}
				return get(d.Consignee)
			}, func(v string) {
				if d.Consignee == nil {
					if v == "" {
						return
					}
					d.Consignee = &domain.Client{}
				}
				set(d.Consignee, v)
				if d.Consignee.IsEmpty() {
					d.Consignee = nil
				}
			}
	}
	g, s = con(func(c *domain.Client) string { return c.Name }, func(c *domain.Client, v string) { c.Name = v })
	add("Consignee (Ship To)", "Name (blank = same as buyer)", g, s)
	g, s = con(func(c *domain.Client) string { return c.GSTIN }, func(c *domain.Client, v string) { c.GSTIN = v })
	add("Consignee (Ship To)", "GSTIN/UIN", g, s)
	g, s = con(func(c *domain.Client) string { return c.Address }, func(c *domain.Client, v string) { c.Address = v })
	add("Consignee (Ship To)", "Address", g, s)
	g, s = con(func(c *domain.Client) string { return c.StateName }, func(c *domain.Client, v string) { c.StateName = v })
	add("Consignee (Ship To)", "State Name", g, s)
	g, s = con(func(c *domain.Client) string { return c.StateCode }, func(c *domain.Client, v string) { c.StateCode = v })
	add("Consignee (Ship To)", "State Code", g, s)

	for i := range d.Items {
		it := &d.Items[i]
		section := fmt.Sprintf("Item %d", i+1)
		g, s = str(&it.Description)
		m.addItemField(&fields, section, "Description", g, s, i)
		g, s = str(&it.HSN)
		m.addItemField(&fields, section, "HSN/SAC", g, s, i)
		gq := func() string { return formatNum(it.Quantity) }
		sq := func(v string) { it.Quantity = parseAmount(v); it.Recalculate() }
		m.addItemField(&fields, section, "Quantity", gq, sq, i)
		g, s = str(&it.Unit)
		m.addItemField(&fields, section, "Unit", g, s, i)
		gr := func() string { return formatNum(it.UnitPrice) }
		sr := func(v string) { it.UnitPrice = parseAmount(v); it.Recalculate() }
		m.addItemField(&fields, section, "Rate", gr, sr, i)
	}

	g, s = str(&d.DeliveryNote)
	add("Logistics", "Delivery Note", g, s)
	g, s = str(&d.PaymentTerms)
	add("Logistics", "Mode/Terms of Payment", g, s)
	g, s = str(&d.BuyersOrderNo)
	add("Logistics", "Buyer's Order No.", g, s)
	g, s = str(&d.OrderDate)
	add("Logistics", "Order Date (YYYY-MM-DD)", g, s)
	g, s = str(&d.DispatchDocNo)
	add("Logistics", "Dispatch Doc No.", g, s)
	g, s = str(&d.DeliveryNoteDate)
	add("Logistics", "Delivery Note Date (YYYY-MM-DD)", g, s)
	g, s = str(&d.DispatchedThrough)
	add("Logistics", "Dispatched Through", g, s)
	g, s = str(&d.Destination)
	add("Logistics", "Destination", g, s)
	g, s = str(&d.LRNo)
	add("Logistics", "Bill of Lading/LR-RR No.", g, s)
	g, s = str(&d.VehicleNo)
	add("Logistics", "Motor Vehicle No.", g, s)
	g, s = str(&d.TermsOfDelivery)
	add("Logistics", "Terms of Delivery", g, s)
	g, s = str(&d.Notes)
	add("Logistics", "Notes", g, s)

	m.fields = fields
	if m.cursor >= len(m.fields) {
		m.cursor = len(m.fields) - 1
	}
}

func (m *EditorModel) addItemField(fields *[]editorField, section, label string, get func() string, set func(string), item int) {
	*fields = append(*fields, editorField{label: label, section: section, get: get, set: set, item: item})
}

// Update implements tea.Model
func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = msg.Width - 10
		m.preview.Height = msg.Height - 12
		m.quickFill.SetWidth(msg.Width - 14)
		return m, nil

	case NewInvoiceMsg:
		m.reset(nil)
		if msg.Prefill != nil {
			m.draft.Client = *msg.Prefill.Copy()
			m.draft.ClientID = msg.Prefill.ID
		}
		return m, nil

	case EditInvoiceMsg:
		m.reset(msg.Invoice)
		return m, nil

	case invoiceSavedMsg:
		m.busy = false
		m.draft = msg.invoice
		m.dirty = false
		m.rebuildFields()
		m.notice = "Saved."
		return m, func() tea.Msg { return RefreshDataMsg{} }

	case extractDoneMsg:
		m.busy = false
		m.mode = editorModeNav
		if msg.err != nil {
			m.notice = "AI fill failed: " + msg.err.Error()
			return m, nil
		}
		m.applyExtraction(msg.result)
		return m, nil

	case ErrorMsg:
		m.busy = false
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case editorModeEdit:
			return m.updateEdit(msg)
		case editorModeQuickFill:
			return m.updateQuickFill(msg)
		case editorModePreview:
			return m.updatePreview(msg)
		case editorModeConfirmLeave:
			return m.updateConfirmLeave(msg)
		}
		return m.updateNav(msg)
	}

	return m, nil
}

func (m *EditorModel) updateNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.dirty {
			m.mode = editorModeConfirmLeave
			return m, nil
		}
		return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenInvoices} }
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "enter":
		return m, m.startEdit()
	case "ctrl+a":
		m.draft.Items = append(m.draft.Items, domain.NewItem())
		m.dirty = true
		m.rebuildFields()
		// Jump to the new item's description field.
		for i, f := range m.fields {
			if f.item == len(m.draft.Items)-1 {
				m.cursor = i
				break
			}
		}
	case "ctrl+x":
		if f := m.currentField(); f.item >= 0 && len(m.draft.Items) > 1 {
			m.draft.Items = append(m.draft.Items[:f.item], m.draft.Items[f.item+1:]...)
			m.dirty = true
			m.rebuildFields()
		}
	case "ctrl+g":
		m.mode = editorModeQuickFill
		m.notice = ""
		return m, m.quickFill.Focus()
	case "ctrl+p":
		m.preview.SetContent(render.Text(m.draft, m.app.Config.Business, render.AllCopies))
		m.preview.GotoTop()
		m.mode = editorModePreview
	case "ctrl+s":
		return m, m.save()
	}
	return m, nil
}

func (m *EditorModel) currentField() editorField {
	if m.cursor < 0 || m.cursor >= len(m.fields) {
		return editorField{item: -1, get: func() string { return "" }, set: func(string) {}}
	}
	return m.fields[m.cursor]
}

func (m *EditorModel) startEdit() tea.Cmd {
	f := m.currentField()
	m.input.SetValue(f.get())
	m.input.CursorEnd()
	m.mode = editorModeEdit
	return m.input.Focus()
}

func (m *EditorModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = editorModeNav
		m.input.Blur()
		return m, nil
	case "enter":
		f := m.currentField()
		f.set(m.input.Value())
		m.dirty = true
		m.mode = editorModeNav
		m.input.Blur()
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EditorModel) updateQuickFill(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = editorModeNav
		m.quickFill.Blur()
		return m, nil
	case "ctrl+g", "ctrl+s":
		text := strings.TrimSpace(m.quickFill.Value())
		if text == "" {
			return m, nil
		}
		if !m.app.Extractor.Configured() {
			m.mode = editorModeNav
			m.notice = "AI fill needs GEMINI_API_KEY in the environment or config."
			return m, nil
		}
		m.busy = true
		ex := m.app.Extractor
		work := func() tea.Msg {
			result, err := ex.Extract(context.Background(), text)
			return extractDoneMsg{result: result, err: err}
		}
		return m, tea.Batch(m.spinner.Tick, work)
	}
	var cmd tea.Cmd
	m.quickFill, cmd = m.quickFill.Update(msg)
	return m, cmd
}

// applyExtraction merges the AI result into the draft. Extracted items
// replace empty placeholder rows but never silently drop typed ones.
func (m *EditorModel) applyExtraction(result *ai.Extraction) {
	if result == nil || len(result.Items) == 0 {
		m.notice = "No line items found in the text."
		return
	}
	kept := m.draft.Items[:0]
	for _, it := range m.draft.Items {
		if it.Description != "" || it.Total != 0 {
			kept = append(kept, it)
		}
	}
	m.draft.Items = append(kept, result.Items...)
	if result.ClientName != "" && m.draft.Client.Name == "" {
		m.draft.Client.Name = result.ClientName
	}
	m.dirty = true
	m.quickFill.Reset()
	m.rebuildFields()
	m.notice = fmt.Sprintf("Added %d items from the text.", len(result.Items))
}

func (m *EditorModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = editorModeNav
		return m, nil
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m *EditorModel) updateConfirmLeave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = editorModeNav
		m.dirty = false
		return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenInvoices} }
	case "n", "N", "esc":
		m.mode = editorModeNav
	}
	return m, nil
}

func (m *EditorModel) save() tea.Cmd {
	if err := m.draft.Validate(); err != nil {
		m.notice = err.Error()
		return nil
	}
	m.busy = true
	m.notice = ""
	a := m.app
	draft := m.draft
	work := func() tea.Msg {
		if err := a.InvoiceService.Save(context.Background(), a.UserID(), draft); err != nil {
			return ErrorMsg{Err: err}
		}
		return invoiceSavedMsg{invoice: draft}
	}
	return tea.Batch(m.spinner.Tick, work)
}

// View implements tea.Model
func (m *EditorModel) View() string {
	switch m.mode {
	case editorModeQuickFill:
		var b strings.Builder
		b.WriteString(titleStyle.Render("AI Quick Fill") + "\n\n")
		b.WriteString(m.quickFill.View() + "\n\n")
		if m.busy {
			b.WriteString(m.spinner.View() + " Extracting line items...\n")
		}
		b.WriteString(helpStyle.Render("ctrl+g: extract  esc: cancel"))
		return b.String()

	case editorModePreview:
		return m.preview.View() + "\n" + helpStyle.Render("↑/↓ scroll  esc: back to editor")

	case editorModeConfirmLeave:
		return boxStyle.Render("Discard unsaved changes?\n\n[y] discard   [n] keep editing")
	}

	var b strings.Builder
	totals := m.draft.Totals()
	b.WriteString(fmt.Sprintf("%s   %s %s   %s %s\n\n",
		statusBadge(m.draft.Status),
		subtitleStyle.Render("Subtotal"), formatAmount(totals.Subtotal),
		subtitleStyle.Render("Total"), amountStyle.Render(formatAmount(totals.GrandTotal)),
	))

	lastSection := ""
	for i, f := range m.fields {
		if f.section != lastSection {
			lastSection = f.section
			b.WriteString(titleStyle.Render(f.section) + "\n")
		}
		value := f.get()
		if i == m.cursor && m.mode == editorModeEdit {
			b.WriteString(fmt.Sprintf("  %-26s %s\n", f.label+":", m.input.View()))
			continue
		}
		line := fmt.Sprintf("%-26s %s", f.label+":", truncateStr(value, 44))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if m.busy {
		b.WriteString("\n" + m.spinner.View() + " Saving...")
	}
	if m.notice != "" {
		b.WriteString("\n" + statusFinishedStyle.Render(m.notice))
	}

	b.WriteString(helpStyle.Render(
		"\n\nenter: edit field  ctrl+a: add item  ctrl+x: remove item  ctrl+g: AI fill\nctrl+p: preview  ctrl+s: save  esc: back"))
	return b.String()
}
