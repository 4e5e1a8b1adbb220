package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/gstbill/internal/app"
)

// Field indices for the business profile form
const (
	settingsFieldName = iota
	settingsFieldEmail
	settingsFieldPhone
	settingsFieldWebsite
	settingsFieldAddress
	settingsFieldLogoPath
	settingsFieldGSTIN
	settingsFieldStateName
	settingsFieldStateCode
	settingsFieldBankName
	settingsFieldAccountNo
	settingsFieldIFSC
	settingsFieldBranch
	settingsFieldOutputDir
	settingsFieldCount
)

var settingsFieldLabels = [settingsFieldCount]string{
	"Business Name", "Email", "Phone", "Website", "Address", "Logo Path",
	"GSTIN/UIN", "State Name", "State Code",
	"Bank Name", "A/c No.", "IFSC", "Branch",
	"Export Directory",
}

type settingsMode int

const (
	settingsModeForm settingsMode = iota
	settingsModeConfirmLogout
)

// SettingsModel edits the business profile and handles sign-out
type SettingsModel struct {
	app  *app.App
	mode settingsMode

	inputs  [settingsFieldCount]textinput.Model
	focus   int
	editing bool
	notice  string
}

// NewSettingsModel creates the settings screen
func NewSettingsModel(a *app.App) *SettingsModel {
	m := &SettingsModel{app: a}
	for i := range m.inputs {
		in := textinput.New()
		in.CharLimit = 300
		in.Placeholder = settingsFieldLabels[i]
		m.inputs[i] = in
	}
	m.load()
	return m
}

func (m *SettingsModel) load() {
	biz := m.app.Config.Business
	values := [settingsFieldCount]string{
		biz.Name, biz.Email, biz.Phone, biz.Website, biz.Address, biz.LogoPath,
		biz.GSTIN, biz.StateName, biz.StateCode,
		biz.BankName, biz.AccountNo, biz.IFSC, biz.Branch,
		m.app.Config.Export.OutputDir,
	}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
	}
}

// Init implements tea.Model
func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

// IsCapturingInput implements InputCapturer
func (m *SettingsModel) IsCapturingInput() bool {
	return m.editing || m.mode == settingsModeConfirmLogout
}

// Update implements tea.Model
func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode == settingsModeConfirmLogout {
		switch key.String() {
		case "y", "Y":
			m.mode = settingsModeForm
			a := m.app
			return m, func() tea.Msg {
				if err := a.SignOut(context.Background()); err != nil {
					return ErrorMsg{Err: err}
				}
				return signedOutMsg{}
			}
		case "n", "N", "esc":
			m.mode = settingsModeForm
		}
		return m, nil
	}

	if m.editing {
		switch key.String() {
		case "esc":
			m.editing = false
			m.inputs[m.focus].Blur()
			return m, nil
		case "enter", "tab":
			m.inputs[m.focus].Blur()
			if key.String() == "tab" || m.focus < settingsFieldCount-1 {
				m.focus = (m.focus + 1) % settingsFieldCount
				return m, m.inputs[m.focus].Focus()
			}
			m.editing = false
			return m, nil
		case "ctrl+s":
			m.editing = false
			m.inputs[m.focus].Blur()
			return m, m.saveCmd()
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(key)
		return m, cmd
	}

	switch key.String() {
	case "up", "k":
		if m.focus > 0 {
			m.focus--
		}
	case "down", "j":
		if m.focus < settingsFieldCount-1 {
			m.focus++
		}
	case "enter":
		m.editing = true
		m.notice = ""
		return m, m.inputs[m.focus].Focus()
	case "ctrl+s":
		return m, m.saveCmd()
	case "L":
		m.mode = settingsModeConfirmLogout
	}
	return m, nil
}

func (m *SettingsModel) saveCmd() tea.Cmd {
	biz := &m.app.Config.Business
	biz.Name = strings.TrimSpace(m.inputs[settingsFieldName].Value())
	biz.Email = strings.TrimSpace(m.inputs[settingsFieldEmail].Value())
	biz.Phone = strings.TrimSpace(m.inputs[settingsFieldPhone].Value())
	biz.Website = strings.TrimSpace(m.inputs[settingsFieldWebsite].Value())
	biz.Address = m.inputs[settingsFieldAddress].Value()
	biz.LogoPath = strings.TrimSpace(m.inputs[settingsFieldLogoPath].Value())
	biz.GSTIN = strings.TrimSpace(m.inputs[settingsFieldGSTIN].Value())
	biz.StateName = strings.TrimSpace(m.inputs[settingsFieldStateName].Value())
	biz.StateCode = strings.TrimSpace(m.inputs[settingsFieldStateCode].Value())
	biz.BankName = strings.TrimSpace(m.inputs[settingsFieldBankName].Value())
	biz.AccountNo = strings.TrimSpace(m.inputs[settingsFieldAccountNo].Value())
	biz.IFSC = strings.TrimSpace(m.inputs[settingsFieldIFSC].Value())
	biz.Branch = strings.TrimSpace(m.inputs[settingsFieldBranch].Value())
	biz.FillDefaults()
	if dir := strings.TrimSpace(m.inputs[settingsFieldOutputDir].Value()); dir != "" {
		m.app.Config.Export.OutputDir = dir
	}

	if err := m.app.SaveConfig(); err != nil {
		return func() tea.Msg { return ErrorMsg{Err: err} }
	}
	m.notice = "Settings saved."
	return nil
}

// View implements tea.Model
func (m *SettingsModel) View() string {
	if m.mode == settingsModeConfirmLogout {
		email := ""
		if u := m.app.User(); u != nil {
			email = u.Email
		}
		return boxStyle.Render(fmt.Sprintf("Sign out %s?\n\n[y] sign out   [n] cancel", email))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Business Profile") + "\n")
	b.WriteString(subtitleStyle.Render("Printed on every invoice") + "\n\n")

	for i := range m.inputs {
		label := settingsFieldLabels[i]
		if i == m.focus && m.editing {
			b.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", m.inputs[i].View()))
			continue
		}
		line := fmt.Sprintf("%-18s %s", label+":", truncateStr(m.inputs[i].Value(), 48))
		if i == m.focus {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if m.notice != "" {
		b.WriteString("\n" + statusFinishedStyle.Render(m.notice))
	}
	b.WriteString(helpStyle.Render("\n\nenter: edit field  ctrl+s: save  L: sign out  esc: back"))
	return b.String()
}
