package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/gstbill/internal/app"
	"github.com/andy/gstbill/internal/supabase"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenDashboard
	ScreenInvoices
	ScreenClients
	ScreenEditor
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "Sign In"
	case ScreenDashboard:
		return "Dashboard"
	case ScreenInvoices:
		return "Invoices"
	case ScreenClients:
		return "Clients"
	case ScreenEditor:
		return "Invoice Editor"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	login     tea.Model
	dashboard tea.Model
	invoices  tea.Model
	clients   tea.Model
	editor    tea.Model
	settings  tea.Model

	// Error state
	err error
}

// New creates a new root model. A restored session skips the login screen.
func New(a *app.App) Model {
	m := Model{app: a}
	if a.User() == nil {
		m.currentScreen = ScreenLogin
		m.login = NewLoginModel(a)
	} else {
		m.currentScreen = ScreenDashboard
		m.dashboard = NewDashboardModel(a)
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.currentScreen != ScreenLogin {
		cmds = append(cmds, loadDataCmd(m.app))
	}
	switch m.currentScreen {
	case ScreenLogin:
		if m.login != nil {
			cmds = append(cmds, m.login.Init())
		}
	case ScreenDashboard:
		if m.dashboard != nil {
			cmds = append(cmds, m.dashboard.Init())
		}
	}
	return tea.Batch(cmds...)
}

// loadDataCmd reloads all user data from the remote store
func loadDataCmd(a *app.App) tea.Cmd {
	return func() tea.Msg {
		if err := a.RefreshData(context.Background()); err != nil {
			return ErrorMsg{Err: err}
		}
		return dataLoadedMsg{}
	}
}

// initScreen lazy-initializes a screen on first visit and replays loaded
// data into it on subsequent visits.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenLogin:
		if m.login == nil {
			m.login = NewLoginModel(m.app)
			return m.login.Init()
		}
	case ScreenDashboard:
		if m.dashboard == nil {
			m.dashboard = NewDashboardModel(m.app)
			return m.dashboard.Init()
		}
		return func() tea.Msg { return dataLoadedMsg{} }
	case ScreenInvoices:
		if m.invoices == nil {
			m.invoices = NewInvoicesModel(m.app)
			return m.invoices.Init()
		}
		return func() tea.Msg { return dataLoadedMsg{} }
	case ScreenClients:
		if m.clients == nil {
			m.clients = NewClientsModel(m.app)
			return m.clients.Init()
		}
		return func() tea.Msg { return dataLoadedMsg{} }
	case ScreenEditor:
		if m.editor == nil {
			m.editor = NewEditorModel(m.app)
			return m.editor.Init()
		}
	case ScreenSettings:
		if m.settings == nil {
			m.settings = NewSettingsModel(m.app)
			return m.settings.Init()
		}
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input (e.g.
// text forms). When active, global navigation keys are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

func (m *Model) activeScreen() tea.Model {
	switch m.currentScreen {
	case ScreenLogin:
		return m.login
	case ScreenDashboard:
		return m.dashboard
	case ScreenInvoices:
		return m.invoices
	case ScreenClients:
		return m.clients
	case ScreenEditor:
		return m.editor
	case ScreenSettings:
		return m.settings
	}
	return nil
}

// activeScreenCapturingInput returns true if the current screen is capturing
// text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.activeScreen().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

func (m *Model) setScreen(screen Screen) tea.Cmd {
	m.currentScreen = screen
	return m.initScreen(screen)
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Screens size their own viewports
		var cmd tea.Cmd
		if s := m.activeScreen(); s != nil {
			_, cmd = s.Update(msg)
		}
		return m, cmd

	case tea.KeyMsg:
		// The login screen owns the keyboard entirely; elsewhere global
		// navigation applies unless a form is capturing text.
		if m.currentScreen != ScreenLogin && !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Dashboard):
				return m, m.setScreen(ScreenDashboard)

			case key.Matches(msg, DefaultKeyMap.Invoices):
				return m, m.setScreen(ScreenInvoices)

			case key.Matches(msg, DefaultKeyMap.Clients):
				return m, m.setScreen(ScreenClients)

			case key.Matches(msg, DefaultKeyMap.New):
				cmd := m.setScreen(ScreenEditor)
				return m, tea.Batch(cmd, func() tea.Msg { return NewInvoiceMsg{} })

			case key.Matches(msg, DefaultKeyMap.Settings):
				return m, m.setScreen(ScreenSettings)

			case key.Matches(msg, DefaultKeyMap.Retry):
				if m.err != nil {
					m.err = nil
					return m, loadDataCmd(m.app)
				}
			}
		}

	case signedInMsg:
		if msg.confirmationPending {
			// Stay on the login screen; it shows the notice.
			break
		}
		m.err = nil
		cmd := m.setScreen(ScreenDashboard)
		return m, tea.Batch(cmd, loadDataCmd(m.app))

	case signedOutMsg:
		m.err = nil
		m.dashboard = nil
		m.invoices = nil
		m.clients = nil
		m.editor = nil
		m.settings = nil
		m.login = nil
		return m, m.setScreen(ScreenLogin)

	case SwitchScreenMsg:
		return m, m.setScreen(msg.Screen)

	case NewInvoiceMsg:
		cmd := m.setScreen(ScreenEditor)
		var relay tea.Cmd
		if m.editor != nil {
			m.editor, relay = m.editor.Update(msg)
		}
		return m, tea.Batch(cmd, relay)

	case EditInvoiceMsg:
		cmd := m.setScreen(ScreenEditor)
		var relay tea.Cmd
		if m.editor != nil {
			m.editor, relay = m.editor.Update(msg)
		}
		return m, tea.Batch(cmd, relay)

	case RefreshDataMsg:
		return m, loadDataCmd(m.app)

	case dataLoadedMsg:
		m.err = nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	if s := m.activeScreen(); s != nil {
		updated, c := s.Update(msg)
		cmd = c
		switch m.currentScreen {
		case ScreenLogin:
			m.login = updated
		case ScreenDashboard:
			m.dashboard = updated
		case ScreenInvoices:
			m.invoices = updated
		case ScreenClients:
			m.clients = updated
		case ScreenEditor:
			m.editor = updated
		case ScreenSettings:
			m.settings = updated
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("gstbill - %s", m.currentScreen.String()))

	footer := footerStyle.Render("[D]ashboard  [I]nvoices  [C]lients  [N]ew Invoice  [,] Settings  [Q]uit")
	if m.currentScreen == ScreenLogin {
		footer = footerStyle.Render("tab: next field  enter: submit  ctrl+c: quit")
	}

	content := "Loading..."
	if s := m.activeScreen(); s != nil {
		content = s.View()
	}

	errorDisplay := ""
	if m.err != nil {
		banner := supabase.Friendly(m.err) + "  (press r to retry)"
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\n%s", banner))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
