package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/gstbill/internal/app"
	"github.com/andy/gstbill/internal/supabase"
)

type loginMode int

const (
	loginModeSignIn loginMode = iota
	loginModeSignUp
)

// Field indices for the sign-in form
const (
	loginFieldEmail = iota
	loginFieldPassword
	loginFieldName // signup only
	loginFieldCount
)

// LoginModel is the sign-in / sign-up screen
type LoginModel struct {
	app    *app.App
	mode   loginMode
	inputs []textinput.Model
	focus  int

	busy    bool
	spinner spinner.Model
	errMsg  string
	notice  string
}

// NewLoginModel creates the login screen
func NewLoginModel(a *app.App) *LoginModel {
	inputs := make([]textinput.Model, loginFieldCount)

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 120
	email.Focus()
	inputs[loginFieldEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	inputs[loginFieldPassword] = password

	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 80
	inputs[loginFieldName] = name

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &LoginModel{
		app:     a,
		inputs:  inputs,
		spinner: sp,
	}
}

// Init implements tea.Model
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// IsCapturingInput implements InputCapturer; the login form always owns
// the keyboard.
func (m *LoginModel) IsCapturingInput() bool {
	return true
}

func (m *LoginModel) fieldCount() int {
	if m.mode == loginModeSignUp {
		return loginFieldCount
	}
	return loginFieldCount - 1
}

func (m *LoginModel) setFocus(i int) tea.Cmd {
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

// Update implements tea.Model
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % m.fieldCount())
		case "shift+tab", "up":
			return m, m.setFocus((m.focus - 1 + m.fieldCount()) % m.fieldCount())
		case "ctrl+s":
			m.toggleMode()
			return m, nil
		case "enter":
			if m.focus < m.fieldCount()-1 {
				return m, m.setFocus(m.focus + 1)
			}
			return m, m.submit()
		}

	case signedInMsg:
		m.busy = false
		if msg.confirmationPending {
			m.notice = "Check your email to confirm the account, then sign in."
			m.mode = loginModeSignIn
		}
		return m, nil

	case ErrorMsg:
		m.busy = false
		m.errMsg = supabase.Friendly(msg.Err)
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Pass everything else to the focused input
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) toggleMode() {
	if m.mode == loginModeSignIn {
		m.mode = loginModeSignUp
	} else {
		m.mode = loginModeSignIn
	}
	m.errMsg = ""
	m.notice = ""
	if m.focus >= m.fieldCount() {
		m.setFocus(0)
	}
}

func (m *LoginModel) submit() tea.Cmd {
	email := strings.TrimSpace(m.inputs[loginFieldEmail].Value())
	password := m.inputs[loginFieldPassword].Value()
	name := strings.TrimSpace(m.inputs[loginFieldName].Value())

	if email == "" || password == "" {
		m.errMsg = "Email and password are required."
		return nil
	}

	m.busy = true
	m.errMsg = ""
	m.notice = ""
	mode := m.mode
	a := m.app

	work := func() tea.Msg {
		ctx := context.Background()
		if mode == loginModeSignUp {
			confirmed, err := a.SignUp(ctx, name, email, password)
			if err != nil {
				return ErrorMsg{Err: err}
			}
			return signedInMsg{confirmationPending: !confirmed}
		}
		if err := a.SignIn(ctx, email, password); err != nil {
			return ErrorMsg{Err: err}
		}
		return signedInMsg{}
	}
	return tea.Batch(m.spinner.Tick, work)
}

// View implements tea.Model
func (m *LoginModel) View() string {
	var b strings.Builder

	if m.mode == loginModeSignUp {
		b.WriteString(titleStyle.Render("Create an account") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render("Sign in to your billing account") + "\n\n")
	}

	labels := []string{"Email", "Password", "Name"}
	for i := 0; i < m.fieldCount(); i++ {
		label := labels[i]
		if i == m.focus {
			label = selectedStyle.Render(" " + label + " ")
		}
		b.WriteString(fmt.Sprintf("%s\n%s\n\n", label, m.inputs[i].View()))
	}

	if m.busy {
		b.WriteString(m.spinner.View() + " Signing in...\n")
	}
	if m.errMsg != "" {
		b.WriteString(statusDelayedStyle.Render(m.errMsg) + "\n")
	}
	if m.notice != "" {
		b.WriteString(statusFinishedStyle.Render(m.notice) + "\n")
	}

	if m.mode == loginModeSignUp {
		b.WriteString(helpStyle.Render("\nctrl+s: back to sign in"))
	} else {
		b.WriteString(helpStyle.Render("\nctrl+s: create an account instead"))
	}

	return b.String()
}
