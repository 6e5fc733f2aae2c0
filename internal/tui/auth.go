package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/offerhub/offers-api/pkg/client"
)

type authMode int

const (
	authLogin authMode = iota
	authRegister
	authAdmin
	numAuthModes
)

func (m authMode) String() string {
	switch m {
	case authRegister:
		return "Register"
	case authAdmin:
		return "Admin login"
	default:
		return "Login"
	}
}

type authField int

const (
	fieldEmail authField = iota
	fieldPassword
	fieldConfirm
)

// authDoneMsg carries the result of a login or registration.
type authDoneMsg struct {
	mode authMode
	err  error
}

// authModel is the sign-in screen. Tab cycles fields, ctrl+t cycles modes.
type authModel struct {
	client     *client.Client
	mode       authMode
	email      string
	password   string
	confirm    string
	focus      authField
	submitting bool
}

func newAuthModel(c *client.Client) authModel {
	return authModel{client: c}
}

func (m authModel) fieldCount() authField {
	if m.mode == authRegister {
		return 3
	}
	return 2
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.password, m.confirm = "", ""
			m.focus = fieldPassword
			return m, flashErr(client.Message(msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m authModel) updateKeys(msg tea.KeyMsg) (authModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch key := msg.String(); key {
	case "ctrl+t":
		m.mode = (m.mode + 1) % numAuthModes
		if m.focus >= m.fieldCount() {
			m.focus = fieldEmail
		}
	case "tab", "down":
		m.focus = (m.focus + 1) % m.fieldCount()
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + m.fieldCount()) % m.fieldCount()
	case "enter":
		if m.focus < m.fieldCount()-1 {
			m.focus++
			return m, nil
		}
		return m.submit()
	default:
		f := m.field(m.focus)
		*f = editRune(*f, key)
	}
	return m, nil
}

func (m *authModel) field(f authField) *string {
	switch f {
	case fieldPassword:
		return &m.password
	case fieldConfirm:
		return &m.confirm
	default:
		return &m.email
	}
}

func (m authModel) submit() (authModel, tea.Cmd) {
	email := strings.TrimSpace(m.email)
	if email == "" || m.password == "" {
		return m, flashErr("Email and password are required")
	}
	if m.mode == authRegister && m.password != m.confirm {
		return m, flashErr("Passwords do not match")
	}

	m.submitting = true
	c, mode, password, confirm := m.client, m.mode, m.password, m.confirm
	return m, func() tea.Msg {
		ctx := context.Background()
		var err error
		switch mode {
		case authRegister:
			err = c.Register(ctx, email, password, confirm)
		case authAdmin:
			err = c.AdminLogin(ctx, email, password)
		default:
			err = c.Login(ctx, email, password)
		}
		return authDoneMsg{mode: mode, err: err}
	}
}

func (m authModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.mode.String()) + "\n\n")
	b.WriteString(m.renderField(fieldEmail, "Email", m.email, "you@example.com") + "\n")
	b.WriteString(m.renderField(fieldPassword, "Password", maskPassword(m.password), "") + "\n")
	if m.mode == authRegister {
		b.WriteString(m.renderField(fieldConfirm, "Confirm", maskPassword(m.confirm), "") + "\n")
	}
	if m.submitting {
		b.WriteString("\n" + dimStyle.Render("signing in..."))
	}
	return b.String()
}

func (m authModel) renderField(f authField, label, value, placeholder string) string {
	cursor := " "
	style := normalStyle
	if m.focus == f {
		cursor = accentStyle.Render("›")
		style = selectedStyle
	}
	if value == "" && placeholder != "" {
		return cursor + " " + labelStyle.Render(label) + inputPlaceholderStyle.Render(placeholder)
	}
	return cursor + " " + labelStyle.Render(label) + style.Render(value)
}

func (m authModel) helpKeys() string {
	return helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " +
		helpEntry("ctrl+t", "mode") + "  " + helpEntry("ctrl+c", "quit")
}
