package dashboard

import (
	"errors"
	"strings"
	"time"

	"signify/cmd/signify/ui"
	"signify/internal/api"
	"signify/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// authResultMsg carries the outcome of a login or register call.
type authResultMsg struct {
	auth *api.AuthResponse
	err  error
}

func (m authResultMsg) apiErr() error { return m.err }

// loginModel is the email/password form, doubling as the registration
// form when toggled.
type loginModel struct {
	styles ui.Styles

	registering bool
	name        textinput.Model
	email       textinput.Model
	password    textinput.Model

	loading bool
	spin    spinner.Model
	errLine string
	notice  string
}

func newLoginModel(styles ui.Styles) loginModel {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 80

	email := textinput.New()
	email.Placeholder = "admin@signify.gov.rw"
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner

	m := loginModel{
		styles:   styles,
		name:     name,
		email:    email,
		password: password,
		spin:     spin,
	}
	m.email.Focus()
	return m
}

func (m loginModel) init() tea.Cmd {
	return textinput.Blink
}

// fields returns the visible inputs in focus order.
func (m *loginModel) fields() []*textinput.Model {
	if m.registering {
		return []*textinput.Model{&m.name, &m.email, &m.password}
	}
	return []*textinput.Model{&m.email, &m.password}
}

func (m *loginModel) focusField(idx int) {
	fields := m.fields()
	for i, f := range fields {
		if i == idx {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

// submit issues the login or register call and persists the session on
// success. The stored identity is what the dashboard header renders; the
// token itself is never decoded.
func (m *loginModel) submit(client *api.Client, sessions *session.Store) tea.Cmd {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	name := strings.TrimSpace(m.name.Value())
	registering := m.registering

	if email == "" || password == "" || (registering && name == "") {
		m.errLine = "All fields are required"
		return nil
	}

	m.loading = true
	m.errLine = ""

	return tea.Batch(m.spin.Tick, func() tea.Msg {
		var (
			auth *api.AuthResponse
			err  error
		)
		if registering {
			auth, err = client.Register(ctx(), api.Registration{Name: name, Email: email, Password: password})
		} else {
			auth, err = client.Login(ctx(), api.Credentials{Email: email, Password: password})
		}
		if err != nil {
			return authResultMsg{err: err}
		}
		err = sessions.Save(session.Session{
			Token: auth.AccessToken,
			Admin: session.Admin{
				AdminID: auth.Admin.AdminID,
				Email:   auth.Admin.Email,
				Name:    auth.Admin.Name,
			},
			LoginTime: time.Now(),
		})
		if err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{auth: auth}
	})
}

func (m loginModel) update(msg tea.Msg, client *api.Client, sessions *session.Store) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			fields := m.fields()
			for i, f := range fields {
				if f.Focused() {
					m.focusField((i + 1) % len(fields))
					return m, nil
				}
			}
			m.focusField(0)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			fields := m.fields()
			for i, f := range fields {
				if f.Focused() {
					m.focusField((i - 1 + len(fields)) % len(fields))
					return m, nil
				}
			}
			m.focusField(0)
			return m, nil
		case tea.KeyEnter:
			return m, m.submit(client, sessions)
		case tea.KeyCtrlR:
			m.registering = !m.registering
			m.errLine = ""
			m.focusField(0)
			return m, nil
		}

	case authResultMsg:
		m.loading = false
		if msg.err != nil {
			m.errLine = loginErrorLine(msg.err)
			return m, nil
		}
		return m, func() tea.Msg { return loggedInMsg{admin: msg.auth.Admin} }

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	for _, f := range m.fields() {
		if f.Focused() {
			*f, cmd = f.Update(msg)
			break
		}
	}
	return m, cmd
}

// loginErrorLine prefers the backend's message over the wrapped chain.
func loginErrorLine(err error) string {
	var e *api.Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Authentication failed: " + err.Error()
}

func (m loginModel) view() string {
	var sb strings.Builder
	sb.WriteString(ui.Logo(m.styles))
	sb.WriteString("\n")

	if m.registering {
		sb.WriteString(m.styles.Title.Render("Create an admin account"))
	} else {
		sb.WriteString(m.styles.Title.Render("Sign in to the Signify dashboard"))
	}
	sb.WriteString("\n")

	if m.notice != "" {
		sb.WriteString(m.styles.Warning.Render(m.notice))
		sb.WriteString("\n\n")
	}

	if m.registering {
		sb.WriteString("  " + m.name.View() + "\n")
	}
	sb.WriteString("  " + m.email.View() + "\n")
	sb.WriteString("  " + m.password.View() + "\n\n")

	if m.loading {
		sb.WriteString("  " + m.spin.View() + m.styles.Muted.Render(" signing in..."))
		sb.WriteString("\n")
	} else if m.errLine != "" {
		sb.WriteString("  " + m.styles.Error.Render(m.errLine))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	toggle := "ctrl+r register instead"
	if m.registering {
		toggle = "ctrl+r sign in instead"
	}
	sb.WriteString(m.styles.Help.Render("enter submit • tab next field • " + toggle + " • esc back"))
	return sb.String()
}
