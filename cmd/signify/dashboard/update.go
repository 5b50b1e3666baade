package dashboard

import (
	"strconv"

	"signify/cmd/signify/ui"
	"signify/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update is the root message loop. Session expiry is handled here once
// for every screen; pages never react to a 401 themselves.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayoutConfig(msg.Width, msg.Height)
		m.ready = true
		return m, nil

	case loggedInMsg:
		logging.L(logging.CategorySession).Info("logged in",
			zap.String("email", msg.admin.Email))
		m.view = ViewDashboard
		m.setStatus("Welcome back, "+msg.admin.Name, false)
		return m, m.openTab(TabHome)

	case loggedOutMsg:
		_ = m.deps.Sessions.Clear()
		m.view = ViewLanding
		m.landing = newLandingModel(m.styles)
		m.setStatus("", false)
		return m, m.landing.init()

	case intakeDoneMsg:
		if m.deps.Sessions.Authenticated() {
			m.view = ViewDashboard
			if msg.completed {
				m.setStatus("Thank you for reporting.", false)
			}
			return m, m.openTab(m.tab)
		}
		m.view = ViewLanding
		m.landing = newLandingModel(m.styles)
		return m, m.landing.init()
	}

	if sessionLost(msg) {
		return m.handleSessionExpired()
	}

	switch m.view {
	case ViewLanding:
		return m.updateLanding(msg)
	case ViewLogin:
		return m.updateLogin(msg)
	case ViewIntake:
		var cmd tea.Cmd
		m.wizard, cmd = m.wizard.update(msg)
		return m, cmd
	case ViewDashboard:
		return m.updateDashboard(msg)
	}
	return m, nil
}

func (m Model) updateLanding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			m.view = ViewLogin
			m.login = newLoginModel(m.styles)
			return m, m.login.init()
		case "d":
			return m, m.startIntake()
		}
	}
	var cmd tea.Cmd
	m.landing, cmd = m.landing.update(msg)
	return m, cmd
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.view = ViewLanding
			m.landing = newLandingModel(m.styles)
			return m, m.landing.init()
		}
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.update(msg, m.deps.Client, m.deps.Sessions)
	return m, cmd
}

func (m Model) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := m.handleGlobalKey(key); handled {
			return m, cmd
		}
	}
	return m.updatePage(msg)
}

// handleGlobalKey covers keys that work on every tab. Pages see the key
// only when this returns handled=false.
func (m *Model) handleGlobalKey(key tea.KeyMsg) (tea.Cmd, bool) {
	// Text entry owns most keys while focused.
	if m.pageTyping() {
		if key.String() == "ctrl+c" {
			return tea.Quit, true
		}
		return nil, false
	}

	switch key.String() {
	case "ctrl+c", "q":
		return tea.Quit, true
	case "tab":
		return m.openTab((m.tab + 1) % tabCount), true
	case "shift+tab":
		return m.openTab((m.tab + tabCount - 1) % tabCount), true
	case "r":
		return m.openTab(m.tab), true
	case "L":
		_ = m.deps.Sessions.Clear()
		logging.L(logging.CategorySession).Info("logged out")
		m.view = ViewLanding
		m.landing = newLandingModel(m.styles)
		return m.landing.init(), true
	case "1", "2", "3", "4", "5", "6", "7":
		n, _ := strconv.Atoi(key.String())
		if t := Tab(n - 1); t < tabCount {
			return m.openTab(t), true
		}
	}
	return nil, false
}

// pageTyping reports whether the active tab has a focused text input, in
// which case plain letters belong to the input rather than navigation.
func (m Model) pageTyping() bool {
	switch m.tab {
	case TabSurveys:
		return m.surveys.mode == surveysCreate || m.surveys.searching
	case TabMonitoring:
		return m.monitoring.searching
	case TabUsers:
		return m.users.searching
	case TabSMS:
		return m.sms.message.Focused() || m.sms.district.Focused() ||
			m.sms.sector.Focused() || m.sms.numbers.Focused()
	}
	return false
}

func (m Model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.tab {
	case TabHome:
		m.home, cmd = m.home.update(msg)
	case TabSurveys:
		m.surveys, cmd = m.surveys.update(msg)
	case TabMonitoring:
		m.monitoring, cmd = m.monitoring.update(msg)
	case TabAnalytics:
		m.analytics, cmd = m.analytics.update(msg)
	case TabUsers:
		m.users, cmd = m.users.update(msg)
	case TabSMS:
		m.sms, cmd = m.sms.update(msg)
	case TabNotifications:
		m.notifications, cmd = m.notifications.update(msg)
	}
	return m, cmd
}
