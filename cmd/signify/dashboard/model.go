// Package dashboard provides the interactive TUI for the signify client:
// the public landing view, the login form, the survey intake wizard, and
// the authenticated admin dashboard with its tab pages.
package dashboard

import (
	"signify/cmd/signify/ui"
	"signify/internal/api"
	"signify/internal/intake"
	"signify/internal/logging"
	"signify/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// AppView is the top-level view switch. Exactly one view is mounted at a
// time.
type AppView int

const (
	ViewLanding AppView = iota
	ViewLogin
	ViewIntake
	ViewDashboard
)

// Tab identifies a dashboard screen. Each tab owns its own fetch-on-entry
// lifecycle and local state; there is no shared cache between tabs, and
// re-entering a tab always re-fetches.
type Tab int

const (
	TabHome Tab = iota
	TabSurveys
	TabMonitoring
	TabAnalytics
	TabUsers
	TabSMS
	TabNotifications
	tabCount
)

// String returns the tab label shown in the tab bar.
func (t Tab) String() string {
	names := []string{"Dashboard", "Surveys", "Monitoring", "Analytics", "Users", "SMS", "Notifications"}
	if int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// Deps carries the collaborators the dashboard consumes.
type Deps struct {
	Client   *api.Client
	Sessions *session.Store
	Styles   ui.Styles
}

// Model is the root bubbletea model.
type Model struct {
	deps   Deps
	styles ui.Styles

	view   AppView
	tab    Tab
	layout ui.LayoutConfig
	ready  bool

	// status is the one-line feedback area above the footer. Every
	// mutating call reports success or failure here.
	status      string
	statusIsErr bool

	landing landingModel
	login   loginModel
	wizard  wizardModel

	home          homePage
	surveys       surveysPage
	monitoring    monitoringPage
	analytics     analyticsPage
	users         usersPage
	sms           smsPage
	notifications notificationsPage
}

// New builds the root model. A persisted session routes straight to the
// dashboard; otherwise the landing view shows.
func New(deps Deps) Model {
	styles := deps.Styles

	m := Model{
		deps:    deps,
		styles:  styles,
		view:    ViewLanding,
		tab:     TabHome,
		landing: newLandingModel(styles),
		login:   newLoginModel(styles),

		home:          newHomePage(deps.Client, styles),
		surveys:       newSurveysPage(deps.Client, styles),
		monitoring:    newMonitoringPage(deps.Client, styles),
		analytics:     newAnalyticsPage(deps.Client, styles),
		users:         newUsersPage(deps.Client, styles),
		sms:           newSMSPage(deps.Client, styles),
		notifications: newNotificationsPage(deps.Client, styles),
	}
	if deps.Sessions.Authenticated() {
		m.view = ViewDashboard
	}
	return m
}

// Init starts the mounted view.
func (m Model) Init() tea.Cmd {
	logging.L(logging.CategoryUI).Info("dashboard starting",
		zap.Bool("authenticated", m.deps.Sessions.Authenticated()))
	if m.view == ViewDashboard {
		return m.openTab(m.tab)
	}
	return m.landing.init()
}

// openTab re-fetches the page behind a tab. Called on every entry.
func (m *Model) openTab(t Tab) tea.Cmd {
	m.tab = t
	logging.L(logging.CategoryUI).Debug("tab opened", zap.String("tab", t.String()))
	switch t {
	case TabHome:
		return m.home.open()
	case TabSurveys:
		return m.surveys.open()
	case TabMonitoring:
		return m.monitoring.open()
	case TabAnalytics:
		return m.analytics.open()
	case TabUsers:
		return m.users.open()
	case TabSMS:
		return m.sms.open()
	case TabNotifications:
		return m.notifications.open()
	}
	return nil
}

// startIntake begins a fresh survey intake flow. Each submission gets a
// new flow instance.
func (m *Model) startIntake() tea.Cmd {
	wizard, err := newWizardModel(m.styles, intake.DefaultQuestions())
	if err != nil {
		m.setStatus("intake unavailable: "+err.Error(), true)
		return nil
	}
	m.wizard = wizard
	m.view = ViewIntake
	return nil
}

// setStatus updates the one-line feedback area.
func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusIsErr = isErr
}

// handleSessionExpired is the single 401 funnel: clear the persisted
// session, drop back to the login view, and say why.
func (m *Model) handleSessionExpired() (tea.Model, tea.Cmd) {
	logging.L(logging.CategorySession).Warn("session expired, returning to login")
	_ = m.deps.Sessions.Clear()
	m.view = ViewLogin
	m.login = newLoginModel(m.styles)
	m.login.notice = "Session expired. Please log in again."
	return *m, m.login.init()
}
