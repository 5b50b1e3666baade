package dashboard

import (
	"strings"

	"signify/cmd/signify/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// ensure Model satisfies tea.Model.
var _ tea.Model = Model{}

// View renders the mounted view. The dashboard gets header, tab bar,
// page content, the status line and a footer; the other views own the
// whole screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.view {
	case ViewLanding:
		return m.landing.view()
	case ViewLogin:
		return m.login.view()
	case ViewIntake:
		return m.wizard.view()
	}

	var sb strings.Builder
	sb.WriteString(m.headerView() + "\n")
	sb.WriteString(m.tabBarView() + "\n\n")
	sb.WriteString(m.pageView())
	sb.WriteString("\n")
	if m.status != "" {
		style := m.styles.Info
		if m.statusIsErr {
			style = m.styles.Error
		}
		sb.WriteString("\n" + style.Render(m.status) + "\n")
	}
	sb.WriteString("\n" + m.footerView())
	return m.styles.App.Render(sb.String())
}

func (m Model) headerView() string {
	name := ""
	if sess := m.deps.Sessions.Current(); sess != nil {
		name = sess.Admin.Name
	}
	left := m.styles.Header.Render(ui.Logo(m.styles))
	if name == "" {
		return left
	}
	return left + "  " + m.styles.Muted.Render(name)
}

func (m Model) tabBarView() string {
	var sb strings.Builder
	for t := Tab(0); t < tabCount; t++ {
		style := m.styles.TabInactive
		if t == m.tab {
			style = m.styles.TabActive
		}
		sb.WriteString(style.Render(t.String()))
		sb.WriteString(" ")
	}
	return sb.String()
}

func (m Model) pageView() string {
	width := m.layout.ContentWidth()
	switch m.tab {
	case TabHome:
		return m.home.view(width)
	case TabSurveys:
		return m.surveys.view(width)
	case TabMonitoring:
		return m.monitoring.view(width)
	case TabAnalytics:
		return m.analytics.view(width)
	case TabUsers:
		return m.users.view(width)
	case TabSMS:
		return m.sms.view(width)
	case TabNotifications:
		return m.notifications.view(width)
	}
	return ""
}

func (m Model) footerView() string {
	return m.styles.Help.Render("tab/1-7 switch • r refresh • L log out • q quit")
}
