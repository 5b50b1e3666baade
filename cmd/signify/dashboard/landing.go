package dashboard

import (
	"fmt"
	"strings"
	"time"

	"signify/cmd/signify/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// impactStat is one figure of the impact section. Displayed values count
// up from zero while the landing view is mounted; this is cosmetic pacing
// only.
type impactStat struct {
	target int
	suffix string
	label  string
}

func impactStats() []impactStat {
	return []impactStat{
		{target: 250000, suffix: "+", label: "Communities Reached"},
		{target: 1200000, suffix: "+", label: "Surveys Completed"},
		{target: 3500, suffix: "+", label: "Early Alerts Generated"},
		{target: 12, suffix: "", label: "Regions Covered"},
	}
}

// countTickMsg advances the impact stat animation.
type countTickMsg struct{}

const (
	countTickInterval = 50 * time.Millisecond
	countSteps        = 30
)

// landingModel renders the public marketing view.
type landingModel struct {
	styles   ui.Styles
	renderer *glamour.TermRenderer
	body     string
	step     int
	width    int
}

func newLandingModel(styles ui.Styles) landingModel {
	m := landingModel{styles: styles, width: 80}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err == nil {
		m.renderer = renderer
	}
	m.body = m.renderBody()
	return m
}

func (m landingModel) init() tea.Cmd {
	return tea.Tick(countTickInterval, func(time.Time) tea.Msg { return countTickMsg{} })
}

func (m landingModel) update(msg tea.Msg) (landingModel, tea.Cmd) {
	switch msg.(type) {
	case countTickMsg:
		if m.step >= countSteps {
			return m, nil
		}
		m.step++
		return m, tea.Tick(countTickInterval, func(time.Time) tea.Msg { return countTickMsg{} })
	}
	return m, nil
}

// landingMarkdown is the marketing copy, rendered through glamour.
const landingMarkdown = `# Turning Community Voices into Preventive Health Action

Signify collects real-time health signals from African communities, helping
authorities detect patterns early and shift from reactive care to preventive
action.

## The Challenge African Health Systems Face

Traditional health surveillance relies on facility-based reporting, creating
dangerous gaps in early detection and response.

- **Delayed Health Data**: reports arrive weeks after symptoms appear
- **Reactive Decisions**: authorities respond to outbreaks, not signals
- **Facility-Only Reporting**: communities without clinics go unseen

## How Signify Works

1. **People Send Health Signals** via USSD, mobile app, or web
2. **Data is Aggregated** across districts and sectors
3. **Authorities See Trends** on a live dashboard
4. **Early Action is Taken** before outbreaks spread

## Reporting Channels

- **USSD (Feature Phones)**: no internet required
- **Mobile App**: guided surveys in local languages
- **Web Dashboard**: planning tools for health officers

## Focus Areas

Malaria and vector presence, maternal health, respiratory patterns,
nutrition indicators, and water quality reports.

## Who We Work With

Ministries of Health, NGOs and development partners, and health research
institutions.
`

func (m landingModel) renderBody() string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(landingMarkdown); err == nil {
			return out
		}
	}
	return landingMarkdown
}

// view renders the marketing copy with the animated impact figures and
// the key hints.
func (m landingModel) view() string {
	var sb strings.Builder
	sb.WriteString(ui.Logo(m.styles))
	sb.WriteString("\n")
	sb.WriteString(m.body)
	sb.WriteString("\n")
	sb.WriteString(m.styles.Title.Render("Our Impact"))
	sb.WriteString("\n")

	for _, stat := range impactStats() {
		value := stat.target * m.step / countSteps
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			m.styles.Bold.Render(fmt.Sprintf("%s%s", formatCount(value), stat.suffix)),
			m.styles.Muted.Render(stat.label)))
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("s sign in • d try the demo survey • q quit"))
	return sb.String()
}

// formatCount renders an integer with thousands separators.
func formatCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}
