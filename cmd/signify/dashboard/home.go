package dashboard

import (
	"fmt"
	"strings"

	"signify/cmd/signify/ui"
	"signify/internal/api"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// homeLoadedMsg carries the three home screen datasets, fetched
// concurrently.
type homeLoadedMsg struct {
	summary     *api.DashboardSummary
	trend       []api.TrendPoint
	composition *api.RiskComposition
	err         error
}

func (m homeLoadedMsg) apiErr() error { return m.err }

// homePage is the dashboard landing tab: headline totals, the weekly
// trend, and the platform risk composition.
type homePage struct {
	client *api.Client
	styles ui.Styles

	loading     bool
	spin        spinner.Model
	err         error
	summary     *api.DashboardSummary
	trend       []api.TrendPoint
	composition *api.RiskComposition
}

func newHomePage(client *api.Client, styles ui.Styles) homePage {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner
	return homePage{client: client, styles: styles, spin: spin}
}

// open fetches everything the tab needs. The three reads share fate: one
// failure renders the tab's error state rather than a partial screen.
func (p *homePage) open() tea.Cmd {
	p.loading = true
	p.err = nil
	client := p.client
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		var msg homeLoadedMsg
		g, gctx := errgroup.WithContext(ctx())
		g.Go(func() (err error) {
			msg.summary, err = client.DashboardSummary(gctx)
			return err
		})
		g.Go(func() (err error) {
			msg.trend, err = client.TrendData(gctx)
			return err
		})
		g.Go(func() (err error) {
			msg.composition, err = client.RiskComposition(gctx)
			return err
		})
		msg.err = g.Wait()
		return msg
	})
}

func (p homePage) update(msg tea.Msg) (homePage, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		p.loading = false
		p.err = msg.err
		if msg.err == nil {
			p.summary = msg.summary
			p.trend = msg.trend
			p.composition = msg.composition
		}
		return p, nil
	case spinner.TickMsg:
		if p.loading {
			var cmd tea.Cmd
			p.spin, cmd = p.spin.Update(msg)
			return p, cmd
		}
	}
	return p, nil
}

func (p homePage) view(width int) string {
	if p.loading {
		return p.spin.View() + p.styles.Muted.Render(" loading dashboard...")
	}
	if p.err != nil {
		return p.styles.Error.Render("Could not load dashboard: "+p.err.Error()) + "\n" +
			p.styles.Help.Render("r retry")
	}
	if p.summary == nil {
		return p.styles.Muted.Render("No dashboard data.")
	}

	var sb strings.Builder

	cards := []string{
		ui.StatCard(p.styles, "Total Surveys", formatCount(p.summary.TotalSurveys), ""),
		ui.StatCard(p.styles, "Total Responses", formatCount(p.summary.TotalResponses), ""),
		ui.StatCard(p.styles, "Active Surveys", formatCount(p.summary.ActiveSurveys), ""),
	}
	sb.WriteString(joinCards(cards))
	sb.WriteString("\n\n")

	if len(p.trend) > 0 {
		sb.WriteString(p.styles.Title.Render("Response Trend"))
		sb.WriteString("\n")
		values := make([]int, len(p.trend))
		labels := make([]string, len(p.trend))
		for i, t := range p.trend {
			values[i] = t.Responses
			labels[i] = t.Day
		}
		sb.WriteString("  " + ui.Sparkline(values) + "\n")
		sb.WriteString("  " + p.styles.Muted.Render(strings.Join(labels, " ")) + "\n\n")
	}

	if p.composition != nil {
		c := p.composition
		sb.WriteString(p.styles.Title.Render("Risk Composition"))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  %s %d%%   %s %d%%   %s %d%%   %s signals\n",
			p.styles.RiskHigh.Render("high"), c.HighRisk,
			p.styles.RiskMedium.Render("medium"), c.MediumRisk,
			p.styles.RiskLow.Render("low"), c.LowRisk,
			p.styles.Bold.Render(formatCount(c.TotalSignals))))
	}

	return sb.String()
}

// joinCards lays stat cards side by side.
func joinCards(cards []string) string {
	split := make([][]string, len(cards))
	height := 0
	for i, c := range cards {
		split[i] = strings.Split(c, "\n")
		if len(split[i]) > height {
			height = len(split[i])
		}
	}
	var sb strings.Builder
	for line := 0; line < height; line++ {
		for _, card := range split {
			if line < len(card) {
				sb.WriteString(card[line])
			}
			sb.WriteString("  ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
