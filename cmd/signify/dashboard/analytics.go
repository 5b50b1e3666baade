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

type analyticsLoadedMsg struct {
	locations   []api.LocationAnalytics
	composition *api.RiskComposition
	trend       []api.TrendPoint
	err         error
}

func (m analyticsLoadedMsg) apiErr() error { return m.err }

type districtLoadedMsg struct {
	details *api.DistrictDetails
	err     error
}

func (m districtLoadedMsg) apiErr() error { return m.err }

// analyticsPage is the geographic risk view: per-location stacked risk
// bars with a district drill-down.
type analyticsPage struct {
	client *api.Client
	styles ui.Styles

	loading bool
	spin    spinner.Model
	err     error

	locations   []api.LocationAnalytics
	composition *api.RiskComposition
	trend       []api.TrendPoint
	cursor      int

	// drill-down state
	district *api.DistrictDetails
	drilling bool
}

func newAnalyticsPage(client *api.Client, styles ui.Styles) analyticsPage {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner
	return analyticsPage{client: client, styles: styles, spin: spin}
}

func (p *analyticsPage) open() tea.Cmd {
	p.loading = true
	p.err = nil
	p.district = nil
	p.drilling = false
	client := p.client
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		var msg analyticsLoadedMsg
		g, gctx := errgroup.WithContext(ctx())
		g.Go(func() (err error) {
			msg.locations, err = client.LocationStats(gctx)
			return err
		})
		g.Go(func() (err error) {
			msg.composition, err = client.RiskComposition(gctx)
			return err
		})
		g.Go(func() (err error) {
			msg.trend, err = client.TrendData(gctx)
			return err
		})
		msg.err = g.Wait()
		return msg
	})
}

func (p *analyticsPage) drillDown() tea.Cmd {
	if p.cursor < 0 || p.cursor >= len(p.locations) {
		return nil
	}
	district := p.locations[p.cursor].Location
	p.drilling = true
	client := p.client
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		details, err := client.DistrictDetails(ctx(), district)
		return districtLoadedMsg{details: details, err: err}
	})
}

func (p analyticsPage) update(msg tea.Msg) (analyticsPage, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsLoadedMsg:
		p.loading = false
		p.err = msg.err
		if msg.err == nil {
			p.locations = msg.locations
			p.composition = msg.composition
			p.trend = msg.trend
			if p.cursor >= len(p.locations) {
				p.cursor = 0
			}
		}
		return p, nil

	case districtLoadedMsg:
		p.drilling = false
		if msg.err != nil {
			p.err = msg.err
			return p, nil
		}
		p.district = msg.details
		return p, nil

	case spinner.TickMsg:
		if p.loading || p.drilling {
			var cmd tea.Cmd
			p.spin, cmd = p.spin.Update(msg)
			return p, cmd
		}
		return p, nil

	case tea.KeyMsg:
		if p.district != nil {
			if msg.String() == "esc" || msg.String() == "b" {
				p.district = nil
			}
			return p, nil
		}
		switch msg.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.locations)-1 {
				p.cursor++
			}
		case "enter":
			return p, p.drillDown()
		}
	}
	return p, nil
}

func (p analyticsPage) view(width int) string {
	if p.loading {
		return p.spin.View() + p.styles.Muted.Render(" loading analytics...")
	}
	if p.err != nil {
		return p.styles.Error.Render("Could not load analytics: "+p.err.Error()) + "\n" +
			p.styles.Help.Render("r retry")
	}
	if p.district != nil {
		return p.districtView()
	}

	var sb strings.Builder

	if p.composition != nil {
		c := p.composition
		sb.WriteString(fmt.Sprintf("%s signals   %s %d%%  %s %d%%  %s %d%%\n\n",
			p.styles.Bold.Render(formatCount(c.TotalSignals)),
			p.styles.RiskHigh.Render("high"), c.HighRisk,
			p.styles.RiskMedium.Render("medium"), c.MediumRisk,
			p.styles.RiskLow.Render("low"), c.LowRisk))
	}

	bars := make([]ui.RiskBar, len(p.locations))
	for i, l := range p.locations {
		bars[i] = ui.RiskBar{Label: l.Location, Low: l.LowRisk, Medium: l.MediumRisk, High: l.HighRisk}
	}
	sb.WriteString(p.styles.Title.Render("Risk by Location") + "\n")
	sb.WriteString(ui.RiskBarChart(p.styles, bars, width))
	if p.cursor < len(p.locations) {
		sb.WriteString("\n" + p.styles.Subtitle.Render("Selected: "+p.locations[p.cursor].Location) + "\n")
	}

	if len(p.trend) > 0 {
		values := make([]int, len(p.trend))
		for i, t := range p.trend {
			values[i] = t.Risk
		}
		sb.WriteString("\n" + p.styles.Title.Render("Risk Alert Trend") + "\n")
		sb.WriteString("  " + ui.Sparkline(values) + "\n")
	}

	if p.drilling {
		sb.WriteString("\n" + p.spin.View() + p.styles.Muted.Render(" loading district..."))
	}
	sb.WriteString("\n" + p.styles.Help.Render("↑/↓ select • enter drill down • r refresh"))
	return sb.String()
}

func (p analyticsPage) districtView() string {
	d := p.district
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render(d.District) + "\n")
	sb.WriteString(fmt.Sprintf("%s responses   %s %d%%  %s %d%%  %s %d%%\n\n",
		p.styles.Bold.Render(formatCount(d.TotalResponses)),
		p.styles.RiskHigh.Render("high"), d.Composition.HighRisk,
		p.styles.RiskMedium.Render("medium"), d.Composition.MediumRisk,
		p.styles.RiskLow.Render("low"), d.Composition.LowRisk))

	if len(d.Sectors) > 0 {
		table := ui.NewTable("Sectors", "Sector", "Responses", "High Risk")
		table.AlignRight(1, 2)
		for _, s := range d.Sectors {
			table.AddRow(s.Sector, formatCount(s.Responses), formatCount(s.HighRisk))
		}
		sb.WriteString(table.View(p.styles))
	}

	sb.WriteString("\n" + p.styles.Help.Render("esc back"))
	return sb.String()
}
