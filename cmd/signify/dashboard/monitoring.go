package dashboard

import (
	"fmt"
	"strings"
	"time"

	"signify/cmd/signify/ui"
	"signify/internal/api"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// minRefreshSpin keeps the refresh indicator visible long enough to
// register, even when the backend answers instantly.
const minRefreshSpin = 800 * time.Millisecond

type responsesLoadedMsg struct {
	responses []api.Response
	err       error
}

func (m responsesLoadedMsg) apiErr() error { return m.err }

// monitoringPage shows the incoming response feed with a live search
// filter.
type monitoringPage struct {
	client *api.Client
	styles ui.Styles

	loading bool
	spin    spinner.Model
	err     error

	responses []api.Response
	search    textinput.Model
	searching bool
	cursor    int
}

func newMonitoringPage(client *api.Client, styles ui.Styles) monitoringPage {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner

	search := textinput.New()
	search.Placeholder = "Search district, sector or token"
	search.CharLimit = 60

	return monitoringPage{client: client, styles: styles, spin: spin, search: search}
}

func (p *monitoringPage) open() tea.Cmd {
	p.loading = true
	p.err = nil
	client := p.client
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		started := time.Now()
		responses, err := client.Responses(ctx(), "")
		if wait := minRefreshSpin - time.Since(started); wait > 0 {
			time.Sleep(wait)
		}
		return responsesLoadedMsg{responses: responses, err: err}
	})
}

// filtered applies the search box to district, sector and token.
func (p monitoringPage) filtered() []api.Response {
	q := strings.ToLower(strings.TrimSpace(p.search.Value()))
	if q == "" {
		return p.responses
	}
	out := make([]api.Response, 0, len(p.responses))
	for _, r := range p.responses {
		if strings.Contains(strings.ToLower(r.District), q) ||
			strings.Contains(strings.ToLower(r.Sector), q) ||
			strings.Contains(strings.ToLower(r.AnonymousToken), q) {
			out = append(out, r)
		}
	}
	return out
}

func (p monitoringPage) update(msg tea.Msg) (monitoringPage, tea.Cmd) {
	switch msg := msg.(type) {
	case responsesLoadedMsg:
		p.loading = false
		p.err = msg.err
		if msg.err == nil {
			p.responses = msg.responses
			if p.cursor >= len(p.responses) {
				p.cursor = 0
			}
		}
		return p, nil

	case spinner.TickMsg:
		if p.loading {
			var cmd tea.Cmd
			p.spin, cmd = p.spin.Update(msg)
			return p, cmd
		}
		return p, nil

	case tea.KeyMsg:
		if p.searching {
			switch msg.String() {
			case "enter", "esc":
				p.searching = false
				p.search.Blur()
				p.cursor = 0
				return p, nil
			}
			var cmd tea.Cmd
			p.search, cmd = p.search.Update(msg)
			return p, cmd
		}
		switch msg.String() {
		case "/":
			p.searching = true
			return p, p.search.Focus()
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.filtered())-1 {
				p.cursor++
			}
		}
	}
	return p, nil
}

func (p monitoringPage) view(width int) string {
	if p.loading {
		return p.spin.View() + p.styles.Muted.Render(" refreshing responses...")
	}
	if p.err != nil {
		return p.styles.Error.Render("Could not load responses: "+p.err.Error()) + "\n" +
			p.styles.Help.Render("r retry")
	}

	var sb strings.Builder
	sb.WriteString(p.search.View() + "\n\n")

	rows := p.filtered()
	if len(rows) == 0 {
		sb.WriteString(p.styles.Muted.Render("No responses match.") + "\n")
	}
	for i, r := range rows {
		marker := "  "
		if i == p.cursor && !p.searching {
			marker = p.styles.Bold.Render("> ")
		}
		surveyTitle := ""
		if r.Survey != nil {
			surveyTitle = r.Survey.Title
		}
		sb.WriteString(marker + fmt.Sprintf("%s  %-18s %-14s %s  %s\n",
			p.styles.RiskSignal(r.RiskSignal),
			ui.Truncate(r.District, 18),
			ui.Truncate(r.Sector, 14),
			ui.Truncate(surveyTitle, 28),
			p.styles.Muted.Render(api.FormatTimestamp(r.SubmittedAt))))
	}

	sel := p.selectedResponse()
	if sel != nil && len(sel.Answers) > 0 {
		sb.WriteString("\n" + p.styles.Title.Render("Answers") + "\n")
		for _, a := range sel.Answers {
			sb.WriteString("  " + p.styles.Muted.Render(a.AnswerID) + " " + a.AnswerText + "\n")
		}
	}

	sb.WriteString("\n" + p.styles.Help.Render("/ search • ↑/↓ move • r refresh"))
	return sb.String()
}

func (p monitoringPage) selectedResponse() *api.Response {
	rows := p.filtered()
	if p.cursor < 0 || p.cursor >= len(rows) {
		return nil
	}
	return &rows[p.cursor]
}
