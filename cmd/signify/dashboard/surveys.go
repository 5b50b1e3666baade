package dashboard

import (
	"fmt"
	"strings"

	"signify/cmd/signify/ui"
	"signify/internal/api"
	"signify/internal/logging"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type surveysLoadedMsg struct {
	surveys []api.Survey
	err     error
}

func (m surveysLoadedMsg) apiErr() error { return m.err }

type surveyCreatedMsg struct {
	survey *api.Survey
	err    error
}

func (m surveyCreatedMsg) apiErr() error { return m.err }

type surveyDeletedMsg struct {
	surveyID string
	err      error
}

func (m surveyDeletedMsg) apiErr() error { return m.err }

type surveyStatusMsg struct {
	survey *api.Survey
	err    error
	// prev restores the optimistic flip when the update fails.
	surveyID string
	prev     string
}

func (m surveyStatusMsg) apiErr() error { return m.err }

type surveysMode int

const (
	surveysBrowse surveysMode = iota
	surveysCreate
	surveysConfirmDelete
)

// statusFilters cycles with the f key; "" means all.
var statusFilters = []string{"", "active", "draft", "archived"}

// surveysPage lists surveys and hosts the create form and delete
// confirmation.
type surveysPage struct {
	client *api.Client
	styles ui.Styles

	mode    surveysMode
	loading bool
	spin    spinner.Model
	err     error

	surveys   []api.Survey
	cursor    int
	filter    int
	search    textinput.Model
	searching bool

	// create form
	formFocus int
	title     textinput.Model
	desc      textinput.Model
	startDate textinput.Model
	endDate   textinput.Model
	formErr   string

	notice string
}

func newSurveysPage(client *api.Client, styles ui.Styles) surveysPage {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner

	title := textinput.New()
	title.Placeholder = "Survey title"
	title.CharLimit = 120
	desc := textinput.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 300
	start := textinput.New()
	start.Placeholder = "Start date (YYYY-MM-DD)"
	end := textinput.New()
	end.Placeholder = "End date (YYYY-MM-DD)"

	search := textinput.New()
	search.Placeholder = "Search title or ID"
	search.CharLimit = 60

	return surveysPage{
		client:    client,
		styles:    styles,
		spin:      spin,
		title:     title,
		desc:      desc,
		startDate: start,
		endDate:   end,
		search:    search,
	}
}

func (p *surveysPage) open() tea.Cmd {
	p.loading = true
	p.err = nil
	p.notice = ""
	client := p.client
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		surveys, err := client.Surveys(ctx(), nil)
		return surveysLoadedMsg{surveys: surveys, err: err}
	})
}

// visible applies the status filter and the title/ID search.
func (p surveysPage) visible() []api.Survey {
	want := statusFilters[p.filter]
	q := strings.ToLower(strings.TrimSpace(p.search.Value()))
	out := make([]api.Survey, 0, len(p.surveys))
	for _, s := range p.surveys {
		if want != "" && s.Status != want {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(s.Title), q) &&
			!strings.Contains(strings.ToLower(s.SurveyID), q) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (p surveysPage) selected() *api.Survey {
	vis := p.visible()
	if p.cursor < 0 || p.cursor >= len(vis) {
		return nil
	}
	return &vis[p.cursor]
}

func (p *surveysPage) formInputs() []*textinput.Model {
	return []*textinput.Model{&p.title, &p.desc, &p.startDate, &p.endDate}
}

func (p *surveysPage) focusForm(i int) {
	inputs := p.formInputs()
	p.formFocus = i
	for j, in := range inputs {
		if j == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (p *surveysPage) openCreateForm() {
	p.mode = surveysCreate
	p.formErr = ""
	for _, in := range p.formInputs() {
		in.SetValue("")
	}
	p.focusForm(0)
}

func (p *surveysPage) submitCreate() tea.Cmd {
	if strings.TrimSpace(p.title.Value()) == "" {
		p.formErr = "Title is required."
		return nil
	}
	req := api.CreateSurvey{
		Title:       strings.TrimSpace(p.title.Value()),
		Description: strings.TrimSpace(p.desc.Value()),
		StartDate:   strings.TrimSpace(p.startDate.Value()),
		EndDate:     strings.TrimSpace(p.endDate.Value()),
	}
	client := p.client
	return func() tea.Msg {
		survey, err := client.CreateSurvey(ctx(), req)
		return surveyCreatedMsg{survey: survey, err: err}
	}
}

func (p *surveysPage) deleteSelected() tea.Cmd {
	sel := p.selected()
	if sel == nil {
		p.mode = surveysBrowse
		return nil
	}
	id := sel.SurveyID
	// Optimistic removal; the list is restored by a reload on failure.
	p.removeSurvey(id)
	p.mode = surveysBrowse
	client := p.client
	return func() tea.Msg {
		err := client.DeleteSurvey(ctx(), id)
		return surveyDeletedMsg{surveyID: id, err: err}
	}
}

func (p *surveysPage) removeSurvey(id string) {
	for i, s := range p.surveys {
		if s.SurveyID == id {
			p.surveys = append(p.surveys[:i], p.surveys[i+1:]...)
			break
		}
	}
	if vis := p.visible(); p.cursor >= len(vis) && p.cursor > 0 {
		p.cursor--
	}
}

// nextStatus cycles draft -> active -> archived -> draft.
func nextStatus(status string) string {
	switch status {
	case "draft":
		return "active"
	case "active":
		return "archived"
	default:
		return "draft"
	}
}

func (p *surveysPage) cycleStatus() tea.Cmd {
	sel := p.selected()
	if sel == nil {
		return nil
	}
	id := sel.SurveyID
	prev := sel.Status
	next := nextStatus(prev)
	p.setStatus(id, next)
	client := p.client
	return func() tea.Msg {
		survey, err := client.UpdateSurvey(ctx(), id, api.UpdateSurvey{Status: &next})
		return surveyStatusMsg{survey: survey, err: err, surveyID: id, prev: prev}
	}
}

func (p *surveysPage) setStatus(id, status string) {
	for i := range p.surveys {
		if p.surveys[i].SurveyID == id {
			p.surveys[i].Status = status
			return
		}
	}
}

func (p surveysPage) update(msg tea.Msg) (surveysPage, tea.Cmd) {
	switch msg := msg.(type) {
	case surveysLoadedMsg:
		p.loading = false
		p.err = msg.err
		if msg.err == nil {
			p.surveys = msg.surveys
			if vis := p.visible(); p.cursor >= len(vis) {
				p.cursor = 0
			}
		}
		return p, nil

	case surveyCreatedMsg:
		if msg.err != nil {
			p.formErr = errorText(msg.err)
			return p, nil
		}
		p.mode = surveysBrowse
		p.notice = fmt.Sprintf("Created %q.", msg.survey.Title)
		p.surveys = append([]api.Survey{*msg.survey}, p.surveys...)
		logging.L(logging.CategoryUI).Info("survey created",
			zap.String("survey_id", msg.survey.SurveyID))
		return p, nil

	case surveyDeletedMsg:
		if msg.err != nil {
			p.notice = errorText(msg.err)
			return p, p.open()
		}
		p.notice = "Survey deleted."
		return p, nil

	case surveyStatusMsg:
		if msg.err != nil {
			p.setStatus(msg.surveyID, msg.prev)
			p.notice = errorText(msg.err)
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
		return p.handleKey(msg)
	}
	return p, nil
}

func (p surveysPage) handleKey(msg tea.KeyMsg) (surveysPage, tea.Cmd) {
	switch p.mode {
	case surveysCreate:
		switch msg.String() {
		case "esc":
			p.mode = surveysBrowse
			return p, nil
		case "tab", "down":
			p.focusForm((p.formFocus + 1) % 4)
			return p, nil
		case "shift+tab", "up":
			p.focusForm((p.formFocus + 3) % 4)
			return p, nil
		case "enter":
			if p.formFocus < 3 {
				p.focusForm(p.formFocus + 1)
				return p, nil
			}
			return p, p.submitCreate()
		}
		inputs := p.formInputs()
		var cmd tea.Cmd
		*inputs[p.formFocus], cmd = inputs[p.formFocus].Update(msg)
		return p, cmd

	case surveysConfirmDelete:
		switch msg.String() {
		case "y":
			return p, p.deleteSelected()
		case "n", "esc":
			p.mode = surveysBrowse
		}
		return p, nil
	}

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
		if p.cursor < len(p.visible())-1 {
			p.cursor++
		}
	case "f":
		p.filter = (p.filter + 1) % len(statusFilters)
		p.cursor = 0
	case "n":
		p.openCreateForm()
	case "a":
		return p, p.cycleStatus()
	case "d", "delete":
		if p.selected() != nil {
			p.mode = surveysConfirmDelete
		}
	}
	return p, nil
}

func (p surveysPage) view(width int) string {
	if p.loading {
		return p.spin.View() + p.styles.Muted.Render(" loading surveys...")
	}
	if p.err != nil {
		return p.styles.Error.Render("Could not load surveys: "+p.err.Error()) + "\n" +
			p.styles.Help.Render("r retry")
	}

	switch p.mode {
	case surveysCreate:
		return p.createView()
	case surveysConfirmDelete:
		sel := p.selected()
		if sel == nil {
			return ""
		}
		return p.styles.Warning.Render(fmt.Sprintf("Delete %q and all its responses?", sel.Title)) +
			"\n\n" + p.styles.Help.Render("y confirm • n cancel")
	}

	var sb strings.Builder
	filterLabel := statusFilters[p.filter]
	if filterLabel == "" {
		filterLabel = "all"
	}
	sb.WriteString(p.styles.Subtitle.Render("Filter: "+filterLabel) + "  " + p.search.View() + "\n\n")

	vis := p.visible()
	if len(vis) == 0 {
		sb.WriteString(p.styles.Muted.Render("No surveys.") + "\n")
	}
	for i, s := range vis {
		marker := "  "
		line := fmt.Sprintf("%-40s %s  %4d responses  %s",
			ui.Truncate(s.Title, 40),
			p.styles.StatusBadge(s.Status),
			s.ResponseCount(),
			p.styles.Muted.Render(api.FormatTimestamp(s.CreatedAt)))
		if i == p.cursor && !p.searching {
			marker = p.styles.Bold.Render("> ")
		}
		sb.WriteString(marker + line + "\n")
	}

	if p.notice != "" {
		sb.WriteString("\n" + p.styles.Info.Render(p.notice) + "\n")
	}
	sb.WriteString("\n" + p.styles.Help.Render(
		"↑/↓ move • / search • f filter • n new • a status • d delete"))
	return sb.String()
}

func (p surveysPage) createView() string {
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render("New Survey") + "\n\n")
	labels := []string{"Title", "Description", "Start date", "End date"}
	inputs := []textinput.Model{p.title, p.desc, p.startDate, p.endDate}
	for i, in := range inputs {
		sb.WriteString(p.styles.Muted.Render(labels[i]) + "\n")
		sb.WriteString(in.View() + "\n\n")
	}
	if p.formErr != "" {
		sb.WriteString(p.styles.Error.Render(p.formErr) + "\n")
	}
	sb.WriteString(p.styles.Help.Render("tab next field • enter submit • esc cancel"))
	return sb.String()
}

// errorText prefers the backend message for typed API errors.
func errorText(err error) string {
	if apiErr := api.AsError(err); apiErr != nil {
		return apiErr.Message
	}
	return err.Error()
}
