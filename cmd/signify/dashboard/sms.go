package dashboard

import (
	"fmt"
	"strings"

	"signify/cmd/signify/ui"
	"signify/internal/api"
	"signify/internal/logging"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type smsTab int

const (
	smsSurvey smsTab = iota
	smsGeneral
	smsBulk
	smsTabCount
)

func (t smsTab) String() string {
	switch t {
	case smsSurvey:
		return "Survey Alert"
	case smsGeneral:
		return "General"
	case smsBulk:
		return "Bulk"
	}
	return ""
}

type smsSentMsg struct {
	result *api.SMSResult
	err    error
}

func (m smsSentMsg) apiErr() error { return m.err }

type gatewayTestedMsg struct {
	result *api.GatewayTest
	err    error
}

func (m gatewayTestedMsg) apiErr() error { return m.err }

type smsSurveysMsg struct {
	surveys []api.Survey
	err     error
}

func (m smsSurveysMsg) apiErr() error { return m.err }

// smsPage sends broadcast messages: survey launch alerts, general
// announcements, and raw bulk sends to pasted numbers.
type smsPage struct {
	client *api.Client
	styles ui.Styles

	tab     smsTab
	loading bool
	sending bool
	spin    spinner.Model
	err     error

	// survey alert sub-tab
	surveys      []api.Survey
	surveyCursor int

	// general sub-tab
	message  textarea.Model
	district textinput.Model
	sector   textinput.Model

	// bulk sub-tab
	numbers textarea.Model

	focus   int
	banner  string
	isError bool
	gateway *api.GatewayTest
}

func newSMSPage(client *api.Client, styles ui.Styles) smsPage {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner

	message := textarea.New()
	message.Placeholder = "Message to send"
	message.SetHeight(4)
	message.CharLimit = 320

	district := textinput.New()
	district.Placeholder = "District (blank for all)"
	sector := textinput.New()
	sector.Placeholder = "Sector (blank for all)"

	numbers := textarea.New()
	numbers.Placeholder = "One phone number per line"
	numbers.SetHeight(4)

	return smsPage{
		client:   client,
		styles:   styles,
		spin:     spin,
		message:  message,
		district: district,
		sector:   sector,
		numbers:  numbers,
	}
}

func (p *smsPage) open() tea.Cmd {
	p.loading = true
	p.err = nil
	p.banner = ""
	client := p.client
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		surveys, err := client.Surveys(ctx(), nil)
		return smsSurveysMsg{surveys: surveys, err: err}
	})
}

// activeSurveys narrows the picker to surveys worth announcing.
func (p smsPage) activeSurveys() []api.Survey {
	out := make([]api.Survey, 0, len(p.surveys))
	for _, s := range p.surveys {
		if s.Status == "active" {
			out = append(out, s)
		}
	}
	return out
}

func (p *smsPage) sendSurveyAlert() tea.Cmd {
	active := p.activeSurveys()
	if p.surveyCursor < 0 || p.surveyCursor >= len(active) {
		return nil
	}
	survey := active[p.surveyCursor]
	p.sending = true
	client := p.client
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		result, err := client.SendSurveyNotification(ctx(), api.SurveyNotification{
			SurveyTitle:     survey.Title,
			SurveyLocations: survey.Locations,
		})
		return smsSentMsg{result: result, err: err}
	})
}

func (p *smsPage) sendGeneral() tea.Cmd {
	msg := strings.TrimSpace(p.message.Value())
	if msg == "" {
		p.banner = "Message is required."
		p.isError = true
		return nil
	}
	var locs []api.Location
	if d := strings.TrimSpace(p.district.Value()); d != "" {
		locs = append(locs, api.Location{
			Country:  "Rwanda",
			District: d,
			Sector:   strings.TrimSpace(p.sector.Value()),
		})
	}
	p.sending = true
	client := p.client
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		result, err := client.SendGeneralNotification(ctx(), api.GeneralNotification{
			Message:         msg,
			TargetLocations: locs,
		})
		return smsSentMsg{result: result, err: err}
	})
}

func (p *smsPage) sendBulk() tea.Cmd {
	msg := strings.TrimSpace(p.message.Value())
	numbers := splitNumbers(p.numbers.Value())
	if msg == "" || len(numbers) == 0 {
		p.banner = "Message and at least one number are required."
		p.isError = true
		return nil
	}
	p.sending = true
	client := p.client
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		result, err := client.SendBulkSMS(ctx(), api.BulkSMS{
			PhoneNumbers: numbers,
			Message:      msg,
		})
		return smsSentMsg{result: result, err: err}
	})
}

// splitNumbers accepts newline or comma separated phone numbers.
func splitNumbers(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (p *smsPage) testGateway() tea.Cmd {
	p.sending = true
	client := p.client
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		result, err := client.TestGateway(ctx())
		return gatewayTestedMsg{result: result, err: err}
	})
}

func (p smsPage) update(msg tea.Msg) (smsPage, tea.Cmd) {
	switch msg := msg.(type) {
	case smsSurveysMsg:
		p.loading = false
		p.err = msg.err
		if msg.err == nil {
			p.surveys = msg.surveys
			if active := p.activeSurveys(); p.surveyCursor >= len(active) {
				p.surveyCursor = 0
			}
		}
		return p, nil

	case smsSentMsg:
		p.sending = false
		if msg.err != nil {
			p.banner = errorText(msg.err)
			p.isError = true
			return p, nil
		}
		p.banner = fmt.Sprintf("Sent to %d recipients, %d failed.", msg.result.Success, msg.result.Failed)
		p.isError = msg.result.Failed > 0 && msg.result.Success == 0
		logging.L(logging.CategoryUI).Info("sms broadcast",
			zap.Int("success", msg.result.Success), zap.Int("failed", msg.result.Failed))
		return p, nil

	case gatewayTestedMsg:
		p.sending = false
		if msg.err != nil {
			p.banner = "Gateway test failed: " + errorText(msg.err)
			p.isError = true
			return p, nil
		}
		p.gateway = msg.result
		p.banner = fmt.Sprintf("Gateway %s: %s", msg.result.Status, msg.result.Message)
		p.isError = msg.result.Status != "ok" && msg.result.Status != "online"
		return p, nil

	case spinner.TickMsg:
		if p.loading || p.sending {
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

func (p smsPage) handleKey(msg tea.KeyMsg) (smsPage, tea.Cmd) {
	// Global sub-tab switching works unless a textarea owns the key.
	typing := p.message.Focused() || p.district.Focused() || p.sector.Focused() || p.numbers.Focused()

	switch msg.String() {
	case "esc":
		p.blurAll()
		return p, nil
	case "[", "]":
		if !typing {
			if msg.String() == "]" {
				p.tab = (p.tab + 1) % smsTabCount
			} else {
				p.tab = (p.tab + smsTabCount - 1) % smsTabCount
			}
			p.blurAll()
			p.banner = ""
			return p, nil
		}
	case "g":
		if !typing {
			return p, p.testGateway()
		}
	case "ctrl+s":
		switch p.tab {
		case smsSurvey:
			return p, p.sendSurveyAlert()
		case smsGeneral:
			return p, p.sendGeneral()
		case smsBulk:
			return p, p.sendBulk()
		}
	}

	switch p.tab {
	case smsSurvey:
		switch msg.String() {
		case "up", "k":
			if p.surveyCursor > 0 {
				p.surveyCursor--
			}
		case "down", "j":
			if p.surveyCursor < len(p.activeSurveys())-1 {
				p.surveyCursor++
			}
		case "enter":
			return p, p.sendSurveyAlert()
		}
		return p, nil

	case smsGeneral:
		if !typing {
			switch msg.String() {
			case "tab":
				return p, p.focusGeneral((p.focus + 1) % 3)
			case "enter", "i":
				return p, p.focusGeneral(p.focus)
			}
			return p, nil
		}
		if msg.String() == "tab" {
			return p, p.focusGeneral((p.focus + 1) % 3)
		}
		return p.updateGeneralInputs(msg)

	case smsBulk:
		if !typing {
			switch msg.String() {
			case "tab":
				return p, p.focusBulk((p.focus + 1) % 2)
			case "enter", "i":
				return p, p.focusBulk(p.focus)
			}
			return p, nil
		}
		if msg.String() == "tab" {
			return p, p.focusBulk((p.focus + 1) % 2)
		}
		return p.updateBulkInputs(msg)
	}
	return p, nil
}

func (p *smsPage) blurAll() {
	p.message.Blur()
	p.district.Blur()
	p.sector.Blur()
	p.numbers.Blur()
}

func (p *smsPage) focusGeneral(i int) tea.Cmd {
	p.blurAll()
	p.focus = i
	switch i {
	case 0:
		return p.message.Focus()
	case 1:
		return p.district.Focus()
	default:
		return p.sector.Focus()
	}
}

func (p *smsPage) focusBulk(i int) tea.Cmd {
	p.blurAll()
	p.focus = i
	if i == 0 {
		return p.numbers.Focus()
	}
	return p.message.Focus()
}

func (p smsPage) updateGeneralInputs(msg tea.Msg) (smsPage, tea.Cmd) {
	var cmd tea.Cmd
	switch p.focus {
	case 0:
		p.message, cmd = p.message.Update(msg)
	case 1:
		p.district, cmd = p.district.Update(msg)
	default:
		p.sector, cmd = p.sector.Update(msg)
	}
	return p, cmd
}

func (p smsPage) updateBulkInputs(msg tea.Msg) (smsPage, tea.Cmd) {
	var cmd tea.Cmd
	if p.focus == 0 {
		p.numbers, cmd = p.numbers.Update(msg)
	} else {
		p.message, cmd = p.message.Update(msg)
	}
	return p, cmd
}

func (p smsPage) view(width int) string {
	if p.loading {
		return p.spin.View() + p.styles.Muted.Render(" loading...")
	}
	if p.err != nil {
		return p.styles.Error.Render("Could not load surveys: "+p.err.Error()) + "\n" +
			p.styles.Help.Render("r retry")
	}

	var sb strings.Builder
	for t := smsTab(0); t < smsTabCount; t++ {
		style := p.styles.TabInactive
		if t == p.tab {
			style = p.styles.TabActive
		}
		sb.WriteString(style.Render(t.String()))
		sb.WriteString(" ")
	}
	sb.WriteString("\n\n")

	switch p.tab {
	case smsSurvey:
		active := p.activeSurveys()
		if len(active) == 0 {
			sb.WriteString(p.styles.Muted.Render("No active surveys to announce.") + "\n")
		}
		for i, s := range active {
			marker := "  "
			if i == p.surveyCursor {
				marker = p.styles.Bold.Render("> ")
			}
			locs := make([]string, 0, len(s.Locations))
			for _, l := range s.Locations {
				locs = append(locs, l.District)
			}
			sb.WriteString(marker + fmt.Sprintf("%-40s %s\n",
				ui.Truncate(s.Title, 40),
				p.styles.Muted.Render(strings.Join(locs, ", "))))
		}
		sb.WriteString("\n" + p.styles.Help.Render("↑/↓ select • enter send alert • [ ] sub-tab • g gateway test"))

	case smsGeneral:
		sb.WriteString(p.styles.Muted.Render("Message") + "\n" + p.message.View() + "\n\n")
		sb.WriteString(p.district.View() + "\n")
		sb.WriteString(p.sector.View() + "\n\n")
		sb.WriteString(p.styles.Help.Render("tab next field • ctrl+s send • [ ] sub-tab • g gateway test"))

	case smsBulk:
		sb.WriteString(p.styles.Muted.Render("Numbers") + "\n" + p.numbers.View() + "\n\n")
		sb.WriteString(p.styles.Muted.Render("Message") + "\n" + p.message.View() + "\n\n")
		sb.WriteString(p.styles.Help.Render("tab next field • ctrl+s send • [ ] sub-tab • g gateway test"))
	}

	if p.sending {
		sb.WriteString("\n\n" + p.spin.View() + p.styles.Muted.Render(" sending..."))
	}
	if p.banner != "" {
		style := p.styles.Success
		if p.isError {
			style = p.styles.Error
		}
		sb.WriteString("\n\n" + style.Render(p.banner))
	}
	return sb.String()
}
