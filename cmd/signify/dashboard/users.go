package dashboard

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"signify/cmd/signify/ui"
	"signify/internal/api"
	"signify/internal/logging"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type usersLoadedMsg struct {
	users []api.User
	err   error
}

func (m usersLoadedMsg) apiErr() error { return m.err }

type userDeactivatedMsg struct {
	userID string
	err    error
}

func (m userDeactivatedMsg) apiErr() error { return m.err }

type usersExportedMsg struct {
	path string
	n    int
	err  error
}

func (m usersExportedMsg) apiErr() error { return nil }

// usersPage lists field volunteers with search, deactivation and CSV
// export.
type usersPage struct {
	client *api.Client
	styles ui.Styles

	loading bool
	spin    spinner.Model
	err     error

	users     []api.User
	search    textinput.Model
	searching bool
	cursor    int
	notice    string
}

func newUsersPage(client *api.Client, styles ui.Styles) usersPage {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner

	search := textinput.New()
	search.Placeholder = "Search name, email or district"
	search.CharLimit = 60

	return usersPage{client: client, styles: styles, spin: spin, search: search}
}

func (p *usersPage) open() tea.Cmd {
	p.loading = true
	p.err = nil
	p.notice = ""
	client := p.client
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		users, err := client.Users(ctx())
		return usersLoadedMsg{users: users, err: err}
	})
}

func (p usersPage) filtered() []api.User {
	q := strings.ToLower(strings.TrimSpace(p.search.Value()))
	if q == "" {
		return p.users
	}
	out := make([]api.User, 0, len(p.users))
	for _, u := range p.users {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.District), q) {
			out = append(out, u)
		}
	}
	return out
}

func (p *usersPage) deactivateSelected() tea.Cmd {
	rows := p.filtered()
	if p.cursor < 0 || p.cursor >= len(rows) {
		return nil
	}
	id := rows[p.cursor].UserID
	// Optimistic flip; reverted on failure.
	p.setActive(id, false)
	client := p.client
	return func() tea.Msg {
		err := client.DeactivateUser(ctx(), id)
		return userDeactivatedMsg{userID: id, err: err}
	}
}

func (p *usersPage) setActive(id string, active bool) {
	for i := range p.users {
		if p.users[i].UserID == id {
			p.users[i].IsActive = active
			return
		}
	}
}

// exportCSV writes the current filtered view to the working directory.
func (p *usersPage) exportCSV() tea.Cmd {
	rows := p.filtered()
	return func() tea.Msg {
		path := filepath.Join(".", fmt.Sprintf("signify-users-%s.csv", time.Now().Format("20060102-150405")))
		f, err := os.Create(path)
		if err != nil {
			return usersExportedMsg{err: err}
		}
		defer f.Close()

		w := csv.NewWriter(f)
		if err := w.Write([]string{"Name", "Email", "Phone", "Country", "District", "Sector", "Active", "Created"}); err != nil {
			return usersExportedMsg{err: err}
		}
		for _, u := range rows {
			active := "no"
			if u.IsActive {
				active = "yes"
			}
			record := []string{u.Name, u.Email, u.PhoneNumber, u.Country, u.District, u.Sector, active, u.CreatedAt}
			if err := w.Write(record); err != nil {
				return usersExportedMsg{err: err}
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return usersExportedMsg{err: err}
		}
		logging.L(logging.CategoryUI).Info("exported users",
			zap.String("path", path), zap.Int("rows", len(rows)))
		return usersExportedMsg{path: path, n: len(rows)}
	}
}

func (p usersPage) update(msg tea.Msg) (usersPage, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		p.loading = false
		p.err = msg.err
		if msg.err == nil {
			p.users = msg.users
			if p.cursor >= len(p.users) {
				p.cursor = 0
			}
		}
		return p, nil

	case userDeactivatedMsg:
		if msg.err != nil {
			p.setActive(msg.userID, true)
			p.notice = errorText(msg.err)
		} else {
			p.notice = "User deactivated."
		}
		return p, nil

	case usersExportedMsg:
		if msg.err != nil {
			p.notice = "Export failed: " + msg.err.Error()
		} else {
			p.notice = fmt.Sprintf("Exported %d users to %s", msg.n, msg.path)
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
		case "x":
			return p, p.deactivateSelected()
		case "e":
			return p, p.exportCSV()
		}
	}
	return p, nil
}

func (p usersPage) view(width int) string {
	if p.loading {
		return p.spin.View() + p.styles.Muted.Render(" loading users...")
	}
	if p.err != nil {
		return p.styles.Error.Render("Could not load users: "+p.err.Error()) + "\n" +
			p.styles.Help.Render("r retry")
	}

	var sb strings.Builder
	sb.WriteString(p.search.View() + "\n\n")

	rows := p.filtered()
	if len(rows) == 0 {
		sb.WriteString(p.styles.Muted.Render("No users match.") + "\n")
	}
	for i, u := range rows {
		marker := "  "
		if i == p.cursor && !p.searching {
			marker = p.styles.Bold.Render("> ")
		}
		status := p.styles.Success.Render("active")
		if !u.IsActive {
			status = p.styles.Muted.Render("inactive")
		}
		sb.WriteString(marker + fmt.Sprintf("%-24s %-30s %-16s %s\n",
			ui.Truncate(u.Name, 24),
			ui.Truncate(u.Email, 30),
			ui.Truncate(u.District+"/"+u.Sector, 16),
			status))
	}

	if p.notice != "" {
		sb.WriteString("\n" + p.styles.Info.Render(p.notice) + "\n")
	}
	sb.WriteString("\n" + p.styles.Help.Render("/ search • x deactivate • e export csv • r refresh"))
	return sb.String()
}
