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

type notificationsLoadedMsg struct {
	notifications []api.Notification
	stats         *api.NotificationStats
	err           error
}

func (m notificationsLoadedMsg) apiErr() error { return m.err }

// notificationsPage shows delivery health and broadcast history.
type notificationsPage struct {
	client *api.Client
	styles ui.Styles

	loading bool
	spin    spinner.Model
	err     error

	notifications []api.Notification
	stats         *api.NotificationStats
	cursor        int
}

func newNotificationsPage(client *api.Client, styles ui.Styles) notificationsPage {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner
	return notificationsPage{client: client, styles: styles, spin: spin}
}

func (p *notificationsPage) open() tea.Cmd {
	p.loading = true
	p.err = nil
	client := p.client
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		var msg notificationsLoadedMsg
		g, gctx := errgroup.WithContext(ctx())
		g.Go(func() (err error) {
			msg.notifications, err = client.Notifications(gctx)
			return err
		})
		g.Go(func() (err error) {
			msg.stats, err = client.NotificationStats(gctx)
			return err
		})
		msg.err = g.Wait()
		return msg
	})
}

func (p notificationsPage) update(msg tea.Msg) (notificationsPage, tea.Cmd) {
	switch msg := msg.(type) {
	case notificationsLoadedMsg:
		p.loading = false
		p.err = msg.err
		if msg.err == nil {
			p.notifications = msg.notifications
			p.stats = msg.stats
			if p.cursor >= len(p.notifications) {
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
		switch msg.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.notifications)-1 {
				p.cursor++
			}
		}
	}
	return p, nil
}

func (p notificationsPage) statusStyle(status string) string {
	switch status {
	case "sent":
		return p.styles.Success.Render(status)
	case "failed":
		return p.styles.Error.Render(status)
	case "scheduled":
		return p.styles.Info.Render(status)
	default:
		return p.styles.Muted.Render(status)
	}
}

func (p notificationsPage) view(width int) string {
	if p.loading {
		return p.spin.View() + p.styles.Muted.Render(" loading notifications...")
	}
	if p.err != nil {
		return p.styles.Error.Render("Could not load notifications: "+p.err.Error()) + "\n" +
			p.styles.Help.Render("r retry")
	}

	var sb strings.Builder

	if p.stats != nil {
		s := p.stats
		gateway := p.styles.Success.Render(s.GatewayStatus)
		if s.GatewayStatus != "online" {
			gateway = p.styles.Error.Render(s.GatewayStatus)
		}
		cards := []string{
			ui.StatCard(p.styles, "Sent", formatCount(s.TotalSent), ""),
			ui.StatCard(p.styles, "Pending", formatCount(s.TotalPending), ""),
			ui.StatCard(p.styles, "Failed", formatCount(s.TotalFailed), ""),
			ui.StatCard(p.styles, "Delivery", fmt.Sprintf("%.1f%%", s.DeliveryRate), ""),
		}
		sb.WriteString(joinCards(cards))
		sb.WriteString(fmt.Sprintf("Gateway: %s   Credits: %s\n\n",
			gateway, p.styles.Bold.Render(formatCount(s.CreditsRemaining))))
	}

	if len(p.notifications) == 0 {
		sb.WriteString(p.styles.Muted.Render("No broadcasts yet.") + "\n")
	}
	for i, n := range p.notifications {
		marker := "  "
		if i == p.cursor {
			marker = p.styles.Bold.Render("> ")
		}
		rate := ""
		if n.DeliveryRate != nil {
			rate = fmt.Sprintf("%.0f%%", *n.DeliveryRate)
		}
		sb.WriteString(marker + fmt.Sprintf("%-32s %-10s %-10s %4s  %s\n",
			ui.Truncate(n.Title, 32),
			n.Type,
			p.statusStyle(n.Status),
			rate,
			p.styles.Muted.Render(api.FormatTimestamp(n.CreatedAt))))
	}

	sel := p.selected()
	if sel != nil {
		sb.WriteString("\n" + p.styles.Subtitle.Render("Message") + "\n")
		sb.WriteString("  " + sel.Message + "\n")
		sb.WriteString("  " + p.styles.Muted.Render(
			fmt.Sprintf("audience: %s • via %s", sel.TargetAudience, sel.DeliveryMethod)) + "\n")
	}

	sb.WriteString("\n" + p.styles.Help.Render("↑/↓ select • r refresh"))
	return sb.String()
}

func (p notificationsPage) selected() *api.Notification {
	if p.cursor < 0 || p.cursor >= len(p.notifications) {
		return nil
	}
	return &p.notifications[p.cursor]
}
