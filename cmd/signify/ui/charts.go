package ui

import (
	"fmt"
	"strings"
)

// RiskBar is one row of the stacked risk distribution chart.
type RiskBar struct {
	Label  string
	Low    int
	Medium int
	High   int
}

// RiskBarChart renders stacked horizontal bars of low/medium/high risk
// counts, one row per location, scaled to width cells.
func RiskBarChart(styles Styles, bars []RiskBar, width int) string {
	if len(bars) == 0 {
		return styles.Muted.Render("No analytics data.") + "\n"
	}
	if width < 20 {
		width = 20
	}

	labelWidth := 0
	maxTotal := 0
	for _, b := range bars {
		if len(b.Label) > labelWidth {
			labelWidth = len(b.Label)
		}
		if t := b.Low + b.Medium + b.High; t > maxTotal {
			maxTotal = t
		}
	}
	if maxTotal == 0 {
		maxTotal = 1
	}
	barWidth := width - labelWidth - 10
	if barWidth < 10 {
		barWidth = 10
	}

	var sb strings.Builder
	for _, b := range bars {
		total := b.Low + b.Medium + b.High
		scale := func(n int) int {
			return n * barWidth / maxTotal
		}
		sb.WriteString(fmt.Sprintf("%-*s ", labelWidth, b.Label))
		sb.WriteString(styles.RiskHigh.Render(strings.Repeat("█", scale(b.High))))
		sb.WriteString(styles.RiskMedium.Render(strings.Repeat("█", scale(b.Medium))))
		sb.WriteString(styles.RiskLow.Render(strings.Repeat("█", scale(b.Low))))
		sb.WriteString(styles.Muted.Render(fmt.Sprintf(" %d", total)))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Help.Render(fmt.Sprintf("%s high  %s medium  %s low",
		styles.RiskHigh.Render("█"), styles.RiskMedium.Render("█"), styles.RiskLow.Render("█"))))
	sb.WriteString("\n")
	return sb.String()
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a compact trend line for a numeric series.
func Sparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}
	max := values[0]
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return strings.Repeat(string(sparkRunes[0]), len(values))
	}
	var sb strings.Builder
	for _, v := range values {
		idx := v * (len(sparkRunes) - 1) / max
		sb.WriteRune(sparkRunes[idx])
	}
	return sb.String()
}

// StatCard renders a titled figure with an optional caption, used on the
// dashboard home screen.
func StatCard(styles Styles, title, value, caption string) string {
	body := styles.Muted.Render(title) + "\n" +
		styles.Title.Render(value)
	if caption != "" {
		body += "\n" + styles.Help.Render(caption)
	}
	return styles.Card.Render(body)
}

// ProgressBar renders a completion bar, used by the intake wizard.
func ProgressBar(styles Styles, done, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	return styles.Success.Render(strings.Repeat("█", filled)) +
		styles.Divider.Render(strings.Repeat("░", width-filled))
}
