// Package ui provides the visual styling for the signify terminal client.
// Uses the Signify brand palette (deep green, emerald accent) with
// light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette based on the Signify brand guidelines
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f9fafb") // gray-50
	LightForeground = lipgloss.Color("#111827") // gray-900
	LightPrimary    = lipgloss.Color("#18392b") // Signify deep green
	LightAccent     = lipgloss.Color("#10b981") // Emerald
	LightSecondary  = lipgloss.Color("#e5e7eb") // gray-200
	LightMuted      = lipgloss.Color("#6b7280") // gray-500
	LightBorder     = lipgloss.Color("#d1d5db") // gray-300
	LightCard       = lipgloss.Color("#ffffff") // White

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#0c1f17") // near-black green
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#34d399") // Emerald (flipped)
	DarkAccent     = lipgloss.Color("#18392b") // Deep green (flipped)
	DarkSecondary  = lipgloss.Color("#16352a")
	DarkMuted      = lipgloss.Color("#9ca3af")
	DarkBorder     = lipgloss.Color("#2a5a45")
	DarkCard       = lipgloss.Color("#122b20")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e11d48") // Rose
	Success     = lipgloss.Color("#10b981") // Emerald
	Warning     = lipgloss.Color("#fbbf24") // Amber
	Info        = lipgloss.Color("#2196F3") // Blue

	// Risk signal colors, matching the analytics legend
	RiskLowColor    = lipgloss.Color("#10b981") // Emerald
	RiskMediumColor = lipgloss.Color("#fbbf24") // Amber
	RiskHighColor   = lipgloss.Color("#f43f5e") // Rose
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeByName resolves a configured theme name; "auto" detects from the
// terminal environment.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme auto-detects based on terminal or returns light mode
func DetectTheme() Theme {
	// COLORFGBG format is usually "foreground;background"; low background
	// indices indicate a dark terminal.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("SIGNIFY_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	App       lipgloss.Style
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Content   lipgloss.Style
	Card      lipgloss.Style
	StatusBar lipgloss.Style

	// Tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Status badges for survey and notification rows
	BadgeActive   lipgloss.Style
	BadgeDraft    lipgloss.Style
	BadgeArchived lipgloss.Style

	// Risk signal colors
	RiskLow    lipgloss.Style
	RiskMedium lipgloss.Style
	RiskHigh   lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true)

	return Styles{
		Theme: theme,

		// Layout styles
		App: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		// Tab styles
		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(theme.Primary).
			Padding(0, 2).
			Bold(true),

		TabInactive: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		// Text styles
		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		// Status styles
		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		// Badge styles
		BadgeActive: badge.
			Background(Success).
			Foreground(lipgloss.Color("#ffffff")),

		BadgeDraft: badge.
			Background(theme.Secondary).
			Foreground(theme.Foreground),

		BadgeArchived: badge.
			Background(Destructive).
			Foreground(lipgloss.Color("#ffffff")),

		// Risk styles
		RiskLow: lipgloss.NewStyle().
			Foreground(RiskLowColor).
			Bold(true),

		RiskMedium: lipgloss.NewStyle().
			Foreground(RiskMediumColor).
			Bold(true),

		RiskHigh: lipgloss.NewStyle().
			Foreground(RiskHighColor).
			Bold(true),

		// Component styles
		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the auto-detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// StatusBadge renders a survey status with its badge style.
func (s Styles) StatusBadge(status string) string {
	switch strings.ToLower(status) {
	case "active":
		return s.BadgeActive.Render("active")
	case "draft":
		return s.BadgeDraft.Render("draft")
	case "archived":
		return s.BadgeArchived.Render("archived")
	default:
		return s.Muted.Render(status)
	}
}

// RiskSignal renders a backend risk classification in its legend color.
func (s Styles) RiskSignal(level string) string {
	switch strings.ToLower(level) {
	case "low":
		return s.RiskLow.Render("low")
	case "medium":
		return s.RiskMedium.Render("medium")
	case "high":
		return s.RiskHigh.Render("high")
	default:
		return s.Muted.Render(level)
	}
}

// Logo returns the Signify wordmark for the dashboard header.
func Logo(s Styles) string {
	logo := `
  ___  _           _  __
 / __|(_) __ _ _ _ (_)/ _|_  _
 \__ \| |/ _` + "`" + ` | ' \| |  _| || |
 |___/|_|\__, |_||_|_|_|  \_, |
         |___/            |__/
`
	return s.Title.Foreground(s.Theme.Primary).Render(logo)
}

// RenderDivider returns a horizontal divider of the given width.
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}
