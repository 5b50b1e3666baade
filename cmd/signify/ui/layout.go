// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for viewport and panel sizing
const (
	// Chrome reserved by the dashboard frame
	HeaderHeight    = 2
	TabBarHeight    = 2
	StatusBarHeight = 1
	FooterHeight    = 1

	// Viewport padding
	ContentPaddingH = 2
	ContentPaddingV = 1

	// Panel spacing
	CardPadding   = 2
	ContentIndent = 2

	// Responsive breakpoints
	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 24
	CompactModeWidth      = 100
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable content width inside the frame
func (l LayoutConfig) ContentWidth() int {
	return l.TerminalWidth - ContentPaddingH*2
}

// ContentHeight returns the height left for the active page after the
// header, tab bar and status line.
func (l LayoutConfig) ContentHeight() int {
	return l.TerminalHeight - HeaderHeight - TabBarHeight - StatusBarHeight - FooterHeight - ContentPaddingV*2
}
