package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PhaseColor returns the style for the phase that placed a course.
func PhaseColor(phase domain.Phase) lipgloss.Style {
	switch phase {
	case domain.PhaseLocked, domain.PhasePinned, domain.PhasePreTerm:
		return StyleBlue
	case domain.PhasePrimary:
		return StyleGreen
	case domain.PhaseSecondary, domain.PhaseTertiary:
		return StyleYellow
	case domain.PhaseFallback, domain.PhaseCleanup:
		return StylePurple
	default:
		return StyleDim
	}
}

// CategoryBadge returns a short colored category label.
func CategoryBadge(c domain.Category) string {
	switch c {
	case domain.CategoryCapstone:
		return StylePurple.Render("capstone")
	case domain.CategoryExternal:
		return StyleBlue.Render("external")
	case domain.CategoryOptional:
		return StyleDim.Render("optional")
	default:
		return StyleFg.Render("required")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
