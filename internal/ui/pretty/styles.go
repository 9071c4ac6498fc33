// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Comment components
	CommentID   lipgloss.Style
	CommentText lipgloss.Style
	Span        lipgloss.Style
	Excerpt     lipgloss.Style
	FilePath    lipgloss.Style

	// Row styles by comment type
	InlineRow lipgloss.Style
	LineRow   lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableLegend    lipgloss.Style

	// Outcome styles
	Success lipgloss.Style
	Failure lipgloss.Style
	Warning lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		CommentID:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		CommentText: lipgloss.NewStyle(),
		Span:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Excerpt:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true),
		FilePath:    lipgloss.NewStyle().Bold(true),

		InlineRow: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		LineRow:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableLegend:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		CommentID:      plain,
		CommentText:    plain,
		Span:           plain,
		Excerpt:        plain,
		FilePath:       plain,
		InlineRow:      plain,
		LineRow:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		TableLegend:    plain,
		Success:        plain,
		Failure:        plain,
		Warning:        plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
