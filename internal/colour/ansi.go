// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"
)

const defaultWidth = 8

// ColourPreviewWithText returns a colour block with text in a contrasting colour.
func ColourPreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(contrastText(c).Hex())).
		Width(width).
		Align(lipgloss.Center).
		Render(text)
}

// contrastText picks black or white text for a background by perceptual lightness.
func contrastText(bg RGB) RGB {
	l, _, _ := colorful.Color{
		R: float64(bg.R) / 255.0,
		G: float64(bg.G) / 255.0,
		B: float64(bg.B) / 255.0,
	}.Lab()
	if l > 0.6 {
		return RGB{}
	}
	return RGB{R: 255, G: 255, B: 255}
}

// FormatThemePreview renders one row per palette group.
func FormatThemePreview(p *ThemePalette, width int) string {
	rows := []struct {
		label   string
		colours []RGB
	}{
		{"base", p.Base},
		{"complementary", p.Complementary},
		{"monochromatic", p.Monochromatic},
	}

	var sb strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&sb, "%-14s", row.label)
		for _, c := range row.colours {
			sb.WriteString(ColourPreviewWithText(c, c.Hex(), width))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// SupportsANSIColours reports whether w is a terminal.
func SupportsANSIColours(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
