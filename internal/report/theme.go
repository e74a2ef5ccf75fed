package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/sadopc/itemstat/internal/model"
)

// Theme holds the styles of the table output.
type Theme struct {
	Color bool

	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	TextMuted lipgloss.Color

	GradientStart lipgloss.Color
	GradientEnd   lipgloss.Color

	Header   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	DirName  lipgloss.Style
	FileName lipgloss.Style
	SeqName  lipgloss.Style
	LinkName lipgloss.Style
	SizeText lipgloss.Style
	Faint    lipgloss.Style
	Border   lipgloss.Style
}

// DefaultTheme returns the dark theme. Without color every style renders
// its text unchanged.
func DefaultTheme(color bool) Theme {
	t := Theme{
		Color:     color,
		Primary:   lipgloss.Color("#7B2FBE"),
		Accent:    lipgloss.Color("#61AFEF"),
		Muted:     lipgloss.Color("#5C6370"),
		Error:     lipgloss.Color("#E06C75"),
		TextMuted: lipgloss.Color("#6C7086"),

		GradientStart: lipgloss.Color("#7B2FBE"),
		GradientEnd:   lipgloss.Color("#00D4AA"),
	}

	plain := lipgloss.NewStyle()
	t.Header, t.Label, t.Value = plain, plain, plain
	t.DirName, t.FileName, t.SeqName, t.LinkName = plain, plain, plain, plain
	t.SizeText, t.Faint, t.Border = plain, plain, plain
	if !color {
		return t
	}

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#CDD6F4")).
		Background(lipgloss.Color("#282A36"))

	t.Label = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Value = lipgloss.NewStyle().Bold(true)

	t.DirName = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.FileName = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#BAC2DE"))

	t.SeqName = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00D4AA")).
		Bold(true)

	t.LinkName = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E5C07B")).
		Italic(true)

	t.SizeText = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Faint = lipgloss.NewStyle().Foreground(t.Error)

	t.Border = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Padding(0, 1)

	return t
}

// NameStyle returns the style used for an item of the given kind.
func (t Theme) NameStyle(kind model.Kind) lipgloss.Style {
	switch kind {
	case model.Folder:
		return t.DirName
	case model.Sequence:
		return t.SeqName
	case model.Link:
		return t.LinkName
	}
	return t.FileName
}

// CategoryStyle colours a file name by its category.
func (t Theme) CategoryStyle(name string) lipgloss.Style {
	if !t.Color {
		return t.FileName
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(model.CategoryColor(model.ClassifyName(name))))
}

// GradientColor returns a color interpolated between gradient start and end.
func (t Theme) GradientColor(ratio float64) lipgloss.Color {
	if ratio <= 0 {
		return t.GradientStart
	}
	if ratio >= 1 {
		return t.GradientEnd
	}

	c1, _ := colorful.Hex(string(t.GradientStart))
	c2, _ := colorful.Hex(string(t.GradientEnd))
	return lipgloss.Color(c1.BlendLab(c2, ratio).Hex())
}

// Bar renders a bar of width cells filled up to ratio. With color each
// filled cell gets its own gradient position.
func (t Theme) Bar(width int, ratio float64) string {
	if width <= 0 {
		return ""
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	if !t.Color {
		return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
	}

	var buf strings.Builder
	buf.Grow(width * 20)

	c1, _ := colorful.Hex(string(t.GradientStart))
	c2, _ := colorful.Hex(string(t.GradientEnd))
	for i := 0; i < filled; i++ {
		pos := float64(i) / float64(max(width-1, 1))
		color := lipgloss.Color(c1.BlendLab(c2, pos).Hex())
		buf.WriteString(lipgloss.NewStyle().Foreground(color).Render("━"))
	}
	if filled < width {
		buf.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Render(strings.Repeat("─", width-filled)))
	}
	return buf.String()
}
