package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	TissuePink = lipgloss.Color("#EC4899")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Amber      = lipgloss.Color("#F59E0B")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(TissuePink)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Amber)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Tab styles for the view switcher
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(TissuePink).
			Bold(true).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Padding(0, 1)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray)
)

// Raw download status characters (unstyled)
const (
	DownloadedChar  = "✓"
	DownloadingChar = "↓"
	NoneChar        = "·"
	CheckedChar     = "[x]"
	UncheckedChar   = "[ ]"
)

// Download status badge styles
var (
	DownloadedStyle  = lipgloss.NewStyle().Foreground(Green)
	DownloadingStyle = lipgloss.NewStyle().Foreground(Blue)
	NoneStyle        = lipgloss.NewStyle().Foreground(DimGray)
	CheckedStyle     = lipgloss.NewStyle().Foreground(TissuePink).Bold(true)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(TissuePink).
			Padding(1, 2).
			Background(SlateDark)
)

// Progress bar styles
var (
	ProgressFullStyle = lipgloss.NewStyle().
				Foreground(TissuePink)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(DimGray)
)

// Badge styles
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(TissuePink).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// SpinnerFrames are the braille frames shared by the TUI and setup spinners
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(TissuePink)
)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(TissuePink)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(TissuePink).
				Bold(true)
)

// Helper functions

// Truncate truncates a string to width runes with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Pad pads a string to the given width
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + spaces(width-w)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// RenderProgressBar renders a progress bar
func RenderProgressBar(percent int, width int) string {
	if width < 3 {
		return ""
	}

	filled := width * percent / 100
	if filled > width {
		filled = width
	}

	bar := ""
	for i := 0; i < filled; i++ {
		bar += ProgressFullStyle.Render("█")
	}
	for i := filled; i < width; i++ {
		bar += ProgressEmptyStyle.Render("░")
	}

	return bar
}

// RenderCheckbox renders a selection checkbox
func RenderCheckbox(checked bool) string {
	if checked {
		return CheckedStyle.Render(CheckedChar)
	}
	return DimStyle.Render(UncheckedChar)
}
