package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7C3AED") // Purple

	// Chart colors: rising bars and winning trades are red, falling bars
	// and losing trades green.
	UpColor    = lipgloss.Color("#EF4444")
	DownColor  = lipgloss.Color("#10B981")
	LongColor  = lipgloss.Color("#FACC15") // Yellow
	ShortColor = lipgloss.Color("#E879F9") // Magenta

	// Background colors
	BackgroundColor  = lipgloss.Color("#1F2937")
	BorderColor      = lipgloss.Color("#374151")
	FocusBorderColor = lipgloss.Color("#7C3AED")
	CursorLabelColor = lipgloss.Color("#D1D5DB")

	// Text colors
	TextColor          = lipgloss.Color("#F9FAFB")
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextSecondaryColor)

	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(lipgloss.Color("#374151"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)
)

// Trade list styles
var (
	LongStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(LongColor)

	ShortStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ShortColor)

	ProfitStyle = lipgloss.NewStyle().
			Foreground(UpColor)

	LossStyle = lipgloss.NewStyle().
			Foreground(DownColor)

	TimeStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)
)

// Chart styles
var (
	CandleUpStyle = lipgloss.NewStyle().
			Foreground(UpColor)

	CandleDownStyle = lipgloss.NewStyle().
			Foreground(DownColor)

	CandleFlatStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	ChartFrameStyle = lipgloss.NewStyle().
			Foreground(BorderColor)

	ChartAxisStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)

	CursorStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	CursorLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#000000")).
				Background(CursorLabelColor)

	InfoBoxStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(BackgroundColor)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(BackgroundColor).
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	StatusBarDescStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor)
)

// RenderTitle renders a panel title bar.
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}
