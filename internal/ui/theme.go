package ui

import (
	"image/color"

	"algoverse/internal/state"

	"charm.land/lipgloss/v2"
)

type Theme struct {
	Name         state.Theme
	Header       lipgloss.Style
	TabActive    lipgloss.Style
	TabIdle      lipgloss.Style
	Status       lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelBorder  lipgloss.Style
	PanelBody    lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
	Accent       lipgloss.Style
	Cursor       lipgloss.Style
	Pass         lipgloss.Style
	Fail         lipgloss.Style
	Saved        lipgloss.Style
	Muted        lipgloss.Style
	BarColors    []color.Color
}

func ThemeFor(t state.Theme) Theme {
	if t == state.ThemeDark {
		return darkTheme()
	}
	return lightTheme()
}

func darkTheme() Theme {
	amber := lipgloss.Color("#FFC857")
	mint := lipgloss.Color("#67F0A8")
	brick := lipgloss.Color("#FF6F91")
	ink := lipgloss.Color("#0E1420")
	slate := lipgloss.Color("#1B2740")
	powder := lipgloss.Color("#EAF2FF")
	blue := lipgloss.Color("#5EEBFF")
	border := lipgloss.Color("#4B5F8A")

	return Theme{
		Name:        state.ThemeDark,
		Header:      lipgloss.NewStyle().Background(ink).Foreground(powder).Bold(true).Padding(0, 1),
		TabActive:   lipgloss.NewStyle().Background(blue).Foreground(ink).Bold(true).Padding(0, 1),
		TabIdle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#9CAAC6")).Padding(0, 1),
		Status:      lipgloss.NewStyle().Background(slate).Foreground(powder).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Foreground(blue).Bold(true),
		PanelBorder: lipgloss.NewStyle().Foreground(border),
		PanelBody:   lipgloss.NewStyle().Foreground(powder),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Background(ink).
			Foreground(powder).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(blue).Bold(true),
		Accent:       lipgloss.NewStyle().Foreground(blue).Bold(true),
		Cursor:       lipgloss.NewStyle().Background(slate).Foreground(powder),
		Pass:         lipgloss.NewStyle().Foreground(mint).Bold(true),
		Fail:         lipgloss.NewStyle().Foreground(brick).Bold(true),
		Saved:        lipgloss.NewStyle().Foreground(amber),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#9CAAC6")),
		BarColors:    []color.Color{lipgloss.Color("#5EC2FF"), lipgloss.Color("#79E6A6"), lipgloss.Color("#F2D16B")},
	}
}

func lightTheme() Theme {
	honey := lipgloss.Color("#B7791F")
	sage := lipgloss.Color("#2F855A")
	rose := lipgloss.Color("#C53030")
	paper := lipgloss.Color("#F7FAFC")
	mist := lipgloss.Color("#E2E8F0")
	ink := lipgloss.Color("#1A202C")
	indigo := lipgloss.Color("#4C51BF")

	return Theme{
		Name:        state.ThemeLight,
		Header:      lipgloss.NewStyle().Background(paper).Foreground(ink).Bold(true).Padding(0, 1),
		TabActive:   lipgloss.NewStyle().Background(indigo).Foreground(paper).Bold(true).Padding(0, 1),
		TabIdle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4A5568")).Padding(0, 1),
		Status:      lipgloss.NewStyle().Background(mist).Foreground(ink).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Foreground(indigo).Bold(true),
		PanelBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0")),
		PanelBody:   lipgloss.NewStyle().Foreground(ink),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(indigo).
			Background(paper).
			Foreground(ink).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(indigo).Bold(true),
		Accent:       lipgloss.NewStyle().Foreground(indigo).Bold(true),
		Cursor:       lipgloss.NewStyle().Background(mist).Foreground(ink),
		Pass:         lipgloss.NewStyle().Foreground(sage).Bold(true),
		Fail:         lipgloss.NewStyle().Foreground(rose).Bold(true),
		Saved:        lipgloss.NewStyle().Foreground(honey),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#718096")),
		BarColors:    []color.Color{lipgloss.Color("#4C51BF"), lipgloss.Color("#38A169")},
	}
}
