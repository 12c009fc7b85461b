package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Portal palette
var (
	colorBackground  = color.NRGBA{R: 0x2C, G: 0x2F, B: 0x33, A: 0xFF}
	colorForeground  = color.NRGBA{R: 0xD3, G: 0xD3, B: 0xD3, A: 0xFF}
	colorButton      = color.NRGBA{R: 0x55, G: 0x6B, B: 0x78, A: 0xFF}
	colorHover       = color.NRGBA{R: 0x70, G: 0x80, B: 0x90, A: 0xFF}
	colorPressed     = color.NRGBA{R: 0x4C, G: 0x5B, B: 0x64, A: 0xFF}
	colorInputBorder = color.NRGBA{R: 0x55, G: 0x6B, B: 0x78, A: 0xFF}
)

// rowColors are picked at random for each game row.
var rowColors = []color.Color{
	color.NRGBA{R: 0x3B, G: 0x4C, B: 0x6B, A: 0xFF},
	color.NRGBA{R: 0x3F, G: 0x66, B: 0x54, A: 0xFF},
	color.NRGBA{R: 0x5C, G: 0x3C, B: 0x3D, A: 0xFF},
	color.NRGBA{R: 0x4C, G: 0x3A, B: 0x60, A: 0xFF},
	color.NRGBA{R: 0x8C, G: 0x5B, B: 0x32, A: 0xFF},
}

// PortalTheme is a dark slate theme.
type PortalTheme struct{}

func NewPortalTheme() fyne.Theme {
	return &PortalTheme{}
}

func (t *PortalTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return colorBackground
	case theme.ColorNameForeground:
		return colorForeground
	case theme.ColorNameButton:
		return colorButton
	case theme.ColorNameHover:
		return colorHover
	case theme.ColorNamePressed:
		return colorPressed
	case theme.ColorNameInputBorder:
		return colorInputBorder
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (t *PortalTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *PortalTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *PortalTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 16
	}
	return theme.DefaultTheme().Size(name)
}
