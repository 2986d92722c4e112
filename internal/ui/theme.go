// Package ui provides the IsoForge application UI components.
//
// This file defines a compact Fyne theme that can pin a light or dark variant.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// IsoForgeTheme wraps the default Fyne theme with compact sizing overrides.
// When fixed is false the variant requested by the system is used.
type IsoForgeTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	fixed   bool
}

// NewIsoForgeTheme creates a theme that follows the system variant.
func NewIsoForgeTheme() *IsoForgeTheme {
	return &IsoForgeTheme{base: theme.DefaultTheme()}
}

// NewIsoForgeThemeWithVariant creates a theme pinned to a light or dark variant.
func NewIsoForgeThemeWithVariant(variant fyne.ThemeVariant) *IsoForgeTheme {
	return &IsoForgeTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
		fixed:   true,
	}
}

// themeForName maps the "light", "dark" and "system" config values to a theme.
func themeForName(name string) *IsoForgeTheme {
	switch name {
	case "light":
		return NewIsoForgeThemeWithVariant(theme.VariantLight)
	case "dark":
		return NewIsoForgeThemeWithVariant(theme.VariantDark)
	default:
		return NewIsoForgeTheme()
	}
}

// applyTheme installs the theme named in the config.
func (a *App) applyTheme(name string) {
	a.app.Settings().SetTheme(themeForName(name))
}

// Color delegates to the base theme, honouring a pinned variant.
func (t *IsoForgeTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.fixed {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *IsoForgeTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *IsoForgeTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense editor layout.
func (t *IsoForgeTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
