package fyne

import (
	"image/color"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/hariomify/hariomify/internal/domain"
)

// variantTheme pins the default theme to one variant regardless of the
// operating system setting.
type variantTheme struct {
	fyneapp.Theme
	variant fyneapp.ThemeVariant
}

func newVariantTheme(t domain.Theme) fyneapp.Theme {
	variant := theme.VariantDark
	if t == domain.ThemeLight {
		variant = theme.VariantLight
	}
	return &variantTheme{Theme: theme.DefaultTheme(), variant: variant}
}

func (t *variantTheme) Color(name fyneapp.ThemeColorName, _ fyneapp.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}

// Variant returns the pinned variant.
func (t *variantTheme) Variant() fyneapp.ThemeVariant {
	return t.variant
}
