package fyne

import (
	"testing"

	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"

	"github.com/hariomify/hariomify/internal/domain"
)

func TestVariantTheme_IgnoresSystemVariant(t *testing.T) {
	light := newVariantTheme(domain.ThemeLight)
	dark := newVariantTheme(domain.ThemeDark)
	base := theme.DefaultTheme()

	assert.Equal(t,
		base.Color(theme.ColorNameBackground, theme.VariantLight),
		light.Color(theme.ColorNameBackground, theme.VariantDark))
	assert.Equal(t,
		base.Color(theme.ColorNameBackground, theme.VariantDark),
		dark.Color(theme.ColorNameBackground, theme.VariantLight))
	assert.Equal(t, base.Size(theme.SizeNamePadding), light.Size(theme.SizeNamePadding))
}
