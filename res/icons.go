// Package res bundles the application's static resources.
package res

import (
	_ "embed"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	//go:embed icons/app.svg
	appSVG []byte

	//go:embed icons/heart.svg
	heartSVG []byte

	//go:embed icons/heart_filled.svg
	heartFilledSVG []byte
)

// AppIcon is the window and application icon.
var AppIcon fyne.Resource = fyne.NewStaticResource("app.svg", appSVG)

// HeartIcon marks a track that is not a favorite. It follows the theme's
// foreground color.
var HeartIcon fyne.Resource = theme.NewThemedResource(fyne.NewStaticResource("heart.svg", heartSVG))

// HeartFilledIcon marks a favorite.
var HeartFilledIcon fyne.Resource = fyne.NewStaticResource("heart_filled.svg", heartFilledSVG)
