package main

import (
	"image/color"
	"time"
)

// Window, layout, and animation constants for the phase positions demo.
const (
	defaultWindowWidth  = 960
	defaultWindowHeight = 600
	defaultTPS          = 60

	sunRadius        = 14
	bodyRadius       = 10
	orbitStroke      = 1.5
	panelPadding     = 10
	discFraction     = 0.8
	checkboxSize     = 14
	debugGlyphWidth  = 6
	debugGlyphHeight = 16

	fadeFrequency = 8.0
	fadeDamping   = 1.0

	autoDragSpeed     = 4.0
	pgoRecordDuration = 15 * time.Second
	defaultPGOPath    = "default.pgo"
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	sunColor        = color.RGBA{255, 224, 96, 255}
	outlineColor    = color.RGBA{96, 96, 96, 255}
	textColor       = color.RGBA{255, 255, 255, 255}

	body1Color = color.RGBA{144, 144, 255, 255}
	body1Light = color.RGBA{200, 200, 255, 255}
	body1Dark  = color.RGBA{64, 64, 96, 255}

	body2Color = color.RGBA{255, 144, 144, 255}
	body2Light = color.RGBA{255, 200, 200, 255}
	body2Dark  = color.RGBA{96, 64, 64, 255}
)
