// Package theme holds the application color palette and color parsing used
// when compositing overlay elements onto page rasters.
package theme

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Application palette. Blue tones, shared by every visual surface.
const (
	PrimaryBlue   = "#2E86AB"
	SecondaryBlue = "#A8DADC"
	LightBlue     = "#F1FAEE"
	DarkBlue      = "#1D3557"
	AccentBlue    = "#457B9D"

	Background        = "#F8FBFF"
	CardBackground    = "#FFFFFF"
	SidebarBackground = "#E8F4F8"

	TextPrimary   = "#1D3557"
	TextSecondary = "#457B9D"
	TextLight     = "#6C757D"
	TextWhite     = "#FFFFFF"

	Success = "#28A745"
	Warning = "#FFC107"
	Error   = "#DC3545"
	Info    = "#17A2B8"
)

// named maps the color names accepted by overlay elements to palette or CSS
// hex values.
var named = map[string]string{
	"black":   "#000000",
	"white":   TextWhite,
	"red":     Error,
	"green":   Success,
	"yellow":  Warning,
	"blue":    PrimaryBlue,
	"gray":    TextLight,
	"grey":    TextLight,
	"accent":  AccentBlue,
	"primary": PrimaryBlue,
	"dark":    DarkBlue,
}

// Parse turns a color name or "#rrggbb" string into a color. Names are
// case-insensitive.
func Parse(s string) (colorful.Color, error) {
	if hex, ok := named[strings.ToLower(s)]; ok {
		s = hex
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}

	return c, nil
}

// CategoryName buckets a color name or "#rrggbb" string into a human color
// name. Unparseable input yields "".
func CategoryName(s string) string {
	c, err := Parse(s)
	if err != nil {
		return ""
	}
	return Category(c)
}

// Category buckets a color into a human color name based on HSL. Used when
// reporting imported document annotations, whose colors carry no name.
func Category(c colorful.Color) string {
	h, s, l := c.Hsl()

	if l < 0.12 {
		return "Black"
	}
	if l > 0.98 {
		return "White"
	}
	if s < 0.2 {
		return "Gray"
	}
	if h < 15 {
		return "Red"
	}
	if h < 45 {
		return "Orange"
	}
	if h < 65 {
		return "Yellow"
	}
	if h < 170 {
		return "Green"
	}
	if h < 190 {
		return "Cyan"
	}
	if h < 263 {
		return "Blue"
	}
	if h < 280 {
		return "Purple"
	}
	if h < 335 {
		return "Magenta"
	}
	return "Red"
}
