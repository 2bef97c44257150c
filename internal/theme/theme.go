// Package theme maps a settings snapshot to the face's color pair.
package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/hammamikhairi/tickface/internal/domain"
)

// Resolve is total: every snapshot maps to a color pair.
//
// On color platforms the background comes straight from the settings. On
// monochrome platforms it is black, or white when inverted. The foreground
// is always whichever of black and white reads best on the background.
func Resolve(s domain.Settings, caps domain.Capabilities) domain.ThemeState {
	var bg domain.Color
	invert := false
	if caps.Color {
		bg = s.Background
	} else {
		invert = s.Invert
		bg = domain.ColorBlack
		if invert {
			bg = domain.ColorWhite
		}
	}
	return domain.ThemeState{
		Background: bg,
		Foreground: Legible(bg),
		Invert:     invert,
	}
}

// Legible returns black or white, whichever contrasts more with bg.
// Ties go to white.
func Legible(bg domain.Color) domain.Color {
	// Compared on channel sums to keep the decision exact.
	sum := int(bg.R) + int(bg.G) + int(bg.B)
	if 3*255-sum >= sum {
		return domain.ColorWhite
	}
	return domain.ColorBlack
}

// Brightness is the perceived brightness used by the contrast rule: the
// mean of the RGB channels, in [0, 1].
func Brightness(c domain.Color) float64 {
	cf := toColorful(c)
	return (cf.R + cf.G + cf.B) / 3
}

// Contrast is the brightness distance between two colors, in [0, 1].
func Contrast(a, b domain.Color) float64 {
	d := Brightness(a) - Brightness(b)
	if d < 0 {
		return -d
	}
	return d
}

var named = map[string]domain.Color{
	"black":  domain.ColorBlack,
	"white":  domain.ColorWhite,
	"red":    domain.ColorRed,
	"green":  domain.ColorGreen,
	"blue":   domain.ColorBlue,
	"yellow": domain.ColorYellow,
}

// ParseColor accepts a color name, "#rrggbb", "#rgb", "0xrrggbb" or a
// decimal 0xRRGGBB integer as sent by the companion app.
func ParseColor(s string) (domain.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "0x") {
		s = "#" + s[2:]
	}
	if strings.HasPrefix(s, "#") {
		cf, err := colorful.Hex(s)
		if err != nil {
			return domain.Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return fromColorful(cf), nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v > 0xFFFFFF {
		return domain.Color{}, fmt.Errorf("parse color %q: not a color", s)
	}
	return domain.ColorFromHex(uint32(v)), nil
}

// Hex formats a color the way settings files store it.
func Hex(c domain.Color) string {
	return toColorful(c).Hex()
}

func toColorful(c domain.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(cf colorful.Color) domain.Color {
	r, g, b := cf.Clamped().RGB255()
	return domain.Color{R: r, G: g, B: b}
}
