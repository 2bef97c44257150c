// Package domain defines the core types and interfaces for the clock face.
// All other packages depend on domain; domain depends on nothing.
package domain

import "fmt"

// Color is a 24-bit RGB color as understood by the rendering surface.
type Color struct {
	R, G, B uint8
}

// Named colors used by the theme policy and the default settings.
var (
	ColorBlack  = Color{0x00, 0x00, 0x00}
	ColorWhite  = Color{0xFF, 0xFF, 0xFF}
	ColorRed    = Color{0xFF, 0x00, 0x00}
	ColorBlue   = Color{0x00, 0x00, 0xFF}
	ColorGreen  = Color{0x00, 0xFF, 0x00}
	ColorYellow = Color{0xFF, 0xFF, 0x00}
)

// ColorFromHex builds a color from a 0xRRGGBB integer, the form used by
// companion-app messages.
func ColorFromHex(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Hex returns the color as a 0xRRGGBB integer.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// String returns "#rrggbb".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
