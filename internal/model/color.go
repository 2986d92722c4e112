package model

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// MissingColor is drawn for objects whose color string cannot be parsed.
var MissingColor = color.NRGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}

// ParseHexColor parses "#RGB" or "#RRGGBB" (the leading '#' is optional).
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

// FormatHexColor formats c as lowercase "#rrggbb", ignoring alpha.
func FormatHexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ValidHexColor reports whether s parses as a hex color.
func ValidHexColor(s string) bool {
	_, err := ParseHexColor(s)
	return err == nil
}

// ShadeColor shifts every channel of c by round(2.55*percent), clamped to
// [0,255]. Negative percent darkens.
func ShadeColor(c color.NRGBA, percent float64) color.NRGBA {
	amt := int(math.Round(255 * percent / 100))
	return color.NRGBA{
		R: clampChannel(int(c.R) + amt),
		G: clampChannel(int(c.G) + amt),
		B: clampChannel(int(c.B) + amt),
		A: c.A,
	}
}

// Shade is ShadeColor over hex strings. Unparseable input is returned unchanged.
func Shade(hex string, percent float64) string {
	c, err := ParseHexColor(hex)
	if err != nil {
		return hex
	}
	return FormatHexColor(ShadeColor(c, percent))
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
