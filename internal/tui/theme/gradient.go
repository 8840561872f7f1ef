package theme

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
)

// Blend mixes two #RRGGBB colors; pos 0 gives a, 1 gives b. Positions
// outside [0, 1] are clamped.
func Blend(a, b string, pos float64) string {
	pos = max(0, min(1, pos))
	ar, ag, ab := parseHex(a)
	br, bg, bb := parseHex(b)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x)*(1-pos) + float64(y)*pos + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(ar, br), mix(ag, bg), mix(ab, bb))
}

// Gradient returns n colors stepping evenly from a to b.
func Gradient(a, b string, n int) []string {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []string{a}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = Blend(a, b, float64(i)/float64(n-1))
	}
	return out
}

// ApplyGradient colors each rune of text along a gradient from a to b.
// Spaces are left unstyled.
func ApplyGradient(text, a, b string) string {
	runes := []rune(text)
	colors := Gradient(a, b, len(runes))
	var sb strings.Builder
	for i, r := range runes {
		if r == ' ' {
			sb.WriteRune(r)
			continue
		}
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i])).Render(string(r)))
	}
	return sb.String()
}

// parseHex reads #RRGGBB. Malformed colors read as black.
func parseHex(hex string) (uint8, uint8, uint8) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}
