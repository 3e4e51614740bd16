package dimension

import (
	"strconv"
	"strings"
)

// FormatValue renders a millimetre value per drafting convention:
// values of 10mm and above render with no decimals, smaller values
// with one decimal unless it would be ".0".
func FormatValue(v float64) string {
	if v >= 10 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// FormatDiameter renders a diameter callout.
func FormatDiameter(v float64) string {
	return "⌀" + FormatValue(v)
}

// FormatRadius renders a radius callout.
func FormatRadius(v float64) string {
	return "R" + FormatValue(v)
}

// FormatAngle renders an angle callout in degrees.
func FormatAngle(deg float64) string {
	return FormatValue(deg) + "°"
}

// textWidth estimates the rendered width of dimension text. A fixed
// per-glyph advance is close enough for collision boxes.
func textWidth(text string, height float64) float64 {
	return float64(len([]rune(text))) * height * 0.62
}
