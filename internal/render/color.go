// internal/render/color.go
package render

import (
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// parseColor reads the color notations used by figures: "#rrggbb", "rgb(r,g,b)",
// "rgba(r,g,b,a)" and a few names. Anything else yields fallback.
func parseColor(s string, fallback drawing.Color) drawing.Color {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "":
		return fallback
	case s == "white":
		return drawing.ColorWhite
	case s == "black":
		return drawing.ColorBlack
	case s == "transparent":
		return drawing.ColorTransparent
	case strings.HasPrefix(s, "#") && (len(s) == 7 || len(s) == 4):
		return drawing.ColorFromHex(s[1:])
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		open := strings.IndexByte(s, '(')
		body := strings.TrimSuffix(s[open+1:], ")")
		parts := strings.Split(body, ",")
		if len(parts) < 3 {
			return fallback
		}
		var rgb [3]uint8
		for i := range rgb {
			v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || v < 0 || v > 255 {
				return fallback
			}
			rgb[i] = uint8(v)
		}
		alpha := 1.0
		if len(parts) > 3 {
			a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
			if err != nil {
				return fallback
			}
			alpha = min(max(a, 0), 1)
		}
		return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(alpha*255 + 0.5)}
	}
	return fallback
}

// withOpacity scales the color's alpha by o in [0,1]. Zero means opaque.
func withOpacity(c drawing.Color, o float64) drawing.Color {
	if o <= 0 || o >= 1 {
		return c
	}
	c.A = uint8(float64(c.A)*o + 0.5)
	return c
}

// dashArray maps plotly dash names to stroke patterns.
func dashArray(dash string) []float64 {
	switch dash {
	case "dash":
		return []float64{6, 4}
	case "dot":
		return []float64{2, 3}
	case "dashdot":
		return []float64{6, 3, 2, 3}
	}
	return nil
}
