package canvas

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// HexToRGBA converts a "#rgb" or "#rrggbb" color to a CSS rgba() string with
// the given opacity in [0, 1].
func HexToRGBA(hex string, opacity float64) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeInvalidColor, err, "invalid hex color %q", hex)
	}

	r, g, b := c.RGB255()

	return fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, clamp01(opacity)), nil
}

// ParseColor parses the color strings a Canvas accepts: "#rgb", "#rrggbb",
// "rgba(r, g, b, a)", "rgb(r, g, b)" and "transparent".
func ParseColor(s string) (drawing.Color, error) {
	s = strings.TrimSpace(s)

	switch {
	case s == "" || s == "transparent":
		return drawing.ColorTransparent, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return drawing.Color{}, errors.Wrapf(errors.ErrCodeInvalidColor, err, "invalid hex color %q", s)
		}

		r, g, b := c.RGB255()

		return drawing.Color{R: r, G: g, B: b, A: 255}, nil
	case strings.HasPrefix(s, "rgba("):
		var r, g, b uint8

		var a float64

		if _, err := fmt.Sscanf(s, "rgba(%d, %d, %d, %g)", &r, &g, &b, &a); err != nil {
			return drawing.Color{}, errors.Wrapf(errors.ErrCodeInvalidColor, err, "invalid rgba color %q", s)
		}

		return drawing.Color{R: r, G: g, B: b, A: uint8(math.Round(clamp01(a) * 255))}, nil
	case strings.HasPrefix(s, "rgb("):
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "rgb(%d, %d, %d)", &r, &g, &b); err != nil {
			return drawing.Color{}, errors.Wrapf(errors.ErrCodeInvalidColor, err, "invalid rgb color %q", s)
		}

		return drawing.Color{R: r, G: g, B: b, A: 255}, nil
	}

	return drawing.Color{}, errors.Newf(errors.ErrCodeInvalidColor, "unsupported color %q", s)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
