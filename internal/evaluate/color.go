package evaluate

import (
	"math"
	"strconv"
	"strings"
)

// rgb is a parsed sRGB color.
type rgb struct {
	r, g, b uint8
}

// namedColors covers the CSS color keywords that show up in inline
// styles often enough to matter for a static heuristic.
var namedColors = map[string]rgb{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"silver":  {192, 192, 192},
	"maroon":  {128, 0, 0},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
	"olive":   {128, 128, 0},
	"lime":    {0, 255, 0},
	"aqua":    {0, 255, 255},
	"cyan":    {0, 255, 255},
	"fuchsia": {255, 0, 255},
	"magenta": {255, 0, 255},
}

// parseColor parses a CSS color value: #rgb, #rrggbb, rgb()/rgba(), or a
// color keyword. Anything else (gradients, var(), hsl) is reported as
// unparseable and the element is skipped by the contrast check.
func parseColor(value string) (rgb, bool) {
	value = strings.ToLower(strings.TrimSpace(value))

	if c, ok := namedColors[value]; ok {
		return c, true
	}

	if strings.HasPrefix(value, "#") {
		return parseHexColor(value[1:])
	}

	if strings.HasPrefix(value, "rgb(") || strings.HasPrefix(value, "rgba(") {
		return parseRGBFunc(value)
	}

	return rgb{}, false
}

func parseHexColor(hex string) (rgb, bool) {
	switch len(hex) {
	case 3:
		var out [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(string(hex[i]), 16, 8)
			if err != nil {
				return rgb{}, false
			}
			out[i] = uint8(v*16 + v)
		}
		return rgb{out[0], out[1], out[2]}, true
	case 6:
		var out [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return rgb{}, false
			}
			out[i] = uint8(v)
		}
		return rgb{out[0], out[1], out[2]}, true
	}
	return rgb{}, false
}

func parseRGBFunc(value string) (rgb, bool) {
	open := strings.Index(value, "(")
	end := strings.LastIndex(value, ")")
	if open < 0 || end < open {
		return rgb{}, false
	}

	parts := strings.Split(value[open+1:end], ",")
	if len(parts) < 3 {
		return rgb{}, false
	}

	var out [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return rgb{}, false
		}
		out[i] = uint8(n)
	}
	return rgb{out[0], out[1], out[2]}, true
}

// relativeLuminance implements the WCAG luminance formula.
func relativeLuminance(c rgb) float64 {
	linear := func(channel uint8) float64 {
		v := float64(channel) / 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*linear(c.r) + 0.7152*linear(c.g) + 0.0722*linear(c.b)
}

// contrastRatio returns the WCAG contrast ratio between two colors,
// always >= 1.
func contrastRatio(a, b rgb) float64 {
	la, lb := relativeLuminance(a), relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// parseStyle splits an inline style attribute into declarations.
// Keys are lowercased; malformed declarations are dropped.
func parseStyle(style string) map[string]string {
	decls := make(map[string]string)
	for _, part := range strings.Split(style, ";") {
		key, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			decls[key] = value
		}
	}
	return decls
}

// parseFontSizePx converts a CSS font-size to pixels. Relative units use
// the browser default of 16px as the base. Returns 0 when the size
// cannot be determined statically.
func parseFontSizePx(value string) float64 {
	value = strings.ToLower(strings.TrimSpace(value))

	// rem must be checked before em: "1.5rem" matches both suffixes.
	units := []struct {
		suffix string
		factor float64
	}{
		{"px", 1},
		{"pt", 96.0 / 72.0},
		{"rem", 16},
		{"em", 16},
		{"%", 0.16},
	}

	for _, unit := range units {
		if strings.HasSuffix(value, unit.suffix) {
			n, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(value, unit.suffix)), 64)
			if err != nil {
				return 0
			}
			return n * unit.factor
		}
	}
	return 0
}

// isBoldWeight reports whether a font-weight value means bold.
func isBoldWeight(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "bold" || value == "bolder" {
		return true
	}
	n, err := strconv.Atoi(value)
	return err == nil && n >= 700
}
