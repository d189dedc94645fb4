package tinsel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseHexColor parses "#rgb" or "#rrggbb" (leading '#' optional) into a
// Color with A = 1.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("parse hex color %q: want 3 or 6 digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse hex color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}, nil
}

// Hex returns the color as a "#rrggbb" string. Components are clamped to
// [0, 1] first, so HDR-boosted colors round-trip to their displayable part.
func (c Color) Hex() string {
	r := uint8(clamp(c.R, 0, 1)*255 + 0.5)
	g := uint8(clamp(c.G, 0, 1)*255 + 0.5)
	b := uint8(clamp(c.B, 0, 1)*255 + 0.5)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// rgbToHSL converts RGB components in [0, 1] to hue (degrees), saturation,
// and lightness.
func rgbToHSL(r, g, b float64) (h, s, l float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60, s, l
}

// hslToRGB converts hue (degrees), saturation, and lightness back to RGB.
func hslToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hk := math.Mod(h/360, 1)
	if hk < 0 {
		hk++
	}
	return hueToRGB(p, q, hk+1.0/3), hueToRGB(p, q, hk), hueToRGB(p, q, hk-1.0/3)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// WithLightness returns the color shifted by dl in HSL lightness, clamped to
// [0.04, 0.96] so shading variants never collapse to pure black or white.
func (c Color) WithLightness(dl float64) Color {
	h, s, l := rgbToHSL(clamp(c.R, 0, 1), clamp(c.G, 0, 1), clamp(c.B, 0, 1))
	r, g, b := hslToRGB(h, s, clamp(l+dl, 0.04, 0.96))
	return Color{r, g, b, c.A}
}

// foliagePalette derives the shading variants the tree body interpolates
// across: a darker near-trunk shade and a lighter tip shade.
func foliagePalette(base Color) (dark, light Color) {
	return base.WithLightness(-0.16), base.WithLightness(0.14)
}

// mixColor linearly interpolates between two colors by t.
func mixColor(a, b Color, t float64) Color {
	return Color{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
		A: lerp(a.A, b.A, t),
	}
}

// toneMap compresses an HDR component into [0, 1] for submission to the
// renderer (Reinhard curve; identity near zero, asymptotic to one).
func toneMap(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v / (1 + v)
}
