package tinsel

import "testing"

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"#ffffff", Color{1, 1, 1, 1}},
		{"#000000", Color{0, 0, 0, 1}},
		{"#ff0000", Color{1, 0, 0, 1}},
		{"2e8b57", Color{46.0 / 255, 139.0 / 255, 87.0 / 255, 1}},
		{"#fff", Color{1, 1, 1, 1}},
		{"#f00", Color{1, 0, 0, 1}},
		{"  #00ff00  ", Color{0, 1, 0, 1}},
	}
	for _, c := range cases {
		got, err := ParseHexColor(c.in)
		if err != nil {
			t.Errorf("ParseHexColor(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseHexColorErrors(t *testing.T) {
	for _, in := range []string{"", "#", "#ff", "#fffff", "#ggg", "#zzzzzz", "green"} {
		if _, err := ParseHexColor(in); err == nil {
			t.Errorf("ParseHexColor(%q) accepted invalid input", in)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, s := range []string{"#ffc0cb", "#2e8b57", "#000000", "#ffffff"} {
		c, err := ParseHexColor(s)
		if err != nil {
			t.Fatalf("ParseHexColor(%q): %v", s, err)
		}
		if got := c.Hex(); got != s {
			t.Errorf("Hex(%q) = %q", s, got)
		}
	}
}

func TestHexClampsHDR(t *testing.T) {
	c := Color{2.2, 1.5, 3.0, 1}
	if got := c.Hex(); got != "#ffffff" {
		t.Errorf("HDR Hex = %q, want #ffffff", got)
	}
}

func TestWithLightnessBounds(t *testing.T) {
	black := Color{0, 0, 0, 1}
	darker := black.WithLightness(-1)
	if darker.R < 0.01 {
		t.Errorf("dark shade collapsed to pure black: %v", darker)
	}
	white := Color{1, 1, 1, 1}
	lighter := white.WithLightness(1)
	if lighter.R > 0.99 {
		t.Errorf("light shade collapsed to pure white: %v", lighter)
	}
}

func TestFoliagePaletteOrdering(t *testing.T) {
	base, _ := ParseHexColor("#2e8b57")
	dark, light := foliagePalette(base)
	_, _, lBase := rgbToHSL(base.R, base.G, base.B)
	_, _, lDark := rgbToHSL(dark.R, dark.G, dark.B)
	_, _, lLight := rgbToHSL(light.R, light.G, light.B)
	if !(lDark < lBase && lBase < lLight) {
		t.Errorf("lightness ordering dark=%v base=%v light=%v", lDark, lBase, lLight)
	}
}

func TestHSLRoundTrip(t *testing.T) {
	for _, s := range []string{"#2e8b57", "#ffc0cb", "#123456", "#808080"} {
		c, _ := ParseHexColor(s)
		h, sat, l := rgbToHSL(c.R, c.G, c.B)
		r, g, b := hslToRGB(h, sat, l)
		assertNearTol(t, s+" R", r, c.R, 1e-6)
		assertNearTol(t, s+" G", g, c.G, 1e-6)
		assertNearTol(t, s+" B", b, c.B, 1e-6)
	}
}

func TestMixColor(t *testing.T) {
	a := Color{0, 0, 0, 1}
	b := Color{1, 0.5, 0.2, 1}
	mid := mixColor(a, b, 0.5)
	assertNear(t, "mid R", mid.R, 0.5)
	assertNear(t, "mid G", mid.G, 0.25)
	assertNear(t, "mid B", mid.B, 0.1)
	if mixColor(a, b, 0) != a || mixColor(a, b, 1) != b {
		t.Error("mixColor endpoints not exact")
	}
}

func TestToneMap(t *testing.T) {
	if got := toneMap(-1); got != 0 {
		t.Errorf("toneMap(-1) = %v, want 0", got)
	}
	assertNear(t, "toneMap(1)", toneMap(1), 0.5)
	if got := toneMap(100); got >= 1 {
		t.Errorf("toneMap(100) = %v, want < 1", got)
	}
	if toneMap(2.2) <= toneMap(1.0) {
		t.Error("toneMap not monotonic")
	}
}

func TestScaledBoostsAboveOne(t *testing.T) {
	c := Color{0.8, 0.9, 1.0, 1}.Scaled(2.2)
	if c.R <= 1 || c.G <= 1 || c.B <= 1 {
		t.Errorf("HDR boost stayed in SDR range: %v", c)
	}
	assertNear(t, "alpha unchanged", c.A, 1)
}
