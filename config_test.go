package tinsel

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	clamped := cfg
	clamped.Clamp()
	if cfg != clamped {
		t.Errorf("DefaultConfig changed under Clamp: %+v -> %+v", cfg, clamped)
	}
}

func TestClampParticleBudget(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{10, MinParticleBudget},
		{MinParticleBudget, MinParticleBudget},
		{18000, 18000},
		{1 << 30, MaxParticleBudget},
	}
	for _, c := range cases {
		cfg := DefaultConfig()
		cfg.ParticleBudget = c.in
		cfg.Clamp()
		if cfg.ParticleBudget != c.want {
			t.Errorf("Clamp budget %d = %d, want %d", c.in, cfg.ParticleBudget, c.want)
		}
	}
}

func TestClampNumericBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExplosionRadius = 1000
	cfg.RotationSpeed = -3
	cfg.SnowDensity = 7
	cfg.PhotoScale = 0
	cfg.Clamp()
	assertNear(t, "explosion radius", cfg.ExplosionRadius, maxExplosionRadius)
	assertNear(t, "rotation speed", cfg.RotationSpeed, minRotationSpeed)
	assertNear(t, "snow density", cfg.SnowDensity, maxSnowDensity)
	assertNear(t, "photo scale", cfg.PhotoScale, minPhotoScale)
}

func TestClampReplacesBadColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TreeColor = "chartreuse"
	cfg.Clamp()
	if cfg.TreeColor != DefaultConfig().TreeColor {
		t.Errorf("TreeColor = %q, want default %q", cfg.TreeColor, DefaultConfig().TreeColor)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParticleBudget = 25000
	cfg.TreeColor = "#ffc0cb"
	cfg.ActiveCardCenters = true

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}

func TestParseConfigPartialKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("particleBudget: 30000\n"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.ParticleBudget != 30000 {
		t.Errorf("ParticleBudget = %d, want 30000", cfg.ParticleBudget)
	}
	if cfg.TreeColor != DefaultConfig().TreeColor {
		t.Errorf("TreeColor = %q, want default", cfg.TreeColor)
	}
}

func TestParseConfigGarbage(t *testing.T) {
	cfg, err := ParseConfig([]byte("{not yaml: ["))
	if err == nil {
		t.Fatal("ParseConfig accepted garbage")
	}
	if cfg != DefaultConfig() {
		t.Errorf("failed parse = %+v, want defaults", cfg)
	}
}

func TestParseConfigClampsDecodedValues(t *testing.T) {
	cfg, err := ParseConfig([]byte("particleBudget: 5\nexplosionRadius: 9999\n"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.ParticleBudget != MinParticleBudget {
		t.Errorf("ParticleBudget = %d, want %d", cfg.ParticleBudget, MinParticleBudget)
	}
	assertNear(t, "explosion radius", cfg.ExplosionRadius, maxExplosionRadius)
}

func TestRegenerates(t *testing.T) {
	base := DefaultConfig()

	budget := base
	budget.ParticleBudget = 25000
	if !regenerates(base, budget) {
		t.Error("budget change should regenerate")
	}

	color := base
	color.TreeColor = "#ff0000"
	if !regenerates(base, color) {
		t.Error("color change should regenerate")
	}

	spin := base
	spin.RotationSpeed = 1.5
	if regenerates(base, spin) {
		t.Error("rotation change should not regenerate")
	}
}
