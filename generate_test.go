package tinsel

import (
	"math"
	"testing"
)

func TestGenerateBufferLengths(t *testing.T) {
	cfg := DefaultConfig()
	f := Generate(cfg, testRand())

	if f.Count != cfg.ParticleBudget {
		t.Fatalf("Count = %d, want %d", f.Count, cfg.ParticleBudget)
	}
	n := f.Count
	if len(f.TreePositions) != n*3 {
		t.Errorf("len(TreePositions) = %d, want %d", len(f.TreePositions), n*3)
	}
	if len(f.ExplodedPositions) != n*3 {
		t.Errorf("len(ExplodedPositions) = %d, want %d", len(f.ExplodedPositions), n*3)
	}
	if len(f.CurrentPositions) != n*3 {
		t.Errorf("len(CurrentPositions) = %d, want %d", len(f.CurrentPositions), n*3)
	}
	if len(f.Colors) != n*3 {
		t.Errorf("len(Colors) = %d, want %d", len(f.Colors), n*3)
	}
	if len(f.Sizes) != n {
		t.Errorf("len(Sizes) = %d, want %d", len(f.Sizes), n)
	}
}

func TestGenerateClampsBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParticleBudget = 12
	f := Generate(cfg, testRand())
	if f.Count != MinParticleBudget {
		t.Errorf("tiny budget Count = %d, want %d", f.Count, MinParticleBudget)
	}

	cfg.ParticleBudget = 1 << 30
	f = Generate(cfg, testRand())
	if f.Count != MaxParticleBudget {
		t.Errorf("huge budget Count = %d, want %d", f.Count, MaxParticleBudget)
	}
}

func TestGenerateStartsAssembled(t *testing.T) {
	f := Generate(DefaultConfig(), testRand())
	for i := range f.CurrentPositions {
		if f.CurrentPositions[i] != f.TreePositions[i] {
			t.Fatalf("CurrentPositions[%d] = %v, want tree pose %v", i, f.CurrentPositions[i], f.TreePositions[i])
		}
	}
}

func TestGenerateTreeBounds(t *testing.T) {
	f := Generate(DefaultConfig(), testRand())
	for i := 0; i < f.Count; i++ {
		p := f.TreeAt(i)
		if p.Y < TreeBaseY-4 || p.Y > TreeTopY+3.5 {
			t.Fatalf("particle %d tree Y = %v, outside [%v, %v]", i, p.Y, TreeBaseY-4.0, TreeTopY+3.5)
		}
		if h := math.Hypot(p.X, p.Z); h > baseRadius+1 {
			t.Fatalf("particle %d horizontal extent = %v, want <= %v", i, h, baseRadius+1.0)
		}
	}
}

func TestGenerateExplodedShellBand(t *testing.T) {
	cfg := DefaultConfig()
	f := Generate(cfg, testRand())
	lo, hi := ShellFloor-epsilon, ShellFloor+cfg.ExplosionRadius+epsilon
	for i := 0; i < f.Count; i++ {
		r := f.ExplodedAt(i).Length()
		if r < lo || r > hi {
			t.Fatalf("particle %d exploded radius = %v, outside [%v, %v]", i, r, ShellFloor, ShellFloor+cfg.ExplosionRadius)
		}
	}
}

func TestGenerateShellUsesConfiguredRadius(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExplosionRadius = 60
	f := Generate(cfg, testRand())
	var max float64
	for i := 0; i < f.Count; i++ {
		if r := f.ExplodedAt(i).Length(); r > max {
			max = r
		}
	}
	if max <= ShellFloor+30 {
		t.Errorf("max exploded radius = %v, want beyond %v for a 60-unit band", max, ShellFloor+30.0)
	}
}

func TestGenerateFinite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TreeColor = "#FFC0CB"
	f := Generate(cfg, testRand())
	if f.Count != cfg.ParticleBudget {
		t.Fatalf("Count = %d, want %d", f.Count, cfg.ParticleBudget)
	}

	check := func(name string, buf []float64) {
		for i, v := range buf {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("%s[%d] = %v", name, i, v)
			}
		}
	}
	check("TreePositions", f.TreePositions)
	check("ExplodedPositions", f.ExplodedPositions)
	check("Colors", f.Colors)
	check("Sizes", f.Sizes)

	for i, s := range f.Sizes {
		if s <= 0 {
			t.Fatalf("Sizes[%d] = %v, want > 0", i, s)
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	cfg := DefaultConfig()
	a := Generate(cfg, testRand())
	b := Generate(cfg, testRand())
	for i := range a.TreePositions {
		if a.TreePositions[i] != b.TreePositions[i] {
			t.Fatalf("TreePositions[%d] differs across identical seeds", i)
		}
	}
	for i := range a.ExplodedPositions {
		if a.ExplodedPositions[i] != b.ExplodedPositions[i] {
			t.Fatalf("ExplodedPositions[%d] differs across identical seeds", i)
		}
	}
}

func TestGenerateStructureIdempotent(t *testing.T) {
	// Different seeds must still agree on structure.
	cfg := DefaultConfig()
	a := Generate(cfg, testRand())
	b := Generate(cfg, nil)
	if a.Count != b.Count || len(a.Colors) != len(b.Colors) || len(a.Sizes) != len(b.Sizes) {
		t.Errorf("structure differs: %d/%d/%d vs %d/%d/%d",
			a.Count, len(a.Colors), len(a.Sizes), b.Count, len(b.Colors), len(b.Sizes))
	}
}

func TestWhorlRadiusTapers(t *testing.T) {
	prev := whorlRadius(0)
	assertNear(t, "base whorl radius", prev, baseRadius)
	for l := 1; l < whorlCount; l++ {
		r := whorlRadius(l)
		if r >= prev {
			t.Fatalf("whorlRadius(%d) = %v, not decreasing from %v", l, r, prev)
		}
		prev = r
	}
	assertNearTol(t, "apex whorl radius", whorlRadius(whorlCount-1), 0, 1e-12)
}

func TestWhorlRadiusConcave(t *testing.T) {
	// The power taper shrinks faster than linear near the apex.
	mid := whorlRadius((whorlCount - 1) / 2)
	if mid <= baseRadius/2 {
		t.Errorf("mid whorl radius = %v, want > %v for a concave taper", mid, baseRadius/2)
	}
}

func TestSparkleFrequency(t *testing.T) {
	rng := testRand()
	const draws = 200000
	hits := 0
	for i := 0; i < draws; i++ {
		if sparkleRoll(rng) {
			hits++
		}
	}
	freq := float64(hits) / draws
	assertNearTol(t, "sparkle frequency", freq, sparkleChance, 0.005)
}

func TestShellPointBand(t *testing.T) {
	rng := testRand()
	for i := 0; i < 2000; i++ {
		r := shellPoint(rng, 15, 30).Length()
		if r < 15-epsilon || r > 45+epsilon {
			t.Fatalf("shellPoint radius = %v, outside [15, 45]", r)
		}
	}
}

func TestShellPointCoversBothHemispheres(t *testing.T) {
	rng := testRand()
	up, down := 0, 0
	for i := 0; i < 2000; i++ {
		if shellPoint(rng, 15, 30).Y > 0 {
			up++
		} else {
			down++
		}
	}
	if up < 800 || down < 800 {
		t.Errorf("hemisphere split %d/%d, want roughly even", up, down)
	}
}

func TestFixedDecorBudget(t *testing.T) {
	want := particlesPerGift*len(giftBoxes) + crownParticles + baubleParticles
	if got := fixedDecorTotal(); got != want {
		t.Errorf("fixedDecorTotal = %d, want %d", got, want)
	}
	if fixedDecorTotal() >= MinParticleBudget {
		t.Errorf("fixed decoration %d exceeds minimum budget %d", fixedDecorTotal(), MinParticleBudget)
	}
}
