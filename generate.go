package tinsel

import (
	"math"
	"math/rand/v2"
)

// --- Layout constants ---

// World-space extents of the generated tree. The field is centered on the
// origin so the exploded shell and the camera orbit share one center.
const (
	// TreeBaseY and TreeTopY bound the foliage body vertically.
	TreeBaseY = -12.0
	TreeTopY  = 12.0

	// ShellFloor is the inner radius of the exploded-pose shell band.
	// Exploded positions land within [ShellFloor, ShellFloor+radius] of
	// the origin.
	ShellFloor = 15.0

	baseRadius    = 9.0  // foliage radius at the lowest whorl
	whorlCount    = 26   // horizontal layers from base to apex
	taperExponent = 0.7  // sub-linear: radius shrinks faster near the apex
	tipBias       = 0.55 // t = u^tipBias pushes particles toward branch tips
	droopCoeff    = 0.3  // tip sag, proportional to t² and branch length
	bodyJitter    = 0.35 // flocked-texture jitter, per axis

	trunkFraction = 0.04 // share of body particles forming the trunk column
	trunkRadius   = 0.55

	sparkleChance = 0.02 // per-particle chance of a pure-white override

	glowBoost    = 1.35 // HDR intensity multiplier for foliage
	sparkleBoost = 2.2
	baubleBoost  = 1.9
	crownBoost   = 2.0
)

// Fixed decorative budgets. These counts never scale with the particle
// budget, so gifts, crown, and baubles stay readable at small budgets.
const (
	crownParticles    = 900
	baubleParticles   = 600
	particlesPerGift  = 350
	giftSurfaceBias   = 0.88 // share of gift particles snapped to a box face
	ribbonHalfWidth   = 0.12 // ribbon band half-width as a fraction of box width
	crownCenterY      = TreeTopY + 0.8
	crownRingRadius   = 1.1
	crownArchRadius   = 1.35
	crownJewelRadius  = 0.35
	crownRingCut      = 0.45 // weighted shape thresholds, drawn against u
	crownArchCut      = 0.80
)

// giftBoxSpec is one gift box under the tree: a closed-form placement tuple.
type giftBoxSpec struct {
	angle  float64 // azimuth around the trunk, radians
	radius float64 // distance from the trunk axis
	width  float64 // footprint (square) edge length
	height float64
	base   Color // wrap color
	ribbon Color // cross-band color
}

// giftBoxes is the fixed arrangement under the tree.
var giftBoxes = []giftBoxSpec{
	{angle: 0.4, radius: 5.2, width: 2.6, height: 2.0, base: Color{0.86, 0.18, 0.22, 1}, ribbon: Color{1, 0.85, 0.45, 1}},
	{angle: 1.5, radius: 6.4, width: 2.0, height: 2.4, base: Color{0.16, 0.42, 0.78, 1}, ribbon: Color{0.95, 0.95, 0.95, 1}},
	{angle: 2.6, radius: 5.6, width: 3.0, height: 1.6, base: Color{0.92, 0.78, 0.25, 1}, ribbon: Color{0.75, 0.15, 0.2, 1}},
	{angle: 3.7, radius: 6.0, width: 2.2, height: 2.2, base: Color{0.55, 0.2, 0.65, 1}, ribbon: Color{1, 0.85, 0.45, 1}},
	{angle: 4.7, radius: 5.0, width: 2.4, height: 1.8, base: Color{0.14, 0.6, 0.45, 1}, ribbon: Color{0.95, 0.95, 0.95, 1}},
	{angle: 5.7, radius: 6.6, width: 1.8, height: 2.6, base: Color{0.85, 0.3, 0.5, 1}, ribbon: Color{0.98, 0.9, 0.7, 1}},
}

// giftParticles is the fixed total across all boxes.
func giftParticlesTotal() int {
	return particlesPerGift * len(giftBoxes)
}

// fixedDecorTotal is the particle count reserved for decorative groups.
func fixedDecorTotal() int {
	return giftParticlesTotal() + crownParticles + baubleParticles
}

// baublePalette is the ornament color rotation.
var baublePalette = []Color{
	{0.95, 0.2, 0.22, 1},
	{0.98, 0.78, 0.25, 1},
	{0.25, 0.5, 0.95, 1},
	{0.9, 0.9, 0.95, 1},
}

var crownGold = Color{1.0, 0.82, 0.45, 1}

// --- Generation ---

// Generate produces a complete ParticleField for the given configuration.
// The budget is clamped to the configured floor first; the fixed decorative
// groups are carved out and the remainder becomes the tree body, so the body
// shrinks (never the decorations) as the budget shrinks.
//
// rng may be nil, in which case an unseeded source is used and output is
// intentionally non-deterministic across calls. Pass a seeded source for
// reproducible output. Structure (buffer lengths, group proportions) is
// always identical for identical arguments.
func Generate(cfg Config, rng *rand.Rand) *ParticleField {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	cfg.Clamp()

	count := cfg.ParticleBudget
	body := count - fixedDecorTotal()

	base, _ := ParseHexColor(cfg.TreeColor) // Clamp already replaced bad colors
	dark, light := foliagePalette(base)

	f := newParticleField(count)

	i := 0
	i = generateBody(f, i, body, dark, light, rng)
	i = generateGifts(f, i, rng)
	i = generateCrown(f, i, rng)
	i = generateBaubles(f, i, rng)

	// Every particle gets an independent shell coordinate; there is no
	// structural correspondence between a particle's tree role and where it
	// lands when exploded.
	for j := 0; j < count; j++ {
		f.setExploded(j, shellPoint(rng, ShellFloor, cfg.ExplosionRadius))
	}

	f.resetToTree()
	return f
}

// generateBody fills n body particles (trunk column plus foliage whorls)
// starting at index i and returns the next free index.
func generateBody(f *ParticleField, i, n int, dark, light Color, rng *rand.Rand) int {
	trunk := int(float64(n) * trunkFraction)

	trunkColor := Color{0.35, 0.22, 0.12, 1}
	for k := 0; k < trunk; k++ {
		a := rng.Float64() * 2 * math.Pi
		r := trunkRadius * math.Sqrt(rng.Float64())
		y := TreeBaseY + rng.Float64()*(TreeTopY-TreeBaseY)*0.92
		f.setTree(i, Vec3{math.Cos(a) * r, y, math.Sin(a) * r})
		f.setColor(i, trunkColor.Scaled(1.0))
		f.Sizes[i] = 0.1 + rng.Float64()*0.05
		i++
	}

	weights := whorlWeights()
	for k := trunk; k < n; k++ {
		layer := pickWhorl(rng, weights)
		p, t := bodyPoint(rng, layer)
		f.setTree(i, p)

		// Depth-dependent shading: near-trunk darker, tips lighter, with a
		// small stochastic chance of a pure-white sparkle override.
		c := mixColor(dark, light, t).Scaled(glowBoost)
		size := 0.06 + rng.Float64()*0.1
		if sparkleRoll(rng) {
			c = ColorWhite.Scaled(sparkleBoost)
			size = 0.18 + rng.Float64()*0.06
		}
		f.setColor(i, c)
		f.Sizes[i] = size
		i++
	}
	return i
}

// whorlWeights returns per-layer selection weights proportional to layer
// radius, so lower (wider) whorls receive proportionally more particles.
func whorlWeights() []float64 {
	w := make([]float64, whorlCount)
	for l := range w {
		w[l] = whorlRadius(l)
	}
	return w
}

// whorlRadius is the taper curve: a concave power profile that shrinks
// faster than linear near the apex.
func whorlRadius(layer int) float64 {
	h := float64(layer) / float64(whorlCount-1)
	return baseRadius * math.Pow(1-h, taperExponent)
}

// whorlBranches is the synthetic branch count for a layer, decreasing with
// height.
func whorlBranches(layer int) int {
	h := float64(layer) / float64(whorlCount-1)
	b := int(math.Round(14 * (1 - 0.7*h)))
	if b < 4 {
		b = 4
	}
	return b
}

// pickWhorl selects a layer index with probability proportional to weights.
func pickWhorl(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	u := rng.Float64() * total
	for l, w := range weights {
		u -= w
		if u <= 0 {
			return l
		}
	}
	return len(weights) - 1
}

// bodyPoint places one foliage particle on a synthetic branch of the given
// whorl: random branch, tip-biased fractional distance, quadratic droop,
// and flocked jitter. Pure function of (layer, rng). The returned tip
// fraction drives depth shading.
func bodyPoint(rng *rand.Rand, layer int) (Vec3, float64) {
	h := float64(layer) / float64(whorlCount-1)
	radius := whorlRadius(layer)
	branches := whorlBranches(layer)

	// Per-layer golden-angle phase keeps branches from stacking vertically.
	phase := float64(layer) * 2.399963
	b := rng.IntN(branches)
	azimuth := phase + 2*math.Pi*float64(b)/float64(branches) + (rng.Float64()-0.5)*0.2

	// Tip-biased draw: density increases toward branch ends.
	t := math.Pow(rng.Float64(), tipBias)

	radial := t * radius
	droop := droopCoeff * t * t * radius
	y := TreeBaseY + h*(TreeTopY-TreeBaseY) - droop

	jx := (rng.Float64() - 0.5) * 2 * bodyJitter
	jy := (rng.Float64() - 0.5) * 2 * bodyJitter
	jz := (rng.Float64() - 0.5) * 2 * bodyJitter

	return Vec3{
		X: math.Cos(azimuth)*radial + jx,
		Y: y + jy,
		Z: math.Sin(azimuth)*radial + jz,
	}, t
}

// sparkleRoll reports whether a body particle becomes a sparkle. Split out
// so the probability can be property-tested on its own.
func sparkleRoll(rng *rand.Rand) bool {
	return rng.Float64() < sparkleChance
}

// generateGifts fills the fixed gift-box particles starting at index i.
func generateGifts(f *ParticleField, i int, rng *rand.Rand) int {
	for _, box := range giftBoxes {
		yaw := rng.Float64() * 2 * math.Pi
		cx := math.Cos(box.angle) * box.radius
		cz := math.Sin(box.angle) * box.radius
		cy := TreeBaseY + box.height/2

		for k := 0; k < particlesPerGift; k++ {
			local, onRibbon := giftBoxPoint(rng, box.width, box.height)
			p := local.RotatedY(yaw).Add(Vec3{cx, cy, cz})
			f.setTree(i, p)
			c := box.base
			if onRibbon {
				c = box.ribbon
			}
			f.setColor(i, c.Scaled(1.15))
			f.Sizes[i] = 0.09 + rng.Float64()*0.05
			i++
		}
	}
	return i
}

// giftBoxPoint samples one particle in box-local coordinates. Most draws
// snap one random axis to a face so the box reads as a surface; the rest
// fill the interior. A thin axis-aligned cross band near the local center is
// flagged as ribbon.
func giftBoxPoint(rng *rand.Rand, width, height float64) (p Vec3, ribbon bool) {
	hw, hh := width/2, height/2
	p = Vec3{
		X: (rng.Float64() - 0.5) * width,
		Y: (rng.Float64() - 0.5) * height,
		Z: (rng.Float64() - 0.5) * width,
	}
	if rng.Float64() < giftSurfaceBias {
		sign := 1.0
		if rng.Float64() < 0.5 {
			sign = -1.0
		}
		switch rng.IntN(3) {
		case 0:
			p.X = sign * hw
		case 1:
			p.Y = sign * hh
		case 2:
			p.Z = sign * hw
		}
	}
	band := width * ribbonHalfWidth
	ribbon = math.Abs(p.X) < band || math.Abs(p.Z) < band
	return p, ribbon
}

// generateCrown fills the topper particles starting at index i.
func generateCrown(f *ParticleField, i int, rng *rand.Rand) int {
	for k := 0; k < crownParticles; k++ {
		f.setTree(i, crownPoint(rng))
		c := crownGold
		if rng.Float64() < 0.1 {
			c = ColorWhite
		}
		f.setColor(i, c.Scaled(crownBoost))
		f.Sizes[i] = 0.1 + rng.Float64()*0.08
		i++
	}
	return i
}

// crownPoint samples one topper particle from three weighted shape rules:
// a horizontal ring, vertical arches over the apex, and a jewel ball on top.
func crownPoint(rng *rand.Rand) Vec3 {
	u := rng.Float64()
	switch {
	case u < crownRingCut:
		a := rng.Float64() * 2 * math.Pi
		r := crownRingRadius * (0.9 + rng.Float64()*0.2)
		return Vec3{
			X: math.Cos(a) * r,
			Y: crownCenterY + (rng.Float64()-0.5)*0.25,
			Z: math.Sin(a) * r,
		}
	case u < crownArchCut:
		// Four arch planes; s runs base-to-base over the apex.
		plane := float64(rng.IntN(4)) * math.Pi / 4
		s := rng.Float64() * math.Pi
		r := crownArchRadius
		return Vec3{
			X: math.Cos(plane) * math.Cos(s) * r,
			Y: crownCenterY + math.Sin(s)*r,
			Z: math.Sin(plane) * math.Cos(s) * r,
		}
	default:
		// Jewel: uniform ball above the arches.
		v := shellPoint(rng, 0, crownJewelRadius)
		v.Y += crownCenterY + crownArchRadius + crownJewelRadius
		return v
	}
}

// generateBaubles fills the ornament particles starting at index i. Baubles
// sit just proud of the foliage surface at a random whorl.
func generateBaubles(f *ParticleField, i int, rng *rand.Rand) int {
	for k := 0; k < baubleParticles; k++ {
		layer := rng.IntN(whorlCount - 2) // none at the very apex
		h := float64(layer) / float64(whorlCount-1)
		a := rng.Float64() * 2 * math.Pi
		r := whorlRadius(layer) * (0.92 + rng.Float64()*0.12)
		y := TreeBaseY + h*(TreeTopY-TreeBaseY) - rng.Float64()*0.4
		f.setTree(i, Vec3{math.Cos(a) * r, y, math.Sin(a) * r})
		f.setColor(i, baublePalette[k%len(baublePalette)].Scaled(baubleBoost))
		f.Sizes[i] = 0.16 + rng.Float64()*0.08
		i++
	}
	return i
}

// shellPoint draws a point from the spherical-shell distribution: uniform
// azimuth, uniform-on-sphere polar angle via Acos (avoiding pole
// clustering), and radius uniform within [floor, floor+band].
func shellPoint(rng *rand.Rand, floor, band float64) Vec3 {
	theta := rng.Float64() * 2 * math.Pi
	phi := math.Acos(2*rng.Float64() - 1)
	r := floor + rng.Float64()*band
	sinPhi := math.Sin(phi)
	return Vec3{
		X: r * sinPhi * math.Cos(theta),
		Y: r * math.Cos(phi),
		Z: r * sinPhi * math.Sin(theta),
	}
}
