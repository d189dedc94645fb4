package tinsel

import (
	"math"
	"testing"
)

func TestFibonacciPointsOnSphere(t *testing.T) {
	const radius = 24.0
	for n := 1; n <= 40; n++ {
		for i := 0; i < n; i++ {
			r := fibonacciPoint(i, n, radius).Length()
			assertNearTol(t, "slot radius", r, radius, 1e-9)
		}
	}
}

func TestFibonacciPointsDistinct(t *testing.T) {
	const n = 40
	pts := make([]Vec3, n)
	for i := range pts {
		pts[i] = fibonacciPoint(i, n, 24)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d := pts[i].Sub(pts[j]).Length(); d < 1 {
				t.Errorf("slots %d and %d are %v apart, want separated", i, j, d)
			}
		}
	}
}

func TestFibonacciSpreadsVertically(t *testing.T) {
	const n = 30
	up, down := 0, 0
	for i := 0; i < n; i++ {
		if fibonacciPoint(i, n, 24).Y > 0 {
			up++
		} else {
			down++
		}
	}
	if up != n/2 || down != n/2 {
		t.Errorf("hemisphere split %d/%d, want even", up, down)
	}
}

func TestCardRotationFacesOutward(t *testing.T) {
	set := NewCardSet(testPhotos(12), 24, 3.2)
	for _, c := range set.Cards() {
		// Rotating +Z by the card's yaw must land on the card's radial
		// direction.
		out := Vec3{0, 0, 1}.RotatedY(c.Rotation)
		radial := Vec3{c.BasePosition.X, 0, c.BasePosition.Z}
		if l := radial.Length(); l > 1e-9 {
			radial = radial.Scale(1 / l)
			dot := out.X*radial.X + out.Z*radial.Z
			if dot < 0.999 {
				t.Errorf("card %s rotation %v does not face outward (dot %v)", c.ID, c.Rotation, dot)
			}
		}
	}
}

func TestCardsStartHidden(t *testing.T) {
	set := NewCardSet(testPhotos(8), 24, 3.2)
	set.Tick(tickDT)
	for _, c := range set.Cards() {
		if c.CurrentScale != 0 {
			t.Errorf("card %s scale = %v before show, want 0", c.ID, c.CurrentScale)
		}
	}
}

func TestCardShowHideLifecycle(t *testing.T) {
	set := NewCardSet(testPhotos(8), 24, 3.2)

	set.SetShown(true)
	for i := 0; i < 30; i++ { // half a second, mid-grow
		set.Tick(tickDT)
	}
	mid := set.Cards()[0].CurrentScale
	if mid <= 0 {
		t.Fatalf("mid-grow scale = %v, want > 0", mid)
	}

	for i := 0; i < 120; i++ { // well past the show duration
		set.Tick(tickDT)
	}
	for _, c := range set.Cards() {
		assertNear(t, "shown scale", c.CurrentScale, 3.2)
	}

	set.SetShown(false)
	for i := 0; i < 120; i++ {
		set.Tick(tickDT)
	}
	for _, c := range set.Cards() {
		assertNear(t, "hidden scale", c.CurrentScale, 0)
	}
}

func TestSetShownIdempotent(t *testing.T) {
	set := NewCardSet(testPhotos(4), 24, 3.2)
	set.SetShown(true)
	for i := 0; i < 30; i++ {
		set.Tick(tickDT)
	}
	mid := set.Cards()[0].CurrentScale
	set.SetShown(true) // repeat must not restart the tween
	set.Tick(tickDT)
	if set.Cards()[0].CurrentScale < mid {
		t.Errorf("scale dropped from %v after redundant SetShown", set.Cards()[0].CurrentScale)
	}
}

func TestSetDisplayScaleWhileShown(t *testing.T) {
	set := NewCardSet(testPhotos(4), 24, 3.2)
	set.SetShown(true)
	for i := 0; i < 120; i++ {
		set.Tick(tickDT)
	}
	set.SetDisplayScale(5)
	for i := 0; i < 120; i++ {
		set.Tick(tickDT)
	}
	assertNear(t, "rescaled card", set.Cards()[0].CurrentScale, 5)
}

func TestSetPhotosBumpsGeneration(t *testing.T) {
	set := NewCardSet(testPhotos(4), 24, 3.2)
	gen := set.Generation()
	set.SetPhotos(testPhotos(6))
	if set.Generation() <= gen {
		t.Errorf("generation = %d after SetPhotos, want > %d", set.Generation(), gen)
	}
	if len(set.Cards()) != 6 {
		t.Errorf("card count = %d, want 6", len(set.Cards()))
	}
}

func TestSetPhotosKeepsShownState(t *testing.T) {
	set := NewCardSet(testPhotos(4), 24, 3.2)
	set.SetShown(true)
	for i := 0; i < 120; i++ {
		set.Tick(tickDT)
	}
	set.SetPhotos(testPhotos(3))
	for i := 0; i < 120; i++ {
		set.Tick(tickDT)
	}
	for _, c := range set.Cards() {
		assertNear(t, "replacement card scale", c.CurrentScale, 3.2)
	}
}

func TestByID(t *testing.T) {
	set := NewCardSet(testPhotos(4), 24, 3.2)
	if set.ByID("photo-02") == nil {
		t.Error("ByID(photo-02) = nil")
	}
	if set.ByID("missing") != nil {
		t.Error("ByID(missing) != nil")
	}
}

func TestEffectiveScaleCombinesHover(t *testing.T) {
	card := &PhotoCard{CurrentScale: 3.2, hoverScale: 1.5}
	assertNear(t, "effective scale", card.EffectiveScale(), 4.8)
}

func TestGoldenAngleValue(t *testing.T) {
	assertNearTol(t, "golden angle", goldenAngle, math.Pi*(3-math.Sqrt(5)), 1e-12)
}
