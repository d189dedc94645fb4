package tinsel

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertNearTol(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

// testRand returns a seeded source so generation-dependent tests are
// reproducible.
func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// testPhotos returns n photos without URLs, so nothing ever tries to load a
// texture over the network. Loader tests serve their own URLs.
func testPhotos(n int) []Photo {
	photos := make([]Photo, n)
	for i := range photos {
		photos[i] = Photo{ID: fmt.Sprintf("photo-%02d", i)}
	}
	return photos
}

func TestSmoothFactorFrameRateIndependent(t *testing.T) {
	// Two half-steps must equal one full step.
	full := smoothFactor(5.0, 0.2)
	half := smoothFactor(5.0, 0.1)
	chained := half + (1-half)*half
	assertNear(t, "chained half-steps", chained, full)
}

func TestSmoothFactorBounds(t *testing.T) {
	if k := smoothFactor(10, 1.0/60); k <= 0 || k >= 1 {
		t.Errorf("smoothFactor(10, 1/60) = %v, want in (0, 1)", k)
	}
}

func TestVec3RotatedYPreservesLength(t *testing.T) {
	v := Vec3{3, 4, 5}
	r := v.RotatedY(1.234)
	assertNear(t, "rotated length", r.Length(), v.Length())
	assertNear(t, "rotated Y", r.Y, v.Y)
}

func TestVec3RotatedYFullTurn(t *testing.T) {
	v := Vec3{1, 2, 3}
	r := v.RotatedY(2 * math.Pi)
	assertNearTol(t, "full-turn X", r.X, v.X, 1e-12)
	assertNearTol(t, "full-turn Z", r.Z, v.Z, 1e-12)
}

func TestMorphStateExploded(t *testing.T) {
	cases := []struct {
		state MorphState
		want  bool
	}{
		{MorphAtTree, false},
		{MorphToExploded, true},
		{MorphAtExploded, true},
		{MorphToTree, false},
	}
	for _, c := range cases {
		if got := c.state.Exploded(); got != c.want {
			t.Errorf("%v.Exploded() = %v, want %v", c.state, got, c.want)
		}
	}
}
