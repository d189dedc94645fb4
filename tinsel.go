package tinsel

import "math"

// Color represents an RGBA color with components nominally in [0, 1].
// Particle colors may exceed 1.0 to emulate HDR glow; the renderer
// tone-maps at submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Scaled returns the color with R, G, B multiplied by f. Alpha is unchanged.
// Used for HDR intensity boosting; results above 1.0 are intentional.
func (c Color) Scaled(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A}
}

// Vec3 is a 3D vector used for particle positions, offsets, and directions.
// The coordinate system is Y-up with the tree centered on the origin.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by f.
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// RotatedY returns v rotated around the vertical axis by angle radians.
func (v Vec3) RotatedY(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{v.X*cos + v.Z*sin, v.Y, -v.X*sin + v.Z*cos}
}

// Range is a general-purpose min/max range.
// Used by the ambient particle systems and the layout generator.
type Range struct {
	Min, Max float64
}

// MorphState identifies where the particle field is on its journey between
// the intact tree arrangement and the dispersed memory cloud.
type MorphState uint8

const (
	MorphAtTree     MorphState = iota // at rest in the tree arrangement
	MorphToExploded                   // interpolating toward the exploded pose
	MorphAtExploded                   // settled in the exploded pose
	MorphToTree                       // interpolating back toward the tree pose
)

// String returns the state name for logging and test failure messages.
func (m MorphState) String() string {
	switch m {
	case MorphAtTree:
		return "AtTree"
	case MorphToExploded:
		return "ToExploded"
	case MorphAtExploded:
		return "AtExploded"
	case MorphToTree:
		return "ToTree"
	default:
		return "Unknown"
	}
}

// Exploded reports whether the state targets the exploded pose.
// The morph engine interpolates toward the exploded buffer in either of
// these states.
func (m MorphState) Exploded() bool {
	return m == MorphToExploded || m == MorphAtExploded
}

// PhotoState identifies a photo card's interaction state. States are
// independent across cards except that at most one card may be active.
type PhotoState uint8

const (
	PhotoIdle    PhotoState = iota // no pointer interaction
	PhotoHovered                   // pointer (or keyboard focus) over the card
	PhotoActive                    // opened / focused in the lightbox sense
)

// String returns the state name for logging and test failure messages.
func (p PhotoState) String() string {
	switch p {
	case PhotoIdle:
		return "Idle"
	case PhotoHovered:
		return "Hovered"
	case PhotoActive:
		return "Active"
	default:
		return "Unknown"
	}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp limits v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampInt limits v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// smoothFactor converts a per-second smoothing rate into a per-frame lerp
// factor for timestep dt. Frame-rate independent: chaining two half-steps
// equals one full step.
func smoothFactor(rate, dt float64) float64 {
	return 1 - math.Exp(-rate*dt)
}
