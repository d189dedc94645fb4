package tinsel

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// --- Framing presets ---

// Camera framing follows a coarse viewport heuristic, not continuous
// responsive scaling: viewports narrower than the breakpoint get the wider
// mobile framing, everything else the tighter desktop framing.
const (
	mobileBreakpoint = 768 // viewport width, pixels

	desktopDistance = 38.0
	desktopHeight   = 4.0
	mobileDistance  = 52.0
	mobileHeight    = 5.0

	cameraFOV        = 50 * math.Pi / 180 // vertical field of view
	framingTweenTime = 1.2                // seconds, preset transitions
)

// framing is one camera preset.
type framing struct {
	distance, height float64
}

// Camera orbits the scene center. It owns only view parameters; the scene's
// own rotation lives in the morph engine, so the camera never moves
// horizontally. Preset changes animate with a tween rather than snapping.
type Camera struct {
	// Distance and Height position the eye at (0, Height, Distance),
	// looking at the origin.
	Distance float64
	Height   float64

	viewportW, viewportH int

	distTween   *gween.Tween
	heightTween *gween.Tween
}

// NewCamera creates a camera with the desktop framing and a default viewport.
func NewCamera() *Camera {
	return &Camera{
		Distance:  desktopDistance,
		Height:    desktopHeight,
		viewportW: 1280,
		viewportH: 720,
	}
}

// framingFor picks the preset for a viewport width.
func framingFor(width int) framing {
	if width < mobileBreakpoint {
		return framing{mobileDistance, mobileHeight}
	}
	return framing{desktopDistance, desktopHeight}
}

// SetViewport records the viewport size and, when the width crosses the
// breakpoint, animates toward the new framing preset.
func (c *Camera) SetViewport(w, h int) {
	crossed := framingFor(w) != framingFor(c.viewportW)
	c.viewportW, c.viewportH = w, h
	if !crossed {
		return
	}
	f := framingFor(w)
	c.distTween = gween.New(float32(c.Distance), float32(f.distance), framingTweenTime, ease.InOutQuad)
	c.heightTween = gween.New(float32(c.Height), float32(f.height), framingTweenTime, ease.InOutQuad)
}

// Viewport returns the current viewport size.
func (c *Camera) Viewport() (w, h int) {
	return c.viewportW, c.viewportH
}

// Tick advances any in-flight framing transition by dt seconds.
func (c *Camera) Tick(dt float64) {
	if c.distTween != nil {
		v, done := c.distTween.Update(float32(dt))
		c.Distance = float64(v)
		if done {
			c.distTween = nil
		}
	}
	if c.heightTween != nil {
		v, done := c.heightTween.Update(float32(dt))
		c.Height = float64(v)
		if done {
			c.heightTween = nil
		}
	}
}

// Project maps a world-space point to screen coordinates. depth is the
// view-space distance used for painter sorting and size attenuation;
// ok is false for points at or behind the eye plane.
func (c *Camera) Project(p Vec3) (sx, sy, depth float64, ok bool) {
	// Eye at (0, Height, Distance) looking at the origin: translate, then
	// pitch the view so the look direction lands on -Z.
	x := p.X
	y := p.Y - c.Height
	z := p.Z - c.Distance

	pitch := math.Atan2(c.Height, c.Distance)
	sin, cos := math.Sincos(pitch)
	y, z = y*cos-z*sin, y*sin+z*cos

	// View space looks down -Z; anything at or behind the eye is invisible.
	if z >= -0.1 {
		return 0, 0, 0, false
	}
	dist := -z

	f := float64(c.viewportH) / 2 / math.Tan(cameraFOV/2)
	sx = float64(c.viewportW)/2 + x*f/dist
	sy = float64(c.viewportH)/2 - y*f/dist
	return sx, sy, dist, true
}

// ProjectedSize converts a world-space size at the given view depth into
// screen pixels.
func (c *Camera) ProjectedSize(size, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	f := float64(c.viewportH) / 2 / math.Tan(cameraFOV/2)
	return size * f / depth
}
