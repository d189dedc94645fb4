package tinsel

import "math"

// --- Morph tuning ---

// Interpolation is a first-order low-pass filter, not a fixed-duration
// tween: each tick closes a fraction of the remaining distance, so
// convergence is asymptotic with time-to-settle ≈ -ln(ε)/rate. These rates
// settle visually in roughly 3–6 s (explode) and 2–3 s (reform) at 60 Hz.
const (
	explodeLerpRate = 1.2 // per second, toward the exploded pose
	reformLerpRate  = 2.4 // per second, back to the tree; 2× for snap

	// A morphing state is considered settled when the mean per-particle
	// distance to target drops below settleEpsilon, or after settleTimeout
	// as a backstop.
	settleEpsilon = 0.05
	settleTimeout = 8.0

	// Spin is near-zero while exploded so photo cards stay easy to target.
	explodedSpinFrac = 0.02
	spinSmoothRate   = 3.0

	breatheGateRate = 2.0 // fade rate for enabling/disabling breathing
)

// Idle breathing: three independent sub-1.2 Hz sine waves with amplitudes of
// a few percent, superimposed on rendered positions only.
var breatheWaves = [3]struct{ freq, amp float64 }{
	{0.50, 0.012},
	{0.83, 0.008},
	{1.20, 0.006},
}

// MorphEngine owns the live position buffer of a ParticleField and advances
// it toward whichever target pose the current MorphState selects. It also
// owns the field's rotation accumulator and the idle-breathing clock.
//
// State transitions are driven exclusively by Explode and ReturnToTree;
// the engine only advances morphing states to their settled counterparts.
type MorphEngine struct {
	field *ParticleField
	state MorphState

	rotationSpeed float64 // configured idle spin, radians per second
	spinScale     float64 // external damping (hover), smoothed by the caller
	spin          float64 // smoothed actual spin rate
	rotation      float64 // accumulated rotation around the vertical axis

	breatheClock float64
	breatheGate  float64 // 0..1, fades breathing in/out across state changes

	stateTime float64 // time spent in the current state
}

// NewMorphEngine creates an engine owning the given field, at rest in the
// tree pose.
func NewMorphEngine(field *ParticleField, rotationSpeed float64) *MorphEngine {
	return &MorphEngine{
		field:         field,
		state:         MorphAtTree,
		rotationSpeed: rotationSpeed,
		spinScale:     1,
	}
}

// State returns the current morph state.
func (e *MorphEngine) State() MorphState {
	return e.state
}

// Field returns the live field. The composer holds this reference for
// rendering; it must never mutate the buffers.
func (e *MorphEngine) Field() *ParticleField {
	return e.field
}

// SetField replaces the field wholesale after a regeneration. The new field
// arrives reset to its tree pose; morph state is reset alongside so a fresh
// field never interpolates toward a stale target.
func (e *MorphEngine) SetField(field *ParticleField) {
	e.field = field
	e.state = MorphAtTree
	e.stateTime = 0
}

// SetRotationSpeed updates the configured idle spin rate.
func (e *MorphEngine) SetRotationSpeed(speed float64) {
	e.rotationSpeed = speed
}

// SetSpinScale applies external spin damping in [0, 1]. The interaction
// layer drops this toward 0.1 while a card is hovered.
func (e *MorphEngine) SetSpinScale(scale float64) {
	e.spinScale = clamp(scale, 0, 1)
}

// Rotation returns the accumulated rotation around the vertical axis.
func (e *MorphEngine) Rotation() float64 {
	return e.rotation
}

// IsExploded reports whether the engine is at or moving toward the exploded
// pose.
func (e *MorphEngine) IsExploded() bool {
	return e.state.Exploded()
}

// Explode starts morphing toward the exploded pose. No-op if already
// exploded or exploding. Safe to call at any time; the tick reads state
// fresh each frame, so the last trigger before a tick always wins.
func (e *MorphEngine) Explode() {
	if e.state.Exploded() {
		return
	}
	e.state = MorphToExploded
	e.stateTime = 0
}

// ReturnToTree starts morphing back toward the tree pose. No-op if already
// at or returning to the tree. Interaction state must be reset by the caller
// before triggering; the engine does not know about photo cards.
func (e *MorphEngine) ReturnToTree() {
	if !e.state.Exploded() {
		return
	}
	e.state = MorphToTree
	e.stateTime = 0
}

// Tick advances the morph by dt seconds: interpolates every live position
// toward the active target, advances rotation and breathing, and promotes
// morphing states to settled ones.
func (e *MorphEngine) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	e.stateTime += dt

	target, rate := e.field.TreePositions, reformLerpRate
	if e.state.Exploded() {
		target, rate = e.field.ExplodedPositions, explodeLerpRate
	}

	// Defensive clip: if a regeneration race ever leaves the buffers with
	// different lengths, never index past the shorter one. Self-heals on
	// the next full regeneration.
	cur := e.field.CurrentPositions
	n := len(cur)
	if len(target) < n {
		n = len(target)
	}

	k := smoothFactor(rate, dt)
	for i := 0; i < n; i++ {
		cur[i] += (target[i] - cur[i]) * k
	}

	e.advanceState(target, n)
	e.advanceSpin(dt)
	e.advanceBreathing(dt)
}

// advanceState promotes a morphing state to its settled counterpart once the
// mean distance to target drops below the threshold or the timeout fires.
func (e *MorphEngine) advanceState(target []float64, n int) {
	if e.state != MorphToExploded && e.state != MorphToTree {
		return
	}
	if e.meanTargetDistance(target, n) > settleEpsilon && e.stateTime < settleTimeout {
		return
	}
	if e.state == MorphToExploded {
		e.state = MorphAtExploded
	} else {
		e.state = MorphAtTree
	}
	e.stateTime = 0
}

// meanTargetDistance returns the mean per-particle Euclidean distance
// between the live buffer and target, over the first n components.
func (e *MorphEngine) meanTargetDistance(target []float64, n int) float64 {
	cur := e.field.CurrentPositions
	particles := n / 3
	if particles == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < particles; i++ {
		dx := target[i*3] - cur[i*3]
		dy := target[i*3+1] - cur[i*3+1]
		dz := target[i*3+2] - cur[i*3+2]
		sum += math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	return sum / float64(particles)
}

// advanceSpin smooths the spin rate toward its target and accumulates
// rotation.
func (e *MorphEngine) advanceSpin(dt float64) {
	targetSpin := e.rotationSpeed * e.spinScale
	if e.state.Exploded() {
		targetSpin *= explodedSpinFrac
	}
	e.spin += (targetSpin - e.spin) * smoothFactor(spinSmoothRate, dt)
	e.rotation += e.spin * dt
	if e.rotation > 2*math.Pi {
		e.rotation -= 2 * math.Pi
	}
}

// advanceBreathing runs the idle-breathing clock. Breathing is active only
// at rest as a tree; the gate fades it in and out so state changes never
// cause a radial jump.
func (e *MorphEngine) advanceBreathing(dt float64) {
	gateTarget := 0.0
	if e.state == MorphAtTree {
		gateTarget = 1.0
		e.breatheClock += dt
	}
	e.breatheGate += (gateTarget - e.breatheGate) * smoothFactor(breatheGateRate, dt)
}

// BreathingScale returns the cosmetic radial pulsation factor to apply to
// rendered positions this frame. It never affects the interpolation target
// or the live buffer; the composer multiplies positions by it at render
// time. Always near 1.
func (e *MorphEngine) BreathingScale() float64 {
	var s float64
	for _, w := range breatheWaves {
		s += w.amp * math.Sin(2*math.Pi*w.freq*e.breatheClock)
	}
	return 1 + e.breatheGate*s
}
