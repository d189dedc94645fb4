package tinsel

import (
	"math"
	"math/rand/v2"
)

// --- Snow ---

const (
	snowPoolMax    = 900  // full pool at SnowDensity = 1
	snowAreaRadius = 40.0 // horizontal wraparound extent
	snowTopY       = 28.0
	snowFloorY     = -14.0
)

// Snowflake is one pooled flake. Pos and Size are read by the composer.
type Snowflake struct {
	Pos  Vec3
	Size float64

	speedScale float64 // per-flake fall speed variation
	swayPhase  float64
	swayAmp    float64
}

// SnowSystem animates falling snow: downward drift with lateral wind sway
// and vertical wraparound. The pool is preallocated at the maximum density;
// SnowDensity selects how large a prefix is live.
type SnowSystem struct {
	flakes []Snowflake
	live   int
	speed  float64
	wind   float64
	clock  float64
	rng    *rand.Rand
}

// NewSnowSystem creates a snow field from the config. rng may be nil for an
// unseeded source.
func NewSnowSystem(cfg Config, rng *rand.Rand) *SnowSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &SnowSystem{
		flakes: make([]Snowflake, snowPoolMax),
		rng:    rng,
	}
	for i := range s.flakes {
		s.respawn(&s.flakes[i], true)
	}
	s.Configure(cfg)
	return s
}

// Configure applies snow density, speed, and wind from the config.
func (s *SnowSystem) Configure(cfg Config) {
	s.live = int(cfg.SnowDensity * snowPoolMax)
	s.speed = cfg.SnowSpeed
	s.wind = cfg.WindStrength
}

// Flakes returns the live flakes. The returned slice MUST NOT be mutated.
func (s *SnowSystem) Flakes() []Snowflake {
	return s.flakes[:s.live]
}

// respawn places a flake somewhere in the volume (anywhere when seeding the
// pool, at the top band after a wraparound).
func (s *SnowSystem) respawn(f *Snowflake, anywhere bool) {
	f.Pos.X = (s.rng.Float64() - 0.5) * 2 * snowAreaRadius
	f.Pos.Z = (s.rng.Float64() - 0.5) * 2 * snowAreaRadius
	if anywhere {
		f.Pos.Y = snowFloorY + s.rng.Float64()*(snowTopY-snowFloorY)
	} else {
		f.Pos.Y = snowTopY - s.rng.Float64()*2
	}
	f.speedScale = 0.6 + s.rng.Float64()*0.8
	f.swayPhase = s.rng.Float64() * 2 * math.Pi
	f.swayAmp = 0.3 + s.rng.Float64()*0.7
	f.Size = 0.08 + s.rng.Float64()*0.1
}

// Tick advances the live flakes by dt seconds.
func (s *SnowSystem) Tick(dt float64) {
	s.clock += dt
	for i := 0; i < s.live; i++ {
		f := &s.flakes[i]
		f.Pos.Y -= s.speed * f.speedScale * dt
		f.Pos.X += (s.wind + math.Sin(s.clock+f.swayPhase)*f.swayAmp) * dt
		f.Pos.Z += math.Cos(s.clock*0.7+f.swayPhase) * f.swayAmp * 0.5 * dt

		if f.Pos.Y < snowFloorY {
			s.respawn(f, false)
		}
		// Lateral wraparound keeps wind from emptying the volume.
		if f.Pos.X > snowAreaRadius {
			f.Pos.X -= 2 * snowAreaRadius
		} else if f.Pos.X < -snowAreaRadius {
			f.Pos.X += 2 * snowAreaRadius
		}
	}
}

// --- Magic dust ---

const (
	dustPoolSize = 220
	dustBaseY    = TreeBaseY + 1
	dustRiseMin  = 1.2
	dustRiseMax  = 2.8
	dustLifeMin  = 3.0
	dustLifeMax  = 7.0
)

// DustMote is one pooled mote. Pos, Size, and Alpha are read by the
// composer; Alpha ramps in at birth and out toward death.
type DustMote struct {
	Pos  Vec3
	Size float64

	angle     float64
	radius    float64
	spinSpeed float64
	riseSpeed float64
	life      float64
	maxLife   float64
	phase     float64
}

// Alpha returns the mote's fade factor in [0, 1] over its lifecycle.
func (m *DustMote) Alpha() float64 {
	if m.maxLife <= 0 || m.life <= 0 {
		return 0
	}
	t := 1 - m.life/m.maxLife
	return clamp(4*t*(1-t), 0, 1)
}

// DustSystem animates ambient magic dust: motes spiral upward around the
// tree with sinusoidal turbulence and respawn at the base when their life
// runs out. While inactive (field exploded) dead motes stay dead, so the
// effect drains away instead of cutting off.
type DustSystem struct {
	motes  []DustMote
	active bool
	clock  float64
	rng    *rand.Rand
}

// NewDustSystem creates the dust pool, initially active.
func NewDustSystem(rng *rand.Rand) *DustSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	d := &DustSystem{
		motes:  make([]DustMote, dustPoolSize),
		active: true,
		rng:    rng,
	}
	for i := range d.motes {
		d.respawn(&d.motes[i])
		// Stagger initial lifecycles so the pool doesn't pulse in sync.
		d.motes[i].life = d.rng.Float64() * d.motes[i].maxLife
	}
	return d
}

// SetActive gates respawning. Ancillary to the morph state: dust is live
// while the tree is assembled and drains out once it explodes.
func (d *DustSystem) SetActive(active bool) {
	d.active = active
}

// Motes returns the pool. The returned slice MUST NOT be mutated. Motes
// with Alpha() == 0 are invisible and should be skipped.
func (d *DustSystem) Motes() []DustMote {
	return d.motes
}

func (d *DustSystem) respawn(m *DustMote) {
	m.angle = d.rng.Float64() * 2 * math.Pi
	m.radius = 2 + d.rng.Float64()*(baseRadius+2)
	m.spinSpeed = 0.4 + d.rng.Float64()*0.8
	m.riseSpeed = dustRiseMin + d.rng.Float64()*(dustRiseMax-dustRiseMin)
	m.maxLife = dustLifeMin + d.rng.Float64()*(dustLifeMax-dustLifeMin)
	m.life = m.maxLife
	m.phase = d.rng.Float64() * 2 * math.Pi
	m.Size = 0.06 + d.rng.Float64()*0.06
	m.Pos = Vec3{math.Cos(m.angle) * m.radius, dustBaseY, math.Sin(m.angle) * m.radius}
}

// Tick advances the motes by dt seconds: spiral ascent plus turbulence plus
// lifecycle respawn.
func (d *DustSystem) Tick(dt float64) {
	d.clock += dt
	for i := range d.motes {
		m := &d.motes[i]
		if m.life <= 0 {
			if d.active {
				d.respawn(m)
			}
			continue
		}
		m.life -= dt
		m.angle += m.spinSpeed * dt

		age := 1 - m.life/m.maxLife
		turb := math.Sin(d.clock*1.3+m.phase) * 0.4
		r := m.radius * (1 - 0.3*age) // drift inward as motes rise
		m.Pos.X = math.Cos(m.angle)*r + turb
		m.Pos.Z = math.Sin(m.angle)*r + math.Cos(d.clock*1.1+m.phase)*0.4
		m.Pos.Y += m.riseSpeed * dt
	}
}
