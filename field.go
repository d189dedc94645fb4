package tinsel

// ParticleField is the central entity: five parallel buffers describing one
// generation of particles. TreePositions, ExplodedPositions, Colors, and
// Sizes are immutable once generated; CurrentPositions is mutated in place
// by the morph engine every frame and is the only buffer that changes.
//
// All five buffers are sized from the same count and are always allocated
// together. A config change never resizes a field in place; it replaces the
// whole field, so the buffers can never disagree on length.
type ParticleField struct {
	// Count is the particle count, fixed for the lifetime of the field.
	Count int
	// TreePositions and ExplodedPositions hold the two target poses as
	// flat xyz triplets (length Count*3).
	TreePositions     []float64
	ExplodedPositions []float64
	// CurrentPositions is the live buffer the renderer reads (length Count*3).
	// Exactly one writer per frame: MorphEngine.Tick.
	CurrentPositions []float64
	// Colors holds flat rgb triplets (length Count*3). Components may exceed
	// 1.0 for HDR glow; the renderer tone-maps.
	Colors []float64
	// Sizes holds one scalar per particle (length Count).
	Sizes []float64
}

// newParticleField allocates all five buffers for count particles.
func newParticleField(count int) *ParticleField {
	return &ParticleField{
		Count:             count,
		TreePositions:     make([]float64, count*3),
		ExplodedPositions: make([]float64, count*3),
		CurrentPositions:  make([]float64, count*3),
		Colors:            make([]float64, count*3),
		Sizes:             make([]float64, count),
	}
}

// setTree writes the tree-pose position of particle i.
func (f *ParticleField) setTree(i int, p Vec3) {
	f.TreePositions[i*3] = p.X
	f.TreePositions[i*3+1] = p.Y
	f.TreePositions[i*3+2] = p.Z
}

// setExploded writes the exploded-pose position of particle i.
func (f *ParticleField) setExploded(i int, p Vec3) {
	f.ExplodedPositions[i*3] = p.X
	f.ExplodedPositions[i*3+1] = p.Y
	f.ExplodedPositions[i*3+2] = p.Z
}

// setColor writes the color of particle i.
func (f *ParticleField) setColor(i int, c Color) {
	f.Colors[i*3] = c.R
	f.Colors[i*3+1] = c.G
	f.Colors[i*3+2] = c.B
}

// TreeAt returns the tree-pose position of particle i.
func (f *ParticleField) TreeAt(i int) Vec3 {
	return Vec3{f.TreePositions[i*3], f.TreePositions[i*3+1], f.TreePositions[i*3+2]}
}

// ExplodedAt returns the exploded-pose position of particle i.
func (f *ParticleField) ExplodedAt(i int) Vec3 {
	return Vec3{f.ExplodedPositions[i*3], f.ExplodedPositions[i*3+1], f.ExplodedPositions[i*3+2]}
}

// CurrentAt returns the live position of particle i.
func (f *ParticleField) CurrentAt(i int) Vec3 {
	return Vec3{f.CurrentPositions[i*3], f.CurrentPositions[i*3+1], f.CurrentPositions[i*3+2]}
}

// ColorAt returns the color of particle i with A = 1.
func (f *ParticleField) ColorAt(i int) Color {
	return Color{f.Colors[i*3], f.Colors[i*3+1], f.Colors[i*3+2], 1}
}

// resetToTree copies the tree pose into the live buffer. Called once at
// generation so a fresh field starts assembled.
func (f *ParticleField) resetToTree() {
	copy(f.CurrentPositions, f.TreePositions)
}
