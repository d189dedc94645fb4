// Package tinsel is a particle choreography engine for [Ebitengine]: a
// procedurally generated Christmas tree of tens of thousands of particles
// that explodes into a navigable cloud of photo cards and reforms on demand.
//
// # Quick start
//
// Build a [Composer] from a [Config] and a photo collection, then drive it
// from an [ebiten.Game]:
//
//	cfg := tinsel.DefaultConfig()
//	composer := tinsel.NewComposer(cfg, photos, nil)
//	composer.EnableHardwareInput()
//	renderer := tinsel.NewRenderer()
//
//	type Game struct{}
//
//	func (g *Game) Update() error              { composer.Update(); return nil }
//	func (g *Game) Draw(screen *ebiten.Image)  { renderer.Draw(screen, composer) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Architecture
//
// [Generate] produces a [ParticleField]: five parallel buffers holding every
// particle's tree pose, exploded pose, live position, color, and size. The
// [MorphEngine] owns the live buffer and interpolates it toward whichever
// pose the current [MorphState] selects, along with field rotation and idle
// breathing. A [CardSet] places photo cards on a Fibonacci sphere and
// animates their scale with the explosion; the [Interactor] runs the
// per-card hover/active state machine. The [Composer] ties it all together,
// routes input, and composes frames; the [Renderer] is the only component
// that touches the GPU.
//
// Shared state (configuration and interaction focus) lives in an explicit
// [Store] passed to every component, with synchronous change subscription
// via [Store.Subscribe]; there are no ambient globals.
//
// Everything except photo texture loading runs single-threaded on the frame
// tick. Loads are fire-and-forget per card: results are queued and applied
// on the next tick, failures leave the card textureless, and results for
// replaced cards are discarded.
//
// [Ebitengine]: https://ebitengine.org
package tinsel
