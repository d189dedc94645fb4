package tinsel

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// cardHitThreshold is the fraction of display scale below which a card is
// not hit-testable (still growing in or shrinking out).
const cardHitThreshold = 0.2

// cardSphereScale places the photo sphere inside the exploded shell band.
const cardSphereScale = 0.6

// Composer assembles the particle field, ambient systems, and photo cards
// into frames, and routes input to the interaction layer. It owns no
// entity's authoritative state: the morph engine owns positions, the
// interactor owns photo states, the store owns config and focus. The
// composer is a read-only composition pass plus an event router, and the
// public trigger surface for external UI.
type Composer struct {
	store      *Store
	engine     *MorphEngine
	cards      *CardSet
	interactor *Interactor
	snow       *SnowSystem
	dust       *DustSystem
	camera     *Camera
	loader     *TextureLoader

	lastCfg Config
	rng     *rand.Rand

	// hiddenFn reports whether the host view is hidden; the frame loop
	// pauses entirely while it returns true. nil means never hidden.
	hiddenFn func() bool

	// hardwareInput gates reading the real mouse/keyboard. Off by default
	// so headless callers drive input through the inject queue alone.
	hardwareInput bool

	injectQueue []pointerEvent

	pointer struct {
		down     bool
		downCard string // card id at press, "" = background
		hovered  string // card id under the pointer, "" = none
		lastX    float64
		lastY    float64
	}

	frame Frame
}

// NewComposer builds the full experience from a config and photo collection.
// rng may be nil for non-deterministic generation.
func NewComposer(cfg Config, photos []Photo, rng *rand.Rand) *Composer {
	cfg.Clamp()
	store := NewStore(cfg)
	field := Generate(cfg, rng)
	cards := NewCardSet(photos, cardSphereRadius(cfg), cfg.PhotoScale)

	c := &Composer{
		store:      store,
		engine:     NewMorphEngine(field, cfg.RotationSpeed),
		cards:      cards,
		interactor: NewInteractor(store, cards),
		snow:       NewSnowSystem(cfg, rng),
		dust:       NewDustSystem(rng),
		camera:     NewCamera(),
		loader:     NewTextureLoader(nil),
		lastCfg:    cfg,
		rng:        rng,
	}
	store.Subscribe(c.onStoreEvent)
	return c
}

func cardSphereRadius(cfg Config) float64 {
	return ShellFloor + cfg.ExplosionRadius*cardSphereScale
}

// Store returns the shared state container.
func (c *Composer) Store() *Store {
	return c.store
}

// Engine returns the morph engine.
func (c *Composer) Engine() *MorphEngine {
	return c.engine
}

// Cards returns the current card set.
func (c *Composer) Cards() *CardSet {
	return c.cards
}

// Camera returns the camera.
func (c *Composer) Camera() *Camera {
	return c.camera
}

// SetVisibilityProbe installs the host's hidden-view check. While it
// returns true, Update becomes a no-op: ticks are skipped rather than
// accumulated, so resuming never causes a corrective jump.
func (c *Composer) SetVisibilityProbe(fn func() bool) {
	c.hiddenFn = fn
}

// EnableHardwareInput turns on reading the real mouse and keyboard each
// frame. Leave off for headless or scripted use.
func (c *Composer) EnableHardwareInput() {
	c.hardwareInput = true
}

// --- Trigger surface for external UI ---

// Explode starts the tree's dispersal into the memory cloud.
func (c *Composer) Explode() {
	c.engine.Explode()
}

// ReturnToTree reforms the tree. All photo interaction state is eagerly
// cleared first, so no focus dangles on a card about to vanish.
func (c *Composer) ReturnToTree() {
	c.interactor.ResetAll()
	c.engine.ReturnToTree()
}

// IsExploded reports whether the field is at or moving toward the cloud.
func (c *Composer) IsExploded() bool {
	return c.engine.IsExploded()
}

// SetActive opens the given photo, or closes the open one when id is "".
func (c *Composer) SetActive(id string) {
	if id == "" {
		c.interactor.Deactivate()
		return
	}
	c.interactor.Activate(id)
}

// SetHovered applies a hover-equivalent focus, or clears it when id is "".
func (c *Composer) SetHovered(id string) {
	if id == "" {
		if prev := c.store.HoveredID(); prev != "" {
			c.interactor.PointerLeave(prev)
		}
		return
	}
	c.interactor.PointerEnter(id)
}

// SetConfig applies a new configuration through the store. Field-affecting
// changes (budget, tree color) regenerate the particle field wholesale.
func (c *Composer) SetConfig(cfg Config) {
	c.store.SetConfig(cfg)
}

// SetPhotos replaces the photo collection. In-flight texture loads for
// removed cards are cancelled and stale results discarded.
func (c *Composer) SetPhotos(photos []Photo) {
	c.cards.SetPhotos(photos)
	c.interactor.SetCards(c.cards)
}

// onStoreEvent reacts to config changes; hover/active changes need no
// composer-side work.
func (c *Composer) onStoreEvent(ev StoreEvent) {
	if ev != EventConfigChanged {
		return
	}
	cfg := c.store.Config()
	c.engine.SetRotationSpeed(cfg.RotationSpeed)
	c.snow.Configure(cfg)
	c.cards.SetDisplayScale(cfg.PhotoScale)
	if regenerates(c.lastCfg, cfg) {
		c.engine.SetField(Generate(cfg, c.rng))
	}
	c.lastCfg = cfg
}

// --- Frame loop ---

// Update advances the whole experience by one tick. Within one frame,
// input-driven state transitions are applied before the morph tick reads
// the state, so a trigger and its first visible step are at most one frame
// apart.
func (c *Composer) Update() {
	if c.hiddenFn != nil && c.hiddenFn() {
		return
	}
	dt := 1.0 / float64(ebiten.TPS())

	c.processInput()

	c.loader.Apply(c.cards)
	if c.engine.IsExploded() {
		c.loader.StartLoads(c.cards)
	}

	c.interactor.Tick(dt)
	c.engine.SetSpinScale(c.interactor.SpinScale())
	c.engine.Tick(dt)

	c.cards.SetShown(c.engine.IsExploded())
	c.cards.Tick(dt)

	// The background dim fades here with the other per-tick smoothing;
	// Compose only reads it.
	dimTarget := 0.0
	if c.store.ActiveID() != "" {
		dimTarget = activeDimAmount
	}
	c.frame.dim += (dimTarget - c.frame.dim) * smoothFactor(dimSmoothRate, dt)

	c.dust.SetActive(!c.engine.IsExploded())
	c.snow.Tick(dt)
	c.dust.Tick(dt)

	c.camera.Tick(dt)
}

// processInput drains injected events, then reads hardware input when
// enabled. Injected events run first so scripted input is deterministic.
func (c *Composer) processInput() {
	for _, ev := range c.injectQueue {
		c.processPointer(ev.x, ev.y, ev.pressed)
	}
	c.injectQueue = c.injectQueue[:0]

	if !c.hardwareInput {
		return
	}

	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	c.processPointer(float64(mx), float64(my), pressed)

	// Keyboard goes through the same state machine as the pointer.
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && c.engine.IsExploded() {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			c.interactor.FocusPrev()
		} else {
			c.interactor.FocusNext()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if c.engine.IsExploded() {
			c.interactor.ActivateFocused()
		} else {
			c.Explode()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		c.interactor.Deactivate()
	}
}

// processPointer runs hover diffing, tilt updates, and click detection for
// one pointer sample in screen coordinates.
func (c *Composer) processPointer(x, y float64, pressed bool) {
	hit := c.cardAt(x, y)

	if hit != c.pointer.hovered {
		if c.pointer.hovered != "" {
			c.interactor.PointerLeave(c.pointer.hovered)
		}
		if hit != "" {
			c.interactor.PointerEnter(hit)
		}
		c.pointer.hovered = hit
	}

	if hit != "" {
		if nx, ny, ok := c.cardOffset(hit, x, y); ok {
			c.interactor.PointerMove(hit, nx, ny)
		}
	}

	switch {
	case pressed && !c.pointer.down:
		c.pointer.down = true
		c.pointer.downCard = hit
	case !pressed && c.pointer.down:
		c.pointer.down = false
		if hit == c.pointer.downCard {
			c.routeClick(hit)
		}
	}
	c.pointer.lastX, c.pointer.lastY = x, y
}

// routeClick applies the composer's click policy: while the tree is intact
// any click explodes it; once exploded, photo clicks take priority and a
// background click only closes the open photo.
func (c *Composer) routeClick(cardID string) {
	if !c.engine.IsExploded() {
		c.Explode()
		return
	}
	if cardID != "" {
		c.interactor.Activate(cardID)
		return
	}
	c.interactor.Deactivate()
}

// cardAt returns the id of the topmost hit-testable card under the screen
// point, or "". Cards are circular targets sized by their projected scale.
func (c *Composer) cardAt(x, y float64) string {
	if !c.engine.IsExploded() {
		return ""
	}
	bestID := ""
	bestDepth := 0.0
	for _, card := range c.cards.Cards() {
		if card.CurrentScale < c.store.Config().PhotoScale*cardHitThreshold {
			continue
		}
		sx, sy, depth, ok := c.cardScreenPos(card)
		if !ok {
			continue
		}
		r := c.camera.ProjectedSize(card.EffectiveScale()/2, depth)
		dx, dy := x-sx, y-sy
		if dx*dx+dy*dy > r*r {
			continue
		}
		if bestID == "" || depth < bestDepth {
			bestID = card.ID
			bestDepth = depth
		}
	}
	return bestID
}

// cardOffset returns the pointer's normalized offset in [-1, 1] from the
// card center, for tilt.
func (c *Composer) cardOffset(id string, x, y float64) (nx, ny float64, ok bool) {
	card := c.cards.ByID(id)
	if card == nil {
		return 0, 0, false
	}
	sx, sy, depth, visible := c.cardScreenPos(card)
	if !visible {
		return 0, 0, false
	}
	r := c.camera.ProjectedSize(card.EffectiveScale()/2, depth)
	if r <= 0 {
		return 0, 0, false
	}
	return clamp((x-sx)/r, -1, 1), clamp((y-sy)/r, -1, 1), true
}

// cardScreenPos projects a card's world position (its sphere slot rotated
// with the field) to screen space.
func (c *Composer) cardScreenPos(card *PhotoCard) (sx, sy, depth float64, ok bool) {
	world := card.BasePosition.RotatedY(c.engine.Rotation())
	return c.camera.Project(world)
}
