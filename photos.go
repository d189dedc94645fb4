package tinsel

import (
	"image"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Photo is an externally supplied photo reference. The engine only uses URL
// for texture loading and ID for interaction-state keying.
type Photo struct {
	ID  string
	URL string
}

const (
	cardShowDuration = 0.9 // seconds, scale 0 → display size on explode
	cardHideDuration = 0.5 // seconds, back to 0 on return

	goldenAngle = 2.399963229728653 // π(3−√5)
)

// PhotoCard is one photo's presence in the scene: a fixed slot on a
// Fibonacci-sphere distribution, a scale animated with the explosion state,
// and lazily loaded image content.
type PhotoCard struct {
	ID  string
	URL string

	// BasePosition is the card's fixed slot on the distribution sphere.
	BasePosition Vec3
	// Rotation is the yaw that faces the card away from the sphere center.
	Rotation float64

	// CurrentScale animates 0 → display size when exploded and back to 0
	// when not. The card is skipped entirely at scale 0.
	CurrentScale float64

	// State is the card's interaction state. Owned by the Interactor.
	State PhotoState

	// Image is the decoded texture, nil until its lazy load completes.
	// A failed load leaves it nil; the card renders as an inert placeholder.
	Image image.Image

	// Hover presentation, smoothed per frame by the Interactor.
	hoverScale               float64
	tiltX, tiltY             float64
	targetTiltX, targetTiltY float64

	scaleTween  *gween.Tween
	tweenTarget float64

	load *LoadHandle
	// loadFailed latches a failed fetch so the loader never retries the
	// same broken URL. Cleared when the photo collection is replaced.
	loadFailed bool
}

// EffectiveScale is the rendered scale: lifecycle scale times the smoothed
// hover multiplier.
func (c *PhotoCard) EffectiveScale() float64 {
	return c.CurrentScale * c.hoverScale
}

// Tilt returns the smoothed 3D tilt angles (radians) from pointer position.
func (c *PhotoCard) Tilt() (x, y float64) {
	return c.tiltX, c.tiltY
}

// retween points the scale tween at a new target from the current value.
func (c *PhotoCard) retween(target float64) {
	if target == c.tweenTarget && c.scaleTween != nil {
		return
	}
	dur := float32(cardShowDuration)
	fn := ease.OutBack
	if target < c.CurrentScale {
		dur = float32(cardHideDuration)
		fn = ease.InCubic
	}
	c.scaleTween = gween.New(float32(c.CurrentScale), float32(target), dur, fn)
	c.tweenTarget = target
}

// CardSet owns every photo card, their sphere placement, and their shared
// visibility lifecycle. Replacing the photo collection replaces all cards
// and bumps the generation so in-flight texture loads for removed cards are
// discarded rather than applied to reused slots.
type CardSet struct {
	cards        []*PhotoCard
	byID         map[string]*PhotoCard
	radius       float64
	displayScale float64
	generation   uint64
	shown        bool
}

// NewCardSet places the photos on a Fibonacci sphere of the given radius.
// Cards start hidden (scale 0); call SetShown when the explosion settles
// them into view.
func NewCardSet(photos []Photo, radius, displayScale float64) *CardSet {
	s := &CardSet{
		radius:       radius,
		displayScale: displayScale,
	}
	s.build(photos)
	return s
}

func (s *CardSet) build(photos []Photo) {
	s.generation++
	s.cards = make([]*PhotoCard, 0, len(photos))
	s.byID = make(map[string]*PhotoCard, len(photos))
	n := len(photos)
	for i, p := range photos {
		pos := fibonacciPoint(i, n, s.radius)
		card := &PhotoCard{
			ID:           p.ID,
			URL:          p.URL,
			BasePosition: pos,
			Rotation:     math.Atan2(pos.X, pos.Z),
			hoverScale:   1,
		}
		card.retween(0)
		s.cards = append(s.cards, card)
		s.byID[p.ID] = card
	}
}

// fibonacciPoint returns slot i of n on a sphere of the given radius using
// the golden-angle spiral, giving a near-uniform distribution for any n.
func fibonacciPoint(i, n int, radius float64) Vec3 {
	if n <= 1 {
		return Vec3{0, 0, radius}
	}
	y := 1 - 2*(float64(i)+0.5)/float64(n)
	r := math.Sqrt(1 - y*y)
	a := float64(i) * goldenAngle
	return Vec3{
		X: math.Cos(a) * r * radius,
		Y: y * radius,
		Z: math.Sin(a) * r * radius,
	}
}

// Cards returns the card list. The returned slice MUST NOT be mutated by
// the caller.
func (s *CardSet) Cards() []*PhotoCard {
	return s.cards
}

// ByID returns the card with the given id, or nil.
func (s *CardSet) ByID(id string) *PhotoCard {
	return s.byID[id]
}

// Generation identifies the current card collection. Texture load results
// carrying a stale generation are discarded.
func (s *CardSet) Generation() uint64 {
	return s.generation
}

// SetShown animates every card toward its display size (true) or back to
// zero (false). Tied to the explosion state by the composer.
func (s *CardSet) SetShown(shown bool) {
	if shown == s.shown {
		return
	}
	s.shown = shown
	target := 0.0
	if shown {
		target = s.displayScale
	}
	for _, c := range s.cards {
		c.retween(target)
	}
}

// SetDisplayScale updates the full-size card scale; applied on the next
// show transition (and immediately if cards are currently shown).
func (s *CardSet) SetDisplayScale(scale float64) {
	s.displayScale = scale
	if s.shown {
		for _, c := range s.cards {
			c.retween(scale)
		}
	}
}

// SetPhotos replaces the whole collection. In-flight texture loads for the
// old cards are cancelled and their late results discarded by generation.
func (s *CardSet) SetPhotos(photos []Photo) {
	for _, c := range s.cards {
		if c.load != nil {
			c.load.Cancel()
		}
	}
	s.build(photos)
	if s.shown {
		for _, c := range s.cards {
			c.retween(s.displayScale)
		}
	}
}

// Tick advances every card's scale tween by dt seconds.
func (s *CardSet) Tick(dt float64) {
	for _, c := range s.cards {
		if c.scaleTween == nil {
			continue
		}
		v, done := c.scaleTween.Update(float32(dt))
		c.CurrentScale = float64(v)
		if done {
			c.scaleTween = nil
			c.CurrentScale = c.tweenTarget
		}
	}
}
