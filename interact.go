package tinsel

import "math"

// --- Hover presentation tuning ---

const (
	hoverScaleFactor = 1.5               // hovered card scale multiplier
	hoverSpinDamping = 0.10              // field spin fraction while a card has focus
	maxTilt          = 14 * math.Pi / 180 // pointer-tilt bound, radians
	hoverSmoothRate  = 10.0              // per second, tilt and scale smoothing
	spinSmoothing    = 4.0               // per second, spin damping smoothing
)

// Interactor is the single source of truth for what the user is pointing at
// or has opened. It consumes pointer and keyboard events already scoped to
// individual cards (or the background) by the composer's hit testing, runs
// the per-photo IDLE/HOVERED/ACTIVE machine, and smooths the hover
// presentation (scale, tilt, spin damping) every frame.
//
// Input modality is abstracted here: keyboard focus cycling produces the
// same HOVERED state as pointer hover, and the activate key takes the same
// path as a click.
type Interactor struct {
	store *Store
	cards *CardSet

	spinScale  float64 // smoothed, 1 at rest → hoverSpinDamping while focused
	focusIndex int     // keyboard focus slot, -1 when none
}

// NewInteractor wires the state machine to the shared store and card set.
func NewInteractor(store *Store, cards *CardSet) *Interactor {
	return &Interactor{
		store:      store,
		cards:      cards,
		spinScale:  1,
		focusIndex: -1,
	}
}

// SetCards swaps in a replacement card set after the photo collection
// changes. All interaction state is necessarily gone with the old cards.
func (in *Interactor) SetCards(cards *CardSet) {
	in.cards = cards
	in.focusIndex = -1
	in.store.ClearInteraction()
}

// SpinScale returns the smoothed spin damping factor for the morph engine.
func (in *Interactor) SpinScale() float64 {
	return in.spinScale
}

// --- Pointer events ---

// PointerEnter marks the card as hovered. Active cards are not demoted.
func (in *Interactor) PointerEnter(id string) {
	card := in.cards.ByID(id)
	if card == nil || card.State == PhotoActive {
		return
	}
	card.State = PhotoHovered
	in.store.SetHovered(id)
	in.focusIndex = in.indexOf(id)
}

// PointerMove updates the tilt target from the pointer's normalized offset
// (nx, ny in [-1, 1]) relative to the card center. Active cards no longer
// follow the pointer.
func (in *Interactor) PointerMove(id string, nx, ny float64) {
	card := in.cards.ByID(id)
	if card == nil || card.State != PhotoHovered {
		return
	}
	card.targetTiltY = clamp(nx, -1, 1) * maxTilt
	card.targetTiltX = clamp(ny, -1, 1) * -maxTilt
}

// PointerLeave returns a hovered card to idle. Active cards stay active.
func (in *Interactor) PointerLeave(id string) {
	card := in.cards.ByID(id)
	if card == nil || card.State != PhotoHovered {
		return
	}
	card.State = PhotoIdle
	card.targetTiltX, card.targetTiltY = 0, 0
	if in.store.HoveredID() == id {
		in.store.SetHovered("")
	}
}

// Activate opens the card (click or activate key). Any previously active
// card is implicitly deactivated; hover is superseded. Depending on
// configuration the card either freezes at its hover tilt or re-centers.
func (in *Interactor) Activate(id string) {
	card := in.cards.ByID(id)
	if card == nil {
		return
	}
	// Exactly one card drives visual emphasis: demote the previous active
	// card and any lingering hover.
	for _, other := range in.cards.Cards() {
		if other != card && other.State != PhotoIdle {
			other.State = PhotoIdle
			other.targetTiltX, other.targetTiltY = 0, 0
		}
	}
	card.State = PhotoActive
	if in.store.Config().ActiveCardCenters {
		card.targetTiltX, card.targetTiltY = 0, 0
	} else {
		// Freeze: make the smoothing a no-op at the current tilt.
		card.targetTiltX, card.targetTiltY = card.tiltX, card.tiltY
	}
	in.store.SetActive(id)
	in.focusIndex = in.indexOf(id)
}

// Deactivate closes the active card (background/floor click, close action,
// or escape). No-op when nothing is active.
func (in *Interactor) Deactivate() {
	card := in.cards.ByID(in.store.ActiveID())
	if card != nil {
		card.State = PhotoIdle
		card.targetTiltX, card.targetTiltY = 0, 0
	}
	in.store.SetActive("")
}

// ResetAll unconditionally clears every card to idle and drops all focus.
// The composer calls this eagerly before triggering the return morph.
func (in *Interactor) ResetAll() {
	for _, card := range in.cards.Cards() {
		card.State = PhotoIdle
		card.targetTiltX, card.targetTiltY = 0, 0
	}
	in.focusIndex = -1
	in.store.ClearInteraction()
}

// --- Keyboard ---

// FocusNext moves keyboard focus to the next card in tab order, producing
// the same hovered state as pointer hover (centered, no tilt).
func (in *Interactor) FocusNext() {
	in.cycleFocus(1)
}

// FocusPrev moves keyboard focus to the previous card in tab order.
func (in *Interactor) FocusPrev() {
	in.cycleFocus(-1)
}

func (in *Interactor) cycleFocus(dir int) {
	cards := in.cards.Cards()
	if len(cards) == 0 {
		return
	}
	if cur := in.cards.ByID(in.store.HoveredID()); cur != nil {
		in.PointerLeave(cur.ID)
	}
	in.focusIndex = ((in.focusIndex+dir)%len(cards) + len(cards)) % len(cards)
	in.PointerEnter(cards[in.focusIndex].ID)
}

// ActivateFocused opens the focused card, exactly as a click would.
func (in *Interactor) ActivateFocused() {
	if in.focusIndex < 0 || in.focusIndex >= len(in.cards.Cards()) {
		return
	}
	in.Activate(in.cards.Cards()[in.focusIndex].ID)
}

func (in *Interactor) indexOf(id string) int {
	for i, c := range in.cards.Cards() {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// --- Per-frame smoothing ---

// Tick smooths every card's hover scale and tilt toward their targets and
// updates the global spin damping. Smoothed interpolation keeps pointer
// jitter out of the presentation.
func (in *Interactor) Tick(dt float64) {
	k := smoothFactor(hoverSmoothRate, dt)
	focused := false
	for _, card := range in.cards.Cards() {
		scaleTarget := 1.0
		if card.State != PhotoIdle {
			scaleTarget = hoverScaleFactor
			focused = true
		}
		card.hoverScale += (scaleTarget - card.hoverScale) * k
		card.tiltX += (card.targetTiltX - card.tiltX) * k
		card.tiltY += (card.targetTiltY - card.tiltY) * k
	}

	spinTarget := 1.0
	if focused {
		spinTarget = hoverSpinDamping
	}
	in.spinScale += (spinTarget - in.spinScale) * smoothFactor(spinSmoothing, dt)
}
