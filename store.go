package tinsel

// StoreEvent identifies which part of the shared state changed.
type StoreEvent uint8

const (
	EventConfigChanged  StoreEvent = iota // SetConfig applied a new Config
	EventHoveredChanged                   // hovered photo id changed
	EventActiveChanged                    // active photo id changed
)

// Store is the explicit, injectable container for cross-cutting state:
// the live Config and the interaction focus (hovered/active photo ids).
// It replaces ambient global lookup: every component that needs shared
// state receives the same *Store.
//
// Change subscription is explicit listener registration; notification is
// synchronous on the frame thread. Store is not safe for concurrent use,
// matching the engine's single-threaded frame model.
type Store struct {
	config  Config
	hovered string // photo id, "" = none
	active  string // photo id, "" = none

	listeners []storeListener
	nextID    uint32
}

type storeListener struct {
	id uint32
	fn func(StoreEvent)
}

// NewStore creates a store with the given config (clamped) and no focus.
func NewStore(cfg Config) *Store {
	cfg.Clamp()
	return &Store{config: cfg}
}

// Config returns the current configuration.
func (s *Store) Config() Config {
	return s.config
}

// SetConfig replaces the configuration, clamping it first, and notifies
// listeners.
func (s *Store) SetConfig(cfg Config) {
	cfg.Clamp()
	s.config = cfg
	s.notify(EventConfigChanged)
}

// HoveredID returns the id of the photo under the pointer, or "".
func (s *Store) HoveredID() string {
	return s.hovered
}

// ActiveID returns the id of the opened photo, or "".
func (s *Store) ActiveID() string {
	return s.active
}

// SetHovered updates the hovered photo id. The id of the active photo is
// not re-hovered: activation supersedes hover.
func (s *Store) SetHovered(id string) {
	if id == s.active {
		id = ""
	}
	if id == s.hovered {
		return
	}
	s.hovered = id
	s.notify(EventHoveredChanged)
}

// SetActive updates the active (opened) photo id. At most one photo is
// active; setting a new one implicitly replaces the previous, and any hover
// is cleared so exactly one focus indicator drives visual emphasis.
func (s *Store) SetActive(id string) {
	if s.hovered != "" {
		s.hovered = ""
		s.notify(EventHoveredChanged)
	}
	if id == s.active {
		return
	}
	s.active = id
	s.notify(EventActiveChanged)
}

// ClearInteraction resets both hovered and active to none. Called eagerly
// before the morph engine reverses so no focus dangles on a card that is
// about to vanish into the tree.
func (s *Store) ClearInteraction() {
	s.SetActive("")
	s.SetHovered("")
}

// Subscription identifies a registered listener so it can be removed.
type Subscription struct {
	id    uint32
	store *Store
}

// Subscribe registers fn to be called synchronously on every state change.
func (s *Store) Subscribe(fn func(StoreEvent)) Subscription {
	s.nextID++
	s.listeners = append(s.listeners, storeListener{id: s.nextID, fn: fn})
	return Subscription{id: s.nextID, store: s}
}

// Remove unregisters this listener so it no longer fires.
func (sub Subscription) Remove() {
	if sub.store == nil {
		return
	}
	ls := sub.store.listeners
	for i := range ls {
		if ls[i].id == sub.id {
			copy(ls[i:], ls[i+1:])
			ls[len(ls)-1] = storeListener{}
			sub.store.listeners = ls[:len(ls)-1]
			return
		}
	}
}

func (s *Store) notify(ev StoreEvent) {
	for _, l := range s.listeners {
		l.fn(ev)
	}
}
