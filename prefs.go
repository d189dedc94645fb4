package tinsel

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Preferences are the only values persisted across sessions: the last
// chosen tree color and particle budget. Morph and interaction state are
// never persisted; every session starts assembled with nothing focused.
type Preferences struct {
	TreeColor      string `yaml:"treeColor"`
	ParticleBudget int    `yaml:"particleBudget"`
}

// DefaultPreferences mirrors DefaultConfig's values.
func DefaultPreferences() Preferences {
	cfg := DefaultConfig()
	return Preferences{
		TreeColor:      cfg.TreeColor,
		ParticleBudget: cfg.ParticleBudget,
	}
}

const (
	prefsObject   = "tinsel"
	prefsProperty = "preferences"
)

// PrefsManager loads and saves Preferences through a cross-platform gdata
// store. A nil manager runs in degraded, memory-only mode: loads return
// defaults and saves succeed silently without persisting.
type PrefsManager struct {
	m *gdata.Manager
}

// OpenPrefs opens the preference store for the given app name. On failure
// a degraded manager is returned along with the error; callers can keep
// running without persistence.
func OpenPrefs(appName string) (*PrefsManager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &PrefsManager{}, fmt.Errorf("open preference store: %w", err)
	}
	return &PrefsManager{m: m}, nil
}

// NewPrefsManager wraps an existing gdata manager, which may be nil for
// degraded mode.
func NewPrefsManager(m *gdata.Manager) *PrefsManager {
	return &PrefsManager{m: m}
}

// Load returns the persisted preferences. Missing, unreadable, corrupt, or
// out-of-range data silently falls back to defaults; Load never fails.
func (p *PrefsManager) Load() Preferences {
	prefs := DefaultPreferences()
	if p.m == nil || !p.m.ObjectPropExists(prefsObject, prefsProperty) {
		return prefs
	}
	data, err := p.m.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		log.Printf("[tinsel] load preferences: %v (using defaults)", err)
		return DefaultPreferences()
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		log.Printf("[tinsel] decode preferences: %v (using defaults)", err)
		return DefaultPreferences()
	}
	prefs.sanitize()
	return prefs
}

// Save persists the preferences. In degraded mode it returns nil without
// writing.
func (p *PrefsManager) Save(prefs Preferences) error {
	if p.m == nil {
		return nil
	}
	prefs.sanitize()
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := p.m.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// sanitize discards malformed restored values field by field, keeping the
// rest.
func (p *Preferences) sanitize() {
	if _, err := ParseHexColor(p.TreeColor); err != nil {
		p.TreeColor = DefaultPreferences().TreeColor
	}
	p.ParticleBudget = clampInt(p.ParticleBudget, MinParticleBudget, MaxParticleBudget)
}

// Apply copies the preferences onto a config.
func (p Preferences) Apply(cfg *Config) {
	cfg.TreeColor = p.TreeColor
	cfg.ParticleBudget = p.ParticleBudget
}

// Capture extracts the persistable fields from a config.
func Capture(cfg Config) Preferences {
	return Preferences{
		TreeColor:      cfg.TreeColor,
		ParticleBudget: cfg.ParticleBudget,
	}
}
