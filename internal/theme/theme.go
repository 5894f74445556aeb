// theme — контейнер состояния темы и вывод палитры из «нейросостояния».
package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SonGokuFan1996/NeuroNet/internal/state"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownState — нейросостояние вне закрытого набора. Транспорт: 400.
var ErrUnknownState = errors.New("unknown neuro state")

// NeuroState — состояние пользователя, задающее seed-цвет темы.
type NeuroState string

const (
	StateDefault         NeuroState = "DEFAULT"
	StateOverstimulated  NeuroState = "OVERSTIMULATED"
	StateUnderstimulated NeuroState = "UNDERSTIMULATED"
	StateAnxiety         NeuroState = "ANXIETY"
	StateFocus           NeuroState = "FOCUS"
	StateMeltdown        NeuroState = "MELTDOWN"
)

type stateInfo struct {
	label       string
	seed        string
	description string
}

var states = map[NeuroState]stateInfo{
	StateDefault:         {"NeuroNet Standard", "#6750A4", "The classic look."},
	StateOverstimulated:  {"Sensory Soothe", "#546E7A", "Deep, muted blue-greys to reduce visual noise."},
	StateUnderstimulated: {"Dopamine Boost", "#FF6D00", "High-energy orange to wake up the brain."},
	StateAnxiety:         {"Grounding", "#2E7D32", "Natural forest tones to feel safe and stable."},
	StateFocus:           {"Hyperfocus", "#283593", "Deep indigo for minimizing distraction."},
	StateMeltdown:        {"Safe Space", "#AD1457", "Warm, comforting rose tones for recovery."},
}

// NeuroStates — все состояния в порядке показа.
func NeuroStates() []NeuroState {
	return []NeuroState{
		StateDefault, StateOverstimulated, StateUnderstimulated,
		StateAnxiety, StateFocus, StateMeltdown,
	}
}

// ParseNeuroState разбирает имя состояния без учёта регистра.
func ParseNeuroState(s string) (NeuroState, error) {
	ns := NeuroState(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := states[ns]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownState, s)
	}

	return ns, nil
}

func (s NeuroState) Label() string       { return s.info().label }
func (s NeuroState) Description() string { return s.info().description }
func (s NeuroState) SeedHex() string     { return s.info().seed }

// Seed — seed-цвет состояния; неизвестное состояние даёт seed DEFAULT.
func (s NeuroState) Seed() colorful.Color {
	return mustHex(s.info().seed)
}

func (s NeuroState) info() stateInfo {
	if i, ok := states[s]; ok {
		return i
	}

	return states[StateDefault]
}

// ThemeState — снапшот темы.
type ThemeState struct {
	Selected       NeuroState `json:"selected_state"`
	IsDarkMode     bool       `json:"is_dark_mode"`
	IsHighContrast bool       `json:"is_high_contrast"`
	IsQuietMode    bool       `json:"is_quiet_mode"`
}

// Container — контейнер состояния темы. Отказов нет, хранения нет.
type Container struct {
	store *state.Store[ThemeState]
}

func New() *Container {
	return &Container{store: state.New(ThemeState{Selected: StateDefault})}
}

func (c *Container) State() ThemeState {
	return c.store.Get()
}

func (c *Container) Subscribe() (<-chan ThemeState, func()) {
	return c.store.Subscribe()
}

func (c *Container) Close() {
	c.store.Close()
}

// Scheme — схема для текущего снапшота.
func (c *Container) Scheme() Scheme {
	return DeriveScheme(c.store.Get())
}

// SetNeuroState выбирает состояние; неизвестное отвергается.
func (c *Container) SetNeuroState(s NeuroState) error {
	if _, ok := states[s]; !ok {
		return fmt.Errorf("theme.SetNeuroState: %w: %q", ErrUnknownState, s)
	}

	c.store.Update(func(t ThemeState) ThemeState {
		t.Selected = s
		return t
	})

	return nil
}

func (c *Container) ToggleDarkMode(enabled bool) {
	c.store.Update(func(t ThemeState) ThemeState {
		t.IsDarkMode = enabled
		return t
	})
}

func (c *Container) ToggleHighContrast(enabled bool) {
	c.store.Update(func(t ThemeState) ThemeState {
		t.IsHighContrast = enabled
		return t
	})
}

// ToggleQuietMode — тихий режим приглушает seed-цвет.
func (c *Container) ToggleQuietMode(enabled bool) {
	c.store.Update(func(t ThemeState) ThemeState {
		t.IsQuietMode = enabled
		return t
	})
}
