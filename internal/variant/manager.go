package variant

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pgEdge/pgedge-bench/internal/db"
	"github.com/pgEdge/pgedge-bench/internal/logging"
)

// ErrUnknownVariant is returned for lookups of unregistered variant ids.
var ErrUnknownVariant = errors.New("unknown variant")

// Manager registers variants and drives their lifecycle against the
// backend. Apply, Refresh, and Drop on the same variant are mutually
// exclusive; operations on different variants may proceed concurrently.
type Manager struct {
	backend db.Backend

	mu       sync.RWMutex
	variants map[string]*Variant
}

// NewManager creates a manager for the given backend.
func NewManager(backend db.Backend) *Manager {
	return &Manager{
		backend:  backend,
		variants: make(map[string]*Variant),
	}
}

// Register adds a variant. Registering the same id twice is an error.
func (m *Manager) Register(v *Variant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.variants[v.ID]; exists {
		return fmt.Errorf("variant %q already registered", v.ID)
	}
	if v.state == "" {
		v.state = Defined
	}
	m.variants[v.ID] = v
	return nil
}

// Get returns a registered variant.
func (m *Manager) Get(id string) (*Variant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.variants[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, id)
	}
	return v, nil
}

// ForQuery returns all registered variants for a logical query.
func (m *Manager) ForQuery(queryID string) []*Variant {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Variant
	for _, v := range m.variants {
		if v.QueryID == queryID {
			out = append(out, v)
		}
	}
	return out
}

// Apply executes the variant's actions in order, all-or-nothing: when an
// action fails, the already executed actions are reversed before the
// error is returned and the variant returns to Defined. A collision with
// an existing physical object surfaces as a VariantConflict.
func (m *Manager) Apply(ctx context.Context, id string) error {
	v, err := m.Get(id)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.transition("apply", Applying, Defined); err != nil {
		return err
	}

	logging.Info().
		Str("variant", v.ID).
		Str("query", v.QueryID).
		Int("actions", len(v.Actions)).
		Msg("Applying variant")

	for i, action := range v.Actions {
		if _, execErr := m.backend.Exec(ctx, action.Statement); execErr != nil {
			m.rollback(ctx, v, i)
			v.state = Defined
			return fmt.Errorf("variant %q action %d (%s): %w", v.ID, i, action.Type, execErr)
		}
	}

	v.state = Applied
	return nil
}

// rollback reverses actions [0, upto) in opposite order. Reverse
// failures are logged, not returned; the apply error is the one the
// caller needs.
func (m *Manager) rollback(ctx context.Context, v *Variant, upto int) {
	for i := upto - 1; i >= 0; i-- {
		if _, err := m.backend.Exec(ctx, v.Actions[i].Reverse); err != nil {
			logging.Error().
				Err(err).
				Str("variant", v.ID).
				Int("action", i).
				Msg("Failed to reverse action during rollback")
		}
	}
}

// MarkStale flags an applied variant whose derived objects no longer
// reflect the base data. A stale variant may still be benchmarked, but
// only when the run is explicitly forced, and the run record is tagged.
func (m *Manager) MarkStale(id string) error {
	v, err := m.Get(id)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.HasDerived() {
		return fmt.Errorf("variant %q has no derived objects to go stale", v.ID)
	}
	return v.transition("markStale", Stale, Applied)
}

// Refresh re-executes the population logic of the variant's derived
// objects. Refreshing an already applied variant is a no-op. Refreshing
// a Defined variant fails rather than silently applying.
func (m *Manager) Refresh(ctx context.Context, id string) error {
	v, err := m.Get(id)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == Applied {
		return nil
	}
	if err := v.transition("refresh", Refreshing, Stale); err != nil {
		return err
	}

	for i, action := range v.Actions {
		if !action.Derived() || action.Refresh == "" {
			continue
		}
		if _, execErr := m.backend.Exec(ctx, action.Refresh); execErr != nil {
			v.state = Stale
			return fmt.Errorf("variant %q refresh action %d: %w", v.ID, i, execErr)
		}
	}

	logging.Info().Str("variant", v.ID).Msg("Variant refreshed")
	v.state = Applied
	return nil
}

// Drop reverses the variant's actions in opposite order and returns it
// to Defined, from where it may be reapplied.
func (m *Manager) Drop(ctx context.Context, id string) error {
	v, err := m.Get(id)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	// A failed drop leaves the variant in Dropping; retrying the drop
	// from there is allowed.
	if err := v.transition("drop", Dropping, Applied, Stale, Dropping); err != nil {
		return err
	}

	for i := len(v.Actions) - 1; i >= 0; i-- {
		if _, execErr := m.backend.Exec(ctx, v.Actions[i].Reverse); execErr != nil {
			// Leave Dropping so the caller can retry the drop; the
			// backend is in a partially retracted state.
			return fmt.Errorf("variant %q drop action %d: %w", v.ID, i, execErr)
		}
	}

	logging.Info().Str("variant", v.ID).Msg("Variant dropped")
	v.state = Defined
	return nil
}
