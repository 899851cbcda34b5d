package companions

import (
	"fmt"
	"sort"
	"sync"

	"github.com/oneiric/dreamtemple/pkg/models"
)

// StateKey is the state-store key holding the persisted bond map.
const StateKey = "companion_bonds"

// bondLevelSpan is the bond strength covered by one relationship level.
const bondLevelSpan = 20

// StateStore persists the bond map between runs.
type StateStore interface {
	Load(key string, out any) (bool, error)
	Save(key string, value any) error
}

// Registry tracks the persistent bond each companion has accumulated.
// Bond strength only ever rises: recording a weaker session keeps the
// stored peak.
type Registry struct {
	mu    sync.Mutex
	bonds map[string]models.CompanionBond
	store StateStore
}

// NewRegistry creates a Registry, restoring any persisted bonds.
func NewRegistry(store StateStore) (*Registry, error) {
	r := &Registry{
		bonds: make(map[string]models.CompanionBond),
		store: store,
	}
	if store != nil {
		found, err := store.Load(StateKey, &r.bonds)
		if err != nil {
			return nil, fmt.Errorf("restore companion bonds: %w", err)
		}
		if !found {
			r.bonds = make(map[string]models.CompanionBond)
		}
	}
	return r, nil
}

// Record folds a scan's detections into the persistent bonds and returns
// the updated record for each detected companion.
func (r *Registry) Record(detections []models.CompanionDetection, now int64) ([]models.CompanionBond, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := make([]models.CompanionBond, 0, len(detections))
	for _, d := range detections {
		bond := r.bonds[d.Name]
		bond.Name = d.Name
		if d.BondStrength > bond.BondStrength {
			bond.BondStrength = d.BondStrength
		}
		bond.TotalXP += d.XPGained
		bond.Encounters++
		bond.LastSeenAt = now
		r.bonds[d.Name] = bond
		updated = append(updated, bond)
	}

	if len(updated) > 0 && r.store != nil {
		if err := r.store.Save(StateKey, r.bonds); err != nil {
			return updated, fmt.Errorf("persist companion bonds: %w", err)
		}
	}
	return updated, nil
}

// Bonds returns all persisted bonds sorted by name.
func (r *Registry) Bonds() []models.CompanionBond {
	r.mu.Lock()
	defer r.mu.Unlock()

	bonds := make([]models.CompanionBond, 0, len(r.bonds))
	for _, b := range r.bonds {
		bonds = append(bonds, b)
	}
	sort.Slice(bonds, func(i, j int) bool { return bonds[i].Name < bonds[j].Name })
	return bonds
}

// BondFor returns the persisted bond for one companion.
func (r *Registry) BondFor(name string) (models.CompanionBond, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bond, ok := r.bonds[name]
	return bond, ok
}

// Meter returns the display view of a companion bond: the relationship
// level rises one step per twenty points of bond strength.
func (r *Registry) Meter(name string) models.BondMeter {
	r.mu.Lock()
	defer r.mu.Unlock()

	bond := r.bonds[name]
	return models.BondMeter{
		Name:              name,
		Current:           bond.BondStrength,
		Level:             bond.BondStrength / bondLevelSpan,
		NextLevelProgress: float64(bond.BondStrength%bondLevelSpan) / bondLevelSpan,
	}
}
