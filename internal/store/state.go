package store

import (
	"fmt"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateStore reads and writes whole JSON state snapshots by key.
// Missing keys are not errors: Load reports found=false and callers fall
// back to their default state, so first runs need no seeding step.
type StateStore struct {
	db *gorm.DB
}

// NewStateStore creates a state store over the given database.
func NewStateStore(s *Store) *StateStore {
	return &StateStore{db: s.DB}
}

// Load unmarshals the document stored under key into out.
// Returns found=false (and leaves out untouched) when the key is absent.
func (s *StateStore) Load(key string, out any) (bool, error) {
	var doc StateDocument
	err := s.db.First(&doc, "key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load state %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(doc.Value), out); err != nil {
		return false, fmt.Errorf("decode state %q: %w", key, err)
	}
	return true, nil
}

// Save marshals value and upserts it under key, replacing any prior snapshot.
func (s *StateStore) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode state %q: %w", key, err)
	}

	doc := StateDocument{Key: key, Value: string(data)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at", "updated_at_epoch"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("save state %q: %w", key, err)
	}
	return nil
}
