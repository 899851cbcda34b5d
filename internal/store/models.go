package store

import (
	"time"

	"gorm.io/gorm"
)

// StateDocument is a key-keyed JSON document. The ledger, companion
// registry, and player stats persist their whole state here as single
// snapshots, mirroring the browser-local-storage model of the frontend.
type StateDocument struct {
	Key            string `gorm:"primaryKey;type:text"`
	Value          string `gorm:"type:text;not null"`
	UpdatedAt      string `gorm:"not null"`
	UpdatedAtEpoch int64  `gorm:"not null"`
}

func (StateDocument) TableName() string { return "state_documents" }

// BeforeSave hook to ensure timestamps are set.
func (d *StateDocument) BeforeSave(tx *gorm.DB) error {
	now := time.Now()
	d.UpdatedAt = now.Format(time.RFC3339)
	d.UpdatedAtEpoch = now.UnixMilli()
	return nil
}

// SessionRecord is a completed simulation session row.
type SessionRecord struct {
	ID             string `gorm:"primaryKey;type:text"`
	Type           string `gorm:"index;not null"`
	StartedAtEpoch int64  `gorm:"index:idx_sessions_started,sort:desc;not null"`
	DurationMs     int64  `gorm:"default:0"`
	RealismScore   int    `gorm:"default:0"`
	EmotionScore   int    `gorm:"default:0"`
	ClimaxScore    int    `gorm:"default:0"`
	BondScore      int    `gorm:"default:0"`
	ImprintScore   int    `gorm:"index:idx_sessions_imprint,sort:desc;default:0"`
	XPEarned       int    `gorm:"default:0"`
	DreamTokens    int    `gorm:"default:0"`
	Buffs          string `gorm:"type:text"` // JSON array of awarded effect names
	Companions     string `gorm:"type:text"` // JSON array of detected companion names
	CreatedAt      string `gorm:"not null"`
	CreatedAtEpoch int64  `gorm:"not null"`
}

func (SessionRecord) TableName() string { return "session_records" }

// BeforeCreate hook to ensure timestamps are set.
func (r *SessionRecord) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if r.CreatedAtEpoch == 0 {
		r.CreatedAtEpoch = now.UnixMilli()
	}
	if r.CreatedAt == "" {
		r.CreatedAt = now.Format(time.RFC3339)
	}
	if r.StartedAtEpoch == 0 {
		r.StartedAtEpoch = now.UnixMilli()
	}
	return nil
}
