package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model holds the identity and audit columns shared by every table.
// Timestamps are written in UTC (see database.NewPostgresDB).
type Model struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
}

// BeforeCreate generates a UUID before the row is inserted
func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Stamp fills the audit columns for a new record created by actor
func (m *Model) Stamp(actor *uuid.UUID) {
	m.CreatedBy = actor
	m.UpdatedBy = actor
}
