package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// DefaultNoteLimit is the note cap for newly provisioned free tenants.
const DefaultNoteLimit = 3

// UnlimitedNotes is the NoteLimit sentinel used once a tenant is on pro.
const UnlimitedNotes = 0

type Tenant struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name"`
	Plan      Plan      `json:"plan" gorm:"default:free"`
	NoteLimit int       `json:"noteLimit"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
