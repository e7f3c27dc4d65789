package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleType string

const (
	MemberRole RoleType = "member"
	AdminRole  RoleType = "admin"
)

type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email    string    `json:"email" gorm:"uniqueIndex;not null"`
	Password string    `json:"-"`
	Role     RoleType  `json:"role"`
	TenantID uuid.UUID `json:"tenantId" gorm:"type:uuid;index;not null"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
