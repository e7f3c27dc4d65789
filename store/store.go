// Package store is the persistence boundary for users, tenants and notes.
// Note accessors always take the caller's tenant id so a record from
// another tenant can never be addressed, whatever id the client supplies.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/TEJASTATODE/saas-notes/errs"
	"github.com/TEJASTATODE/saas-notes/models"
)

var (
	ErrUserNotFound   = errs.E(errs.KindNotFound, "User not found")
	ErrTenantNotFound = errs.E(errs.KindNotFound, "Tenant not found")
	ErrNoteNotFound   = errs.E(errs.KindNotFound, "Note not found")
	ErrEmailTaken     = errs.E(errs.KindConflict, "User already exists")
)

type Store interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	ListUsersByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.User, error)

	FindTenantByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	FindTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	// UpdateTenantPlan changes plan and limit in a single write so readers
	// never observe a pro plan paired with a stale finite limit.
	UpdateTenantPlan(ctx context.Context, tenantID uuid.UUID, plan models.Plan, limit int) error

	CountNotesForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	CreateNote(ctx context.Context, note *models.Note) error
	FindNoteByID(ctx context.Context, tenantID, noteID uuid.UUID) (*models.Note, error)
	ListNotesByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Note, error)
	UpdateNote(ctx context.Context, tenantID, noteID uuid.UUID, title, content string) (*models.Note, error)
	DeleteNote(ctx context.Context, tenantID, noteID uuid.UUID) error
}
