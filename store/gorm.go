package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TEJASTATODE/saas-notes/errs"
	"github.com/TEJASTATODE/saas-notes/models"
)

// Gorm is the postgres-backed Store used in production.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Migrate runs the schema migration for all owned tables.
func (s *Gorm) Migrate() error {
	return s.db.AutoMigrate(&models.Tenant{}, &models.User{}, &models.Note{})
}

func (s *Gorm) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(errs.KindInternal, "database error", err)
	}
	return &user, nil
}

func (s *Gorm) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(errs.KindInternal, "database error", err)
	}
	return &user, nil
}

func (s *Gorm) CreateUser(ctx context.Context, user *models.User) error {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.Wrap(errs.KindInternal, "database error", err)
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return errs.Wrap(errs.KindInternal, "user creation failed", err)
	}
	return nil
}

func (s *Gorm) ListUsersByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&users).Error; err != nil {
		return nil, errs.Wrap(errs.KindInternal, "database error", err)
	}
	return users, nil
}

func (s *Gorm) FindTenantByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, errs.Wrap(errs.KindInternal, "database error", err)
	}
	return &tenant, nil
}

func (s *Gorm) FindTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, errs.Wrap(errs.KindInternal, "database error", err)
	}
	return &tenant, nil
}

func (s *Gorm) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	if err := s.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return errs.Wrap(errs.KindInternal, "tenant creation failed", err)
	}
	return nil
}

func (s *Gorm) UpdateTenantPlan(ctx context.Context, tenantID uuid.UUID, plan models.Plan, limit int) error {
	result := s.db.WithContext(ctx).Model(&models.Tenant{}).Where("id = ?", tenantID).Updates(map[string]interface{}{
		"plan":       plan,
		"note_limit": limit,
	})
	if result.Error != nil {
		return errs.Wrap(errs.KindInternal, "tenant update failed", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTenantNotFound
	}
	return nil
}

func (s *Gorm) CountNotesForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Note{}).Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		return 0, errs.Wrap(errs.KindInternal, "database error", err)
	}
	return count, nil
}

func (s *Gorm) CreateNote(ctx context.Context, note *models.Note) error {
	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		return errs.Wrap(errs.KindInternal, "note creation failed", err)
	}
	return nil
}

func (s *Gorm) FindNoteByID(ctx context.Context, tenantID, noteID uuid.UUID) (*models.Note, error) {
	var note models.Note
	if err := s.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", noteID, tenantID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, errs.Wrap(errs.KindInternal, "database error", err)
	}
	return &note, nil
}

func (s *Gorm) ListNotesByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("created_at").Find(&notes).Error; err != nil {
		return nil, errs.Wrap(errs.KindInternal, "database error", err)
	}
	return notes, nil
}

func (s *Gorm) UpdateNote(ctx context.Context, tenantID, noteID uuid.UUID, title, content string) (*models.Note, error) {
	result := s.db.WithContext(ctx).Model(&models.Note{}).Where("id = ? AND tenant_id = ?", noteID, tenantID).Updates(map[string]interface{}{
		"title":   title,
		"content": content,
	})
	if result.Error != nil {
		return nil, errs.Wrap(errs.KindInternal, "note update failed", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNoteNotFound
	}
	return s.FindNoteByID(ctx, tenantID, noteID)
}

func (s *Gorm) DeleteNote(ctx context.Context, tenantID, noteID uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", noteID, tenantID).Delete(&models.Note{})
	if result.Error != nil {
		return errs.Wrap(errs.KindInternal, "note delete failed", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}
