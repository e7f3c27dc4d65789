package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/TEJASTATODE/saas-notes/models"
)

// Memory is an in-process Store used by tests. It is safe for concurrent
// use and returns copies so callers cannot mutate stored records in place.
type Memory struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]models.User
	tenants map[uuid.UUID]models.Tenant
	notes   map[uuid.UUID]models.Note
}

func NewMemory() *Memory {
	return &Memory{
		users:   make(map[uuid.UUID]models.User),
		tenants: make(map[uuid.UUID]models.Tenant),
		notes:   make(map[uuid.UUID]models.Note),
	}
}

func (m *Memory) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (m *Memory) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *Memory) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) DeleteUser(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// UpdateUserRole is used by tests to simulate an out-of-band role change.
func (m *Memory) UpdateUserRole(ctx context.Context, id uuid.UUID, role models.RoleType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.Role = role
	m.users[id] = user
	return nil
}

func (m *Memory) ListUsersByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var users []models.User
	for _, user := range m.users {
		if user.TenantID == tenantID {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (m *Memory) FindTenantByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tenant, ok := m.tenants[id]
	if !ok {
		return nil, ErrTenantNotFound
	}
	return &tenant, nil
}

func (m *Memory) FindTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, tenant := range m.tenants {
		if tenant.Slug == slug {
			t := tenant
			return &t, nil
		}
	}
	return nil, ErrTenantNotFound
}

func (m *Memory) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	m.tenants[tenant.ID] = *tenant
	return nil
}

func (m *Memory) UpdateTenantPlan(ctx context.Context, tenantID uuid.UUID, plan models.Plan, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tenant, ok := m.tenants[tenantID]
	if !ok {
		return ErrTenantNotFound
	}
	tenant.Plan = plan
	tenant.NoteLimit = limit
	m.tenants[tenantID] = tenant
	return nil
}

func (m *Memory) CountNotesForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, note := range m.notes {
		if note.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

func (m *Memory) CreateNote(ctx context.Context, note *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	m.notes[note.ID] = *note
	return nil
}

func (m *Memory) FindNoteByID(ctx context.Context, tenantID, noteID uuid.UUID) (*models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	note, ok := m.notes[noteID]
	if !ok || note.TenantID != tenantID {
		return nil, ErrNoteNotFound
	}
	return &note, nil
}

func (m *Memory) ListNotesByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var notes []models.Note
	for _, note := range m.notes {
		if note.TenantID == tenantID {
			notes = append(notes, note)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].CreatedAt.Before(notes[j].CreatedAt) })
	return notes, nil
}

func (m *Memory) UpdateNote(ctx context.Context, tenantID, noteID uuid.UUID, title, content string) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	note, ok := m.notes[noteID]
	if !ok || note.TenantID != tenantID {
		return nil, ErrNoteNotFound
	}
	note.Title = title
	note.Content = content
	m.notes[noteID] = note
	return &note, nil
}

func (m *Memory) DeleteNote(ctx context.Context, tenantID, noteID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	note, ok := m.notes[noteID]
	if !ok || note.TenantID != tenantID {
		return ErrNoteNotFound
	}
	delete(m.notes, noteID)
	return nil
}
