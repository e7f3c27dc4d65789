// Package quota serializes plan-limit decisions per tenant. The free-plan
// count check and the insert run inside one per-tenant critical section, so
// concurrent creates cannot race past the limit. Different tenants use
// different locks and never contend.
package quota

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TEJASTATODE/saas-notes/errs"
	"github.com/TEJASTATODE/saas-notes/models"
	"github.com/TEJASTATODE/saas-notes/store"
)

// ErrLimitReached carries the message the frontend matches on.
var ErrLimitReached = errs.E(errs.KindQuotaExceeded, "Free plan limit reached. Upgrade to Pro.")

type Enforcer struct {
	store   store.Store
	logger  *zap.SugaredLogger
	waitMax time.Duration

	mu    sync.Mutex
	locks map[uuid.UUID]chan struct{}
}

func NewEnforcer(s store.Store, logger *zap.SugaredLogger, waitMax time.Duration) *Enforcer {
	return &Enforcer{
		store:   s,
		logger:  logger,
		waitMax: waitMax,
		locks:   make(map[uuid.UUID]chan struct{}),
	}
}

func (e *Enforcer) tenantLock(tenantID uuid.UUID) chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[tenantID]
	if !ok {
		lock = make(chan struct{}, 1)
		e.locks[tenantID] = lock
	}
	return lock
}

// acquire takes the tenant's lock, giving up on context cancellation or
// after waitMax. The returned release must be called on every exit path.
func (e *Enforcer) acquire(ctx context.Context, tenantID uuid.UUID) (func(), error) {
	lock := e.tenantLock(tenantID)
	timer := time.NewTimer(e.waitMax)
	defer timer.Stop()
	select {
	case lock <- struct{}{}:
		return func() { <-lock }, nil
	case <-ctx.Done():
		return nil, errs.Wrap(errs.KindTimeout, "Busy, please retry", ctx.Err())
	case <-timer.C:
		return nil, errs.E(errs.KindTimeout, "Busy, please retry")
	}
}

// CreateNote creates note for tenantID if the tenant's plan allows another
// note. Pro tenants are never limited.
func (e *Enforcer) CreateNote(ctx context.Context, tenantID uuid.UUID, note *models.Note) (*models.Note, error) {
	release, err := e.acquire(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	defer release()

	tenant, err := e.store.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if tenant.Plan != models.PlanPro {
		count, err := e.store.CountNotesForTenant(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if count >= int64(tenant.NoteLimit) {
			e.logger.Debugf("note limit reached for tenant %s (%d/%d)", tenant.Slug, count, tenant.NoteLimit)
			return nil, ErrLimitReached
		}
	}

	note.TenantID = tenantID
	if err := e.store.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// UpgradeTenant moves tenantID to the pro plan. Idempotent, and taken under
// the same per-tenant lock as creation so in-flight creates see either the
// old plan or the new one, never a half-applied pair.
func (e *Enforcer) UpgradeTenant(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	release, err := e.acquire(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	defer release()

	tenant, err := e.store.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := e.store.UpdateTenantPlan(ctx, tenantID, models.PlanPro, models.UnlimitedNotes); err != nil {
		return nil, err
	}
	tenant.Plan = models.PlanPro
	tenant.NoteLimit = models.UnlimitedNotes
	e.logger.Infof("tenant %s upgraded to pro", tenant.Slug)
	return tenant, nil
}
