package quota

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TEJASTATODE/saas-notes/errs"
	"github.com/TEJASTATODE/saas-notes/models"
	"github.com/TEJASTATODE/saas-notes/store"
)

func newTestEnforcer(s store.Store, waitMax time.Duration) *Enforcer {
	return NewEnforcer(s, zap.NewNop().Sugar(), waitMax)
}

func seedTenant(t *testing.T, mem *store.Memory, plan models.Plan, limit int) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{Slug: "acme", Name: "Acme", Plan: plan, NoteLimit: limit}
	require.NoError(t, mem.CreateTenant(context.Background(), tenant))
	return tenant
}

func seedNotes(t *testing.T, mem *store.Memory, tenantID uuid.UUID, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, mem.CreateNote(context.Background(), &models.Note{
			Title:    "seeded",
			TenantID: tenantID,
		}))
	}
}

func TestCreateNoteFreePlanLimit(t *testing.T) {
	mem := store.NewMemory()
	tenant := seedTenant(t, mem, models.PlanFree, 3)
	seedNotes(t, mem, tenant.ID, 3)
	enforcer := newTestEnforcer(mem, time.Second)

	_, err := enforcer.CreateNote(context.Background(), tenant.ID, &models.Note{Title: "over"})
	require.Error(t, err)
	assert.True(t, errs.IsQuotaExceeded(err))
	assert.Equal(t, "Free plan limit reached. Upgrade to Pro.", errs.Message(err))
}

func TestCreateNoteQuotaRace(t *testing.T) {
	mem := store.NewMemory()
	tenant := seedTenant(t, mem, models.PlanFree, 3)
	seedNotes(t, mem, tenant.ID, 2)
	enforcer := newTestEnforcer(mem, 5*time.Second)

	const attempts = 10
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := enforcer.CreateNote(context.Background(), tenant.ID, &models.Note{Title: "racer"})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, rejections int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errs.IsQuotaExceeded(err):
			rejections++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, rejections)

	count, err := mem.CountNotesForTenant(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestProPlanBypassesLimit(t *testing.T) {
	mem := store.NewMemory()
	tenant := seedTenant(t, mem, models.PlanPro, models.UnlimitedNotes)
	enforcer := newTestEnforcer(mem, time.Second)

	for i := 0; i < 10; i++ {
		_, err := enforcer.CreateNote(context.Background(), tenant.ID, &models.Note{Title: "unbounded"})
		require.NoError(t, err)
	}
	count, err := mem.CountNotesForTenant(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), count)
}

func TestUpgradeTenantIdempotent(t *testing.T) {
	mem := store.NewMemory()
	tenant := seedTenant(t, mem, models.PlanFree, 3)
	enforcer := newTestEnforcer(mem, time.Second)

	for i := 0; i < 2; i++ {
		upgraded, err := enforcer.UpgradeTenant(context.Background(), tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PlanPro, upgraded.Plan)
		assert.Equal(t, models.UnlimitedNotes, upgraded.NoteLimit)
	}

	// After the upgrade the former limit no longer applies.
	seedNotes(t, mem, tenant.ID, 3)
	_, err := enforcer.CreateNote(context.Background(), tenant.ID, &models.Note{Title: "beyond"})
	assert.NoError(t, err)
}

func TestUpgradeDuringConcurrentCreates(t *testing.T) {
	mem := store.NewMemory()
	tenant := seedTenant(t, mem, models.PlanFree, 3)
	seedNotes(t, mem, tenant.ID, 3)
	enforcer := newTestEnforcer(mem, 5*time.Second)

	var wg sync.WaitGroup
	results := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i == 10 {
				_, err := enforcer.UpgradeTenant(context.Background(), tenant.ID)
				assert.NoError(t, err)
				return
			}
			_, err := enforcer.CreateNote(context.Background(), tenant.ID, &models.Note{Title: "inflight"})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	// Creates may land before or after the upgrade, but every rejection must
	// be the quota outcome; a torn plan state would surface differently.
	for err := range results {
		if err != nil {
			assert.True(t, errs.IsQuotaExceeded(err), "unexpected error: %v", err)
		}
	}

	tenantAfter, err := mem.FindTenantByID(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanPro, tenantAfter.Plan)
	assert.Equal(t, models.UnlimitedNotes, tenantAfter.NoteLimit)

	_, err = enforcer.CreateNote(context.Background(), tenant.ID, &models.Note{Title: "post-upgrade"})
	assert.NoError(t, err)
}

func TestCreateNoteTenantNotFound(t *testing.T) {
	enforcer := newTestEnforcer(store.NewMemory(), time.Second)
	_, err := enforcer.CreateNote(context.Background(), uuid.New(), &models.Note{Title: "orphan"})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

// gatedStore blocks CountNotesForTenant for one tenant until the gate opens,
// keeping that tenant's critical section occupied.
type gatedStore struct {
	*store.Memory
	gated   uuid.UUID
	gate    chan struct{}
	entered chan struct{}
	once    sync.Once
}

func (g *gatedStore) CountNotesForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	if tenantID == g.gated {
		g.once.Do(func() { close(g.entered) })
		<-g.gate
	}
	return g.Memory.CountNotesForTenant(ctx, tenantID)
}

func TestAcquireTimeoutReleasesTenant(t *testing.T) {
	mem := store.NewMemory()
	tenant := seedTenant(t, mem, models.PlanFree, 3)
	gated := &gatedStore{
		Memory:  mem,
		gated:   tenant.ID,
		gate:    make(chan struct{}),
		entered: make(chan struct{}),
	}
	enforcer := newTestEnforcer(gated, 50*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := enforcer.CreateNote(context.Background(), tenant.ID, &models.Note{Title: "holder"})
		done <- err
	}()
	<-gated.entered

	// Second create cannot take the lock and must fail retryable, fast.
	_, err := enforcer.CreateNote(context.Background(), tenant.ID, &models.Note{Title: "waiter"})
	require.Error(t, err)
	assert.True(t, errs.IsTimeout(err))

	close(gated.gate)
	require.NoError(t, <-done)

	// The lock was released on failure; the creation path is not wedged.
	_, err = enforcer.CreateNote(context.Background(), tenant.ID, &models.Note{Title: "after"})
	assert.NoError(t, err)
}

func TestTenantsDoNotContend(t *testing.T) {
	mem := store.NewMemory()
	blocked := seedTenant(t, mem, models.PlanFree, 3)
	other := &models.Tenant{Slug: "globex", Name: "Globex", Plan: models.PlanFree, NoteLimit: 3}
	require.NoError(t, mem.CreateTenant(context.Background(), other))

	gated := &gatedStore{
		Memory:  mem,
		gated:   blocked.ID,
		gate:    make(chan struct{}),
		entered: make(chan struct{}),
	}
	enforcer := newTestEnforcer(gated, 5*time.Second)

	done := make(chan error, 1)
	go func() {
		_, err := enforcer.CreateNote(context.Background(), blocked.ID, &models.Note{Title: "holder"})
		done <- err
	}()
	<-gated.entered

	// A different tenant's create proceeds while the first is held up.
	_, err := enforcer.CreateNote(context.Background(), other.ID, &models.Note{Title: "independent"})
	assert.NoError(t, err)

	close(gated.gate)
	require.NoError(t, <-done)
}
