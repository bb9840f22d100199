package db

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	store "sk-ims/src/db"
	"sk-ims/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The ledger state machine lives in SQL transactions, so these tests need a
// real database. Set TEST_DATABASE_URL to run them; they are skipped
// otherwise. Each test creates its own users, budgets and projects, so a
// shared database is fine.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, store.RunMigrations(url))
	pool, err := store.Connect(url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func mustUser(t *testing.T, pool *pgxpool.Pool, role string) models.AuthUser {
	t.Helper()
	username := fmt.Sprintf("%s_%d", strings.ToLower(role), time.Now().UnixNano())
	u, err := CreateUser(context.Background(), pool, "Test "+role, username, "not-a-real-hash", role)
	require.NoError(t, err)
	return models.AuthUser{ID: u.ID, Username: u.Username, Fullname: u.Fullname, Role: u.Role}
}

func mustProject(t *testing.T, pool *pgxpool.Pool, creator models.AuthUser) *models.Project {
	t.Helper()
	name := fmt.Sprintf("Project %d", time.Now().UnixNano())
	p, err := CreateProject(context.Background(), pool, name, nil, nil, "", models.ProjectPlanned, nil, creator.ID)
	require.NoError(t, err)
	return p
}

func findEntry(t *testing.T, pool *pgxpool.Pool, budgetID, entryID int) models.BudgetEntry {
	t.Helper()
	entries, err := GetEntriesForBudget(context.Background(), pool, budgetID)
	require.NoError(t, err)
	for _, e := range entries {
		if e.ID == entryID {
			return e
		}
	}
	t.Fatalf("entry %d not found on budget %d", entryID, budgetID)
	return models.BudgetEntry{}
}

func TestEntrySingleTransitionOutOfPending(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	chairman := mustUser(t, pool, models.RoleChairman)
	treasurer := mustUser(t, pool, models.RoleTreasurer)

	b, err := CreateBudget(ctx, pool, "General Fund", 10000, chairman)
	require.NoError(t, err)
	require.Equal(t, int64(10000), b.CurrentBalance)

	entry, err := CreateEntry(ctx, pool, models.NewEntry{
		BudgetID:    b.ID,
		EntryType:   models.EntryIncrease,
		Amount:      5000,
		Description: "donation",
		EntryDate:   time.Now(),
	}, treasurer)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, entry.Status)

	approved, err := ApproveEntry(ctx, pool, b.ID, entry.ID, chairman)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, chairman.ID, *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	// Approved is terminal: a second approve or a reject changes nothing.
	_, err = ApproveEntry(ctx, pool, b.ID, entry.ID, chairman)
	assert.ErrorIs(t, err, models.ErrNotPending)
	_, err = RejectEntry(ctx, pool, b.ID, entry.ID, chairman)
	assert.ErrorIs(t, err, models.ErrNotPending)

	after, err := GetBudgetByID(ctx, pool, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), after.CurrentBalance)

	// Rejected is terminal too.
	entry2, err := CreateEntry(ctx, pool, models.NewEntry{
		BudgetID:    b.ID,
		EntryType:   models.EntryDecrease,
		Amount:      1000,
		Description: "supplies",
		EntryDate:   time.Now(),
	}, treasurer)
	require.NoError(t, err)
	_, err = RejectEntry(ctx, pool, b.ID, entry2.ID, chairman)
	require.NoError(t, err)
	_, err = ApproveEntry(ctx, pool, b.ID, entry2.ID, chairman)
	assert.ErrorIs(t, err, models.ErrNotPending)

	after, err = GetBudgetByID(ctx, pool, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), after.CurrentBalance)
}

func TestApproveEntryInsufficientBalanceLeavesStateUntouched(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	chairman := mustUser(t, pool, models.RoleChairman)
	treasurer := mustUser(t, pool, models.RoleTreasurer)

	b, err := CreateBudget(ctx, pool, "Small Fund", 2000, chairman)
	require.NoError(t, err)

	entry, err := CreateEntry(ctx, pool, models.NewEntry{
		BudgetID:    b.ID,
		EntryType:   models.EntryDecrease,
		Amount:      2001,
		Description: "over budget",
		EntryDate:   time.Now(),
	}, treasurer)
	require.NoError(t, err)

	_, err = ApproveEntry(ctx, pool, b.ID, entry.ID, chairman)
	assert.ErrorIs(t, err, models.ErrInsufficientBalance)

	// The entry stays pending and the balance is untouched, so a later
	// approval can still succeed once funds arrive.
	assert.Equal(t, models.StatusPending, findEntry(t, pool, b.ID, entry.ID).Status)
	after, err := GetBudgetByID(ctx, pool, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), after.CurrentBalance)
}

func TestDuplicateAllocationBlocked(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	chairman := mustUser(t, pool, models.RoleChairman)
	treasurer := mustUser(t, pool, models.RoleTreasurer)

	b, err := CreateBudget(ctx, pool, "Allocation Fund", 20000, chairman)
	require.NoError(t, err)
	p := mustProject(t, pool, chairman)

	a1, err := RequestAllocation(ctx, pool, p.ID, b.ID, 5000, treasurer)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, a1.Status)

	// A pending allocation blocks another request for the same pair.
	_, err = RequestAllocation(ctx, pool, p.ID, b.ID, 3000, treasurer)
	assert.ErrorIs(t, err, models.ErrDuplicateAllocation)

	// A rejected one does not.
	_, err = RejectAllocation(ctx, pool, b.ID, a1.ID, chairman)
	require.NoError(t, err)
	a2, err := RequestAllocation(ctx, pool, p.ID, b.ID, 3000, treasurer)
	require.NoError(t, err)

	// An approved one blocks again.
	_, err = ApproveAllocation(ctx, pool, b.ID, a2.ID, chairman)
	require.NoError(t, err)
	_, err = RequestAllocation(ctx, pool, p.ID, b.ID, 1000, treasurer)
	assert.ErrorIs(t, err, models.ErrDuplicateAllocation)
}

func TestRemoveAllocationRestoresBalance(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	chairman := mustUser(t, pool, models.RoleChairman)
	treasurer := mustUser(t, pool, models.RoleTreasurer)

	b, err := CreateBudget(ctx, pool, "Restore Fund", 10000, chairman)
	require.NoError(t, err)
	p := mustProject(t, pool, chairman)

	a, err := RequestAllocation(ctx, pool, p.ID, b.ID, 4000, treasurer)
	require.NoError(t, err)

	// A pending allocation cannot be removed.
	err = RemoveAllocation(ctx, pool, b.ID, a.ID, chairman)
	assert.ErrorIs(t, err, models.ErrNotApproved)

	_, err = ApproveAllocation(ctx, pool, b.ID, a.ID, chairman)
	require.NoError(t, err)
	mid, err := GetBudgetByID(ctx, pool, b.ID)
	require.NoError(t, err)
	require.Equal(t, int64(6000), mid.CurrentBalance)

	require.NoError(t, RemoveAllocation(ctx, pool, b.ID, a.ID, chairman))

	after, err := GetBudgetByID(ctx, pool, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), after.CurrentBalance)

	// The row is gone, so a second removal reports not found.
	allocations, err := GetAllocationsForBudget(ctx, pool, b.ID)
	require.NoError(t, err)
	for _, got := range allocations {
		assert.NotEqual(t, a.ID, got.ID)
	}
	err = RemoveAllocation(ctx, pool, b.ID, a.ID, chairman)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestActivityBracketsEachBalanceChange(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	chairman := mustUser(t, pool, models.RoleChairman)
	treasurer := mustUser(t, pool, models.RoleTreasurer)

	// A treasurer's budget starts at zero with a pending seed entry.
	b, err := CreateBudget(ctx, pool, "Audited Fund", 10000, treasurer)
	require.NoError(t, err)
	require.Equal(t, int64(0), b.CurrentBalance)

	entries, err := GetEntriesForBudget(ctx, pool, b.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	seed := entries[0]
	require.Equal(t, models.StatusPending, seed.Status)

	_, err = ApproveEntry(ctx, pool, b.ID, seed.ID, chairman)
	require.NoError(t, err)

	records, err := GetActivityForBudget(ctx, pool, b.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first: the approval brackets the only balance change.
	approval := records[0]
	assert.Equal(t, models.ActivityEntryApproved, approval.ActivityType)
	assert.Equal(t, int64(0), approval.OldBalance)
	assert.Equal(t, int64(10000), approval.NewBalance)
	assert.Equal(t, int64(10000), approval.AmountChanged)
	assert.Equal(t, chairman.ID, approval.PerformedBy)
	require.NotNil(t, approval.EntryID)
	assert.Equal(t, seed.ID, *approval.EntryID)

	created := records[1]
	assert.Equal(t, models.ActivityBudgetCreated, created.ActivityType)
	assert.Equal(t, int64(0), created.AmountChanged)

	changed := 0
	for _, rec := range records {
		if rec.AmountChanged != 0 {
			changed++
			assert.Equal(t, rec.AmountChanged, rec.NewBalance-rec.OldBalance)
		}
	}
	assert.Equal(t, 1, changed)

	// A rejection adds its audit row without touching the balance.
	entry, err := CreateEntry(ctx, pool, models.NewEntry{
		BudgetID:    b.ID,
		EntryType:   models.EntryDecrease,
		Amount:      500,
		Description: "printing",
		EntryDate:   time.Now(),
	}, treasurer)
	require.NoError(t, err)
	_, err = RejectEntry(ctx, pool, b.ID, entry.ID, chairman)
	require.NoError(t, err)

	records, err = GetActivityForBudget(ctx, pool, b.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, models.ActivityEntryRejected, records[0].ActivityType)
	assert.Equal(t, int64(0), records[0].AmountChanged)
	assert.Equal(t, int64(10000), records[0].OldBalance)
	assert.Equal(t, int64(10000), records[0].NewBalance)
}
