package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildboard-api/internal/model"
	"buildboard-api/internal/repository"
)

func TestAddAssignsFreshIDAndPending(t *testing.T) {
	store := newTestStore(t, repository.NewMemorySnapshotRepository())
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		before := store.Count()
		r := store.Add(ctx, newReq(model.RoleVM, "2024-12-01"))

		assert.Equal(t, before+1, store.Count())
		assert.Equal(t, model.StatusPending, r.Status)
		assert.NotEmpty(t, r.ID)
		assert.False(t, seen[r.ID], "id %s reused", r.ID)
		seen[r.ID] = true

		got, ok := store.Get(r.ID)
		require.True(t, ok, "new record is immediately visible")
		assert.Equal(t, r, got)
	}
}

func TestAddSkipsCollidingIDs(t *testing.T) {
	store := newTestStore(t, repository.NewMemorySnapshotRepository())
	ids := []string{"dup", "dup", "", "other"}
	store.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	a := store.Add(context.Background(), newReq(model.RoleVM, "2024-12-01"))
	b := store.Add(context.Background(), newReq(model.RoleVM, "2024-12-01"))

	assert.Equal(t, "dup", a.ID)
	assert.Equal(t, "other", b.ID)
}

func TestUpdateStatusTouchesOnlyTarget(t *testing.T) {
	store := newTestStore(t, repository.NewMemorySnapshotRepository())
	ctx := context.Background()

	a := store.Add(ctx, newReq(model.RoleVM, "2024-12-01"))
	b := store.Add(ctx, newReq(model.RoleSales, "2024-11-01"))

	ok, err := store.UpdateStatus(ctx, a.ID, model.StatusInBuild)
	require.NoError(t, err)
	assert.True(t, ok)

	gotA, _ := store.Get(a.ID)
	want := a
	want.Status = model.StatusInBuild
	assert.Equal(t, want, gotA, "only status changes")

	gotB, _ := store.Get(b.ID)
	assert.Equal(t, b, gotB)
}

func TestUpdateStatusAcceptsAnyValidStatus(t *testing.T) {
	store := newTestStore(t, repository.NewMemorySnapshotRepository())
	ctx := context.Background()
	r := store.Add(ctx, newReq(model.RoleID, "2024-12-01"))

	for _, st := range []model.Status{model.StatusReadyForPickup, model.StatusPending, model.StatusInBuild, model.StatusScheduled} {
		ok, err := store.UpdateStatus(ctx, r.ID, st)
		require.NoError(t, err)
		assert.True(t, ok)
		got, _ := store.Get(r.ID)
		assert.Equal(t, st, got.Status)
	}
}

func TestUpdateStatusUnknownIDIsNoop(t *testing.T) {
	repo := &stubRepo{}
	store := newTestStore(t, repo)
	ctx := context.Background()
	store.Add(ctx, newReq(model.RoleVM, "2024-12-01"))
	before := store.List()
	saves := repo.saves

	ok, err := store.UpdateStatus(ctx, "nope", model.StatusScheduled)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, store.List())
	assert.Equal(t, saves, repo.saves, "no-op does not rewrite the snapshot")
}

func TestUpdateStatusRejectsInvalidStatus(t *testing.T) {
	store := newTestStore(t, repository.NewMemorySnapshotRepository())
	r := store.Add(context.Background(), newReq(model.RoleVM, "2024-12-01"))

	ok, err := store.UpdateStatus(context.Background(), r.ID, "shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.False(t, ok)

	got, _ := store.Get(r.ID)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestToggleFlagTwiceRestores(t *testing.T) {
	store := newTestStore(t, repository.NewMemorySnapshotRepository())
	ctx := context.Background()
	r := store.Add(ctx, newReq(model.RoleVM, "2024-12-01"))

	for _, flag := range []model.Flag{model.FlagMissingStock, model.FlagLateDelivery} {
		ok, err := store.ToggleFlag(ctx, r.ID, flag)
		require.NoError(t, err)
		require.True(t, ok)
		got, _ := store.Get(r.ID)
		assert.True(t, got.HasFlag(flag))

		_, err = store.ToggleFlag(ctx, r.ID, flag)
		require.NoError(t, err)
		got, _ = store.Get(r.ID)
		assert.False(t, got.HasFlag(flag))
	}

	got, _ := store.Get(r.ID)
	assert.Equal(t, r, got)
}

func TestToggleFlagLeavesOtherFlag(t *testing.T) {
	store := newTestStore(t, repository.NewMemorySnapshotRepository())
	ctx := context.Background()
	r := store.Add(ctx, newReq(model.RoleVM, "2024-12-01"))

	_, err := store.ToggleFlag(ctx, r.ID, model.FlagLateDelivery)
	require.NoError(t, err)

	got, _ := store.Get(r.ID)
	assert.True(t, got.LateDelivery)
	assert.False(t, got.MissingStock)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestToggleFlagUnknownIDAndFlag(t *testing.T) {
	store := newTestStore(t, repository.NewMemorySnapshotRepository())
	ctx := context.Background()
	r := store.Add(ctx, newReq(model.RoleVM, "2024-12-01"))

	ok, err := store.ToggleFlag(ctx, "nope", model.FlagMissingStock)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = store.ToggleFlag(ctx, r.ID, "urgent")
	assert.ErrorIs(t, err, ErrInvalidFlag)
}

func TestPersistenceRoundTrip(t *testing.T) {
	repo := repository.NewMemorySnapshotRepository()
	ctx := context.Background()

	store := newTestStore(t, repo)
	store.Add(ctx, newReq(model.RoleSales, "2024-11-15"))
	b := store.Add(ctx, newReq(model.RoleVM, "2024-12-01"))
	c := store.Add(ctx, newReq(model.RoleID, "2025-01-10"))
	_, err := store.UpdateStatus(ctx, b.ID, model.StatusReadyForPickup)
	require.NoError(t, err)
	_, err = store.ToggleFlag(ctx, c.ID, model.FlagMissingStock)
	require.NoError(t, err)

	reloaded := newTestStore(t, repo)

	if diff := cmp.Diff(store.List(), reloaded.List()); diff != "" {
		t.Errorf("reloaded collection mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingOrCorruptSnapshotStartsEmpty(t *testing.T) {
	tests := []struct {
		name string
		repo *stubRepo
	}{
		{"absent", &stubRepo{}},
		{"corrupt", &stubRepo{data: []byte(`{"not":"an array"`)}},
		{"wrong shape", &stubRepo{data: []byte(`{"id":"a"}`)}},
		{"read error", &stubRepo{loadErr: errors.New("disk gone")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, tt.repo)
			assert.Equal(t, 0, store.Count())
			assert.NotNil(t, store.List())
		})
	}
}

func TestLoadRepairsRecords(t *testing.T) {
	repo := &stubRepo{data: []byte(`[
		{"id":"a","status":"pending","requesterRole":"VM","projectDueDate":"2024-12-01"},
		{"id":"a","status":"scheduled","requesterRole":"ID","projectDueDate":"2024-12-02"},
		{"id":"","status":"bogus","requesterRole":"Sales","projectDueDate":"2024-12-03"}
	]`)}
	store := newTestStore(t, repo)

	list := store.List()
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID)
	assert.NotEqual(t, "a", list[1].ID, "duplicate ids are reassigned")
	assert.NotEmpty(t, list[2].ID)
	assert.Equal(t, model.StatusScheduled, list[1].Status)
	assert.Equal(t, model.StatusPending, list[2].Status, "unknown status falls back to pending")
}

func TestLoadOldShapeMissingFlags(t *testing.T) {
	repo := &stubRepo{data: []byte(`[{"id":"a","articleNumber":"123.456.78","status":"in-build","requesterRole":"VM","projectDueDate":"2024-12-01"}]`)}
	store := newTestStore(t, repo)

	got, ok := store.Get("a")
	require.True(t, ok)
	assert.False(t, got.MissingStock)
	assert.False(t, got.LateDelivery)
	assert.Equal(t, date(2024, 12, 1), got.ProjectDueDate)
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	repo := &stubRepo{saveErr: errors.New("quota exceeded")}
	store := newTestStore(t, repo)
	ctx := context.Background()

	r := store.Add(ctx, newReq(model.RoleVM, "2024-12-01"))
	ok, err := store.UpdateStatus(ctx, r.ID, model.StatusScheduled)

	require.NoError(t, err, "persistence failures are not reported")
	assert.True(t, ok)
	got, _ := store.Get(r.ID)
	assert.Equal(t, model.StatusScheduled, got.Status)
	assert.Equal(t, 2, repo.saves)
}

func TestEverySnapshotIsFullArray(t *testing.T) {
	repo := &stubRepo{}
	store := newTestStore(t, repo)
	store.newID = sequentialIDs()
	ctx := context.Background()

	store.Add(ctx, newReq(model.RoleVM, "2024-12-01"))
	store.Add(ctx, newReq(model.RoleID, "2024-12-02"))

	assert.JSONEq(t, `[
		{"id":"id-1","articleNumber":"123.456.78","itemName":"LACK Side Table, White","warehouseLocation":"Aisle 12, Bin 04","stockStatus":"In Stock","projectDueDate":"2024-12-01","status":"pending","requesterRole":"VM","projectName":"Project VM 2024-12-01","sizeCategory":"Medium","pickupMethod":"SS"},
		{"id":"id-2","articleNumber":"123.456.78","itemName":"LACK Side Table, White","warehouseLocation":"Aisle 12, Bin 04","stockStatus":"In Stock","projectDueDate":"2024-12-02","status":"pending","requesterRole":"ID","projectName":"Project ID 2024-12-02","sizeCategory":"Medium","pickupMethod":"SS"}
	]`, string(repo.data))
}

func TestListReturnsCopy(t *testing.T) {
	store := newTestStore(t, repository.NewMemorySnapshotRepository())
	r := store.Add(context.Background(), newReq(model.RoleVM, "2024-12-01"))

	list := store.List()
	list[0].Status = model.StatusReadyForPickup

	got, _ := store.Get(r.ID)
	assert.Equal(t, model.StatusPending, got.Status)
}
