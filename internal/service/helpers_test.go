package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"buildboard-api/internal/catalog"
	"buildboard-api/internal/logging"
	"buildboard-api/internal/model"
	"buildboard-api/internal/repository"
)

type stubRepo struct {
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

func (r *stubRepo) LoadSnapshot(context.Context, string) ([]byte, error) {
	return r.data, r.loadErr
}

func (r *stubRepo) SaveSnapshot(_ context.Context, _ string, data []byte) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.data = data
	return nil
}

func (r *stubRepo) GetStats(context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"backend": "stub"}, nil
}

func (r *stubRepo) Close() error { return nil }

var _ repository.SnapshotRepository = (*stubRepo)(nil)

const testKey = "recovery_requests"

func newTestStore(t *testing.T, repo repository.SnapshotRepository) *RequestStore {
	t.Helper()
	return NewRequestStore(context.Background(), repo, testKey, logging.Discard())
}

func newTestBoard(t *testing.T, policy TransitionPolicy) (*BoardService, *RequestStore) {
	t.Helper()
	store := newTestStore(t, repository.NewMemorySnapshotRepository())
	board := NewBoardService(catalog.NewSeededCatalog(0), store, BoardConfig{Policy: policy, Capacity: 10}, logging.Discard())
	return board, store
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newReq(role model.RequesterRole, due string) model.NewBuildRequest {
	d, err := model.ParseDate(due)
	if err != nil {
		panic(err)
	}
	return model.NewBuildRequest{
		ArticleNumber:     "123.456.78",
		ItemName:          "LACK Side Table, White",
		WarehouseLocation: "Aisle 12, Bin 04",
		StockStatus:       model.StockInStock,
		ProjectName:       "Project " + string(role) + " " + due,
		ProjectDueDate:    d,
		RequesterRole:     role,
		SizeCategory:      model.SizeMedium,
		PickupMethod:      model.PickupSelfServe,
	}
}

func date(y int, m time.Month, d int) model.Date {
	return model.NewDate(y, m, d)
}
