package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"buildboard-api/internal/model"
	"buildboard-api/internal/repository"
	"buildboard-api/pkg/uid"
)

// persistTimeout bounds one snapshot write.
const persistTimeout = 5 * time.Second

// RequestStore owns the ordered collection of build requests. It is loaded
// once from its snapshot slot when constructed and rewrites the whole slot
// after every mutation. Persistence is best-effort: a failed write is logged
// and the in-memory state stays authoritative.
type RequestStore struct {
	mu       sync.RWMutex
	requests []model.BuildRequest
	ids      map[string]struct{}

	repo repository.SnapshotRepository
	key  string
	log  logrus.FieldLogger

	newID func() string
}

// NewRequestStore creates a store over the slot key in repo and seeds it from
// whatever the slot holds. Missing or undecodable data yields an empty store.
func NewRequestStore(ctx context.Context, repo repository.SnapshotRepository, key string, logger logrus.FieldLogger) *RequestStore {
	s := &RequestStore{
		requests: []model.BuildRequest{},
		ids:      make(map[string]struct{}),
		repo:     repo,
		key:      key,
		log:      logger.WithField("component", "request_store"),
		newID:    uid.New,
	}
	s.load(ctx)
	return s
}

func (s *RequestStore) load(ctx context.Context) {
	data, err := s.repo.LoadSnapshot(ctx, s.key)
	if err != nil {
		s.log.WithError(err).Warn("Failed to read snapshot, starting empty")
		return
	}
	if len(data) == 0 {
		s.log.Info("No snapshot found, starting empty")
		return
	}

	var loaded []model.BuildRequest
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.log.WithError(err).Warn("Discarding corrupt snapshot, starting empty")
		return
	}

	repaired := 0
	for _, r := range loaded {
		if _, dup := s.ids[r.ID]; r.ID == "" || dup {
			r.ID = s.freshIDLocked()
			repaired++
		}
		if !r.Status.Valid() {
			r.Status = model.StatusPending
			repaired++
		}
		s.ids[r.ID] = struct{}{}
		s.requests = append(s.requests, r)
	}

	entry := s.log.WithField("requests", len(s.requests))
	if repaired > 0 {
		entry = entry.WithField("repaired_fields", repaired)
	}
	entry.Info("Snapshot loaded")
}

// Add stores a new request with a fresh id in status pending and returns it.
func (s *RequestStore) Add(ctx context.Context, nr model.NewBuildRequest) model.BuildRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := model.BuildRequest{
		ID:                s.freshIDLocked(),
		ArticleNumber:     nr.ArticleNumber,
		ItemName:          nr.ItemName,
		WarehouseLocation: nr.WarehouseLocation,
		StockStatus:       nr.StockStatus,
		ProjectDueDate:    nr.ProjectDueDate,
		Status:            model.StatusPending,
		RequesterRole:     nr.RequesterRole,
		ProjectName:       nr.ProjectName,
		SizeCategory:      nr.SizeCategory,
		PickupMethod:      nr.PickupMethod,
		DeliveryWindow:    nr.DeliveryWindow,
	}
	s.ids[r.ID] = struct{}{}
	s.requests = append(s.requests, r)

	s.persistLocked(ctx)
	return r
}

// UpdateStatus sets the status of request id. Any valid status may replace
// any other; legality is the caller's concern. It reports false without
// error when no request has that id.
func (s *RequestStore) UpdateStatus(ctx context.Context, id string, status model.Status) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	_, ok, err := s.mutate(ctx, id, func(r *model.BuildRequest) error {
		r.Status = status
		return nil
	})
	return ok, err
}

// ToggleFlag flips flag on request id, leaving every other field alone. It
// reports false without error when no request has that id.
func (s *RequestStore) ToggleFlag(ctx context.Context, id string, flag model.Flag) (bool, error) {
	if !flag.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidFlag, flag)
	}
	_, ok, err := s.mutate(ctx, id, func(r *model.BuildRequest) error {
		r.ToggleFlag(flag)
		return nil
	})
	return ok, err
}

// mutate applies fn to request id under the write lock and persists when fn
// succeeds. A missing id is reported as ok=false.
func (s *RequestStore) mutate(ctx context.Context, id string, fn func(r *model.BuildRequest) error) (model.BuildRequest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return model.BuildRequest{}, false, nil
	}

	updated := s.requests[i]
	if err := fn(&updated); err != nil {
		return s.requests[i], true, err
	}
	s.requests[i] = updated

	s.persistLocked(ctx)
	return updated, true, nil
}

// Get returns a copy of request id.
func (s *RequestStore) Get(id string) (model.BuildRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return model.BuildRequest{}, false
	}
	return s.requests[i], true
}

// List returns a copy of all requests in insertion order.
func (s *RequestStore) List() []model.BuildRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.BuildRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns the number of requests.
func (s *RequestStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.requests)
}

// CountByStatus returns the number of requests in status.
func (s *RequestStore) CountByStatus(status model.Status) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, r := range s.requests {
		if r.Status == status {
			n++
		}
	}
	return n
}

func (s *RequestStore) indexLocked(id string) int {
	for i := range s.requests {
		if s.requests[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *RequestStore) freshIDLocked() string {
	for {
		id := s.newID()
		if _, taken := s.ids[id]; !taken && id != "" {
			return id
		}
	}
}

func (s *RequestStore) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.requests)
	if err != nil {
		s.log.WithError(err).Error("Failed to encode snapshot")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := s.repo.SaveSnapshot(ctx, s.key, data); err != nil {
		s.log.WithError(err).WithField("requests", len(s.requests)).Warn("Snapshot write failed; state kept in memory only")
	}
}
