package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"buildboard-api/internal/catalog"
	"buildboard-api/internal/model"
)

// Submission defaults, matching the request form's initial selections.
const (
	DefaultRequesterRole = model.RoleSales
	DefaultSizeCategory  = model.SizeMedium
	DefaultPickupMethod  = model.PickupSelfServe
)

// SubmitRequest is a new build request as entered by a requester.
type SubmitRequest struct {
	ArticleNumber  string              `json:"articleNumber" validate:"required"`
	ProjectName    string              `json:"projectName" validate:"required"`
	ProjectDueDate string              `json:"projectDueDate" validate:"required"`
	RequesterRole  model.RequesterRole `json:"requesterRole"`
	SizeCategory   model.SizeCategory  `json:"sizeCategory"`
	PickupMethod   model.PickupMethod  `json:"pickupMethod"`
	DeliveryWindow string              `json:"deliveryWindow"`
}

func (r *SubmitRequest) normalize() {
	r.ArticleNumber = strings.TrimSpace(r.ArticleNumber)
	r.ProjectName = strings.TrimSpace(r.ProjectName)
	r.ProjectDueDate = strings.TrimSpace(r.ProjectDueDate)
	r.DeliveryWindow = strings.TrimSpace(r.DeliveryWindow)
	if r.RequesterRole == "" {
		r.RequesterRole = DefaultRequesterRole
	}
	if r.SizeCategory == "" {
		r.SizeCategory = DefaultSizeCategory
	}
	if r.PickupMethod == "" {
		r.PickupMethod = DefaultPickupMethod
	}
}

// Column is one status lane of the board.
type Column struct {
	Status   model.Status         `json:"status"`
	Label    string               `json:"label"`
	Requests []model.BuildRequest `json:"requests"`
}

// BoardView is the kanban projection of the store.
type BoardView struct {
	Columns  []Column       `json:"columns"`
	Total    int            `json:"total"`
	Capacity CapacityReport `json:"capacity"`
}

// BoardService ties the catalog, the request store and the transition policy
// together for the calling surface.
type BoardService struct {
	catalog  catalog.Catalog
	store    *RequestStore
	policy   TransitionPolicy
	capacity int
	validate *validator.Validate
	log      logrus.FieldLogger
}

// BoardConfig configures a BoardService.
type BoardConfig struct {
	Policy   TransitionPolicy
	Capacity int
}

// NewBoardService creates a board service over an already loaded store.
func NewBoardService(cat catalog.Catalog, store *RequestStore, cfg BoardConfig, logger logrus.FieldLogger) *BoardService {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	policy := cfg.Policy
	if policy == "" {
		policy = PolicyPermissive
	}

	return &BoardService{
		catalog:  cat,
		store:    store,
		policy:   policy,
		capacity: cfg.Capacity,
		validate: v,
		log:      logger.WithField("component", "board"),
	}
}

// Policy returns the active transition policy.
func (s *BoardService) Policy() TransitionPolicy {
	return s.policy
}

// LookupItem resolves an article number. A nil item means not found.
func (s *BoardService) LookupItem(ctx context.Context, articleNumber string) (*model.Item, error) {
	it, err := s.catalog.Lookup(ctx, strings.TrimSpace(articleNumber))
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", articleNumber, err)
	}
	return it, nil
}

// Submit validates req, looks its article up and adds a pending request.
// Incomplete input yields *ValidationError and an unknown article
// ErrItemNotFound; in both cases nothing is stored.
func (s *BoardService) Submit(ctx context.Context, req SubmitRequest) (model.BuildRequest, error) {
	req.normalize()

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return model.BuildRequest{}, err
		}
		out := &ValidationError{}
		for _, fe := range verrs {
			out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: "is required"})
		}
		return model.BuildRequest{}, out
	}

	due, err := model.ParseDate(req.ProjectDueDate)
	if err != nil {
		return model.BuildRequest{}, &ValidationError{Fields: []FieldError{
			{Field: "projectDueDate", Message: "must be a date in YYYY-MM-DD format"},
		}}
	}

	it, err := s.LookupItem(ctx, req.ArticleNumber)
	if err != nil {
		return model.BuildRequest{}, err
	}
	if it == nil {
		return model.BuildRequest{}, fmt.Errorf("%w: %s", ErrItemNotFound, req.ArticleNumber)
	}

	nr := model.NewBuildRequestFor(*it)
	nr.ProjectName = req.ProjectName
	nr.ProjectDueDate = due
	nr.RequesterRole = req.RequesterRole
	nr.SizeCategory = req.SizeCategory
	nr.PickupMethod = req.PickupMethod
	nr.DeliveryWindow = req.DeliveryWindow

	created := s.store.Add(ctx, nr)
	s.log.WithFields(logrus.Fields{
		"id":      created.ID,
		"article": created.ArticleNumber,
		"role":    created.RequesterRole,
	}).Info("Build request submitted")
	return created, nil
}

// SetStatus writes status to request id subject to the transition policy.
// ok is false when no request has that id.
func (s *BoardService) SetStatus(ctx context.Context, id string, status model.Status) (model.BuildRequest, bool, error) {
	if !status.Valid() {
		return model.BuildRequest{}, false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	r, ok, err := s.store.mutate(ctx, id, func(r *model.BuildRequest) error {
		if err := s.policy.checkStatus(r.Status, status); err != nil {
			return err
		}
		r.Status = status
		return nil
	})
	if ok && err == nil {
		s.log.WithFields(logrus.Fields{"id": id, "status": status}).Info("Status updated")
	}
	return r, ok, err
}

// Advance moves request id one step forward regardless of policy. The
// terminal status cannot advance.
func (s *BoardService) Advance(ctx context.Context, id string) (model.BuildRequest, bool, error) {
	r, ok, err := s.store.mutate(ctx, id, func(r *model.BuildRequest) error {
		next, ok := r.Status.Next()
		if !ok {
			return fmt.Errorf("%w: %s is terminal", ErrIllegalTransition, r.Status)
		}
		r.Status = next
		return nil
	})
	if ok && err == nil {
		s.log.WithFields(logrus.Fields{"id": id, "status": r.Status}).Info("Status advanced")
	}
	return r, ok, err
}

// ToggleFlag flips flag on request id subject to the transition policy.
func (s *BoardService) ToggleFlag(ctx context.Context, id string, flag model.Flag) (model.BuildRequest, bool, error) {
	if !flag.Valid() {
		return model.BuildRequest{}, false, fmt.Errorf("%w: %q", ErrInvalidFlag, flag)
	}
	return s.store.mutate(ctx, id, func(r *model.BuildRequest) error {
		if err := s.policy.checkFlag(r.Status); err != nil {
			return err
		}
		r.ToggleFlag(flag)
		return nil
	})
}

// Request returns request id.
func (s *BoardService) Request(id string) (model.BuildRequest, bool) {
	return s.store.Get(id)
}

// Requests returns all requests in display order.
func (s *BoardService) Requests() []model.BuildRequest {
	return Rank(s.store.List())
}

// Capacity reports the build room fill level.
func (s *BoardService) Capacity() CapacityReport {
	return Capacity(s.store.CountByStatus(model.StatusReadyForPickup), s.capacity)
}

// Board groups the ranked requests into one column per status.
func (s *BoardService) Board() BoardView {
	ranked := Rank(s.store.List())

	statuses := model.Statuses()
	columns := make([]Column, len(statuses))
	ready := 0
	for i, st := range statuses {
		columns[i] = Column{Status: st, Label: st.Label(), Requests: []model.BuildRequest{}}
	}
	for _, r := range ranked {
		for i := range columns {
			if columns[i].Status == r.Status {
				columns[i].Requests = append(columns[i].Requests, r)
				break
			}
		}
		if r.Status == model.StatusReadyForPickup {
			ready++
		}
	}

	return BoardView{
		Columns:  columns,
		Total:    len(ranked),
		Capacity: Capacity(ready, s.capacity),
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}
