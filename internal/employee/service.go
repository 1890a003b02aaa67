// Package employee is the facade over the upstream employee service. Each
// operation makes its upstream call(s) through one shared helper that
// classifies failures into apperr kinds, then applies the aggregate views
// where needed. Service keeps no state between calls.
package employee

import (
	"context"
	"errors"
	"net/http"

	"employee-api/internal/aggregate"
	"employee-api/internal/apperr"
	"employee-api/internal/domain"
	"employee-api/internal/logger"
	"employee-api/internal/upstream"
)

// Operation names, used in logs.
const (
	OpGetByID       = "getById"
	OpGetAll        = "getAll"
	OpSearchByName  = "searchByName"
	OpHighestSalary = "highestSalary"
	OpTopTenEarners = "topTenEarners"
	OpCreate        = "create"
	OpDeleteByID    = "deleteById"
)

type Service struct {
	client *upstream.Client
	log    *logger.Logger
}

func NewService(client *upstream.Client, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{client: client, log: log.With("component", "employee")}
}

// GetByID returns the record with id, or a NotFound error.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Employee, error) {
	rec, err := invoke[domain.Employee](ctx, s, OpGetByID, http.MethodGet, upstream.PathByID, []string{id}, nil)
	if err != nil {
		return domain.Employee{}, err
	}
	if rec == nil {
		return domain.Employee{}, s.fail(OpGetByID, apperr.NotFound(nil))
	}
	return *rec, nil
}

// GetAll returns every record; absent upstream data yields an empty list.
func (s *Service) GetAll(ctx context.Context) ([]domain.Employee, error) {
	return s.all(ctx, OpGetAll)
}

func (s *Service) SearchByName(ctx context.Context, query string) ([]domain.Employee, error) {
	all, err := s.all(ctx, OpSearchByName)
	if err != nil {
		return nil, err
	}
	return aggregate.NameSearch(all, query), nil
}

func (s *Service) HighestSalary(ctx context.Context) (int, error) {
	all, err := s.all(ctx, OpHighestSalary)
	if err != nil {
		return 0, err
	}
	return aggregate.HighestSalary(all), nil
}

func (s *Service) TopTenEarners(ctx context.Context) ([]string, error) {
	all, err := s.all(ctx, OpTopTenEarners)
	if err != nil {
		return nil, err
	}
	return aggregate.TopNEarners(all, aggregate.DefaultTopN), nil
}

// Create posts req upstream and returns the created record.
func (s *Service) Create(ctx context.Context, req domain.CreateEmployeeRequest) (domain.Employee, error) {
	rec, err := invoke[domain.Employee](ctx, s, OpCreate, http.MethodPost, upstream.PathCollection, nil, req)
	if err != nil {
		return domain.Employee{}, err
	}
	if rec == nil {
		return domain.Employee{}, s.fail(OpCreate, apperr.Internal(apperr.TagUnexpected, errors.New("upstream returned no record for create")))
	}
	s.log.Info("employee created", "op", OpCreate, "id", rec.ID)
	return *rec, nil
}

// DeleteByID resolves the record's name, then deletes by name (upstream
// deletes are keyed by name). The delete call is only made once a record
// with a non-blank name has been found.
func (s *Service) DeleteByID(ctx context.Context, id string) (string, error) {
	rec, err := invoke[domain.Employee](ctx, s, OpDeleteByID, http.MethodGet, upstream.PathByID, []string{id}, nil)
	if err != nil {
		return "", err
	}
	if rec == nil || !rec.HasName() {
		return "", s.fail(OpDeleteByID, apperr.NotFound(nil))
	}

	deleted, err := invoke[bool](ctx, s, OpDeleteByID, http.MethodDelete, upstream.PathCollection, nil, domain.DeleteEmployeeRequest{Name: rec.Name})
	if err != nil {
		return "", err
	}
	if deleted == nil || !*deleted {
		// the name vanished between the two calls
		return "", s.fail(OpDeleteByID, apperr.NotFound(nil))
	}
	s.log.Info("employee deleted", "op", OpDeleteByID, "id", id)
	return rec.Name, nil
}

func (s *Service) all(ctx context.Context, op string) ([]domain.Employee, error) {
	list, err := invoke[[]domain.Employee](ctx, s, op, http.MethodGet, upstream.PathCollection, nil, nil)
	if err != nil {
		return nil, err
	}
	if list == nil || *list == nil {
		return []domain.Employee{}, nil
	}
	return *list, nil
}

// invoke is the single entry point to the transport client: one call,
// failures classified and logged.
func invoke[T any](ctx context.Context, s *Service, op, method, path string, pathArgs []string, body any) (*T, error) {
	data, err := upstream.Call[T](ctx, s.client, method, path, pathArgs, body)
	if err != nil {
		return nil, s.fail(op, classify(err))
	}
	return data, nil
}

func (s *Service) fail(op string, aerr *apperr.Error) *apperr.Error {
	kv := []interface{}{"op", op, "kind", aerr.Kind.String()}
	if aerr.StatusCode != 0 {
		kv = append(kv, "status", aerr.StatusCode)
	}
	if aerr.Cause != nil {
		kv = append(kv, "error", aerr.Cause.Error())
	}
	switch aerr.Kind {
	case apperr.KindNotFound, apperr.KindRateLimited:
		s.log.Warn("employee operation failed", kv...)
	default:
		s.log.Error("employee operation failed", kv...)
	}
	return aerr
}
