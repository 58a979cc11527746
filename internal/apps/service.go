package apps

import (
	"context"
	"errors"
	"log/slog"

	pkgerrors "session-server/pkg/errors"
	"session-server/pkg/sentinel"
)

type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

var (
	errCreateFailed = pkgerrors.New(pkgerrors.CodeInternal, "Failed to create app. Please try again.")
	errDeleteFailed = pkgerrors.New(pkgerrors.CodeInternal, "Failed to delete app. Please try again.")
)

func (s *Service) List(ctx context.Context) ([]App, error) {
	return s.store.List(ctx)
}

// Create registers a new app. Names are unique; a duplicate reports conflict.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*App, error) {
	if req.Name == "" || req.Path == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "App name and path are required")
	}

	_, err := s.store.FindByName(ctx, req.Name)
	if err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "App with this name already exists")
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.ErrorContext(ctx, "apps: name lookup failed", "error", err)
		return nil, errCreateFailed
	}

	created, err := s.store.Create(ctx, App{Name: req.Name, Path: req.Path})
	if err != nil {
		s.logger.ErrorContext(ctx, "apps: insert failed", "error", err)
		return nil, errCreateFailed
	}
	return created, nil
}

// Delete removes an app by id; deleting an unknown id reports not-found.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "App not found")
		}
		s.logger.ErrorContext(ctx, "apps: id lookup failed", "error", err)
		return errDeleteFailed
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "apps: delete failed", "error", err)
		return errDeleteFailed
	}
	return nil
}
