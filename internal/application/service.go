// AngelaMos | 2026
// service.go

package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Vimal-ZP/Tracker-sub002/internal/activity"
	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
	"github.com/Vimal-ZP/Tracker-sub002/internal/middleware"
)

var ErrNameTaken = errors.New("application name is already in use")

type Service struct {
	repo       Repository
	activities *activity.Service
}

func NewService(repo Repository, activities *activity.Service) *Service {
	return &Service{repo: repo, activities: activities}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateApplicationRequest,
) (*Application, error) {
	app := &Application{
		ID:          uuid.New().String(),
		Name:        normalizeName(req.Name),
		DisplayName: req.DisplayName,
		Description: req.Description,
		IsActive:    true,
	}
	if app.DisplayName == "" {
		app.DisplayName = app.Name
	}

	if err := s.repo.Create(ctx, app); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	s.record(ctx, activity.ActionCreate, app, "registered application "+app.Name)

	return app, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Application, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateApplicationRequest,
) (*Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		app.Name = normalizeName(*req.Name)
	}
	if req.DisplayName != nil {
		app.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		app.Description = *req.Description
	}
	if req.IsActive != nil {
		app.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, app); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	s.record(ctx, activity.ActionUpdate, app, "updated application "+app.Name)

	return app, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, activity.ActionDelete, app, "removed application "+app.Name)

	return nil
}

func (s *Service) List(
	ctx context.Context,
	activeOnly bool,
) ([]Application, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) record(
	ctx context.Context,
	action string,
	app *Application,
	detail string,
) {
	s.activities.Record(ctx, activity.Entry{
		UserID:          middleware.GetUserID(ctx),
		UserName:        middleware.GetUserName(ctx),
		Action:          action,
		Resource:        activity.ResourceApplication,
		Detail:          detail,
		ApplicationName: app.Name,
	})
}
