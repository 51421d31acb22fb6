// AngelaMos | 2026
// service.go

package project

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Vimal-ZP/Tracker-sub002/internal/activity"
	"github.com/Vimal-ZP/Tracker-sub002/internal/middleware"
)

var (
	ErrCodeTaken      = errors.New("project code is already in use")
	ErrEndBeforeStart = errors.New("end date must be after start date")
)

type Service struct {
	repo       Repository
	activities *activity.Service
}

func NewService(repo Repository, activities *activity.Service) *Service {
	return &Service{repo: repo, activities: activities}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateProjectRequest,
) (*Project, error) {
	if err := checkDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	exists, err := s.repo.ExistsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCodeTaken
	}

	status := req.Status
	if status == "" {
		status = StatusPlanning
	}

	project := &Project{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Code:          code,
		Status:        status,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		ManagerID:     middleware.GetUserID(ctx),
		ManagerName:   middleware.GetUserName(ctx),
		ManagerEmail:  middleware.GetUserEmail(ctx),
		TeamMembers:   StringList(req.TeamMembers),
		Technologies:  StringList(req.Technologies),
		RepositoryURL: req.RepositoryURL,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.record(ctx, activity.ActionCreate, "created project "+project.Name)

	return project, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateProjectRequest,
) (*Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.TeamMembers != nil {
		project.TeamMembers = StringList(*req.TeamMembers)
	}
	if req.Technologies != nil {
		project.Technologies = StringList(*req.Technologies)
	}
	if req.RepositoryURL != nil {
		project.RepositoryURL = req.RepositoryURL
	}
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}

	if err := checkDates(project.StartDate, project.EndDate); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.record(ctx, activity.ActionUpdate, "updated project "+project.Name)

	return project, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, activity.ActionDelete, "deleted project "+project.Name)

	return nil
}

func (s *Service) List(
	ctx context.Context,
	params ListProjectsParams,
) ([]Project, int, error) {
	return s.repo.List(ctx, params)
}

func checkDates(start time.Time, end *time.Time) error {
	if end != nil && !end.After(start) {
		return ErrEndBeforeStart
	}
	return nil
}

func (s *Service) record(ctx context.Context, action, detail string) {
	s.activities.Record(ctx, activity.Entry{
		UserID:   middleware.GetUserID(ctx),
		UserName: middleware.GetUserName(ctx),
		Action:   action,
		Resource: activity.ResourceProject,
		Detail:   detail,
	})
}
