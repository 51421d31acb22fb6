// AngelaMos | 2026
// service.go

package releaseplan

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Vimal-ZP/Tracker-sub002/internal/activity"
	"github.com/Vimal-ZP/Tracker-sub002/internal/middleware"
	"github.com/Vimal-ZP/Tracker-sub002/internal/project"
)

var ErrVersionTaken = errors.New("a plan for this project and version already exists")

// ProjectSource resolves the project whose identity gets snapshotted into a
// new plan.
type ProjectSource interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}

type Service struct {
	repo       Repository
	projects   ProjectSource
	activities *activity.Service
}

func NewService(
	repo Repository,
	projects ProjectSource,
	activities *activity.Service,
) *Service {
	return &Service{repo: repo, projects: projects, activities: activities}
}

func (s *Service) Create(
	ctx context.Context,
	req CreatePlanRequest,
) (*Plan, error) {
	proj, err := s.projects.Get(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByProjectVersion(ctx, proj.ID, req.Version, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrVersionTaken
	}

	status := req.Status
	if status == "" {
		status = StatusPlanned
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	plan := &Plan{
		ID:             uuid.New().String(),
		ProjectID:      proj.ID,
		ProjectName:    proj.Name,
		ProjectCode:    proj.Code,
		Version:        req.Version,
		PlannedDate:    req.PlannedDate,
		Status:         status,
		Priority:       priority,
		EstimatedHours: req.EstimatedHours,
		Features:       StringList(req.Features),
		Dependencies:   StringList(req.Dependencies),
		Risks:          StringList(req.Risks),
		CreatorID:      middleware.GetUserID(ctx),
		CreatorName:    middleware.GetUserName(ctx),
		CreatorEmail:   middleware.GetUserEmail(ctx),
	}
	applyAssignee(plan, req.Assignee)

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}

	s.record(ctx, activity.ActionCreate,
		"created release plan "+plan.ProjectCode+" "+plan.Version)

	return plan, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Plan, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdatePlanRequest,
) (*Plan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Version != nil && *req.Version != plan.Version {
		exists, err := s.repo.ExistsByProjectVersion(
			ctx, plan.ProjectID, *req.Version, plan.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrVersionTaken
		}
		plan.Version = *req.Version
	}

	if req.PlannedDate != nil {
		plan.PlannedDate = *req.PlannedDate
	}
	if req.Status != nil {
		plan.Status = *req.Status
	}
	if req.Priority != nil {
		plan.Priority = *req.Priority
	}
	if req.EstimatedHours != nil {
		plan.EstimatedHours = *req.EstimatedHours
	}
	if req.Assignee != nil {
		applyAssignee(plan, req.Assignee)
	}
	if req.Features != nil {
		plan.Features = StringList(*req.Features)
	}
	if req.Dependencies != nil {
		plan.Dependencies = StringList(*req.Dependencies)
	}
	if req.Risks != nil {
		plan.Risks = StringList(*req.Risks)
	}

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}

	s.record(ctx, activity.ActionUpdate,
		"updated release plan "+plan.ProjectCode+" "+plan.Version)

	return plan, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, activity.ActionDelete,
		"deleted release plan "+plan.ProjectCode+" "+plan.Version)

	return nil
}

func (s *Service) List(
	ctx context.Context,
	params ListPlansParams,
) ([]Plan, int, error) {
	return s.repo.List(ctx, params)
}

func applyAssignee(plan *Plan, assignee *AssigneeRequest) {
	if assignee == nil {
		return
	}
	plan.AssigneeID = &assignee.ID
	plan.AssigneeName = &assignee.Name
	plan.AssigneeEmail = &assignee.Email
}

func (s *Service) record(ctx context.Context, action, detail string) {
	s.activities.Record(ctx, activity.Entry{
		UserID:   middleware.GetUserID(ctx),
		UserName: middleware.GetUserName(ctx),
		Action:   action,
		Resource: activity.ResourceReleasePlan,
		Detail:   detail,
	})
}
