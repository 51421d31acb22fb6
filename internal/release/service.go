// AngelaMos | 2026
// service.go

package release

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Vimal-ZP/Tracker-sub002/internal/activity"
	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
	"github.com/Vimal-ZP/Tracker-sub002/internal/middleware"
)

var (
	ErrVersionTaken   = errors.New("version is already in use")
	ErrInvalidVersion = errors.New("version must be a full semantic version")
)

// Author is the identity snapshot embedded into a release at creation.
type Author struct {
	ID    string
	Name  string
	Email string
}

func AuthorFromContext(ctx context.Context) Author {
	return Author{
		ID:    middleware.GetUserID(ctx),
		Name:  middleware.GetUserName(ctx),
		Email: middleware.GetUserEmail(ctx),
	}
}

type Service struct {
	repo       Repository
	activities *activity.Service
}

func NewService(repo Repository, activities *activity.Service) *Service {
	return &Service{repo: repo, activities: activities}
}

func (s *Service) Create(
	ctx context.Context,
	author Author,
	req CreateReleaseRequest,
) (*Release, error) {
	if err := s.checkVersion(ctx, req.Version, ""); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	// Publishing moves a release straight to stable.
	if req.IsPublished {
		status = StatusStable
	}

	now := time.Now()
	rel := &Release{
		ID:              uuid.New().String(),
		Title:           req.Title,
		ApplicationName: req.ApplicationName,
		Version:         req.Version,
		Status:          status,
		Type:            req.Type,
		Description:     req.Description,
		Features:        StringList(req.Features),
		BugFixes:        StringList(req.BugFixes),
		BreakingChanges: StringList(req.BreakingChanges),
		WorkItems:       buildWorkItems(req.WorkItems, nil, now),
		AuthorID:        author.ID,
		AuthorName:      author.Name,
		AuthorEmail:     author.Email,
		IsPublished:     req.IsPublished,
	}

	if err := s.repo.Create(ctx, rel); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrVersionTaken
		}
		return nil, err
	}

	s.record(ctx, activity.ActionCreate, rel, "created release "+rel.Title)

	return rel, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Release, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateReleaseRequest,
) (*Release, error) {
	rel, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Version != nil {
		if err := s.checkVersion(ctx, req.Version, rel.ID); err != nil {
			return nil, err
		}
		rel.Version = req.Version
	}

	if req.Title != nil {
		rel.Title = *req.Title
	}
	if req.ApplicationName != nil {
		rel.ApplicationName = *req.ApplicationName
	}
	if req.Status != nil {
		rel.Status = *req.Status
	}
	if req.Type != nil {
		rel.Type = *req.Type
	}
	if req.Description != nil {
		rel.Description = *req.Description
	}
	if req.Features != nil {
		rel.Features = StringList(*req.Features)
	}
	if req.BugFixes != nil {
		rel.BugFixes = StringList(*req.BugFixes)
	}
	if req.BreakingChanges != nil {
		rel.BreakingChanges = StringList(*req.BreakingChanges)
	}
	if req.WorkItems != nil {
		rel.WorkItems = buildWorkItems(*req.WorkItems, rel.WorkItems, time.Now())
	}

	published := false
	if req.IsPublished != nil {
		published = *req.IsPublished && !rel.IsPublished
		rel.IsPublished = *req.IsPublished
		if rel.IsPublished {
			rel.Status = StatusStable
		}
	}

	if err := s.repo.Update(ctx, rel); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrVersionTaken
		}
		return nil, err
	}

	if published {
		s.record(ctx, activity.ActionPublish, rel, "published release "+rel.Title)
	} else {
		s.record(ctx, activity.ActionUpdate, rel, "updated release "+rel.Title)
	}

	return rel, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	rel, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, activity.ActionDelete, rel, "deleted release "+rel.Title)

	return nil
}

func (s *Service) List(
	ctx context.Context,
	params ListReleasesParams,
) ([]Release, int, error) {
	return s.repo.List(ctx, params)
}

type Stats struct {
	TotalReleases     int                `json:"total_releases"`
	PublishedReleases int                `json:"published_releases"`
	ByApplication     []ApplicationCount `json:"by_application"`
	ByType            []TypeCount        `json:"by_type"`
	ByMonth           []MonthCount       `json:"by_month"`
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	total, published, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	byApp, err := s.repo.CountByApplication(ctx)
	if err != nil {
		return nil, err
	}

	byType, err := s.repo.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	byMonth, err := s.repo.CountByMonth(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalReleases:     total,
		PublishedReleases: published,
		ByApplication:     byApp,
		ByType:            byType,
		ByMonth:           byMonth,
	}, nil
}

// checkVersion enforces semantic-version shape and global uniqueness. A nil
// or empty version is always acceptable.
func (s *Service) checkVersion(
	ctx context.Context,
	version *string,
	excludeID string,
) error {
	if version == nil || *version == "" {
		return nil
	}

	if !IsValidVersion(*version) {
		return ErrInvalidVersion
	}

	exists, err := s.repo.VersionExists(ctx, *version, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrVersionTaken
	}

	return nil
}

// buildWorkItems converts incoming work items, minting IDs for new nodes and
// preserving creation timestamps for items that already existed.
func buildWorkItems(
	requests []WorkItemRequest,
	existing WorkItemList,
	now time.Time,
) WorkItemList {
	createdAt := make(map[string]time.Time, len(existing))
	for _, item := range existing {
		createdAt[item.ID] = item.CreatedAt
	}

	items := make(WorkItemList, 0, len(requests))
	for _, req := range requests {
		item := WorkItem{
			ID:          req.ID,
			Type:        req.Type,
			Title:       req.Title,
			ExternalID:  req.ExternalID,
			FlagName:    req.FlagName,
			Remarks:     req.Remarks,
			Hyperlink:   req.Hyperlink,
			ParentID:    req.ParentID,
			ActualHours: req.ActualHours,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if item.ID == "" {
			item.ID = uuid.New().String()
		} else if prev, ok := createdAt[item.ID]; ok {
			item.CreatedAt = prev
		}
		items = append(items, item)
	}

	return items
}

func (s *Service) record(
	ctx context.Context,
	action string,
	rel *Release,
	detail string,
) {
	s.activities.Record(ctx, activity.Entry{
		UserID:          middleware.GetUserID(ctx),
		UserName:        middleware.GetUserName(ctx),
		Action:          action,
		Resource:        activity.ResourceRelease,
		Detail:          detail,
		ApplicationName: rel.ApplicationName,
	})
}
