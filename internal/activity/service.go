// AngelaMos | 2026
// service.go

package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Entry describes one auditable event.
type Entry struct {
	UserID          string
	UserName        string
	Action          string
	Resource        string
	Detail          string
	ApplicationName string
}

// Record appends an audit entry. Failures are logged and swallowed: audit
// logging is a side effect and must never fail or roll back the primary
// operation.
func (s *Service) Record(ctx context.Context, entry Entry) {
	if entry.UserID == "" || !IsValidAction(entry.Action) {
		return
	}

	record := &Activity{
		ID:       uuid.New().String(),
		UserID:   entry.UserID,
		UserName: entry.UserName,
		Action:   entry.Action,
		Resource: entry.Resource,
		Detail:   entry.Detail,
	}
	if entry.ApplicationName != "" {
		record.ApplicationName = &entry.ApplicationName
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		slog.Warn("failed to record activity",
			"action", entry.Action,
			"resource", entry.Resource,
			"error", err,
		)
	}
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
) ([]Activity, int, error) {
	return s.repo.List(ctx, params)
}

type Stats struct {
	ByAction   []ActionCount   `json:"by_action"`
	ByResource []ResourceCount `json:"by_resource"`
	TopUsers   []UserCount     `json:"top_users"`
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	byAction, err := s.repo.CountByAction(ctx)
	if err != nil {
		return nil, err
	}

	byResource, err := s.repo.CountByResource(ctx)
	if err != nil {
		return nil, err
	}

	topUsers, err := s.repo.TopUsers(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &Stats{
		ByAction:   byAction,
		ByResource: byResource,
		TopUsers:   topUsers,
	}, nil
}

type ListParams struct {
	Page     int
	Limit    int
	UserID   string
	Action   string
	Resource string
	From     *time.Time
	To       *time.Time
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
