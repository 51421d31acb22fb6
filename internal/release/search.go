// AngelaMos | 2026
// search.go

package release

import (
	"context"
	"sort"
	"strings"
)

const (
	searchMinQueryLength = 2
	searchDefaultLimit   = 20
	searchMaxLimit       = 100
)

const (
	MatchTypeID    = "id"
	MatchTypeTitle = "title"
)

// SearchResult is one matched work item together with the release that
// carries it.
type SearchResult struct {
	ReleaseID       string   `json:"release_id"`
	ReleaseTitle    string   `json:"release_title"`
	ApplicationName string   `json:"application_name"`
	Version         *string  `json:"version,omitempty"`
	WorkItem        WorkItem `json:"work_item"`
	MatchType       string   `json:"match_type"`

	matchPosition  int
	releaseCreated int64
}

type SearchResponse struct {
	Results    []SearchResult `json:"results"`
	TotalCount int            `json:"total_count"`
	Query      string         `json:"query"`
	HasMore    bool           `json:"has_more"`
	Message    string         `json:"message,omitempty"`
}

// Search matches a case-insensitive substring against work item external ids
// and titles across all releases. Candidate releases are over-fetched at
// twice the limit before per-item filtering, so HasMore reflects truncation
// of the over-fetch window, not a true global count.
func (s *Service) Search(
	ctx context.Context,
	query, typeFilter string,
	limit int,
) (*SearchResponse, error) {
	query = strings.TrimSpace(query)

	if limit < 1 {
		limit = searchDefaultLimit
	}
	if limit > searchMaxLimit {
		limit = searchMaxLimit
	}

	if len([]rune(query)) < searchMinQueryLength {
		return &SearchResponse{
			Results:    []SearchResult{},
			TotalCount: 0,
			Query:      query,
			HasMore:    false,
			Message:    "enter at least 2 characters",
		}, nil
	}

	candidates, err := s.repo.SearchCandidates(ctx, query, limit*2)
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(query)

	var results []SearchResult
	for i := range candidates {
		rel := &candidates[i]
		for _, item := range rel.WorkItems {
			if typeFilter != "" && item.Type != typeFilter {
				continue
			}

			result, ok := matchWorkItem(rel, item, lowered)
			if !ok {
				continue
			}
			results = append(results, result)
		}
	}

	rankResults(results)

	hasMore := len(results) > limit
	if hasMore {
		results = results[:limit]
	}
	if results == nil {
		results = []SearchResult{}
	}

	return &SearchResponse{
		Results:    results,
		TotalCount: len(results),
		Query:      query,
		HasMore:    hasMore,
	}, nil
}

// matchWorkItem checks one item against the lowered query. An external-id
// match takes precedence over a title match.
func matchWorkItem(
	rel *Release,
	item WorkItem,
	lowered string,
) (SearchResult, bool) {
	result := SearchResult{
		ReleaseID:       rel.ID,
		ReleaseTitle:    rel.Title,
		ApplicationName: rel.ApplicationName,
		Version:         rel.Version,
		WorkItem:        item,
		releaseCreated:  rel.CreatedAt.UnixNano(),
	}

	if pos := strings.Index(strings.ToLower(item.ExternalID), lowered); pos >= 0 {
		result.MatchType = MatchTypeID
		result.matchPosition = pos
		return result, true
	}

	if pos := strings.Index(strings.ToLower(item.Title), lowered); pos >= 0 {
		result.MatchType = MatchTypeTitle
		result.matchPosition = pos
		return result, true
	}

	return SearchResult{}, false
}

// rankResults orders matches: id-field hits before title-field hits, then
// earlier match position, then newest release first.
func rankResults(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchType != results[j].MatchType {
			return results[i].MatchType == MatchTypeID
		}
		if results[i].matchPosition != results[j].matchPosition {
			return results[i].matchPosition < results[j].matchPosition
		}
		return results[i].releaseCreated > results[j].releaseCreated
	})
}
