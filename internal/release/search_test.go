// AngelaMos | 2026
// search_test.go

package release

import (
	"context"
	"testing"
	"time"
)

// stubSearchRepo serves canned candidates; every other Repository method is
// unused by Search and left to panic via the embedded nil interface.
type stubSearchRepo struct {
	Repository
	candidates []Release
}

func (s *stubSearchRepo) SearchCandidates(
	_ context.Context,
	_ string,
	_ int,
) ([]Release, error) {
	return s.candidates, nil
}

func searchService(candidates []Release) *Service {
	return NewService(&stubSearchRepo{candidates: candidates}, nil)
}

func release(id, title string, created time.Time, items ...WorkItem) Release {
	return Release{
		ID:              id,
		Title:           title,
		ApplicationName: "tracker",
		WorkItems:       items,
		CreatedAt:       created,
	}
}

func TestSearch_ShortQuery(t *testing.T) {
	svc := searchService(nil)

	for _, query := range []string{"", "a", "  a  "} {
		resp, err := svc.Search(context.Background(), query, "", 20)
		if err != nil {
			t.Fatalf("query %q: %v", query, err)
		}
		if resp.Message != "enter at least 2 characters" {
			t.Errorf("query %q: message %q", query, resp.Message)
		}
		if len(resp.Results) != 0 || resp.TotalCount != 0 || resp.HasMore {
			t.Errorf("query %q: expected empty response, got %+v", query, resp)
		}
	}
}

func TestSearch_IDMatchRanksAboveTitleMatch(t *testing.T) {
	now := time.Now()
	svc := searchService([]Release{
		release("r1", "One", now,
			WorkItem{ID: "w1", Type: WorkItemBug, Title: "PROJ-42 mentioned in title"},
			WorkItem{ID: "w2", Type: WorkItemBug, Title: "Other", ExternalID: "PROJ-42"},
		),
	})

	resp, err := svc.Search(context.Background(), "proj-42", "", 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].WorkItem.ID != "w2" || resp.Results[0].MatchType != MatchTypeID {
		t.Errorf("first result: got %q match on %q, want id match on w2",
			resp.Results[0].MatchType, resp.Results[0].WorkItem.ID)
	}
	if resp.Results[1].MatchType != MatchTypeTitle {
		t.Errorf("second result: got %q, want title match", resp.Results[1].MatchType)
	}
}

func TestSearch_EarlierMatchPositionWins(t *testing.T) {
	now := time.Now()
	svc := searchService([]Release{
		release("r1", "One", now,
			WorkItem{ID: "late", Type: WorkItemBug, Title: "fix the login flow"},
			WorkItem{ID: "early", Type: WorkItemBug, Title: "login crash"},
		),
	})

	resp, err := svc.Search(context.Background(), "login", "", 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].WorkItem.ID != "early" {
		t.Errorf("first result: got %q, want %q", resp.Results[0].WorkItem.ID, "early")
	}
}

func TestSearch_NewerReleaseBreaksTies(t *testing.T) {
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := old.AddDate(1, 0, 0)
	svc := searchService([]Release{
		release("old", "Old", old,
			WorkItem{ID: "w-old", Type: WorkItemBug, Title: "payment retry"},
		),
		release("new", "New", recent,
			WorkItem{ID: "w-new", Type: WorkItemBug, Title: "payment retry"},
		),
	})

	resp, err := svc.Search(context.Background(), "payment", "", 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].ReleaseID != "new" {
		t.Errorf("first result from release %q, want %q", resp.Results[0].ReleaseID, "new")
	}
}

func TestSearch_TypeFilter(t *testing.T) {
	now := time.Now()
	svc := searchService([]Release{
		release("r1", "One", now,
			WorkItem{ID: "w1", Type: WorkItemBug, Title: "search bug"},
			WorkItem{ID: "w2", Type: WorkItemFeature, Title: "search feature"},
		),
	})

	resp, err := svc.Search(context.Background(), "search", WorkItemFeature, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 || resp.Results[0].WorkItem.ID != "w2" {
		t.Fatalf("expected only the feature item, got %+v", resp.Results)
	}
}

func TestSearch_LimitAndHasMore(t *testing.T) {
	now := time.Now()
	items := make([]WorkItem, 5)
	for i := range items {
		items[i] = WorkItem{
			ID:    string(rune('a' + i)),
			Type:  WorkItemBug,
			Title: "shared term",
		}
	}
	svc := searchService([]Release{release("r1", "One", now, items...)})

	resp, err := svc.Search(context.Background(), "shared", "", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(resp.Results))
	}
	if !resp.HasMore {
		t.Error("expected HasMore with truncated results")
	}
	if resp.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", resp.TotalCount)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	svc := searchService([]Release{
		release("r1", "One", time.Now(),
			WorkItem{ID: "w1", Type: WorkItemBug, Title: "unrelated"},
		),
	})

	resp, err := svc.Search(context.Background(), "zzzz", "", 20)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Results == nil {
		t.Fatal("results must be an empty slice, not nil")
	}
	if len(resp.Results) != 0 || resp.HasMore {
		t.Errorf("expected no results, got %+v", resp)
	}
}
