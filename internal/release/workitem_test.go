// AngelaMos | 2026
// workitem_test.go

package release

import (
	"math/rand"
	"testing"
)

func item(id, typ, title, parentID string) WorkItem {
	return WorkItem{ID: id, Type: typ, Title: title, ParentID: parentID}
}

func ids(items []WorkItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func assertOrder(t *testing.T, got []WorkItem, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d items %v, want %d %v", len(got), ids(got), len(want), want)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %q, want %q (full order %v)", i, got[i].ID, id, ids(got))
		}
	}
}

func TestOrderWorkItems_TypePriority(t *testing.T) {
	items := []WorkItem{
		item("i1", WorkItemIncident, "Outage", ""),
		item("b1", WorkItemBug, "Crash", ""),
		item("f1", WorkItemFeature, "Export", ""),
		item("e1", WorkItemEpic, "Revamp", ""),
		item("s1", WorkItemUserStory, "Login", ""),
	}

	got := OrderWorkItems(items)
	assertOrder(t, got, []string{"e1", "f1", "s1", "b1", "i1"})
}

func TestOrderWorkItems_TitleThenIDTiebreak(t *testing.T) {
	items := []WorkItem{
		item("b", WorkItemBug, "Same", ""),
		item("a", WorkItemBug, "Same", ""),
		item("c", WorkItemBug, "Alpha", ""),
	}

	got := OrderWorkItems(items)
	assertOrder(t, got, []string{"c", "a", "b"})
}

func TestOrderWorkItems_ChildrenFollowParent(t *testing.T) {
	items := []WorkItem{
		item("b1", WorkItemBug, "Standalone bug", ""),
		item("s1", WorkItemUserStory, "Story under epic", "e1"),
		item("e1", WorkItemEpic, "Epic", ""),
		item("f1", WorkItemFeature, "Feature under epic", "e1"),
	}

	got := OrderWorkItems(items)
	assertOrder(t, got, []string{"e1", "f1", "s1", "b1"})
}

func TestOrderWorkItems_DepthFirst(t *testing.T) {
	items := []WorkItem{
		item("s1", WorkItemUserStory, "Story", "f1"),
		item("f1", WorkItemFeature, "Feature", "e1"),
		item("e1", WorkItemEpic, "Epic", ""),
		item("f2", WorkItemFeature, "Second feature", "e1"),
	}

	got := OrderWorkItems(items)
	assertOrder(t, got, []string{"e1", "f1", "s1", "f2"})
}

func TestOrderWorkItems_OrphanPromotedToRoot(t *testing.T) {
	items := []WorkItem{
		item("e1", WorkItemEpic, "Epic", ""),
		item("o1", WorkItemBug, "Orphan", "missing-parent"),
	}

	got := OrderWorkItems(items)
	assertOrder(t, got, []string{"e1", "o1"})
}

func TestOrderWorkItems_CycleEmitsEveryItemOnce(t *testing.T) {
	items := []WorkItem{
		item("a", WorkItemFeature, "A", "b"),
		item("b", WorkItemFeature, "B", "a"),
		item("e1", WorkItemEpic, "Epic", ""),
	}

	got := OrderWorkItems(items)
	if len(got) != len(items) {
		t.Fatalf("got %d items, want %d: %v", len(got), len(items), ids(got))
	}

	seen := make(map[string]int)
	for _, it := range got {
		seen[it.ID]++
	}
	for _, it := range items {
		if seen[it.ID] != 1 {
			t.Errorf("item %q emitted %d times, want exactly once", it.ID, seen[it.ID])
		}
	}
}

func TestOrderWorkItems_Deterministic(t *testing.T) {
	items := []WorkItem{
		item("s1", WorkItemUserStory, "Story", "f1"),
		item("b1", WorkItemBug, "Bug", ""),
		item("f1", WorkItemFeature, "Feature", "e1"),
		item("e1", WorkItemEpic, "Epic", ""),
		item("o1", WorkItemIncident, "Orphan", "gone"),
	}

	first := OrderWorkItems(items)
	// Shuffled input must produce the same order.
	shuffled := []WorkItem{items[3], items[0], items[4], items[2], items[1]}
	second := OrderWorkItems(shuffled)

	assertOrder(t, second, ids(first))
}

func TestOrderWorkItems_PathologicalParents(t *testing.T) {
	// Mutual cycle, self-referencing parent, orphan and a normal subtree
	// together; order must be stable across shuffles and emit each item once.
	items := []WorkItem{
		item("a", WorkItemFeature, "A", "b"),
		item("b", WorkItemFeature, "B", "a"),
		item("self", WorkItemBug, "Self parent", "self"),
		item("o1", WorkItemBug, "Orphan", "gone"),
		item("e1", WorkItemEpic, "Epic", ""),
		item("f1", WorkItemFeature, "Feature", "e1"),
	}

	want := ids(OrderWorkItems(items))

	epicPos, bugPos := -1, -1
	for i, id := range want {
		switch id {
		case "e1":
			epicPos = i
		case "self":
			bugPos = i
		}
	}
	if epicPos == -1 || bugPos == -1 || epicPos > bugPos {
		t.Fatalf("epic at %d, bug at %d in %v; want epic first", epicPos, bugPos, want)
	}

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		shuffled := append([]WorkItem(nil), items...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := OrderWorkItems(shuffled)
		assertOrder(t, got, want)

		seen := make(map[string]int)
		for _, it := range got {
			seen[it.ID]++
		}
		for _, it := range items {
			if seen[it.ID] != 1 {
				t.Fatalf("trial %d: item %q emitted %d times, want exactly once",
					trial, it.ID, seen[it.ID])
			}
		}
	}
}

func TestOrderWorkItems_Empty(t *testing.T) {
	got := OrderWorkItems(nil)
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no items, got %v", ids(got))
	}
}

func TestParentTitle(t *testing.T) {
	items := []WorkItem{
		item("e1", WorkItemEpic, "Epic title", ""),
		item("f1", WorkItemFeature, "Feature", "e1"),
		item("o1", WorkItemBug, "Orphan", "gone"),
	}

	if got := ParentTitle(items[1], items); got != "Epic title" {
		t.Errorf("resolved parent: got %q, want %q", got, "Epic title")
	}
	if got := ParentTitle(items[0], items); got != "" {
		t.Errorf("root item: got %q, want empty", got)
	}
	if got := ParentTitle(items[2], items); got != "" {
		t.Errorf("unresolvable parent: got %q, want empty", got)
	}
}
