// AngelaMos | 2026
// workitem.go

package release

import (
	"sort"
)

// OrderWorkItems flattens a work-item forest into its deterministic display
// order: roots sorted by (type priority, title), each immediately followed by
// its children ordered under the same rule, depth first. Items whose parent
// is not present in the set are promoted to roots. The same ordering feeds
// both the on-screen table and file export, so the two can never disagree.
//
// A visited set stops re-emission: cyclic parent references are skipped once
// seen, and every input item appears in the output exactly once.
func OrderWorkItems(items []WorkItem) []WorkItem {
	if len(items) == 0 {
		return []WorkItem{}
	}

	byID := make(map[string]WorkItem, len(items))
	children := make(map[string][]WorkItem)
	for _, item := range items {
		if item.ID != "" {
			byID[item.ID] = item
		}
	}

	var roots []WorkItem
	for _, item := range items {
		if item.ParentID == "" {
			roots = append(roots, item)
			continue
		}
		if _, ok := byID[item.ParentID]; !ok {
			// Orphaned reference: promote to root rather than drop.
			roots = append(roots, item)
			continue
		}
		children[item.ParentID] = append(children[item.ParentID], item)
	}

	sortItems(roots)
	for _, kids := range children {
		sortItems(kids)
	}

	ordered := make([]WorkItem, 0, len(items))
	visited := make(map[string]bool, len(items))

	var emit func(item WorkItem)
	emit = func(item WorkItem) {
		if item.ID != "" {
			if visited[item.ID] {
				return
			}
			visited[item.ID] = true
		}
		ordered = append(ordered, item)
		for _, child := range children[item.ID] {
			emit(child)
		}
	}

	for _, root := range roots {
		emit(root)
	}

	// Nodes trapped in a parent cycle are reachable from no root; emit them
	// in sorted order so nothing is silently dropped.
	if len(ordered) < len(items) {
		var leftover []WorkItem
		for _, item := range items {
			if item.ID != "" && !visited[item.ID] {
				leftover = append(leftover, item)
			}
		}
		sortItems(leftover)
		for _, item := range leftover {
			emit(item)
		}
	}

	return ordered
}

func sortItems(items []WorkItem) {
	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := TypePriority(items[i].Type), TypePriority(items[j].Type)
		if pi != pj {
			return pi < pj
		}
		if items[i].Title != items[j].Title {
			return items[i].Title < items[j].Title
		}
		return items[i].ID < items[j].ID
	})
}

// ParentTitle resolves the title of an item's parent within the same set.
// Returns the empty string when the item has no parent or the reference
// cannot be resolved.
func ParentTitle(item WorkItem, items []WorkItem) string {
	if item.ParentID == "" {
		return ""
	}
	for _, candidate := range items {
		if candidate.ID == item.ParentID {
			return candidate.Title
		}
	}
	return ""
}
