package navigator

// Filter returns the entries of order whose workspace has at least one
// window and sits on monitor. The result keeps declared order and is always
// a subsequence of order; active workspaces missing from order are dropped.
func Filter(order []string, workspaces []Workspace, monitor string) []string {
	live := make(map[string]Workspace, len(workspaces))
	for _, ws := range workspaces {
		if _, ok := live[ws.ID]; ok {
			continue
		}
		live[ws.ID] = ws
	}

	var filtered []string
	for _, id := range order {
		ws, ok := live[id]
		if !ok {
			continue
		}
		if ws.Monitor == monitor && ws.Windows > 0 {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

// Locate returns the index of current in filtered.
// ok is false when current is not present.
func Locate(filtered []string, current string) (index int, ok bool) {
	for i, id := range filtered {
		if id == current {
			return i, true
		}
	}
	return -1, false
}

// Resolve picks the target workspace for a step in dir.
//
// A located index moves one step and never wraps: stepping past either end
// is a no-op. An unlocated current workspace resolves to filtered[0]
// whatever the direction.
func Resolve(filtered []string, index int, located bool, dir Direction) (string, bool) {
	if len(filtered) == 0 {
		return "", false
	}
	if !located {
		return filtered[0], true
	}

	candidate := index
	switch dir {
	case Next:
		candidate++
	case Prev:
		candidate--
	default:
		return "", false
	}
	if candidate < 0 || candidate >= len(filtered) {
		return "", false
	}
	return filtered[candidate], true
}
