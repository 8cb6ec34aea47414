package workflow

import (
	"slices"

	"probuild/internal/apperr"
	"probuild/internal/models"
)

// ValidateDependencySet checks one status's complete prerequisite list:
// known keys, valid kinds, no self-edge and no duplicate prerequisite.
func ValidateDependencySet(statusKey string, deps []models.JobStatusDependency, known map[string]bool) error {
	if !known[statusKey] {
		return apperr.NotFound("job status", statusKey)
	}
	seen := make(map[string]bool, len(deps))
	for _, d := range deps {
		switch {
		case d.PrerequisiteKey == "":
			return apperr.Invalid("prerequisiteKey", "is required")
		case d.PrerequisiteKey == statusKey:
			return apperr.Invalid("prerequisiteKey", "a status cannot depend on itself")
		case !known[d.PrerequisiteKey]:
			return apperr.Invalid("prerequisiteKey", "unknown status %q", d.PrerequisiteKey)
		case seen[d.PrerequisiteKey]:
			return apperr.Invalid("prerequisiteKey", "%q listed twice", d.PrerequisiteKey)
		case !d.DependencyType.Valid():
			return apperr.Invalid("dependencyType", "must be mandatory or advisory")
		}
		seen[d.PrerequisiteKey] = true
	}
	return nil
}

// ReplaceDependencies returns all with statusKey's edges swapped for next.
func ReplaceDependencies(all []models.JobStatusDependency, statusKey string, next []models.JobStatusDependency) []models.JobStatusDependency {
	out := make([]models.JobStatusDependency, 0, len(all)+len(next))
	for _, d := range all {
		if d.StatusKey != statusKey {
			out = append(out, d)
		}
	}
	for _, d := range next {
		d.StatusKey = statusKey
		out = append(out, d)
	}
	return out
}

// FindCycle returns a cycle in the status -> prerequisite graph as a path
// that starts and ends on the same key, or nil if the graph is acyclic.
func FindCycle(deps []models.JobStatusDependency) []string {
	adj := map[string][]string{}
	for _, d := range deps {
		adj[d.StatusKey] = append(adj[d.StatusKey], d.PrerequisiteKey)
	}
	nodes := make([]string, 0, len(adj))
	for k, next := range adj {
		nodes = append(nodes, k)
		slices.Sort(next)
	}
	slices.Sort(nodes)

	const (
		unvisited = iota
		onStack
		done
	)
	state := map[string]int{}
	var stack []string
	var visit func(n string) []string
	visit = func(n string) []string {
		state[n] = onStack
		stack = append(stack, n)
		for _, m := range adj[n] {
			switch state[m] {
			case onStack:
				i := slices.Index(stack, m)
				return append(slices.Clone(stack[i:]), m)
			case unvisited:
				if c := visit(m); c != nil {
					return c
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
		return nil
	}
	for _, n := range nodes {
		if state[n] == unvisited {
			if c := visit(n); c != nil {
				return c
			}
		}
	}
	return nil
}

// AvailablePrerequisites lists the statuses the "add dependency" picker
// offers for target: everything except target and already selected keys.
func AvailablePrerequisites(statuses []*models.JobStatus, target string, selected []string) []*models.JobStatus {
	out := []*models.JobStatus{}
	for _, s := range statuses {
		if s.Key == target || slices.Contains(selected, s.Key) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// UnmetPrerequisites splits target's prerequisites that are not in visited
// by kind.
func UnmetPrerequisites(deps []models.JobStatusDependency, target string, visited map[string]bool) (mandatory, advisory []string) {
	for _, d := range deps {
		if d.StatusKey != target || visited[d.PrerequisiteKey] {
			continue
		}
		if d.DependencyType == models.DependencyMandatory {
			mandatory = append(mandatory, d.PrerequisiteKey)
		} else {
			advisory = append(advisory, d.PrerequisiteKey)
		}
	}
	return mandatory, advisory
}
