package di

import "sort"

// Verify walks the declared dependency graph without invoking any factory.
// It reports the first missing dependency or cycle in name order, with the
// same error types resolution would return. Lookups made by factories at
// run time through GetContext are not declared and so not checked.
func (r *Registry) Verify() error {
	graph := r.snapshotGraph()

	names := make([]string, 0, len(graph))
	for name := range graph {
		names = append(names, name)
	}
	sort.Strings(names)

	done := make(map[string]bool, len(graph)) // fully verified (diamonds)
	for _, name := range names {
		if err := verifyNode(graph, name, nil, done); err != nil {
			return err
		}
	}
	return nil
}

func verifyNode(graph map[string][]string, name string, path []string, done map[string]bool) error {
	for _, ancestor := range path {
		if ancestor == name {
			return &CircularDependencyError{Root: name, Chain: append([]string(nil), path...)}
		}
	}
	if done[name] {
		return nil
	}

	path = append(path, name)
	for _, dep := range graph[name] {
		if _, ok := graph[dep]; !ok {
			return &DependencyNotFoundError{Name: dep, RequestedBy: name}
		}
		if err := verifyNode(graph, dep, path, done); err != nil {
			return err
		}
	}
	done[name] = true
	return nil
}

// Levels groups entry names by dependency depth: level 0 has no declared
// dependencies, and every entry appears after all of its dependencies.
// Names within a level are sorted.
func (r *Registry) Levels() ([][]string, error) {
	if err := r.Verify(); err != nil {
		return nil, err
	}
	graph := r.snapshotGraph()

	inDegree := make(map[string]int, len(graph))
	dependents := make(map[string][]string) // dependency -> entries needing it
	for name := range graph {
		inDegree[name] = 0
	}
	for name, deps := range graph {
		for _, dep := range deps {
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for name, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, name)
		}
	}

	var levels [][]string
	for len(queue) > 0 {
		sort.Strings(queue)
		levels = append(levels, queue)

		var next []string
		for _, name := range queue {
			for _, dependent := range dependents[name] {
				inDegree[dependent]--
				if inDegree[dependent] == 0 {
					next = append(next, dependent)
				}
			}
		}
		queue = next
	}
	return levels, nil
}

func (r *Registry) snapshotGraph() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	graph := make(map[string][]string, len(r.entries))
	for name, e := range r.entries {
		graph[name] = e.deps
	}
	return graph
}
