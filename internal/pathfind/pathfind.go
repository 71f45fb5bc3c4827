// Package pathfind enumerates simple directed paths through the link graph.
package pathfind

import "github.com/alexanderramin/docketflow/internal/domain"

// FindPaths returns every simple path from start to end, following links
// from source to target in link order. A node already on the current path
// is never revisited, so cycles terminate. start == end yields [[end]];
// unconnected endpoints yield nil.
//
// Traversal ignores visibility: hidden nodes are walked like any other.
// Use Visible to restrict the result to what is on screen.
func FindPaths(links []domain.Link, start, end int) [][]int {
	if start == end {
		return [][]int{{end}}
	}

	adj := make(map[int][]int)
	for _, l := range links {
		adj[l.Source] = append(adj[l.Source], l.Target)
	}

	var (
		paths  [][]int
		path   = []int{start}
		onPath = map[int]bool{start: true}
	)

	var walk func(current int)
	walk = func(current int) {
		for _, next := range adj[current] {
			if onPath[next] {
				continue
			}
			path = append(path, next)
			if next == end {
				paths = append(paths, append([]int(nil), path...))
			} else {
				onPath[next] = true
				walk(next)
				delete(onPath, next)
			}
			path = path[:len(path)-1]
		}
	}
	walk(start)

	return paths
}

// Visible keeps the paths whose every node satisfies isVisible.
func Visible(paths [][]int, isVisible func(id int) bool) [][]int {
	var out [][]int
	for _, p := range paths {
		keep := true
		for _, id := range p {
			if !isVisible(id) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, p)
		}
	}
	return out
}

// Shortest returns the paths with the fewest nodes, in their original order.
func Shortest(paths [][]int) [][]int {
	if len(paths) == 0 {
		return nil
	}
	best := len(paths[0])
	for _, p := range paths[1:] {
		if len(p) < best {
			best = len(p)
		}
	}
	var out [][]int
	for _, p := range paths {
		if len(p) == best {
			out = append(out, p)
		}
	}
	return out
}
