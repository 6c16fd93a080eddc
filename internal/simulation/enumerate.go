package simulation

import (
	"github.com/specialistvlad/killweb/internal/graph"
	"github.com/specialistvlad/killweb/internal/pathid"
)

// EnumeratePaths returns every simple path from a source to a sink. Pairs
// are visited in insertion order of their endpoints and successors in
// adjacency order. A component that is both source and sink forms no path.
// A graph without sources or sinks yields no paths.
func EnumeratePaths(g *graph.Graph) [][]string {
	sources := g.Sources()
	sinks := g.Sinks()
	if len(sources) == 0 || len(sinks) == 0 {
		return nil
	}

	succ := make(map[string][]string, g.Len())
	for _, name := range g.Names() {
		succ[name] = g.Successors(name)
	}

	var out [][]string
	seen := make(map[string]struct{})
	for _, src := range sources {
		for _, dst := range sinks {
			if src == dst {
				continue
			}
			for _, p := range simplePaths(succ, src, dst) {
				key := pathid.Key(p)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, p)
			}
		}
	}
	return out
}

// simplePaths runs a depth-first search from src and collects every path to
// dst that never revisits a component.
func simplePaths(succ map[string][]string, src, dst string) [][]string {
	var out [][]string
	stack := []string{src}
	onPath := map[string]bool{src: true}

	var walk func(string)
	walk = func(cur string) {
		for _, next := range succ[cur] {
			if onPath[next] {
				continue
			}
			stack = append(stack, next)
			if next == dst {
				out = append(out, append([]string(nil), stack...))
			} else {
				onPath[next] = true
				walk(next)
				onPath[next] = false
			}
			stack = stack[:len(stack)-1]
		}
	}
	walk(src)
	return out
}
