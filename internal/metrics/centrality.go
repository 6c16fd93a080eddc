package metrics

import (
	"cmp"
	"slices"
)

// Degree is the integer degree of one component.
type Degree struct {
	Name   string `json:"name"`
	Degree int    `json:"degree"`
}

// Centrality holds in- and out-degree lists of a killweb.
type Centrality struct {
	In  []Degree `json:"in"`
	Out []Degree `json:"out"`
}

// NodeCentrality returns the in- and out-degree of every component with a
// non-zero degree, each list sorted descending by degree and then descending
// by name.
func (a *Aggregator) NodeCentrality() Centrality {
	var c Centrality
	for _, name := range a.graph.Names() {
		if d := a.graph.InDegree(name); d > 0 {
			c.In = append(c.In, Degree{Name: name, Degree: d})
		}
		if d := a.graph.OutDegree(name); d > 0 {
			c.Out = append(c.Out, Degree{Name: name, Degree: d})
		}
	}
	slices.SortFunc(c.In, byDegreeThenNameDesc)
	slices.SortFunc(c.Out, byDegreeThenNameDesc)
	return c
}

func byDegreeThenNameDesc(x, y Degree) int {
	if d := cmp.Compare(y.Degree, x.Degree); d != 0 {
		return d
	}
	return cmp.Compare(y.Name, x.Name)
}
