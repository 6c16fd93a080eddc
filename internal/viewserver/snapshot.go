package viewserver

import (
	"encoding/json"
	"fmt"

	"github.com/specialistvlad/killweb/internal/graph"
	"github.com/specialistvlad/killweb/internal/metrics"
)

// Results is the payload of the "results" event.
type Results struct {
	RunID       string              `json:"run_id,omitempty"`
	Iterations  int                 `json:"iterations"`
	Leaderboard []metrics.PathStats `json:"leaderboard"`
	Centrality  metrics.Centrality  `json:"centrality"`
}

// Snapshot is everything a newly connected client is sent.
type Snapshot struct {
	Graph   *graph.View
	Results *Results
}

// InspectError is the payload of the "inspect_error" event.
type InspectError struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// toWire converts v into plain maps and slices so the socket.io encoder never
// sees tagged structs.
func toWire(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return out, nil
}
