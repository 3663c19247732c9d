package queries

import (
	"relgraph-backend/domain/layout"
	"relgraph-backend/domain/signals"
	pkgerrors "relgraph-backend/pkg/errors"
)

// MaxLayoutIterations bounds a single layout request. The simulation is
// CPU-bound and each request runs it to completion, so an unbounded count
// would let one caller monopolize the process.
const MaxLayoutIterations = 10000

// ComputeLayoutQuery assembles the graph from a snapshot and runs the
// force-directed layout over it in one request/response cycle.
type ComputeLayoutQuery struct {
	Snapshot signals.Snapshot

	// Iterations of the simulation loop. Zero returns the deterministic
	// initial placement unchanged; negative selects the default.
	Iterations int

	CanvasWidth  float64
	CanvasHeight float64

	// Clusters hints group nodes for initial placement only.
	Clusters []layout.ClusterHint
}

// Validate validates the query
func (q ComputeLayoutQuery) Validate() error {
	if q.CanvasWidth <= 0 || q.CanvasHeight <= 0 {
		return pkgerrors.NewValidationError("canvas dimensions must be positive")
	}
	if q.Iterations > MaxLayoutIterations {
		return pkgerrors.NewValidationError("iteration count exceeds maximum")
	}
	return nil
}

// ComputeLayoutResult is the positioned graph.
type ComputeLayoutResult struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
	Stats GraphStats  `json:"stats"`

	// Completed is false when the request was cancelled and the positions
	// reflect a partial run.
	Completed bool `json:"completed"`
}
