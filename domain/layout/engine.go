// Package layout computes stable 2D positions for an assembled relationship
// graph with an iterative force simulation: repulsion (Barnes-Hut-approximated
// at scale), spring attraction along edges, center gravity and collision
// separation, under a linear cooling schedule.
package layout

import (
	"context"
	"runtime"

	"go.uber.org/zap"

	"relgraph-backend/domain/config"
	"relgraph-backend/domain/core/entities"
	"relgraph-backend/domain/core/valueobjects"
)

// Bounds is the canvas the layout targets.
type Bounds struct {
	Width  float64
	Height float64
}

// ClusterHint groups node ids for visual placement around a shared center.
// It only influences initial positions, not the simulation itself.
type ClusterHint struct {
	Label     string
	MemberIDs []string
}

// Options configures one layout run.
type Options struct {
	// Iterations is the number of simulation steps. Zero runs placement
	// only; a negative value selects the configured default.
	Iterations int
	Bounds     Bounds
	Clusters   []ClusterHint

	// Yield is invoked periodically so a concurrently running render loop
	// is not starved. Defaults to runtime.Gosched.
	Yield func()
}

// Engine runs the force-directed layout. It holds no per-run state: each Run
// owns its node snapshot exclusively, so concurrent runs over distinct
// snapshots need no locking.
type Engine struct {
	cfg    *config.DomainConfig
	logger *zap.Logger
}

// NewEngine creates a layout engine.
func NewEngine(cfg *config.DomainConfig, logger *zap.Logger) *Engine {
	return &Engine{cfg: cfg, logger: logger}
}

// Run assigns deterministic initial positions and then advances the
// simulation, returning the nodes with final positions and velocities.
//
// Cancelling ctx stops the loop and returns the positions computed so far;
// that is an expected outcome, not an error. Each step either completes in
// full or is never started, so a cancelled result is always consistent with
// some prior iteration.
func (e *Engine) Run(ctx context.Context, nodes []*entities.GraphNode, edges []*entities.GraphEdge, opts Options) []*entities.GraphNode {
	if len(nodes) == 0 {
		return nodes
	}

	iterations := opts.Iterations
	if iterations < 0 {
		iterations = e.cfg.DefaultIterations
	}
	yield := opts.Yield
	if yield == nil {
		yield = runtime.Gosched
	}

	assignInitialPositions(nodes, opts, e.cfg)
	if iterations == 0 {
		return nodes
	}

	center := valueobjects.Vector{X: opts.Bounds.Width / 2, Y: opts.Bounds.Height / 2}
	evaluator := newForceEvaluator(e.cfg, center, nodes)

	for step := 0; step < iterations; step++ {
		if ctx.Err() != nil {
			e.logger.Debug("Layout cancelled, returning partial result",
				zap.Int("completedSteps", step),
				zap.Int("requestedIterations", iterations),
			)
			return nodes
		}

		// Linear cooling: forces and damping shrink toward zero so the
		// layout settles instead of oscillating.
		temperature := 1 - float64(step)/float64(iterations)
		if temperature < e.cfg.MinTemperature {
			temperature = e.cfg.MinTemperature
		}

		evaluator.Step(nodes, edges, temperature)

		if (step+1)%e.cfg.YieldInterval == 0 {
			yield()
		}
	}

	e.logger.Debug("Layout complete",
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)),
		zap.Int("iterations", iterations),
	)
	return nodes
}
