package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"relgraph-backend/application/queries"
	"relgraph-backend/application/queries/bus"
	"relgraph-backend/application/services"
	"relgraph-backend/domain/layout"
)

// ComputeLayoutHandler handles combined assembly + layout queries
type ComputeLayoutHandler struct {
	assembler *services.GraphAssembler
	engine    *layout.Engine
	logger    *zap.Logger
}

// NewComputeLayoutHandler creates a new layout handler
func NewComputeLayoutHandler(assembler *services.GraphAssembler, engine *layout.Engine, logger *zap.Logger) *ComputeLayoutHandler {
	return &ComputeLayoutHandler{
		assembler: assembler,
		engine:    engine,
		logger:    logger,
	}
}

// Handle assembles the graph and runs the layout simulation. Cancellation of
// ctx mid-run is not an error: the result carries the last computed
// positions with Completed set to false.
func (h *ComputeLayoutHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ComputeLayoutQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	nodes, edges := h.assembler.Assemble(q.Snapshot)

	nodes = h.engine.Run(ctx, nodes, edges, layout.Options{
		Iterations: q.Iterations,
		Bounds:     layout.Bounds{Width: q.CanvasWidth, Height: q.CanvasHeight},
		Clusters:   q.Clusters,
	})

	resultNodes, resultEdges, stats := toResultGraph(nodes, edges)

	return &queries.ComputeLayoutResult{
		Nodes:     resultNodes,
		Edges:     resultEdges,
		Stats:     stats,
		Completed: ctx.Err() == nil,
	}, nil
}
