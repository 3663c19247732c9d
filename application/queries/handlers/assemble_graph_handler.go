package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"relgraph-backend/application/queries"
	"relgraph-backend/application/queries/bus"
	"relgraph-backend/application/services"
)

// AssembleGraphHandler handles graph assembly queries
type AssembleGraphHandler struct {
	assembler *services.GraphAssembler
	logger    *zap.Logger
}

// NewAssembleGraphHandler creates a new assembly handler
func NewAssembleGraphHandler(assembler *services.GraphAssembler, logger *zap.Logger) *AssembleGraphHandler {
	return &AssembleGraphHandler{
		assembler: assembler,
		logger:    logger,
	}
}

// Handle executes the assembly query
func (h *AssembleGraphHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.AssembleGraphQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	nodes, edges := h.assembler.Assemble(q.Snapshot)
	resultNodes, resultEdges, stats := toResultGraph(nodes, edges)

	return &queries.AssembleGraphResult{
		Nodes: resultNodes,
		Edges: resultEdges,
		Stats: stats,
	}, nil
}
