package handlers

import (
	"relgraph-backend/application/queries"
	"relgraph-backend/domain/core/entities"
)

// toResultGraph converts assembled entities into their wire representation
// and derives the per-node degree and graph statistics.
func toResultGraph(nodes []*entities.GraphNode, edges []*entities.GraphEdge) ([]queries.GraphNode, []queries.GraphEdge, queries.GraphStats) {
	degrees := make(map[string]int, len(nodes))
	pairs := make(map[[2]string]bool, len(edges))
	outEdges := make([]queries.GraphEdge, 0, len(edges))
	for _, edge := range edges {
		src, dst := edge.SourceID.String(), edge.TargetID.String()
		degrees[src]++
		degrees[dst]++
		if src > dst {
			src, dst = dst, src
		}
		pairs[[2]string{src, dst}] = true
		outEdges = append(outEdges, queries.GraphEdge{
			ID:                edge.ID,
			SourceID:          edge.SourceID.String(),
			TargetID:          edge.TargetID.String(),
			Type:              string(edge.Type),
			Weight:            edge.Weight,
			Label:             edge.Label,
			IsReciprocal:      edge.IsReciprocal,
			Direction:         string(edge.Direction),
			DeducedRelationID: edge.DeducedRelationID,
			IsConfirmed:       edge.IsConfirmed,
		})
	}

	stats := queries.GraphStats{
		NodeCount: len(nodes),
		EdgeCount: len(edges),
	}

	outNodes := make([]queries.GraphNode, 0, len(nodes))
	for _, node := range nodes {
		if node.IsGhost {
			stats.GhostCount++
		}
		if node.IsOrphaned {
			stats.OrphanCount++
		}
		outNodes = append(outNodes, queries.GraphNode{
			ID:                 node.ID.String(),
			DisplayName:        node.DisplayName,
			RoleBadges:         node.RoleBadges,
			PrimaryRole:        node.PrimaryRole,
			PipelineStage:      node.PipelineStage,
			RelationshipHealth: node.RelationshipHealth,
			ProductionValue:    node.ProductionValue,
			IsGhost:            node.IsGhost,
			IsOrphaned:         node.IsOrphaned,
			IsPinned:           node.IsPinned,
			Degree:             degrees[node.ID.String()],
			Position:           queries.Point{X: node.Position.X, Y: node.Position.Y},
			Velocity:           queries.Point{X: node.Velocity.X, Y: node.Velocity.Y},
		})
	}

	// Density counts each connected pair once. The graph is a multigraph
	// (a co-mention and a family link can join the same two people), so
	// counting raw edges could push the ratio past 1.
	if len(nodes) > 1 {
		maxPairs := float64(len(nodes)) * float64(len(nodes)-1) / 2
		stats.Density = float64(len(pairs)) / maxPairs
	}

	return outNodes, outEdges, stats
}
