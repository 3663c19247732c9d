package queries

import (
	"relgraph-backend/domain/signals"
)

// AssembleGraphQuery asks for the typed graph built from one signal
// snapshot, without running layout. Consumers use it for static graph
// statistics (degree, orphan count) or to drive their own rendering.
type AssembleGraphQuery struct {
	Snapshot signals.Snapshot
}

// Validate validates the query. Malformed signal entries are excluded
// during assembly rather than rejected up front, so there is nothing to
// check here.
func (q AssembleGraphQuery) Validate() error {
	return nil
}

// AssembleGraphResult is the assembled graph plus its statistics.
type AssembleGraphResult struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
	Stats GraphStats  `json:"stats"`
}

// GraphNode is the wire representation of one assembled node.
type GraphNode struct {
	ID                 string   `json:"id"`
	DisplayName        string   `json:"display_name"`
	RoleBadges         []string `json:"role_badges,omitempty"`
	PrimaryRole        string   `json:"primary_role,omitempty"`
	PipelineStage      string   `json:"pipeline_stage,omitempty"`
	RelationshipHealth string   `json:"relationship_health,omitempty"`
	ProductionValue    string   `json:"production_value,omitempty"`
	IsGhost            bool     `json:"is_ghost"`
	IsOrphaned         bool     `json:"is_orphaned"`
	IsPinned           bool     `json:"is_pinned"`
	Degree             int      `json:"degree"`
	Position           Point    `json:"position"`
	Velocity           Point    `json:"velocity"`
}

// GraphEdge is the wire representation of one assembled edge.
type GraphEdge struct {
	ID                string  `json:"id"`
	SourceID          string  `json:"source_id"`
	TargetID          string  `json:"target_id"`
	Type              string  `json:"type"`
	Weight            float64 `json:"weight"`
	Label             string  `json:"label,omitempty"`
	IsReciprocal      bool    `json:"is_reciprocal"`
	Direction         string  `json:"direction,omitempty"`
	DeducedRelationID string  `json:"deduced_relation_id,omitempty"`
	IsConfirmed       bool    `json:"is_confirmed,omitempty"`
}

// Point is a 2D coordinate on the layout canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GraphStats contains graph statistics
type GraphStats struct {
	NodeCount   int     `json:"node_count"`
	EdgeCount   int     `json:"edge_count"`
	GhostCount  int     `json:"ghost_count"`
	OrphanCount int     `json:"orphan_count"`
	Density     float64 `json:"density"`
}
