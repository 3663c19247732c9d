package entities

import (
	"relgraph-backend/domain/core/valueobjects"
)

// GraphNode is one visual entity in the relationship graph: either a known
// person from the contact store or a ghost synthesized from a text mention.
//
// Like aggregates assembled once per request, GraphNode exposes its fields:
// the node set is built fresh from an immutable input snapshot on every
// assembly call and is owned exclusively by that call, so there is no
// invariant an accessor layer would protect. Position and Velocity are the
// only fields the layout engine mutates.
type GraphNode struct {
	ID          valueobjects.NodeID
	DisplayName string
	RoleBadges  []string
	PrimaryRole string

	// Display attributes copied through from the input snapshot.
	// The engine never interprets them.
	PipelineStage      string
	RelationshipHealth string
	ProductionValue    string

	IsGhost    bool
	IsOrphaned bool

	// IsPinned excludes the node from all position/velocity updates.
	IsPinned bool

	Position valueobjects.Vector
	Velocity valueobjects.Vector
}
