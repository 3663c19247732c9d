package entities

import (
	"relgraph-backend/domain/core/valueobjects"
)

// EdgeType is the closed set of relationship categories. Adding a category
// means adding a constant here and a case to every switch that matches on it;
// Valid acts as the exhaustiveness guard at the input boundary.
type EdgeType string

const (
	EdgeTypeBusinessContext   EdgeType = "business_context"
	EdgeTypeReferral          EdgeType = "referral"
	EdgeTypeRecruitingTree    EdgeType = "recruiting_tree"
	EdgeTypeCoAttendee        EdgeType = "co_attendee"
	EdgeTypeCommunication     EdgeType = "communication_link"
	EdgeTypeMentionedTogether EdgeType = "mentioned_together"
	EdgeTypeDeducedFamily     EdgeType = "deduced_family"
)

// Valid reports whether t is one of the known edge types.
func (t EdgeType) Valid() bool {
	switch t {
	case EdgeTypeBusinessContext,
		EdgeTypeReferral,
		EdgeTypeRecruitingTree,
		EdgeTypeCoAttendee,
		EdgeTypeCommunication,
		EdgeTypeMentionedTogether,
		EdgeTypeDeducedFamily:
		return true
	}
	return false
}

// CommunicationDirection describes which side dominates a communication link.
type CommunicationDirection string

const (
	DirectionBalanced CommunicationDirection = "balanced"
	DirectionAToB     CommunicationDirection = "a_to_b"
	DirectionBToA     CommunicationDirection = "b_to_a"
)

// GraphEdge is one relationship between two nodes. Both endpoints are
// guaranteed by the assembler to reference nodes present in the node set;
// signal entries with unknown endpoints never become edges.
type GraphEdge struct {
	ID       string
	SourceID valueobjects.NodeID
	TargetID valueobjects.NodeID
	Type     EdgeType

	// Weight is the relationship strength in [0,1]. Every formula that
	// produces a weight clamps it into range before construction.
	Weight float64

	Label        string
	IsReciprocal bool

	// Direction is set only on communication_link edges.
	Direction CommunicationDirection

	// DeducedRelationID and IsConfirmed are set only on deduced_family
	// edges, for downstream review UI.
	DeducedRelationID string
	IsConfirmed       bool
}

// Touches reports whether the edge references the given node id on either end.
func (e *GraphEdge) Touches(id valueobjects.NodeID) bool {
	return e.SourceID.Equals(id) || e.TargetID.Equals(id)
}
