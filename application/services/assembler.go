package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"relgraph-backend/domain/config"
	"relgraph-backend/domain/core/entities"
	"relgraph-backend/domain/core/valueobjects"
	"relgraph-backend/domain/signals"
)

// GraphAssembler fuses the raw relationship-signal collections into one
// typed node/edge graph. It is a pure transform over an immutable snapshot:
// no retained state, no side effects, no concurrency control needed.
//
// Malformed input never raises an error. Signal entries referencing unknown
// person ids are silently excluded from the edge set.
type GraphAssembler struct {
	cfg    *config.DomainConfig
	logger *zap.Logger
}

// NewGraphAssembler creates a graph assembler.
func NewGraphAssembler(cfg *config.DomainConfig, logger *zap.Logger) *GraphAssembler {
	return &GraphAssembler{cfg: cfg, logger: logger}
}

// Assemble produces the full node and edge set for one snapshot. Node ids
// are unique across the result: real people keep their supplied ids, ghosts
// get freshly generated ones.
func (a *GraphAssembler) Assemble(snapshot signals.Snapshot) ([]*entities.GraphNode, []*entities.GraphEdge) {
	nodes := make([]*entities.GraphNode, 0, len(snapshot.People)+len(snapshot.GhostMentions))
	known := make(map[string]valueobjects.NodeID, len(snapshot.People))

	for _, person := range snapshot.People {
		id, err := valueobjects.NewNodeIDFromString(person.ID)
		if err != nil {
			continue
		}
		if _, exists := known[person.ID]; exists {
			continue
		}
		known[person.ID] = id
		nodes = append(nodes, &entities.GraphNode{
			ID:                 id,
			DisplayName:        person.DisplayName,
			RoleBadges:         person.RoleBadges,
			PrimaryRole:        person.PrimaryRole,
			PipelineStage:      person.PipelineStage,
			RelationshipHealth: person.RelationshipHealth,
			ProductionValue:    person.ProductionValue,
			IsPinned:           person.IsPinned,
		})
	}

	edges := a.assembleEdges(snapshot, known)

	// Ghost synthesis: people known only through a mention become ghost
	// nodes, linked from each known mentioner.
	for _, mention := range snapshot.GhostMentions {
		ghost := &entities.GraphNode{
			ID:          valueobjects.NewGhostNodeID(),
			DisplayName: mention.Name,
			PrimaryRole: mention.SuggestedRole,
			IsGhost:     true,
		}
		nodes = append(nodes, ghost)

		for _, mentionerID := range mention.MentionedByIDs {
			source, ok := known[mentionerID]
			if !ok {
				continue
			}
			edges = append(edges, &entities.GraphEdge{
				ID:       uuid.New().String(),
				SourceID: source,
				TargetID: ghost.ID,
				Type:     entities.EdgeTypeMentionedTogether,
				Weight:   a.cfg.MentionWeight,
				Label:    "mentioned",
			})
		}
	}

	// Orphan status is decided here, over the final edge set, and never
	// recomputed by the layout engine.
	touched := make(map[valueobjects.NodeID]bool, len(nodes))
	for _, edge := range edges {
		touched[edge.SourceID] = true
		touched[edge.TargetID] = true
	}
	for _, node := range nodes {
		node.IsOrphaned = !touched[node.ID]
	}

	a.logger.Debug("Graph assembled",
		zap.Int("people", len(snapshot.People)),
		zap.Int("ghosts", len(snapshot.GhostMentions)),
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)),
	)

	return nodes, edges
}

func (a *GraphAssembler) assembleEdges(snapshot signals.Snapshot, known map[string]valueobjects.NodeID) []*entities.GraphEdge {
	var edges []*entities.GraphEdge

	// Business contexts produce a fully connected clique among their known
	// participants. Other context kinds deliberately produce no edges.
	for _, context := range snapshot.Contexts {
		if !strings.EqualFold(context.Type, signals.ContextTypeBusiness) {
			continue
		}

		participants := make([]valueobjects.NodeID, 0, len(context.ParticipantIDs))
		seen := make(map[string]bool, len(context.ParticipantIDs))
		for _, pid := range context.ParticipantIDs {
			if seen[pid] {
				continue
			}
			seen[pid] = true
			if id, ok := known[pid]; ok {
				participants = append(participants, id)
			}
		}

		label := strings.ToLower(context.Type)
		for i := 0; i < len(participants); i++ {
			for j := i + 1; j < len(participants); j++ {
				edges = append(edges, &entities.GraphEdge{
					ID:           uuid.New().String(),
					SourceID:     participants[i],
					TargetID:     participants[j],
					Type:         entities.EdgeTypeBusinessContext,
					Weight:       a.cfg.BusinessContextWeight,
					Label:        label,
					IsReciprocal: true,
				})
			}
		}
	}

	for _, referral := range snapshot.Referrals {
		source, target, ok := a.resolvePair(known, referral.ReferrerID, referral.ReferredID)
		if !ok {
			continue
		}
		edges = append(edges, &entities.GraphEdge{
			ID:       uuid.New().String(),
			SourceID: source,
			TargetID: target,
			Type:     entities.EdgeTypeReferral,
			Weight:   a.cfg.ReferralWeight,
		})
	}

	for _, recruiting := range snapshot.Recruiting {
		source, target, ok := a.resolvePair(known, recruiting.RecruiterID, recruiting.RecruitID)
		if !ok {
			continue
		}
		edges = append(edges, &entities.GraphEdge{
			ID:       uuid.New().String(),
			SourceID: source,
			TargetID: target,
			Type:     entities.EdgeTypeRecruitingTree,
			Weight:   a.cfg.RecruitingWeight,
			Label:    recruiting.Stage,
		})
	}

	for _, attendance := range snapshot.CoAttendance {
		source, target, ok := a.resolvePair(known, attendance.PersonAID, attendance.PersonBID)
		if !ok {
			continue
		}
		edges = append(edges, &entities.GraphEdge{
			ID:           uuid.New().String(),
			SourceID:     source,
			TargetID:     target,
			Type:         entities.EdgeTypeCoAttendee,
			Weight:       clampWeight(float64(attendance.MeetingCount) / a.cfg.CoAttendanceDivisor),
			Label:        fmt.Sprintf("%d meetings", attendance.MeetingCount),
			IsReciprocal: true,
		})
	}

	for _, communication := range snapshot.Communications {
		source, target, ok := a.resolvePair(known, communication.PersonAID, communication.PersonBID)
		if !ok {
			continue
		}
		direction := parseDirection(communication.Direction)
		edges = append(edges, &entities.GraphEdge{
			ID:           uuid.New().String(),
			SourceID:     source,
			TargetID:     target,
			Type:         entities.EdgeTypeCommunication,
			Weight:       clampWeight(float64(communication.EvidenceCount) / a.cfg.CommunicationDivisor),
			IsReciprocal: direction == entities.DirectionBalanced,
			Direction:    direction,
		})
	}

	for _, mention := range snapshot.CoMentions {
		source, target, ok := a.resolvePair(known, mention.PersonAID, mention.PersonBID)
		if !ok {
			continue
		}
		edges = append(edges, &entities.GraphEdge{
			ID:           uuid.New().String(),
			SourceID:     source,
			TargetID:     target,
			Type:         entities.EdgeTypeMentionedTogether,
			Weight:       clampWeight(float64(mention.CoMentionCount) / a.cfg.CoMentionDivisor),
			IsReciprocal: true,
		})
	}

	for _, family := range snapshot.FamilyLinks {
		source, target, ok := a.resolvePair(known, family.PersonAID, family.PersonBID)
		if !ok {
			continue
		}
		edges = append(edges, &entities.GraphEdge{
			ID:                uuid.New().String(),
			SourceID:          source,
			TargetID:          target,
			Type:              entities.EdgeTypeDeducedFamily,
			Weight:            a.cfg.FamilyWeight,
			Label:             family.Relation,
			IsReciprocal:      true,
			DeducedRelationID: family.DeductionID,
			IsConfirmed:       family.IsConfirmed,
		})
	}

	return edges
}

// resolvePair maps two raw ids to node ids; a pair with an unknown endpoint
// produces no edge.
func (a *GraphAssembler) resolvePair(known map[string]valueobjects.NodeID, rawSource, rawTarget string) (valueobjects.NodeID, valueobjects.NodeID, bool) {
	source, ok := known[rawSource]
	if !ok {
		return valueobjects.NodeID{}, valueobjects.NodeID{}, false
	}
	target, ok := known[rawTarget]
	if !ok {
		return valueobjects.NodeID{}, valueobjects.NodeID{}, false
	}
	return source, target, true
}

func clampWeight(w float64) float64 {
	return math.Max(0, math.Min(1, w))
}

func parseDirection(raw string) entities.CommunicationDirection {
	switch entities.CommunicationDirection(raw) {
	case entities.DirectionBalanced, entities.DirectionAToB, entities.DirectionBToA:
		return entities.CommunicationDirection(raw)
	default:
		return ""
	}
}
