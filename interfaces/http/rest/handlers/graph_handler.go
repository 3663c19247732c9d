package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"relgraph-backend/application/queries"
	"relgraph-backend/application/queries/bus"
	"relgraph-backend/domain/layout"
	"relgraph-backend/domain/signals"
	"relgraph-backend/pkg/common"
	pkgerrors "relgraph-backend/pkg/errors"
)

// GraphHandler exposes graph assembly and layout as stateless
// request/response endpoints. Every request carries the full signal
// snapshot; nothing is persisted between calls.
type GraphHandler struct {
	queryBus *bus.QueryBus
	validate *validator.Validate
	logger   *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(queryBus *bus.QueryBus, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		queryBus: queryBus,
		validate: validator.New(),
		logger:   logger,
	}
}

// SnapshotRequest is the wire form of one signal snapshot.
type SnapshotRequest struct {
	People         []PersonRequest        `json:"people" validate:"dive"`
	Contexts       []ContextRequest       `json:"contexts,omitempty" validate:"dive"`
	Referrals      []ReferralRequest      `json:"referrals,omitempty" validate:"dive"`
	Recruiting     []RecruitingRequest    `json:"recruiting,omitempty" validate:"dive"`
	CoAttendance   []CoAttendanceRequest  `json:"co_attendance,omitempty" validate:"dive"`
	Communications []CommunicationRequest `json:"communications,omitempty" validate:"dive"`
	CoMentions     []CoMentionRequest     `json:"co_mentions,omitempty" validate:"dive"`
	GhostMentions  []GhostMentionRequest  `json:"ghost_mentions,omitempty" validate:"dive"`
	FamilyLinks    []FamilyLinkRequest    `json:"family_links,omitempty" validate:"dive"`
}

// PersonRequest is one known person with display attributes.
type PersonRequest struct {
	ID                 string   `json:"id" validate:"required"`
	DisplayName        string   `json:"display_name"`
	RoleBadges         []string `json:"role_badges,omitempty"`
	PrimaryRole        string   `json:"primary_role,omitempty"`
	PipelineStage      string   `json:"pipeline_stage,omitempty"`
	RelationshipHealth string   `json:"relationship_health,omitempty"`
	ProductionValue    string   `json:"production_value,omitempty"`
	IsPinned           bool     `json:"is_pinned,omitempty"`
}

// ContextRequest is one shared-affiliation grouping.
type ContextRequest struct {
	ID             string   `json:"id"`
	Type           string   `json:"type" validate:"required"`
	ParticipantIDs []string `json:"participant_ids"`
}

// ReferralRequest is one referral pair.
type ReferralRequest struct {
	ReferrerID string `json:"referrer_id" validate:"required"`
	ReferredID string `json:"referred_id" validate:"required"`
}

// RecruitingRequest is one recruiting-lineage pair.
type RecruitingRequest struct {
	RecruiterID string `json:"recruiter_id" validate:"required"`
	RecruitID   string `json:"recruit_id" validate:"required"`
	Stage       string `json:"stage"`
}

// CoAttendanceRequest is one meeting co-attendance pair.
type CoAttendanceRequest struct {
	PersonAID    string `json:"person_a_id" validate:"required"`
	PersonBID    string `json:"person_b_id" validate:"required"`
	MeetingCount int    `json:"meeting_count" validate:"gte=0"`
}

// CommunicationRequest is one communication-frequency pair.
type CommunicationRequest struct {
	PersonAID     string `json:"person_a_id" validate:"required"`
	PersonBID     string `json:"person_b_id" validate:"required"`
	EvidenceCount int    `json:"evidence_count" validate:"gte=0"`
	Direction     string `json:"direction,omitempty" validate:"omitempty,oneof=balanced a_to_b b_to_a"`
}

// CoMentionRequest is one note co-mention pair.
type CoMentionRequest struct {
	PersonAID      string `json:"person_a_id" validate:"required"`
	PersonBID      string `json:"person_b_id" validate:"required"`
	CoMentionCount int    `json:"co_mention_count" validate:"gte=0"`
}

// GhostMentionRequest is one free-text mention of an unknown person.
type GhostMentionRequest struct {
	Name           string   `json:"name" validate:"required"`
	SuggestedRole  string   `json:"suggested_role,omitempty"`
	MentionedByIDs []string `json:"mentioned_by_ids,omitempty"`
}

// FamilyLinkRequest is one inferred family tie.
type FamilyLinkRequest struct {
	PersonAID   string `json:"person_a_id" validate:"required"`
	PersonBID   string `json:"person_b_id" validate:"required"`
	DeductionID string `json:"deduction_id"`
	Relation    string `json:"relation,omitempty"`
	IsConfirmed bool   `json:"is_confirmed,omitempty"`
}

// LayoutRequest is a snapshot plus the layout parameters.
type LayoutRequest struct {
	SnapshotRequest
	Canvas     CanvasRequest    `json:"canvas" validate:"required"`
	Iterations *int             `json:"iterations,omitempty" validate:"omitempty,gte=0,lte=10000"`
	Clusters   []ClusterRequest `json:"clusters,omitempty" validate:"dive"`
}

// CanvasRequest is the target canvas size.
type CanvasRequest struct {
	Width  float64 `json:"width" validate:"required,gt=0"`
	Height float64 `json:"height" validate:"required,gt=0"`
}

// ClusterRequest groups node ids for initial placement.
type ClusterRequest struct {
	Label     string   `json:"label"`
	MemberIDs []string `json:"member_ids" validate:"required,min=1"`
}

// AssembleGraph handles POST /api/v1/graph/assemble
func (h *GraphHandler) AssembleGraph(w http.ResponseWriter, r *http.Request) {
	var req SnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.AssembleGraphQuery{
		Snapshot: req.toSnapshot(),
	})
	if err != nil {
		h.logger.Error("Failed to assemble graph", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to assemble graph")
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ComputeLayout handles POST /api/v1/graph/layout
func (h *GraphHandler) ComputeLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	iterations := -1 // default from configuration
	if req.Iterations != nil {
		iterations = *req.Iterations
	}

	clusters := make([]layout.ClusterHint, 0, len(req.Clusters))
	for _, c := range req.Clusters {
		clusters = append(clusters, layout.ClusterHint{
			Label:     c.Label,
			MemberIDs: c.MemberIDs,
		})
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ComputeLayoutQuery{
		Snapshot:     req.toSnapshot(),
		Iterations:   iterations,
		CanvasWidth:  req.Canvas.Width,
		CanvasHeight: req.Canvas.Height,
		Clusters:     clusters,
	})
	if err != nil {
		if appErr, ok := pkgerrors.AsAppError(err); ok {
			common.RespondError(w, appErr.HTTPStatus, string(appErr.Type), appErr.Message)
			return
		}
		h.logger.Error("Failed to compute layout", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute layout")
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

func (req SnapshotRequest) toSnapshot() signals.Snapshot {
	snapshot := signals.Snapshot{}

	for _, p := range req.People {
		snapshot.People = append(snapshot.People, signals.Person{
			ID:                 p.ID,
			DisplayName:        p.DisplayName,
			RoleBadges:         p.RoleBadges,
			PrimaryRole:        p.PrimaryRole,
			PipelineStage:      p.PipelineStage,
			RelationshipHealth: p.RelationshipHealth,
			ProductionValue:    p.ProductionValue,
			IsPinned:           p.IsPinned,
		})
	}
	for _, c := range req.Contexts {
		snapshot.Contexts = append(snapshot.Contexts, signals.Context{
			ID:             c.ID,
			Type:           c.Type,
			ParticipantIDs: c.ParticipantIDs,
		})
	}
	for _, ref := range req.Referrals {
		snapshot.Referrals = append(snapshot.Referrals, signals.ReferralPair{
			ReferrerID: ref.ReferrerID,
			ReferredID: ref.ReferredID,
		})
	}
	for _, rec := range req.Recruiting {
		snapshot.Recruiting = append(snapshot.Recruiting, signals.RecruitingPair{
			RecruiterID: rec.RecruiterID,
			RecruitID:   rec.RecruitID,
			Stage:       rec.Stage,
		})
	}
	for _, att := range req.CoAttendance {
		snapshot.CoAttendance = append(snapshot.CoAttendance, signals.CoAttendancePair{
			PersonAID:    att.PersonAID,
			PersonBID:    att.PersonBID,
			MeetingCount: att.MeetingCount,
		})
	}
	for _, comm := range req.Communications {
		snapshot.Communications = append(snapshot.Communications, signals.CommunicationPair{
			PersonAID:     comm.PersonAID,
			PersonBID:     comm.PersonBID,
			EvidenceCount: comm.EvidenceCount,
			Direction:     comm.Direction,
		})
	}
	for _, mention := range req.CoMentions {
		snapshot.CoMentions = append(snapshot.CoMentions, signals.CoMentionPair{
			PersonAID:      mention.PersonAID,
			PersonBID:      mention.PersonBID,
			CoMentionCount: mention.CoMentionCount,
		})
	}
	for _, ghost := range req.GhostMentions {
		snapshot.GhostMentions = append(snapshot.GhostMentions, signals.GhostMention{
			Name:           ghost.Name,
			SuggestedRole:  ghost.SuggestedRole,
			MentionedByIDs: ghost.MentionedByIDs,
		})
	}
	for _, family := range req.FamilyLinks {
		snapshot.FamilyLinks = append(snapshot.FamilyLinks, signals.FamilyLink{
			PersonAID:   family.PersonAID,
			PersonBID:   family.PersonBID,
			DeductionID: family.DeductionID,
			Relation:    family.Relation,
			IsConfirmed: family.IsConfirmed,
		})
	}

	return snapshot
}
