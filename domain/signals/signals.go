// Package signals defines the raw relationship-signal snapshot the graph
// assembler consumes. The surrounding application gathers these from its
// contact, calendar, mail and note stores; this core treats them as
// read-only input and never persists or mutates them.
package signals

// Person is a known identity with its display attributes.
type Person struct {
	ID                 string
	DisplayName        string
	RoleBadges         []string
	PrimaryRole        string
	PipelineStage      string
	RelationshipHealth string
	ProductionValue    string
	IsPinned           bool
}

// ContextTypeBusiness is the only context type that currently produces
// edges. Other context kinds (household, recruiting, ...) are deliberately
// excluded from graph assembly.
const ContextTypeBusiness = "business"

// Context is a shared-affiliation grouping with a type tag.
type Context struct {
	ID             string
	Type           string
	ParticipantIDs []string
}

// ReferralPair records that one person referred another.
type ReferralPair struct {
	ReferrerID string
	ReferredID string
}

// RecruitingPair records a recruiting-lineage link with its stage label.
type RecruitingPair struct {
	RecruiterID string
	RecruitID   string
	Stage       string
}

// CoAttendancePair records two people seen at the same meetings.
type CoAttendancePair struct {
	PersonAID    string
	PersonBID    string
	MeetingCount int
}

// CommunicationPair records message traffic between two people.
type CommunicationPair struct {
	PersonAID     string
	PersonBID     string
	EvidenceCount int
	// Direction is one of "balanced", "a_to_b", "b_to_a".
	Direction string
}

// CoMentionPair records two people mentioned together in notes.
type CoMentionPair struct {
	PersonAID      string
	PersonBID      string
	CoMentionCount int
}

// GhostMention is a free-text mention of someone with no identity record.
type GhostMention struct {
	Name           string
	SuggestedRole  string
	MentionedByIDs []string
}

// FamilyLink is an inferred family tie awaiting user confirmation.
type FamilyLink struct {
	PersonAID   string
	PersonBID   string
	DeductionID string
	Relation    string
	IsConfirmed bool
}

// Snapshot bundles every signal collection for one assembly run.
type Snapshot struct {
	People         []Person
	Contexts       []Context
	Referrals      []ReferralPair
	Recruiting     []RecruitingPair
	CoAttendance   []CoAttendancePair
	Communications []CommunicationPair
	CoMentions     []CoMentionPair
	GhostMentions  []GhostMention
	FamilyLinks    []FamilyLink
}
