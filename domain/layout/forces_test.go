package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relgraph-backend/domain/config"
	"relgraph-backend/domain/core/entities"
	"relgraph-backend/domain/core/valueobjects"
)

func node(t *testing.T, rawID string, x, y float64) *entities.GraphNode {
	t.Helper()
	id, err := valueobjects.NewNodeIDFromString(rawID)
	require.NoError(t, err)
	return &entities.GraphNode{
		ID:          id,
		DisplayName: rawID,
		Position:    valueobjects.Vector{X: x, Y: y},
	}
}

func distance(a, b *entities.GraphNode) float64 {
	return a.Position.Sub(b.Position).Length()
}

func TestAttractionPullsConnectedNodesTogether(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	a := node(t, "a", 100, 300)
	b := node(t, "b", 700, 300)
	nodes := []*entities.GraphNode{a, b}
	edges := []*entities.GraphEdge{
		{ID: "e1", SourceID: a.ID, TargetID: b.ID, Type: entities.EdgeTypeBusinessContext, Weight: 1.0},
	}

	ev := newForceEvaluator(cfg, valueobjects.Vector{X: 400, Y: 300}, nodes)
	before := distance(a, b)
	for i := 0; i < 20; i++ {
		ev.Step(nodes, edges, 1.0)
	}

	assert.Less(t, distance(a, b), before, "spring should pull connected nodes together")
}

func TestRepulsionPushesUnconnectedNodesApart(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	// Start outside collision range so only repulsion acts on the pair.
	a := node(t, "a", 380, 300)
	b := node(t, "b", 460, 300)
	nodes := []*entities.GraphNode{a, b}

	ev := newForceEvaluator(cfg, valueobjects.Vector{X: 400, Y: 300}, nodes)
	before := distance(a, b)
	ev.applyRepulsion(nodes, 1.0)
	ev.integrate(nodes, 1.0)

	assert.Greater(t, distance(a, b), before)
}

func TestCollisionSeparatesOverlappingPair(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	a := node(t, "a", 395, 300)
	b := node(t, "b", 405, 300)
	nodes := []*entities.GraphNode{a, b}

	ev := newForceEvaluator(cfg, valueobjects.Vector{X: 400, Y: 300}, nodes)
	ev.resolveCollisions(nodes)

	// Each node moves half the overlap; one pass fully separates a pair.
	assert.InDelta(t, cfg.MinNodeSpacing, distance(a, b), 1e-9)
	assert.InDelta(t, 370, a.Position.X, 1e-9)
	assert.InDelta(t, 430, b.Position.X, 1e-9)
}

func TestCollisionCoincidentNodesSeparateDeterministically(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	a := node(t, "a", 400, 300)
	b := node(t, "b", 400, 300)
	nodes := []*entities.GraphNode{a, b}

	ev := newForceEvaluator(cfg, valueobjects.Vector{X: 400, Y: 300}, nodes)
	ev.resolveCollisions(nodes)

	assert.InDelta(t, cfg.MinNodeSpacing, distance(a, b), 1e-9)
	assert.Equal(t, a.Position.Y, b.Position.Y, "coincident pair separates along a fixed axis")
}

func TestPinnedNodeNeverMoves(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	pinned := node(t, "pinned", 410, 300)
	pinned.IsPinned = true
	free := node(t, "free", 420, 300)
	nodes := []*entities.GraphNode{pinned, free}
	edges := []*entities.GraphEdge{
		{ID: "e1", SourceID: pinned.ID, TargetID: free.ID, Type: entities.EdgeTypeReferral, Weight: 0.7},
	}

	position := pinned.Position
	velocity := pinned.Velocity

	ev := newForceEvaluator(cfg, valueobjects.Vector{X: 400, Y: 300}, nodes)
	for i := 0; i < 50; i++ {
		ev.Step(nodes, edges, 1.0)
	}

	assert.True(t, pinned.Position.Equals(position))
	assert.True(t, pinned.Velocity.Equals(velocity))
	assert.False(t, free.Position.Equals(valueobjects.Vector{X: 420, Y: 300}),
		"unpinned neighbor should have moved")
}

func TestGravityPullsTowardCenter(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	center := valueobjects.Vector{X: 400, Y: 300}
	a := node(t, "a", 700, 500)
	nodes := []*entities.GraphNode{a}

	ev := newForceEvaluator(cfg, center, nodes)
	before := a.Position.Sub(center).Length()
	ev.applyGravity(nodes, 1.0)
	ev.integrate(nodes, 1.0)

	assert.Less(t, a.Position.Sub(center).Length(), before)
}
