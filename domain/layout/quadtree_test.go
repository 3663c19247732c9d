package layout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relgraph-backend/domain/config"
	"relgraph-backend/domain/core/valueobjects"
)

func TestQuadTreeMassAndCenterOfMass(t *testing.T) {
	positions := []valueobjects.Vector{
		{X: 0, Y: 0},
		{X: 100, Y: 0},
		{X: 0, Y: 100},
		{X: 100, Y: 100},
	}

	tree := newQuadTree(positions, config.DefaultDomainConfig())
	require.NotNil(t, tree)

	root := tree.cells[0]
	assert.Equal(t, 4.0, root.mass)
	assert.InDelta(t, 50.0, root.comX, 1e-9)
	assert.InDelta(t, 50.0, root.comY, 1e-9)
}

func TestQuadTreeEmptyInput(t *testing.T) {
	tree := newQuadTree(nil, config.DefaultDomainConfig())
	assert.Nil(t, tree)

	fx, fy := tree.RepulsionAt(0, 10, 10, 100)
	assert.Zero(t, fx)
	assert.Zero(t, fy)
}

func TestQuadTreeCoincidentPointsDepthCap(t *testing.T) {
	// Many bodies sharing one coordinate would recurse forever without the
	// depth cap; they must coalesce instead.
	positions := make([]valueobjects.Vector, 500)
	for i := range positions {
		positions[i] = valueobjects.Vector{X: 42, Y: 42}
	}

	tree := newQuadTree(positions, config.DefaultDomainConfig())
	require.NotNil(t, tree)
	assert.Equal(t, 500.0, tree.cells[0].mass)

	// A distant query point still gets a finite, sane force.
	fx, fy := tree.RepulsionAt(-1, 542, 42, 100)
	assert.False(t, math.IsNaN(fx) || math.IsInf(fx, 0))
	assert.Greater(t, fx, 0.0, "force should push away from the cluster")
	assert.InDelta(t, 0.0, fy, 1e-9)
}

func TestQuadTreeExcludesSelf(t *testing.T) {
	positions := []valueobjects.Vector{
		{X: 0, Y: 0},
		{X: 50, Y: 0},
	}
	cfg := config.DefaultDomainConfig()
	tree := newQuadTree(positions, cfg)

	strength := 100.0
	fx, fy := tree.RepulsionAt(0, positions[0].X, positions[0].Y, strength)

	// Only the other body contributes: f = strength / 50².
	assert.InDelta(t, -strength/2500, fx, 1e-9)
	assert.InDelta(t, 0.0, fy, 1e-9)
}

func TestQuadTreeCoalescedLeafExcludesSelf(t *testing.T) {
	// Three coincident bodies coalesce into one depth-capped leaf. Querying
	// from one of them must feel only the other two, not its own mass.
	positions := []valueobjects.Vector{
		{X: 42, Y: 42},
		{X: 42, Y: 42},
		{X: 42, Y: 42},
	}
	cfg := config.DefaultDomainConfig()
	tree := newQuadTree(positions, cfg)

	strength := 100.0
	fx, fy := tree.RepulsionAt(0, 42, 42, strength)

	// Two bodies at the floored distance: f = strength × 2 / minDist².
	assert.InDelta(t, 2*strength/(cfg.MinDistance*cfg.MinDistance), fx, 1e-9)
	assert.InDelta(t, 0.0, fy, 1e-9)
}

func TestQuadTreeApproximationMatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	positions := make([]valueobjects.Vector, 200)
	for i := range positions {
		positions[i] = valueobjects.Vector{
			X: rng.Float64() * 1000,
			Y: rng.Float64() * 1000,
		}
	}

	cfg := config.DefaultDomainConfig()
	tree := newQuadTree(positions, cfg)
	strength := 1000.0

	var totalErr, totalDirect float64
	for i, p := range positions {
		approxX, approxY := tree.RepulsionAt(i, p.X, p.Y, strength)

		var directX, directY float64
		for j, q := range positions {
			if j == i {
				continue
			}
			dx := p.X - q.X
			dy := p.Y - q.Y
			dist := math.Sqrt(dx*dx + dy*dy)
			d := math.Max(dist, cfg.MinDistance)
			f := strength / (d * d)
			directX += dx / dist * f
			directY += dy / dist * f
		}

		totalDirect += math.Hypot(directX, directY)
		totalErr += math.Hypot(approxX-directX, approxY-directY)
	}

	// Individual bodies near the centroid see large relative error because
	// opposing contributions cancel; the aggregate must stay tight.
	assert.LessOrEqual(t, totalErr, 0.15*totalDirect,
		"aggregate approximation error too large")
}
