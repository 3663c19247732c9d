package layout

import (
	"math"

	"relgraph-backend/domain/config"
	"relgraph-backend/domain/core/entities"
	"relgraph-backend/domain/core/valueobjects"
)

// forceEvaluator advances the simulation by one step: repulsion, spring
// attraction along edges, gravity toward the canvas center, collision
// separation, then damped integration. Pinned nodes exert forces on others
// but never have their own position or velocity altered.
type forceEvaluator struct {
	cfg    *config.DomainConfig
	center valueobjects.Vector
	index  map[valueobjects.NodeID]int
}

func newForceEvaluator(cfg *config.DomainConfig, center valueobjects.Vector, nodes []*entities.GraphNode) *forceEvaluator {
	index := make(map[valueobjects.NodeID]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}
	return &forceEvaluator{cfg: cfg, center: center, index: index}
}

// Step runs one full simulation step at the given temperature.
func (f *forceEvaluator) Step(nodes []*entities.GraphNode, edges []*entities.GraphEdge, temperature float64) {
	f.applyRepulsion(nodes, temperature)
	f.applyAttraction(nodes, edges, temperature)
	f.applyGravity(nodes, temperature)
	f.resolveCollisions(nodes)
	f.integrate(nodes, temperature)
}

func (f *forceEvaluator) applyRepulsion(nodes []*entities.GraphNode, temperature float64) {
	strength := f.cfg.RepulsionStrength * temperature

	if len(nodes) > f.cfg.BarnesHutThreshold {
		positions := make([]valueobjects.Vector, len(nodes))
		for i, n := range nodes {
			positions[i] = n.Position
		}
		tree := newQuadTree(positions, f.cfg)
		for i, n := range nodes {
			if n.IsPinned {
				continue
			}
			fx, fy := tree.RepulsionAt(i, n.Position.X, n.Position.Y, strength)
			n.Velocity.X += fx
			n.Velocity.Y += fy
		}
		return
	}

	// Direct pairwise evaluation. O(n²) but exact, and cheap enough below
	// the Barnes-Hut threshold.
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			delta := a.Position.Sub(b.Position)
			dist := delta.Length()

			d := math.Max(dist, f.cfg.MinDistance)
			force := strength / (d * d)

			var dir valueobjects.Vector
			if dist < 1e-12 {
				dir = valueobjects.Vector{X: 1} // deterministic axis for exact overlap
			} else {
				dir = delta.Scale(1 / dist)
			}

			if !a.IsPinned {
				a.Velocity = a.Velocity.Add(dir.Scale(force))
			}
			if !b.IsPinned {
				b.Velocity = b.Velocity.Sub(dir.Scale(force))
			}
		}
	}
}

// applyAttraction pulls connected nodes together with a Hooke's-law spring:
// magnitude grows with both separation and relationship weight.
func (f *forceEvaluator) applyAttraction(nodes []*entities.GraphNode, edges []*entities.GraphEdge, temperature float64) {
	for _, e := range edges {
		si, ok := f.index[e.SourceID]
		if !ok {
			continue
		}
		ti, ok := f.index[e.TargetID]
		if !ok {
			continue
		}

		source, target := nodes[si], nodes[ti]
		delta := target.Position.Sub(source.Position)
		dist := delta.Length()
		if dist < 1e-12 {
			continue
		}

		force := f.cfg.AttractionStrength * e.Weight * dist * temperature
		dir := delta.Scale(1 / dist)

		if !source.IsPinned {
			source.Velocity = source.Velocity.Add(dir.Scale(force))
		}
		if !target.IsPinned {
			target.Velocity = target.Velocity.Sub(dir.Scale(force))
		}
	}
}

func (f *forceEvaluator) applyGravity(nodes []*entities.GraphNode, temperature float64) {
	strength := f.cfg.GravityStrength * temperature
	for _, n := range nodes {
		if n.IsPinned {
			continue
		}
		displacement := f.center.Sub(n.Position)
		n.Velocity = n.Velocity.Add(displacement.Scale(strength))
	}
}

// resolveCollisions pushes every pair closer than MinNodeSpacing apart by
// half the overlap each. One pass cannot always fully separate three or more
// mutually overlapping nodes; that residue is accepted.
func (f *forceEvaluator) resolveCollisions(nodes []*entities.GraphNode) {
	spacing := f.cfg.MinNodeSpacing
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			delta := a.Position.Sub(b.Position)
			dist := delta.Length()
			if dist >= spacing {
				continue
			}

			var dir valueobjects.Vector
			if dist < 1e-12 {
				dir = valueobjects.Vector{X: 1}
			} else {
				dir = delta.Scale(1 / dist)
			}
			shift := dir.Scale((spacing - dist) / 2)

			if !a.IsPinned {
				a.Position = a.Position.Add(shift)
			}
			if !b.IsPinned {
				b.Position = b.Position.Sub(shift)
			}
		}
	}
}

// integrate applies damped velocities to positions. Damping and temperature
// compound, so movement is aggressive early and freezes near the end.
func (f *forceEvaluator) integrate(nodes []*entities.GraphNode, temperature float64) {
	damping := f.cfg.DampingFactor * temperature
	for _, n := range nodes {
		if n.IsPinned {
			continue
		}
		n.Velocity = n.Velocity.Scale(damping)
		n.Position = n.Position.Add(n.Velocity.Scale(temperature))
	}
}
