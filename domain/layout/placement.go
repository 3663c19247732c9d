package layout

import (
	"math"

	"relgraph-backend/domain/config"
	"relgraph-backend/domain/core/entities"
	"relgraph-backend/domain/core/valueobjects"
)

// goldenAngle is the golden-ratio fraction of a full revolution. Stepping by
// it never revisits an angle, which spreads points evenly without randomness.
const goldenAngle = 2 * math.Pi * 0.61803398875

// assignInitialPositions places every node deterministically: cluster-hint
// members around ring centers, everything else on a golden-angle spiral from
// the canvas center. Identical input order always yields identical positions.
func assignInitialPositions(nodes []*entities.GraphNode, opts Options, cfg *config.DomainConfig) {
	center := valueobjects.Vector{X: opts.Bounds.Width / 2, Y: opts.Bounds.Height / 2}

	byID := make(map[valueobjects.NodeID]*entities.GraphNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	placed := make(map[valueobjects.NodeID]bool, len(nodes))
	ringRadius := cfg.ClusterRingFactor * math.Min(opts.Bounds.Width, opts.Bounds.Height) / 2

	for i, hint := range opts.Clusters {
		clusterAngle := 2 * math.Pi * float64(i) / float64(len(opts.Clusters))
		clusterCenter := valueobjects.Vector{
			X: center.X + ringRadius*math.Cos(clusterAngle),
			Y: center.Y + ringRadius*math.Sin(clusterAngle),
		}

		var members []*entities.GraphNode
		for _, id := range hint.MemberIDs {
			nodeID, err := valueobjects.NewNodeIDFromString(id)
			if err != nil {
				continue
			}
			if n, ok := byID[nodeID]; ok && !placed[nodeID] {
				members = append(members, n)
				placed[nodeID] = true
			}
		}

		// Spread grows with member count so large clusters don't start
		// stacked on top of each other.
		spread := cfg.ClusterSpread * float64(len(members)) / (2 * math.Pi)
		for j, member := range members {
			memberAngle := 2 * math.Pi * float64(j) / float64(len(members))
			member.Position = valueobjects.Vector{
				X: clusterCenter.X + spread*math.Cos(memberAngle),
				Y: clusterCenter.Y + spread*math.Sin(memberAngle),
			}
			member.Velocity = valueobjects.Vector{}
		}
	}

	spiralIndex := 0
	for _, n := range nodes {
		if placed[n.ID] {
			continue
		}
		angle := goldenAngle * float64(spiralIndex)
		radius := cfg.SpiralSpacing * math.Sqrt(float64(spiralIndex))
		n.Position = valueobjects.Vector{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
		n.Velocity = valueobjects.Vector{}
		spiralIndex++
	}
}
