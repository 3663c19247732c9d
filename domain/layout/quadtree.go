package layout

import (
	"math"

	"relgraph-backend/domain/config"
	"relgraph-backend/domain/core/valueobjects"
)

const noChild = int32(-1)

// quadCell is one record in the quad-tree arena. Children are arena handles
// rather than pointers, so the whole tree is a flat slice that is rebuilt
// from scratch each iteration and released in one piece.
type quadCell struct {
	x, y, size float64

	// Running center of mass and total mass (= body count) of everything
	// beneath this cell.
	comX, comY float64
	mass       float64

	// body is the index of the resident body while the cell is a leaf
	// holding exactly one; -1 otherwise.
	body     int
	children [4]int32
	leaf     bool
}

// quadTree is a Barnes-Hut spatial index over current node positions.
// It supports a single query: the approximate net repulsive force on a
// point, excluding a given body index.
type quadTree struct {
	cells    []quadCell
	theta2   float64
	maxDepth int
	minDist  float64
}

// newQuadTree builds the index over the given positions. Returns nil for an
// empty position set.
func newQuadTree(positions []valueobjects.Vector, cfg *config.DomainConfig) *quadTree {
	if len(positions) == 0 {
		return nil
	}

	minX, maxX := positions[0].X, positions[0].X
	minY, maxY := positions[0].Y, positions[0].Y
	for _, p := range positions[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	// Pad the bounds and keep the region square so quadrant subdivision
	// stays uniform.
	size := math.Max(maxX-minX, maxY-minY)
	padding := size * 0.1
	size += 2 * padding
	if size == 0 {
		size = 1 // all bodies coincide
	}
	originX := minX - padding - (size-(maxX-minX)-2*padding)/2
	originY := minY - padding - (size-(maxY-minY)-2*padding)/2

	t := &quadTree{
		cells:    make([]quadCell, 0, 2*len(positions)),
		theta2:   cfg.Theta * cfg.Theta,
		maxDepth: cfg.MaxQuadDepth,
		minDist:  cfg.MinDistance,
	}
	t.alloc(originX, originY, size)

	for i, p := range positions {
		t.insert(0, i, p.X, p.Y, 0)
	}
	return t
}

// alloc appends a fresh empty leaf cell and returns its handle.
func (t *quadTree) alloc(x, y, size float64) int32 {
	t.cells = append(t.cells, quadCell{
		x:        x,
		y:        y,
		size:     size,
		body:     -1,
		children: [4]int32{noChild, noChild, noChild, noChild},
		leaf:     true,
	})
	return int32(len(t.cells) - 1)
}

func (t *quadTree) insert(h int32, body int, px, py float64, depth int) {
	c := &t.cells[h]

	if c.leaf {
		if c.mass == 0 {
			c.body = body
			c.comX, c.comY = px, py
			c.mass = 1
			return
		}

		// Depth cap: bodies landing in a saturated region are coalesced
		// into the accumulator instead of forcing further subdivision.
		// Guards against unbounded recursion on (near-)coincident input.
		if depth >= t.maxDepth {
			total := c.mass + 1
			c.comX = (c.comX*c.mass + px) / total
			c.comY = (c.comY*c.mass + py) / total
			c.mass = total
			return
		}

		// Occupied leaf: subdivide and push the resident body down.
		oldBody, oldX, oldY := c.body, c.comX, c.comY
		c.leaf = false
		c.body = -1
		t.insertIntoQuadrant(h, oldBody, oldX, oldY, depth)
		c = &t.cells[h] // arena may have grown
	}

	total := c.mass + 1
	c.comX = (c.comX*c.mass + px) / total
	c.comY = (c.comY*c.mass + py) / total
	c.mass = total

	t.insertIntoQuadrant(h, body, px, py, depth)
}

func (t *quadTree) insertIntoQuadrant(h int32, body int, px, py float64, depth int) {
	c := t.cells[h]
	half := c.size / 2
	midX := c.x + half
	midY := c.y + half

	q := 0
	childX, childY := c.x, c.y
	if px >= midX {
		q |= 1
		childX = midX
	}
	if py >= midY {
		q |= 2
		childY = midY
	}

	child := c.children[q]
	if child == noChild {
		child = t.alloc(childX, childY, half)
		t.cells[h].children[q] = child
	}
	t.insert(child, body, px, py, depth+1)
}

// RepulsionAt returns the approximate net repulsive force on the body with
// index exclude, queried at that body's own position (px, py). A negative
// exclude evaluates an arbitrary point with no body subtracted.
func (t *quadTree) RepulsionAt(exclude int, px, py, strength float64) (float64, float64) {
	if t == nil || len(t.cells) == 0 {
		return 0, 0
	}
	return t.force(0, exclude, px, py, strength)
}

func (t *quadTree) force(h int32, exclude int, px, py, strength float64) (float64, float64) {
	c := &t.cells[h]
	if c.mass == 0 {
		return 0, 0
	}

	if c.leaf {
		mass := c.mass
		comX, comY := c.comX, c.comY
		// The query point is the excluded body's own position, so the one
		// leaf whose region covers it holds that body. Subtract it from the
		// accumulator: a single-body leaf then exerts nothing, a coalesced
		// leaf contributes only its other residents.
		if exclude >= 0 && c.covers(px, py) {
			mass--
			if mass == 0 {
				return 0, 0
			}
			comX = (comX*c.mass - px) / mass
			comY = (comY*c.mass - py) / mass
		}
		return t.pointForce(px, py, comX, comY, mass, strength)
	}

	dx := px - c.comX
	dy := py - c.comY
	dist := math.Sqrt(dx*dx + dy*dy)

	// Opening test: a region small relative to its distance is treated as
	// a single point mass at its center of mass. The excluded body's own
	// region never passes it, so exclusion is decided at the leaf.
	if c.size*c.size < t.theta2*dist*dist {
		return t.pointForce(px, py, c.comX, c.comY, c.mass, strength)
	}

	var fx, fy float64
	for _, child := range c.children {
		if child != noChild {
			cfx, cfy := t.force(child, exclude, px, py, strength)
			fx += cfx
			fy += cfy
		}
	}
	return fx, fy
}

func (t *quadTree) pointForce(px, py, comX, comY, mass, strength float64) (float64, float64) {
	dx := px - comX
	dy := py - comY
	dist := math.Sqrt(dx*dx + dy*dy)
	d := math.Max(dist, t.minDist)
	f := strength * mass / (d * d)
	if dist < 1e-12 {
		// Exact overlap with the aggregate: push along a fixed axis so
		// the result stays deterministic.
		return f, 0
	}
	return dx / dist * f, dy / dist * f
}

// covers reports whether the point falls inside the cell's region. Intervals
// are half-open, matching the >= midpoint rule quadrant descent uses, so
// every body position is covered by exactly one leaf.
func (c *quadCell) covers(px, py float64) bool {
	return px >= c.x && px < c.x+c.size && py >= c.y && py < c.y+c.size
}
