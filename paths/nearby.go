package paths

import "github.com/raysplaceinspace/spring-challenge-2023/game"

// NearbyPathMap layers a secondary tie-break over PathMap: when two paths to
// a destination are equally short, prefer the one running closer to a set of
// seed cells (typically the player's ants, or an existing beacon mesh). This
// keeps harvest chains from spreading into empty territory when an
// equivalent route through occupied cells exists.
type NearbyPathMap struct {
	distanceToNearest []int
}

// NewNearbyPathMap seeds the frontier with every cell for which seeded
// returns true, then relaxes BFS distances outward.
func NewNearbyPathMap(layout *game.Layout, seeded func(cell int) bool) *NearbyPathMap {
	numCells := layout.NumCells()
	n := &NearbyPathMap{
		distanceToNearest: make([]int, numCells),
	}

	queue := make([]int, 0, numCells)
	for cell := 0; cell < numCells; cell++ {
		if seeded(cell) {
			n.distanceToNearest[cell] = 0
			queue = append(queue, cell)
		} else {
			n.distanceToNearest[cell] = Unreachable
		}
	}
	n.relax(layout, queue)
	return n
}

func (n *NearbyPathMap) relax(layout *game.Layout, queue []int) {
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		neighborDistance := n.distanceToNearest[current] + 1
		for _, neighbor := range layout.Cells[current].Neighbors {
			if neighborDistance < n.distanceToNearest[neighbor] {
				n.distanceToNearest[neighbor] = neighborDistance
				queue = append(queue, neighbor)
			}
		}
	}
}

// Include adds cells to the frontier at distance zero and re-relaxes.
// The opponent model grows its beacon mesh this way.
func (n *NearbyPathMap) Include(layout *game.Layout, cells ...int) {
	queue := make([]int, 0, len(cells))
	for _, cell := range cells {
		if n.distanceToNearest[cell] > 0 {
			n.distanceToNearest[cell] = 0
			queue = append(queue, cell)
		}
	}
	n.relax(layout, queue)
}

// DistanceToNearest reports the BFS distance from cell to the frontier.
func (n *NearbyPathMap) DistanceToNearest(cell int) int {
	return n.distanceToNearest[cell]
}

// StepTowards picks the neighbor minimising (distance to sink, distance to
// the frontier, cell id), in that order.
func (n *NearbyPathMap) StepTowards(source, sink int, layout *game.Layout, paths *PathMap) (int, bool) {
	toSink := paths.sources[sink].distances

	best := -1
	bestDistance, bestNearby := Unreachable+1, Unreachable+1
	for _, neighbor := range layout.Cells[source].Neighbors {
		d, near := toSink[neighbor], n.distanceToNearest[neighbor]
		if d < bestDistance || (d == bestDistance && near < bestNearby) ||
			(d == bestDistance && near == bestNearby && neighbor < best) {
			best, bestDistance, bestNearby = neighbor, d, near
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// CalculatePath yields source, then each step toward sink, ending at sink.
func (n *NearbyPathMap) CalculatePath(source, sink int, layout *game.Layout, paths *PathMap) []int {
	path := []int{source}
	current := source
	for current != sink {
		next, ok := n.StepTowards(current, sink, layout, paths)
		if !ok {
			break
		}
		current = next
		path = append(path, current)
	}
	return path
}
