// Package paths precomputes all-pairs shortest-path distances over the cell
// graph and provides deterministic stepping along minimal paths.
package paths

import (
	"math"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
)

// Unreachable is the distance reported for disconnected cell pairs.
const Unreachable = math.MaxInt32

// DistanceMap holds BFS distances from a single source cell.
type DistanceMap struct {
	distances []int
}

func generateDistanceMap(source int, layout *game.Layout) DistanceMap {
	distances := make([]int, layout.NumCells())
	for i := range distances {
		distances[i] = Unreachable
	}
	distances[source] = 0

	queue := make([]int, 0, layout.NumCells())
	queue = append(queue, source)
	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]

		neighborDistance := distances[cell] + 1
		for _, neighbor := range layout.Cells[cell].Neighbors {
			if neighborDistance < distances[neighbor] {
				distances[neighbor] = neighborDistance
				queue = append(queue, neighbor)
			}
		}
	}

	return DistanceMap{distances: distances}
}

// DistanceTo returns the distance from this map's source to index.
func (m *DistanceMap) DistanceTo(index int) int {
	return m.distances[index]
}

// PathMap is the all-pairs distance table: one DistanceMap per source cell.
type PathMap struct {
	sources []DistanceMap
}

func NewPathMap(layout *game.Layout) *PathMap {
	sources := make([]DistanceMap, layout.NumCells())
	for i := range sources {
		sources[i] = generateDistanceMap(i, layout)
	}
	return &PathMap{sources: sources}
}

func (p *PathMap) DistanceBetween(source, sink int) int {
	return p.sources[source].DistanceTo(sink)
}

// StepTowards returns the neighbor of source closest to sink; ties are broken
// by the lowest cell id so movement is reproducible. The second return is
// false when source has no neighbors.
func (p *PathMap) StepTowards(source, sink int, layout *game.Layout) (int, bool) {
	// The distance map is symmetrical, so the sink works as a source.
	toSink := p.sources[sink].distances

	best, bestDistance := -1, Unreachable+1
	for _, n := range layout.Cells[source].Neighbors {
		if toSink[n] < bestDistance || (toSink[n] == bestDistance && n < best) {
			best, bestDistance = n, toSink[n]
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// CalculatePath yields source, then each step toward sink, ending at sink.
func (p *PathMap) CalculatePath(source, sink int, layout *game.Layout) []int {
	path := []int{source}
	current := source
	for current != sink {
		next, ok := p.StepTowards(current, sink, layout)
		if !ok {
			break
		}
		current = next
		path = append(path, current)
	}
	return path
}
