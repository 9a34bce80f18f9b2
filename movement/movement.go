// Package movement converts beacon assignments into one-step physical ant
// moves, and spreads a player's ants across a beacon set.
package movement

import (
	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

// Assignments is a per-cell target occupancy for one player.
type Assignments = []int

// SpreadAntsAcrossBeacons distributes totalAnts across the beacon cells in
// order: each beacon receives remaining/remainingBeacons ants, so the
// remainder is absorbed by iteration order.
func SpreadAntsAcrossBeacons(beacons []int, totalAnts, numCells int) Assignments {
	assignments := make([]int, numCells)

	remaining := totalAnts
	for index, cell := range beacons {
		if remaining <= 0 {
			break
		}
		remainingBeacons := len(beacons) - index
		assign := remaining / remainingBeacons
		remaining -= assign
		assignments[cell] = assign
	}

	return assignments
}

// KeepExisting returns assignments that leave every ant where it is.
func KeepExisting(numAnts []int) Assignments {
	return append([]int(nil), numAnts...)
}

// ToActions emits one BEACON command per cell with a positive assignment.
func ToActions(assignments Assignments) []game.Action {
	var actions []game.Action
	for cell, strength := range assignments {
		if strength > 0 {
			actions = append(actions, game.Beacon(cell, strength))
		}
	}
	return actions
}

type move struct {
	source   int
	sink     int
	assigned int
}

// MoveAnts advances a player's ants one step toward their assignments.
// Total ants are conserved. Source/sink pairing is greedy by graph distance
// with ties broken by cell ids, so the result is reproducible.
func MoveAnts(assignments Assignments, v *view.View, numAnts []int) {
	numCells := v.Layout.NumCells()

	assignments = rescale(assignments, numAnts)

	// Cells with more ants than assigned are sources, fewer are sinks.
	excess := make([]int, numCells)
	var sources, sinks []int
	for cell := 0; cell < numCells; cell++ {
		excess[cell] = numAnts[cell] - assignments[cell]
		if excess[cell] > 0 {
			sources = append(sources, cell)
		} else if excess[cell] < 0 {
			sinks = append(sinks, cell)
		}
	}

	var moves []move
	for len(sources) > 0 && len(sinks) > 0 {
		bestSource, bestSink := -1, -1
		bestDistance := -1
		for _, sink := range sinks {
			for _, source := range sources {
				d := v.Paths.DistanceBetween(source, sink)
				if bestDistance < 0 || d < bestDistance ||
					(d == bestDistance && (source < bestSource || (source == bestSource && sink < bestSink))) {
					bestSource, bestSink, bestDistance = source, sink, d
				}
			}
		}

		available := excess[bestSource]
		required := -excess[bestSink]
		assigned := available
		if required < assigned {
			assigned = required
		}
		if assigned <= 0 {
			break
		}

		moves = append(moves, move{source: bestSource, sink: bestSink, assigned: assigned})

		excess[bestSource] -= assigned
		if excess[bestSource] <= 0 {
			sources = remove(sources, bestSource)
		}
		excess[bestSink] += assigned
		if excess[bestSink] >= 0 {
			sinks = remove(sinks, bestSink)
		}
	}

	for _, m := range moves {
		next, ok := v.Paths.StepTowards(m.source, m.sink, v.Layout)
		if !ok {
			continue
		}
		numAnts[m.source] -= m.assigned
		numAnts[next] += m.assigned
	}
}

// rescale shrinks or stretches assignments whose sum differs from the ant
// total, so movement never creates or destroys ants. Assignments built by
// SpreadAntsAcrossBeacons are already exact and pass through untouched.
func rescale(assignments, numAnts []int) Assignments {
	total, want := 0, 0
	for _, n := range numAnts {
		want += n
	}
	for _, a := range assignments {
		total += a
	}
	if total == want || total == 0 {
		return assignments
	}

	scaled := make([]int, len(assignments))
	remaining := want
	for cell, a := range assignments {
		give := a * want / total
		if give > remaining {
			give = remaining
		}
		scaled[cell] = give
		remaining -= give
	}
	// Any integer-division remainder stays on the first assigned cell.
	if remaining > 0 {
		for cell, a := range assignments {
			if a > 0 {
				scaled[cell] += remaining
				break
			}
		}
	}
	return scaled
}

func remove(cells []int, cell int) []int {
	for i, c := range cells {
		if c == cell {
			return append(cells[:i], cells[i+1:]...)
		}
	}
	return cells
}
