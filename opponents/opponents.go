// Package opponents predicts a player's beacon set for one tick without a
// plan; the arena seats it as a baseline driver.
// The model is a deterministic, computed-once-per-tick approximation of
// what a player in the opponent's position would do: keep servicing the
// chains it is already harvesting through, then extend toward the nearest
// resources that are worth the trip.
package opponents

import (
	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/harvest"
	"github.com/raysplaceinspace/spring-challenge-2023/movement"
	"github.com/raysplaceinspace/spring-challenge-2023/paths"
	"github.com/raysplaceinspace/spring-challenge-2023/valuation"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

// EnactCountermoves returns the expected assignments for player this tick.
// When nothing is worth extending toward, ants keep their current posts.
// strictWin must match the simulated engine's win predicate so the egg
// valuation targets the same crystal threshold.
func EnactCountermoves(player int, v *view.View, s *game.State, strictWin bool) movement.Assignments {
	totalAnts := s.TotalAnts[player]
	if totalAnts <= 0 {
		return make([]int, v.Layout.NumCells())
	}

	numCells := v.Layout.NumCells()
	inBeacons := make([]bool, numCells)
	var beacons []int
	add := func(cell int) {
		if !inBeacons[cell] {
			inBeacons[cell] = true
			beacons = append(beacons, cell)
		}
	}

	// Busy cells: everything on a return path from a currently harvested
	// resource back to its nearest base. These ants have a job already.
	flow := harvest.Generate(player, v, s.NumAnts[player])
	var counts valuation.NumHarvests
	for _, base := range v.Layout.Bases[player] {
		add(base)
	}
	for _, cell := range v.ResourceCells[player] {
		if s.Resources[cell] <= 0 || flow.At(cell) <= 0 {
			continue
		}
		counts = counts.Add(v.Layout.Cells[cell].Content)
		markReturnPath(player, cell, v, s, add)
	}

	// Extend the mesh toward nearby resources while each one still raises
	// the collection rate and repays its travel time.
	evaluator := valuation.NewHarvestEvaluator(player, s).WithEggDecay(v, s)
	spawner := valuation.NewSpawnEvaluator(player, v, s, strictWin)

	mesh := paths.NewNearbyPathMap(v.Layout, func(cell int) bool {
		return inBeacons[cell]
	})

	extended := false
	for _, candidate := range v.ResourceCells[player] {
		if len(beacons) > totalAnts {
			break
		}
		if s.Resources[candidate] <= 0 || inBeacons[candidate] {
			continue
		}

		travel := mesh.DistanceToNearest(candidate)
		if travel >= paths.Unreachable {
			continue
		}
		if !spawner.IsWorthHarvesting(candidate, travel) {
			continue
		}

		newCounts := counts.Add(v.Layout.Cells[candidate].Content)
		initialRate := evaluator.HarvestRate(counts, len(beacons))
		newRate := evaluator.HarvestRate(newCounts, len(beacons)+travel)
		if newRate <= initialRate {
			break // candidates are in nearest order; later ones fare worse
		}

		source := closestBeacon(candidate, beacons, v)
		grown := mesh.CalculatePath(source, candidate, v.Layout, v.Paths)
		for _, cell := range grown {
			add(cell)
		}
		mesh.Include(v.Layout, grown...)
		counts = newCounts
		extended = true
	}

	if len(beacons) > totalAnts {
		// More posts than ants cannot be serviced; hold current ground.
		return movement.KeepExisting(s.NumAnts[player])
	}
	if !extended && counts.Total() == 0 {
		// No chain is flowing and nothing is worth extending toward;
		// spreading would only drag idle ants back to base.
		return movement.KeepExisting(s.NumAnts[player])
	}
	return movement.SpreadAntsAcrossBeacons(beacons, totalAnts, numCells)
}

// markReturnPath walks from a harvested cell back toward the nearest base,
// following occupied neighbors with strictly decreasing base distance.
func markReturnPath(player, from int, v *view.View, s *game.State, add func(int)) {
	current := from
	add(current)
	for {
		currentDistance := v.BaseDistance[player][current]
		if currentDistance <= 0 {
			return
		}
		next := -1
		nextDistance := currentDistance
		for _, neighbor := range v.Layout.Cells[current].Neighbors {
			if s.NumAnts[player][neighbor] <= 0 {
				continue
			}
			if d := v.BaseDistance[player][neighbor]; d < nextDistance {
				next, nextDistance = neighbor, d
			}
		}
		if next < 0 {
			return
		}
		current = next
		add(current)
	}
}

func closestBeacon(target int, beacons []int, v *view.View) int {
	best, bestDistance := beacons[0], paths.Unreachable
	for _, cell := range beacons {
		if d := v.Paths.DistanceBetween(cell, target); d < bestDistance {
			best, bestDistance = cell, d
		}
	}
	return best
}
