package plans

import (
	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/harvest"
	"github.com/raysplaceinspace/spring-challenge-2023/movement"
	"github.com/raysplaceinspace/spring-challenge-2023/paths"
	"github.com/raysplaceinspace/spring-challenge-2023/valuation"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

// Commands is the planner's output: the per-cell ant assignments plus the
// harvest targets it committed to.
type Commands struct {
	Assignments movement.Assignments
	Targets     []int
}

// Enact walks the plan's milestones in order, greedily growing a beacon
// mesh from the player's bases. A harvest is accepted only while it raises
// the collection rate; the first refusal ends the walk, since later plan
// entries can only be worse under greedy acceptance. Chains stop short of
// cells the enemy's attack chains would win.
func Enact(player int, plan []Milestone, v *view.View, s *game.State) Commands {
	enemy := game.Opponent(player)
	attack := harvest.MaxFlowForPlayer(enemy, v, s.NumAnts[enemy])
	evaluator := valuation.NewHarvestEvaluator(player, s).WithEggDecay(v, s)

	var counts valuation.NumHarvests
	var targets []int

	numCells := v.Layout.NumCells()
	inBeacons := make([]bool, numCells)
	var beacons []int

	unusedBases := append([]int(nil), v.Layout.Bases[player]...)

	nearby := paths.NewNearbyPathMap(v.Layout, func(cell int) bool {
		return s.NumAnts[player][cell] > 0
	})

	totalAnts := s.TotalAnts[player]

walk:
	for _, milestone := range plan {
		switch milestone.Kind {
		case KindBarrier:
			// A barrier commits the planner to what it already holds.
			if len(targets) > 0 {
				break walk
			}

		case KindHarvest:
			target := milestone.Cell
			if s.Resources[target] <= 0 {
				continue // nothing left to harvest here
			}

			source, distance := closestSource(target, beacons, unusedBases, v)
			if distance >= paths.Unreachable {
				continue
			}

			newCounts := counts.Add(v.Layout.Cells[target].Content)

			initialSpread := len(beacons)
			initialRate := evaluator.HarvestRate(counts, initialSpread)

			newSpread := initialSpread + distance
			newRate := evaluator.HarvestRate(newCounts, newSpread)
			if newRate <= initialRate {
				// Best harvest not worth it, so none others will be either.
				break walk
			}

			antsPerCell := 0
			if newSpread > 0 {
				antsPerCell = totalAnts / newSpread
			}
			for _, cell := range nearby.CalculatePath(source, target, v.Layout, v.Paths) {
				if attack[cell] > antsPerCell {
					break // cannot win this cell from the enemy's chain
				}
				if !inBeacons[cell] {
					inBeacons[cell] = true
					beacons = append(beacons, cell)
				}
				unusedBases = removeCell(unusedBases, cell)
			}
			targets = append(targets, target)
			counts = newCounts
		}
	}

	// Bases not covered by any chain still hold a beacon so their ants
	// stand ground rather than drifting.
	for _, base := range unusedBases {
		if !inBeacons[base] {
			inBeacons[base] = true
			beacons = append(beacons, base)
		}
	}

	return Commands{
		Assignments: movement.SpreadAntsAcrossBeacons(beacons, totalAnts, numCells),
		Targets:     targets,
	}
}

// closestSource finds the member of beacons ∪ bases nearest to target,
// ties to the lowest cell id.
func closestSource(target int, beacons, bases []int, v *view.View) (int, int) {
	best, bestDistance := -1, paths.Unreachable
	consider := func(cell int) {
		d := v.Paths.DistanceBetween(cell, target)
		if d < bestDistance || (d == bestDistance && cell < best) {
			best, bestDistance = cell, d
		}
	}
	for _, cell := range beacons {
		consider(cell)
	}
	for _, cell := range bases {
		consider(cell)
	}
	return best, bestDistance
}

func removeCell(cells []int, cell int) []int {
	for i, c := range cells {
		if c == cell {
			return append(cells[:i], cells[i+1:]...)
		}
	}
	return cells
}
