package valuation

import (
	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/paths"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

// SpawnEvaluator decides whether harvesting a cell pays off, trading the
// ticks spent hatching eggs against the ticks the extra ants save on the
// crystals still needed to win.
type SpawnEvaluator struct {
	player    int
	totalAnts int
	view      *view.View
	resources []int
	strictWin bool

	// ticksToFinish estimates how long the player needs, at current
	// strength, to harvest the crystals still required for the win.
	ticksToFinish int
}

// NewSpawnEvaluator builds the evaluator. strictWin must match the
// simulator's win predicate so both aim at the same crystal threshold.
func NewSpawnEvaluator(player int, v *view.View, s *game.State, strictWin bool) SpawnEvaluator {
	e := SpawnEvaluator{
		player:    player,
		totalAnts: s.TotalAnts[player],
		view:      v,
		resources: s.Resources,
		strictWin: strictWin,
	}
	e.ticksToFinish = e.ticksToHarvestRemainingCrystals(s)
	return e
}

// winThreshold is the crystal count that ends the game, mirroring
// simulator.FindWinner: at least half non-strict, more than half strict.
func (e SpawnEvaluator) winThreshold() int {
	if e.strictWin {
		return e.view.InitialCrystals/2 + 1
	}
	return (e.view.InitialCrystals + 1) / 2
}

// ticksToHarvestRemainingCrystals walks crystal cells outward from the
// player's bases, accumulating the ticks each takes to drain at the
// strength the player can sustain over that distance.
func (e SpawnEvaluator) ticksToHarvestRemainingCrystals(s *game.State) int {
	needed := e.winThreshold() - s.Crystals[e.player]
	if needed <= 0 {
		return 0
	}

	ticks := 0
	for _, cell := range e.view.CrystalCells[e.player] {
		if needed <= 0 {
			break
		}
		available := s.Resources[cell]
		if available <= 0 {
			continue
		}
		distance := e.view.BaseDistance[e.player][cell]
		if distance >= paths.Unreachable {
			continue
		}

		harvestable := available
		if needed < harvestable {
			harvestable = needed
		}

		rate := 1
		if distance > 0 && e.totalAnts/distance > 0 {
			rate = e.totalAnts / distance
		}
		ticks += (harvestable + rate - 1) / rate
		needed -= harvestable
	}
	return ticks
}

// TicksSaved estimates how many ticks hatching numEggs ants shaves off the
// remaining-crystals estimate.
func (e SpawnEvaluator) TicksSaved(numEggs int) int {
	if numEggs <= 0 || e.totalAnts+numEggs <= 0 {
		return 0
	}
	return e.ticksToFinish * numEggs / (e.totalAnts + numEggs)
}

// IsWorthHarvesting reports whether cell justifies travelTicks of travel.
// Crystals are always worth it while any remain; eggs only while the ants
// they hatch repay the trip and the drain time.
func (e SpawnEvaluator) IsWorthHarvesting(cell, travelTicks int) bool {
	available := e.resources[cell]
	if available <= 0 {
		return false
	}

	switch e.view.Layout.Cells[cell].Content {
	case game.ContentCrystals:
		return true
	case game.ContentEggs:
		distance := e.view.BaseDistance[e.player][cell]
		if distance <= 0 {
			distance = 1
		}
		rate := e.totalAnts / distance
		if rate <= 0 {
			return false
		}

		hatch := rate
		if available < hatch {
			hatch = available
		}
		drainTicks := (available + rate - 1) / rate
		return e.TicksSaved(hatch) >= travelTicks+drainTicks
	default:
		return false
	}
}
