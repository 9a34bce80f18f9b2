// Package valuation prices harvesting decisions: the rate a plan collects
// at given its spread, and whether an individual cell is worth the trip.
package valuation

import (
	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

// NumHarvests counts accepted harvest targets by content.
type NumHarvests struct {
	Crystals int
	Eggs     int
}

// Add returns the counts incremented for one more harvest of content.
func (n NumHarvests) Add(content game.Content) NumHarvests {
	switch content {
	case game.ContentCrystals:
		n.Crystals++
	case game.ContentEggs:
		n.Eggs++
	}
	return n
}

func (n NumHarvests) Total() int {
	return n.Crystals + n.Eggs
}

// HarvestEvaluator computes the collection rate of a candidate beacon set
// summarised as (harvest counts, spread). Eggs are discounted late in the
// game when hatching more ants can no longer pay for itself.
type HarvestEvaluator struct {
	totalAnts   int
	valuePerEgg float64
}

func NewHarvestEvaluator(player int, s *game.State) HarvestEvaluator {
	return HarvestEvaluator{
		totalAnts:   s.TotalAnts[player],
		valuePerEgg: 1.0,
	}
}

// WithEggDecay discounts egg harvests by the remaining potential of the
// game: the lesser of the crystals-remaining and ticks-remaining
// proportions.
func (e HarvestEvaluator) WithEggDecay(v *view.View, s *game.State) HarvestEvaluator {
	e.valuePerEgg = eggValue(v, s)
	return e
}

// HarvestRate is the per-tick collection rate: ants are divided evenly
// across the spread (integer division, ants cannot be split), and each
// harvest target collects at that per-cell strength.
func (e HarvestEvaluator) HarvestRate(counts NumHarvests, spread int) float64 {
	if spread <= 0 {
		return 0
	}
	perCell := e.totalAnts / spread
	return float64(counts.Crystals)*float64(perCell) + e.valuePerEgg*float64(counts.Eggs)*float64(perCell)
}

func eggValue(v *view.View, s *game.State) float64 {
	if v.InitialCrystals <= 0 {
		return 0
	}
	harvested := 0
	for p := 0; p < game.NumPlayers; p++ {
		harvested += s.Crystals[p]
	}
	remaining := v.InitialCrystals - harvested
	if remaining < 0 {
		remaining = 0
	}
	crystalsProportion := float64(remaining) / float64(v.InitialCrystals)

	ticksRemaining := game.MaxTicks - s.Tick
	if ticksRemaining < 0 {
		ticksRemaining = 0
	}
	ticksProportion := float64(ticksRemaining) / float64(game.MaxTicks)

	if crystalsProportion < ticksProportion {
		return crystalsProportion
	}
	return ticksProportion
}
