package solving

import (
	"math"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/movement"
	"github.com/raysplaceinspace/spring-challenge-2023/plans"
	"github.com/raysplaceinspace/spring-challenge-2023/simulator"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

// Endgame snapshots where a rollout stopped.
type Endgame struct {
	Tick      int
	Crystals  [game.NumPlayers]int
	TotalAnts [game.NumPlayers]int
}

// RolloutOptions bound and shape the forward simulation.
type RolloutOptions struct {
	NumTicks int
	// Decay discounts crystal deltas by age: near wins beat far wins.
	Decay float64
	// WinBonus is added (or subtracted) when a rollout ends in a win.
	WinBonus float64
	// TerminalShare apportions unharvested crystals at the tick limit by
	// the ratio of total ants; eggs left on the map carry no weight in it.
	TerminalShare bool
	Sim           simulator.Options
}

// Rollout simulates both players following their plans and returns the
// discounted crystal-delta payoff from player's perspective.
func Rollout(player int, planFor [game.NumPlayers][]plans.Milestone, v *view.View, start *game.State, opt RolloutOptions) (float64, Endgame) {
	s := start.Clone()

	payoff := 0.0
	for age := 0; age < opt.NumTicks; age++ {
		var assignments [game.NumPlayers]movement.Assignments
		for p := 0; p < game.NumPlayers; p++ {
			assignments[p] = plans.Enact(p, planFor[p], v, s).Assignments
		}

		before := s.Crystals
		simulator.Forward(&assignments, v, s, opt.Sim)

		discount := math.Pow(opt.Decay, float64(age))
		for p := 0; p < game.NumPlayers; p++ {
			delta := float64(s.Crystals[p] - before[p])
			payoff += sign(p, player) * delta * discount
		}

		if winner, over := simulator.FindWinner(v, s, opt.Sim); over {
			payoff += sign(winner, player) * opt.WinBonus * discount
			if s.Tick >= game.MaxTicks && opt.TerminalShare {
				payoff += terminalShare(player, v, s) * discount
			}
			break
		}
	}

	return payoff, Endgame{
		Tick:      s.Tick,
		Crystals:  s.Crystals,
		TotalAnts: s.TotalAnts,
	}
}

func sign(p, player int) float64 {
	if p == player {
		return 1
	}
	return -1
}

// terminalShare splits the crystals left on the map by the ratio of total
// ants, from player's perspective.
func terminalShare(player int, v *view.View, s *game.State) float64 {
	remaining := v.InitialCrystals - s.Crystals[game.Me] - s.Crystals[game.Enemy]
	if remaining <= 0 {
		return 0
	}
	totalAnts := s.TotalAnts[game.Me] + s.TotalAnts[game.Enemy]
	if totalAnts <= 0 {
		return 0
	}
	enemy := game.Opponent(player)
	share := float64(s.TotalAnts[player]-s.TotalAnts[enemy]) / float64(totalAnts)
	return float64(remaining) * share
}
