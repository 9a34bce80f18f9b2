// Package simulator advances the game by one tick exactly the way the host
// engine does: movement, then harvest (crediting crystals and spawning from
// eggs), then the win check. Every tie-break is by cell or player id so
// rollouts are reproducible.
package simulator

import (
	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/harvest"
	"github.com/raysplaceinspace/spring-challenge-2023/movement"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

// Options selects between host-engine variants; see config.
type Options struct {
	// Unhindered re-runs the flow computation after zeroing out-fought cells.
	Unhindered bool
	// CreditBoth lets both players credit a contested cell against its full
	// remaining resources instead of crediting sequentially by player id.
	CreditBoth bool
	// StrictWin requires crystals to strictly exceed half the initial total.
	StrictWin bool
}

// Forward applies one tick: movement for both players, then harvest.
func Forward(assignments *[game.NumPlayers]movement.Assignments, v *view.View, s *game.State, opt Options) {
	s.Tick++
	for p := 0; p < game.NumPlayers; p++ {
		movement.MoveAnts(assignments[p], v, s.NumAnts[p])
	}
	applyHarvest(v, s, opt)
}

func applyHarvest(v *view.View, s *game.State, opt Options) {
	maps := harvest.GenerateBoth(v, s, opt.Unhindered)

	for cell := 0; cell < v.Layout.NumCells(); cell++ {
		available := s.Resources[cell]
		if available <= 0 {
			continue
		}
		content := v.Layout.Cells[cell].Content
		if content == game.ContentNone {
			continue
		}

		reduction := 0
		remaining := available
		for p := 0; p < game.NumPlayers; p++ {
			budget := remaining
			if opt.CreditBoth {
				budget = available
			}
			taken := maps[p].HarvestAt(cell, budget)
			if taken <= 0 {
				continue
			}

			reduction += taken
			remaining -= taken

			switch content {
			case game.ContentCrystals:
				s.Crystals[p] += taken
			case game.ContentEggs:
				spawn(p, v, s, taken)
			}
		}
		if reduction <= 0 {
			continue
		}

		next := available - reduction
		if next < 0 {
			next = 0
		}
		s.Resources[cell] = next
	}
}

// spawn distributes newly hatched ants across the player's bases by
// sequential integer division, the same rule beacons use.
func spawn(player int, v *view.View, s *game.State, hatched int) {
	bases := v.Layout.Bases[player]
	remaining := hatched
	for index, base := range bases {
		share := remaining / (len(bases) - index)
		s.NumAnts[player][base] += share
		s.TotalAnts[player] += share
		remaining -= share
	}
}

// FindWinner reports whether a player has banked enough crystals to win
// outright. Player 0 is checked first on simultaneous threshold crossings.
func FindWinner(v *view.View, s *game.State, opt Options) (int, bool) {
	if v.InitialCrystals > 0 {
		for p := 0; p < game.NumPlayers; p++ {
			banked := 2 * s.Crystals[p]
			if banked > v.InitialCrystals || (!opt.StrictWin && banked == v.InitialCrystals) {
				return p, true
			}
		}
	}
	if s.Tick >= game.MaxTicks {
		return WinnerAtMaxTicks(s), true
	}
	return 0, false
}

// WinnerAtMaxTicks ranks players at the tick limit: more crystals wins,
// then more total ants, then the enemy takes the tie.
func WinnerAtMaxTicks(s *game.State) int {
	if s.Crystals[game.Me] != s.Crystals[game.Enemy] {
		if s.Crystals[game.Me] > s.Crystals[game.Enemy] {
			return game.Me
		}
		return game.Enemy
	}
	if s.TotalAnts[game.Me] > s.TotalAnts[game.Enemy] {
		return game.Me
	}
	return game.Enemy
}
