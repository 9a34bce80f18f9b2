// Package harvest computes per-cell harvest rates. A cell's rate for a
// player is the strongest chain of occupied cells connecting it to one of
// the player's bases: the maximum over paths of the minimum ant count along
// the path.
package harvest

import (
	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

// HarvestMap holds the max chain flow per cell for one player.
type HarvestMap struct {
	maxFlow []int
}

// Generate computes a player's flows given their ants per cell.
func Generate(player int, v *view.View, numAnts []int) *HarvestMap {
	return &HarvestMap{maxFlow: MaxFlowForPlayer(player, v, numAnts)}
}

// At returns the raw chain flow at cell.
func (h *HarvestMap) At(cell int) int {
	return h.maxFlow[cell]
}

// HarvestAt returns how much this player extracts from cell given the
// resources available there.
func (h *HarvestMap) HarvestAt(cell, available int) int {
	if available <= 0 {
		return 0
	}
	if demand := h.maxFlow[cell]; demand < available {
		return demand
	}
	return available
}

// MaxFlowForPlayer is the per-cell maximum over the player's bases of the
// chain flow from that base.
func MaxFlowForPlayer(player int, v *view.View, numAnts []int) []int {
	maxFlow := make([]int, v.Layout.NumCells())
	for _, base := range v.Layout.Bases[player] {
		flows := flowsToBase(base, v, numAnts)
		for i, f := range flows {
			if f > maxFlow[i] {
				maxFlow[i] = f
			}
		}
	}
	return maxFlow
}

// flowsToBase relaxes flows outward from one base: a neighbor's flow is the
// smaller of its own ant count and the flow of the cell it extends.
func flowsToBase(base int, v *view.View, numAnts []int) []int {
	flows := make([]int, v.Layout.NumCells())
	flows[base] = numAnts[base]

	queue := []int{base}
	for len(queue) > 0 {
		source := queue[0]
		queue = queue[1:]

		sourceFlow := flows[source]
		if sourceFlow < 0 {
			continue
		}

		for _, neighbor := range v.Layout.Cells[source].Neighbors {
			neighborAnts := numAnts[neighbor]
			if neighborAnts <= 0 {
				continue
			}

			neighborFlow := neighborAnts
			if sourceFlow < neighborFlow {
				neighborFlow = sourceFlow
			}
			if flows[neighbor] < neighborFlow {
				flows[neighbor] = neighborFlow
				queue = append(queue, neighbor)
			}
		}
	}

	return flows
}

// GenerateBoth computes both players' maps. With unhindered set, cells where
// the opposing flow strictly exceeds a player's own are zeroed out and both
// flows are recomputed once, modelling attack-chain blocking.
func GenerateBoth(v *view.View, s *game.State, unhindered bool) [game.NumPlayers]*HarvestMap {
	var maps [game.NumPlayers]*HarvestMap
	for p := 0; p < game.NumPlayers; p++ {
		maps[p] = Generate(p, v, s.NumAnts[p])
	}
	if !unhindered {
		return maps
	}

	var hindered [game.NumPlayers][]int
	for p := 0; p < game.NumPlayers; p++ {
		enemy := game.Opponent(p)
		ants := append([]int(nil), s.NumAnts[p]...)
		for cell := range ants {
			if maps[enemy].maxFlow[cell] > maps[p].maxFlow[cell] {
				ants[cell] = 0
			}
		}
		hindered[p] = ants
	}
	for p := 0; p < game.NumPlayers; p++ {
		maps[p] = Generate(p, v, hindered[p])
	}
	return maps
}
