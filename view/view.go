// Package view derives per-game immutable lookups from a Layout: the
// all-pairs distance table plus per-player sortings that accelerate
// valuation and opponent modelling.
package view

import (
	"sort"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/paths"
)

// View is a Layout plus pre-calculated values derived from it.
type View struct {
	Layout *game.Layout
	Paths  *paths.PathMap

	// InitialCrystals is the sum of initial resources over crystal cells.
	InitialCrystals int

	// ClosestBase[p][cell] is the base cell of player p nearest to cell
	// (ties to the lowest base id). BaseDistance[p][cell] is its distance.
	ClosestBase  [game.NumPlayers][]int
	BaseDistance [game.NumPlayers][]int

	// Per player: cells holding each content type, sorted by distance to
	// that player's nearest base (ties by cell id).
	CrystalCells  [game.NumPlayers][]int
	EggCells      [game.NumPlayers][]int
	ResourceCells [game.NumPlayers][]int
}

func New(layout *game.Layout) *View {
	v := &View{
		Layout: layout,
		Paths:  paths.NewPathMap(layout),
	}

	for _, cell := range layout.Cells {
		if cell.Content == game.ContentCrystals {
			v.InitialCrystals += cell.InitialResources
		}
	}

	numCells := layout.NumCells()
	for p := 0; p < game.NumPlayers; p++ {
		v.ClosestBase[p] = make([]int, numCells)
		v.BaseDistance[p] = make([]int, numCells)
		for cell := 0; cell < numCells; cell++ {
			closest, closestDistance := -1, paths.Unreachable+1
			for _, base := range layout.Bases[p] {
				if d := v.Paths.DistanceBetween(base, cell); d < closestDistance {
					closest, closestDistance = base, d
				}
			}
			v.ClosestBase[p][cell] = closest
			v.BaseDistance[p][cell] = closestDistance
		}

		for cell := 0; cell < numCells; cell++ {
			switch layout.Cells[cell].Content {
			case game.ContentCrystals:
				v.CrystalCells[p] = append(v.CrystalCells[p], cell)
				v.ResourceCells[p] = append(v.ResourceCells[p], cell)
			case game.ContentEggs:
				v.EggCells[p] = append(v.EggCells[p], cell)
				v.ResourceCells[p] = append(v.ResourceCells[p], cell)
			}
		}
		v.sortByBaseDistance(p, v.CrystalCells[p])
		v.sortByBaseDistance(p, v.EggCells[p])
		v.sortByBaseDistance(p, v.ResourceCells[p])
	}

	return v
}

func (v *View) sortByBaseDistance(player int, cells []int) {
	sort.Slice(cells, func(i, j int) bool {
		di, dj := v.BaseDistance[player][cells[i]], v.BaseDistance[player][cells[j]]
		if di != dj {
			return di < dj
		}
		return cells[i] < cells[j]
	})
}
