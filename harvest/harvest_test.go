package harvest

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

func lineView() *view.View {
	layout := &game.Layout{Cells: make([]game.CellLayout, 5)}
	for i := 0; i < 5; i++ {
		var neighbors []int
		if i > 0 {
			neighbors = append(neighbors, i-1)
		}
		if i < 4 {
			neighbors = append(neighbors, i+1)
		}
		layout.Cells[i].Neighbors = neighbors
	}
	layout.Cells[2].Content = game.ContentCrystals
	layout.Cells[2].InitialResources = 10
	layout.Bases[game.Me] = []int{0}
	layout.Bases[game.Enemy] = []int{4}
	return view.New(layout)
}

func TestHarvestFlows(t *testing.T) {
	Convey("Given a chain of occupied cells from the base", t, func() {
		v := lineView()

		Convey("The flow at each cell is the chain's weakest link", func() {
			flow := Generate(game.Me, v, []int{3, 3, 1, 0, 0})
			So(flow.At(0), ShouldEqual, 3)
			So(flow.At(1), ShouldEqual, 3)
			So(flow.At(2), ShouldEqual, 1)
			So(flow.At(3), ShouldEqual, 0)
		})

		Convey("An unoccupied cell breaks the chain", func() {
			flow := Generate(game.Me, v, []int{3, 0, 3, 0, 0})
			So(flow.At(2), ShouldEqual, 0)
		})

		Convey("An empty base yields no flow anywhere", func() {
			flow := Generate(game.Me, v, []int{0, 2, 2, 0, 0})
			So(flow.At(1), ShouldEqual, 0)
			So(flow.At(2), ShouldEqual, 0)
		})

		Convey("HarvestAt is capped by the available resources", func() {
			flow := Generate(game.Me, v, []int{5, 5, 5, 0, 0})
			So(flow.HarvestAt(2, 3), ShouldEqual, 3)
			So(flow.HarvestAt(2, 10), ShouldEqual, 5)
			So(flow.HarvestAt(2, 0), ShouldEqual, 0)
		})
	})

	Convey("Given both players reaching the same cell", t, func() {
		v := lineView()
		s := game.NewState(5)
		s.NumAnts[game.Me] = []int{3, 3, 3, 0, 0}
		s.NumAnts[game.Enemy] = []int{0, 0, 1, 1, 1}
		s.RecountAnts()

		Convey("Plain generation reports both chains", func() {
			maps := GenerateBoth(v, s, false)
			So(maps[game.Me].At(2), ShouldEqual, 3)
			So(maps[game.Enemy].At(2), ShouldEqual, 1)
		})

		Convey("The unhindered recompute blocks the out-fought chain", func() {
			maps := GenerateBoth(v, s, true)
			// The enemy's chain through cell 2 loses 3 vs 1 and is severed.
			So(maps[game.Me].At(2), ShouldEqual, 3)
			So(maps[game.Enemy].At(2), ShouldEqual, 0)
		})
	})
}
