package paths

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
)

// lineLayout builds the path graph 0-1-2-...-(n-1).
func lineLayout(n int) *game.Layout {
	layout := &game.Layout{Cells: make([]game.CellLayout, n)}
	for i := 0; i < n; i++ {
		var neighbors []int
		if i > 0 {
			neighbors = append(neighbors, i-1)
		}
		if i < n-1 {
			neighbors = append(neighbors, i+1)
		}
		layout.Cells[i].Neighbors = neighbors
	}
	return layout
}

// diamondLayout gives two equal-length routes from 0 to 3: via 1 or via 2.
func diamondLayout() *game.Layout {
	return &game.Layout{Cells: []game.CellLayout{
		{Neighbors: []int{1, 2}},
		{Neighbors: []int{0, 3}},
		{Neighbors: []int{0, 3}},
		{Neighbors: []int{1, 2}},
	}}
}

func TestPathMap(t *testing.T) {
	Convey("Given a line of five cells", t, func() {
		layout := lineLayout(5)
		paths := NewPathMap(layout)

		Convey("Distances count the steps between cells", func() {
			So(paths.DistanceBetween(0, 4), ShouldEqual, 4)
			So(paths.DistanceBetween(2, 2), ShouldEqual, 0)
		})

		Convey("The distance matrix is symmetric", func() {
			for a := 0; a < 5; a++ {
				for b := 0; b < 5; b++ {
					So(paths.DistanceBetween(a, b), ShouldEqual, paths.DistanceBetween(b, a))
				}
			}
		})

		Convey("The triangle inequality holds", func() {
			for a := 0; a < 5; a++ {
				for b := 0; b < 5; b++ {
					for c := 0; c < 5; c++ {
						So(paths.DistanceBetween(a, c),
							ShouldBeLessThanOrEqualTo,
							paths.DistanceBetween(a, b)+paths.DistanceBetween(b, c))
					}
				}
			}
		})

		Convey("CalculatePath yields a minimal path including both endpoints", func() {
			So(paths.CalculatePath(0, 3, layout), ShouldResemble, []int{0, 1, 2, 3})
			So(paths.CalculatePath(3, 3, layout), ShouldResemble, []int{3})
		})
	})

	Convey("Given a disconnected pair", t, func() {
		layout := &game.Layout{Cells: []game.CellLayout{{}, {}}}
		paths := NewPathMap(layout)

		Convey("The distance is the unreachable sentinel", func() {
			So(paths.DistanceBetween(0, 1), ShouldEqual, Unreachable)
		})
	})

	Convey("Given equal-length routes", t, func() {
		layout := diamondLayout()
		paths := NewPathMap(layout)

		Convey("StepTowards breaks the tie to the lowest cell id", func() {
			next, ok := paths.StepTowards(0, 3, layout)
			So(ok, ShouldBeTrue)
			So(next, ShouldEqual, 1)
		})
	})
}

func TestNearbyPathMap(t *testing.T) {
	Convey("Given equal-length routes and ants on the higher one", t, func() {
		layout := diamondLayout()
		paths := NewPathMap(layout)
		nearby := NewNearbyPathMap(layout, func(cell int) bool { return cell == 2 })

		Convey("StepTowards prefers the route near the ants", func() {
			next, ok := nearby.StepTowards(0, 3, layout, paths)
			So(ok, ShouldBeTrue)
			So(next, ShouldEqual, 2)
		})

		Convey("CalculatePath runs through the occupied cell", func() {
			So(nearby.CalculatePath(0, 3, layout, paths), ShouldResemble, []int{0, 2, 3})
		})
	})

	Convey("Given a frontier grown with Include", t, func() {
		layout := lineLayout(5)
		nearby := NewNearbyPathMap(layout, func(cell int) bool { return cell == 0 })

		So(nearby.DistanceToNearest(4), ShouldEqual, 4)
		nearby.Include(layout, 3)
		So(nearby.DistanceToNearest(4), ShouldEqual, 1)
		So(nearby.DistanceToNearest(2), ShouldEqual, 1)
	})
}
