package solving

import (
	"math/rand"
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/raysplaceinspace/spring-challenge-2023/plans"
)

func samplePlan() []plans.Milestone {
	return []plans.Milestone{
		plans.Harvest(2),
		plans.Harvest(5),
		plans.Barrier(),
		plans.Harvest(7),
	}
}

func sortedHarvests(plan []plans.Milestone) []int {
	var cells []int
	for _, m := range plan {
		if m.Kind == plans.KindHarvest {
			cells = append(cells, m.Cell)
		}
	}
	sort.Ints(cells)
	return cells
}

func TestMutator(t *testing.T) {
	Convey("Given the incumbent plan", t, func() {
		m := NewMutator()

		Convey("Mutation never aliases the input", func() {
			plan := samplePlan()
			rng := rand.New(rand.NewSource(1))
			mutated, _ := m.Mutate(plan, rng)
			So(plan, ShouldResemble, samplePlan())
			_ = mutated
		})

		Convey("Identical seeds mutate identically", func() {
			a, kindA := m.Mutate(samplePlan(), rand.New(rand.NewSource(3)))
			b, kindB := m.Mutate(samplePlan(), rand.New(rand.NewSource(3)))
			So(a, ShouldResemble, b)
			So(kindA, ShouldEqual, kindB)
		})

		Convey("Reordering mutations preserve the harvest multiset", func() {
			for seed := int64(0); seed < 50; seed++ {
				rng := rand.New(rand.NewSource(seed))
				mutated, kind := m.Mutate(samplePlan(), rng)
				if kind == MutateBarrier {
					continue // barrier edits change the length, not order
				}
				So(sortedHarvests(mutated), ShouldResemble, []int{2, 5, 7})
				So(mutated, ShouldHaveLength, len(samplePlan()))
			}
		})

		Convey("Barrier edits toggle one barrier", func() {
			for seed := int64(0); seed < 50; seed++ {
				rng := rand.New(rand.NewSource(seed))
				mutated, kind := m.Mutate(samplePlan(), rng)
				if kind != MutateBarrier {
					continue
				}
				So(sortedHarvests(mutated), ShouldResemble, []int{2, 5, 7})
				So(len(mutated), ShouldBeIn, []int{3, 4, 5})
			}
		})

		Convey("Short plans pass through unchanged", func() {
			rng := rand.New(rand.NewSource(5))
			for i := 0; i < 20; i++ {
				mutated, kind := m.Mutate(nil, rng)
				if kind != MutateBarrier {
					So(mutated, ShouldBeEmpty)
				}
			}
		})

		Convey("Learning keeps operator weights in the unit interval", func() {
			for i := 0; i < 1000; i++ {
				m.Learn(MutateSwap, float64(i%2), 0.01)
				So(m.Weight(MutateSwap), ShouldBeGreaterThan, 0)
				So(m.Weight(MutateSwap), ShouldBeLessThanOrEqualTo, 1)
			}
		})
	})
}

func TestToggleBarrier(t *testing.T) {
	Convey("Toggling on a barrier removes it", t, func() {
		plan := []plans.Milestone{plans.Harvest(2), plans.Barrier(), plans.Harvest(5)}
		// Index 1 is the barrier; drive the rng until it lands there.
		for seed := int64(0); seed < 100; seed++ {
			rng := rand.New(rand.NewSource(seed))
			if rng.Intn(len(plan)) == 1 {
				rng = rand.New(rand.NewSource(seed))
				out := toggleBarrier(plans.Clone(plan), rng)
				So(out, ShouldResemble, []plans.Milestone{plans.Harvest(2), plans.Harvest(5)})
				return
			}
		}
	})

	Convey("Toggling after a harvest inserts a barrier unless one follows", t, func() {
		plan := []plans.Milestone{plans.Harvest(2), plans.Harvest(5)}
		for seed := int64(0); seed < 100; seed++ {
			rng := rand.New(rand.NewSource(seed))
			if rng.Intn(len(plan)) == 0 {
				rng = rand.New(rand.NewSource(seed))
				out := toggleBarrier(plans.Clone(plan), rng)
				So(out, ShouldResemble, []plans.Milestone{plans.Harvest(2), plans.Barrier(), plans.Harvest(5)})
				return
			}
		}
	})
}

func TestReverse(t *testing.T) {
	Convey("Reversing the whole plan flips it end to end", t, func() {
		plan := samplePlan()
		reverse(plan)
		So(plan, ShouldResemble, []plans.Milestone{
			plans.Harvest(7),
			plans.Barrier(),
			plans.Harvest(5),
			plans.Harvest(2),
		})
	})
}
