package solving

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/plans"
)

func rolloutOptions(numTicks int) RolloutOptions {
	return RolloutOptions{NumTicks: numTicks, Decay: 0.98}
}

func TestRollout(t *testing.T) {
	Convey("Given the line map", t, func() {
		v := lineView()
		s := lineState(v)

		Convey("Zero ticks returns zero payoff and the input endgame", func() {
			payoff, endgame := Rollout(game.Me, [game.NumPlayers][]plans.Milestone{}, v, s, rolloutOptions(0))
			So(payoff, ShouldEqual, 0)
			So(endgame.Tick, ShouldEqual, s.Tick)
			So(endgame.Crystals, ShouldResemble, s.Crystals)
			So(endgame.TotalAnts, ShouldResemble, s.TotalAnts)
		})

		Convey("The rollout never mutates the input state", func() {
			before := s.Clone()
			planFor := [game.NumPlayers][]plans.Milestone{
				{plans.Harvest(2)},
				{plans.Harvest(5)},
			}
			_, _ = Rollout(game.Me, planFor, v, s, rolloutOptions(10))
			So(s, ShouldResemble, before)
		})

		Convey("Identical inputs produce bit-identical payoffs", func() {
			planFor := [game.NumPlayers][]plans.Milestone{
				{plans.Harvest(2), plans.Harvest(5)},
				{plans.Harvest(7)},
			}
			payoffA, endA := Rollout(game.Me, planFor, v, s, rolloutOptions(50))
			payoffB, endB := Rollout(game.Me, planFor, v, s, rolloutOptions(50))
			So(payoffA, ShouldEqual, payoffB)
			So(endA, ShouldResemble, endB)
		})

		Convey("Harvesting my plan scores positive from my perspective", func() {
			planFor := [game.NumPlayers][]plans.Milestone{
				{plans.Harvest(2)},
				nil,
			}
			payoff, endgame := Rollout(game.Me, planFor, v, s, rolloutOptions(30))
			So(payoff, ShouldBeGreaterThan, 0)
			So(endgame.Crystals[game.Me], ShouldBeGreaterThan, 0)
		})

		Convey("The same rollout scores negative from the enemy's perspective", func() {
			planFor := [game.NumPlayers][]plans.Milestone{
				{plans.Harvest(2)},
				nil,
			}
			mine, _ := Rollout(game.Me, planFor, v, s, rolloutOptions(30))
			theirs, _ := Rollout(game.Enemy, planFor, v, s, rolloutOptions(30))
			So(theirs, ShouldAlmostEqual, -mine)
		})

		Convey("Rollouts stop once a player banks the winning half", func() {
			planFor := [game.NumPlayers][]plans.Milestone{
				{plans.Harvest(2), plans.Harvest(5)},
				nil,
			}
			_, endgame := Rollout(game.Me, planFor, v, s, rolloutOptions(100))
			So(endgame.Tick, ShouldBeLessThan, game.MaxTicks)
			So(2*endgame.Crystals[game.Me], ShouldBeGreaterThanOrEqualTo, v.InitialCrystals)
		})
	})
}
