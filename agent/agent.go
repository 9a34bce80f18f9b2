// Package agent drives one player's turns: reap the previous plans, solve
// until the deadline, emit beacons. It owns the fixed-seed PRNG and both
// solvers, so two runs over identical inputs that complete the same number
// of search iterations emit identical commands.
package agent

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/raysplaceinspace/spring-challenge-2023/config"
	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/movement"
	"github.com/raysplaceinspace/spring-challenge-2023/plans"
	"github.com/raysplaceinspace/spring-challenge-2023/solving"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

// The fixed seed keeps every run of the same game reproducible.
const prngSeed int64 = 0x1234567890abcdef

// Report summarises one turn's search for diagnostics.
type Report struct {
	Iterations   int
	Improvements int
	BestScore    float64
	BestPlan     string
	Elapsed      time.Duration
}

// Agent holds everything that survives between turns.
type Agent struct {
	player int
	view   *view.View
	cfg    *config.Config
	rng    *rand.Rand

	solvers [game.NumPlayers]*solving.Solver
	plans   [game.NumPlayers][]plans.Milestone
}

// New builds an agent for player. The contest binary always plays game.Me;
// the arena also instantiates the other seat.
func New(player int, v *view.View, cfg *config.Config) *Agent {
	a := &Agent{
		player: player,
		view:   v,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(prngSeed)),
	}
	for p := 0; p < game.NumPlayers; p++ {
		a.solvers[p] = solving.NewSolver(p, v)
	}
	return a
}

// Act runs one turn: reap, solve until deadline, emit.
func (a *Agent) Act(s *game.State, deadline time.Time) ([]game.Action, Report) {
	started := time.Now()

	for p := 0; p < game.NumPlayers; p++ {
		a.plans[p] = plans.Reap(a.plans[p], s.Resources)
	}

	opt := a.cfg.SolverOptions(a.player, game.MaxTicks-s.Tick)

	var sessions [game.NumPlayers]*solving.Session
	for p := 0; p < game.NumPlayers; p++ {
		sessions[p] = a.solvers[p].NewSession(a.plans[p], a.plans, a.view, s, opt.Rollout)
	}

	solving.Solve(deadline, a.rng, &sessions, a.view, s, opt)

	for p := 0; p < game.NumPlayers; p++ {
		a.plans[p] = sessions[p].Best.Plan
	}

	me := sessions[a.player]
	commands := plans.Enact(a.player, me.Best.Plan, a.view, s)
	actions := movement.ToActions(commands.Assignments)
	if len(actions) == 0 {
		actions = append(actions, game.Wait())
	}

	report := Report{
		Iterations:   sessions[game.Me].Iterations + sessions[game.Enemy].Iterations,
		Improvements: me.Improvements,
		BestScore:    me.Best.Score,
		BestPlan:     plans.Format(me.Best.Plan),
		Elapsed:      time.Since(started),
	}
	if a.cfg.AnnounceStats {
		actions = append(actions, game.Message(fmt.Sprintf("i=%d s=%.1f", report.Iterations, report.BestScore)))
	}
	return actions, report
}

// Plan exposes the incumbent plan for a seat, for the monitor.
func (a *Agent) Plan(player int) []plans.Milestone {
	return a.plans[player]
}
