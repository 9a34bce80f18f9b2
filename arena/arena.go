package arena

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/raysplaceinspace/spring-challenge-2023/agent"
	"github.com/raysplaceinspace/spring-challenge-2023/config"
	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/monitor"
	"github.com/raysplaceinspace/spring-challenge-2023/movement"
	"github.com/raysplaceinspace/spring-challenge-2023/opponents"
	"github.com/raysplaceinspace/spring-challenge-2023/simulator"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

// Driver produces one seat's assignments for a tick.
type Driver interface {
	Assignments(s *game.State, deadline time.Time) (movement.Assignments, agent.Report)
	Name() string
}

// AgentDriver runs the full searching agent in a seat.
type AgentDriver struct {
	Agent  *agent.Agent
	Budget time.Duration
	view   *view.View
}

func NewAgentDriver(player int, v *view.View, cfg *config.Config) *AgentDriver {
	return &AgentDriver{
		Agent:  agent.New(player, v, cfg),
		Budget: cfg.Budget(),
		view:   v,
	}
}

func (d *AgentDriver) Name() string { return "agent" }

func (d *AgentDriver) Assignments(s *game.State, deadline time.Time) (movement.Assignments, agent.Report) {
	actions, report := d.Agent.Act(s, deadline)
	// Decode the wire commands back into assignments; zero-strength cells
	// are omitted on the wire, so this round-trips exactly.
	assignments := make(movement.Assignments, d.view.Layout.NumCells())
	for _, a := range actions {
		if a.Kind == game.ActionBeacon {
			assignments[a.Cell] = a.Strength
		}
	}
	return assignments, report
}

// ModelDriver plays the opponent model in the opposing seat: a plan-free
// beacon prediction computed from the state alone. The solver's own rollouts
// do not use it; they enact the opposing session's best plan.
type ModelDriver struct {
	Player    int
	View      *view.View
	StrictWin bool
}

func (d *ModelDriver) Name() string { return "model" }

func (d *ModelDriver) Assignments(s *game.State, _ time.Time) (movement.Assignments, agent.Report) {
	return opponents.EnactCountermoves(d.Player, d.View, s, d.StrictWin), agent.Report{}
}

// LineDriver is the naive baseline: a chain from base to every cell still
// holding resources, nearest first, while ants remain.
type LineDriver struct {
	Player int
	View   *view.View
}

func (d *LineDriver) Name() string { return "line" }

func (d *LineDriver) Assignments(s *game.State, _ time.Time) (movement.Assignments, agent.Report) {
	v := d.View
	numCells := v.Layout.NumCells()
	totalAnts := s.TotalAnts[d.Player]

	var beacons []int
	inBeacons := make([]bool, numCells)
	for _, base := range v.Layout.Bases[d.Player] {
		inBeacons[base] = true
		beacons = append(beacons, base)
	}
	for _, cell := range v.ResourceCells[d.Player] {
		if s.Resources[cell] <= 0 || len(beacons) >= totalAnts {
			continue
		}
		base := v.ClosestBase[d.Player][cell]
		for _, step := range v.Paths.CalculatePath(base, cell, v.Layout) {
			if !inBeacons[step] {
				inBeacons[step] = true
				beacons = append(beacons, step)
			}
		}
	}
	return movement.SpreadAntsAcrossBeacons(beacons, totalAnts, numCells), agent.Report{}
}

// Result describes one finished match.
type Result struct {
	MatchID  string
	Winner   int
	Ticks    int
	Crystals [game.NumPlayers]int
}

// Match runs two drivers against each other on a fresh state.
type Match struct {
	View    *view.View
	State   *game.State
	Drivers [game.NumPlayers]Driver
	Options simulator.Options
	Budget  time.Duration

	// Publish, when set, receives a snapshot after every tick.
	Publish func(monitor.Snapshot)
	Log     zerolog.Logger
}

// Play simulates until a winner emerges or the tick limit falls.
func (m *Match) Play(ctx context.Context) Result {
	matchID := uuid.NewString()
	s := m.State

	log := m.Log.With().Str("match", matchID).Logger()
	log.Info().
		Str("me", m.Drivers[game.Me].Name()).
		Str("enemy", m.Drivers[game.Enemy].Name()).
		Int("cells", m.View.Layout.NumCells()).
		Int("crystals", m.View.InitialCrystals).
		Msg("match start")

	for {
		if err := ctx.Err(); err != nil {
			break
		}

		var assignments [game.NumPlayers]movement.Assignments
		var report agent.Report
		for p := 0; p < game.NumPlayers; p++ {
			deadline := time.Now().Add(m.Budget)
			a, r := m.Drivers[p].Assignments(s, deadline)
			assignments[p] = a
			if p == game.Me {
				report = r
			}
		}

		simulator.Forward(&assignments, m.View, s, m.Options)
		monitor.TicksTotal.Inc()
		monitor.SearchIterations.Observe(float64(report.Iterations))

		if m.Publish != nil {
			m.Publish(monitor.Snapshot{
				MatchID:    matchID,
				Tick:       s.Tick,
				Resources:  append([]int(nil), s.Resources...),
				NumAnts:    [game.NumPlayers][]int{append([]int(nil), s.NumAnts[0]...), append([]int(nil), s.NumAnts[1]...)},
				Crystals:   s.Crystals,
				Iterations: report.Iterations,
				BestScore:  report.BestScore,
			})
		}

		if winner, over := simulator.FindWinner(m.View, s, m.Options); over {
			result := Result{
				MatchID:  matchID,
				Winner:   winner,
				Ticks:    s.Tick,
				Crystals: s.Crystals,
			}
			monitor.MatchesTotal.WithLabelValues(m.Drivers[winner].Name()).Inc()
			log.Info().
				Int("winner", winner).
				Int("ticks", result.Ticks).
				Ints("crystals", result.Crystals[:]).
				Msg("match over")
			return result
		}
	}

	return Result{MatchID: matchID, Winner: simulator.WinnerAtMaxTicks(s), Ticks: s.Tick, Crystals: s.Crystals}
}
