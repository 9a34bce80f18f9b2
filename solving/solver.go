package solving

import (
	"math/rand"
	"time"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/plans"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

// SolverKind discriminates how a candidate plan was produced.
type SolverKind int

const (
	Generation SolverKind = iota
	Mutation

	numSolverKinds
)

// Candidate is a scored plan plus the endgame its rollout reached.
type Candidate struct {
	Plan    []plans.Milestone
	Score   float64
	Endgame Endgame
}

// Solver holds one player's learners. It persists across turns so the
// pheromone matrix and operator weights keep what earlier turns taught.
type Solver struct {
	player      int
	pheromones  *PheromoneMatrix
	mutator     *Mutator
	kindWeights []float64
}

func NewSolver(player int, v *view.View) *Solver {
	return &Solver{
		player:      player,
		pheromones:  NewPheromoneMatrix(player, v),
		mutator:     NewMutator(),
		kindWeights: []float64{initialQuantile, initialQuantile},
	}
}

// Session is one turn's search state for one player.
type Session struct {
	Solver *Solver
	Best   Candidate
	scores *QuantileEstimator

	Iterations   int
	Improvements int
}

// NewSession seeds a session with the reaped previous plan, evaluated now.
func (solver *Solver) NewSession(initial []plans.Milestone, planFor [game.NumPlayers][]plans.Milestone, v *view.View, s *game.State, opt RolloutOptions) *Session {
	planFor[solver.player] = initial
	score, endgame := Rollout(solver.player, planFor, v, s, opt)
	return &Session{
		Solver: solver,
		Best: Candidate{
			Plan:    initial,
			Score:   score,
			Endgame: endgame,
		},
		scores: NewQuantileEstimator(),
	}
}

// Options tune the solver loop.
type Options struct {
	// Player is the seat the search optimises for.
	Player int
	// LearningRate is the step used for every quantile-weight update.
	LearningRate float64
	// Power sharpens proportional sampling: weight^Power.
	Power float64
	// EnemyProbability is the chance an iteration improves the enemy's
	// plan instead of ours.
	EnemyProbability float64
	Rollout          RolloutOptions
}

// lesson is what an iteration must credit once its score is known.
type lesson struct {
	kind         SolverKind
	walks        Walks
	mutationKind MutationKind
}

// Solve alternates generator and mutator iterations across both sessions
// until the deadline. Each candidate is rolled out against the opposing
// session's best plan; its quantile-normalised score updates the chosen
// solver-kind weight and the producing learner.
func Solve(deadline time.Time, rng *rand.Rand, sessions *[game.NumPlayers]*Session, v *view.View, s *game.State, opt Options) {
	for time.Now().Before(deadline) {
		player := opt.Player
		if rng.Float64() < opt.EnemyProbability {
			player = game.Opponent(opt.Player)
		}
		step(player, rng, sessions, v, s, opt)
	}
}

func step(player int, rng *rand.Rand, sessions *[game.NumPlayers]*Session, v *view.View, s *game.State, opt Options) {
	session := sessions[player]
	solver := session.Solver

	kind := SolverKind(weightedChoice(solver.kindWeights, rng))

	var candidate []plans.Milestone
	var l lesson
	switch kind {
	case Generation:
		plan, walks := solver.pheromones.Generate(opt.Power, rng, func(cell int) bool {
			return s.Resources[cell] > 0
		})
		candidate = plan
		l = lesson{kind: kind, walks: walks}
	case Mutation:
		plan, mutationKind := solver.mutator.Mutate(session.Best.Plan, rng)
		candidate = plan
		l = lesson{kind: kind, mutationKind: mutationKind}
	}

	var planFor [game.NumPlayers][]plans.Milestone
	for p := 0; p < game.NumPlayers; p++ {
		planFor[p] = sessions[p].Best.Plan
	}
	planFor[player] = candidate

	score, endgame := Rollout(player, planFor, v, s, opt.Rollout)

	quantile := session.scores.Quantile(score)
	session.scores.Insert(score)
	session.Iterations++

	solver.kindWeights[kind] = (1-opt.LearningRate)*solver.kindWeights[kind] + opt.LearningRate*quantile
	switch l.kind {
	case Generation:
		solver.pheromones.Learn(quantile, opt.LearningRate, l.walks)
	case Mutation:
		solver.mutator.Learn(l.mutationKind, quantile, opt.LearningRate)
	}

	if score > session.Best.Score {
		session.Best = Candidate{Plan: candidate, Score: score, Endgame: endgame}
		session.Improvements++
	}
}
