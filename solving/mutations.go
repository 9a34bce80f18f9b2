package solving

import (
	"math"
	"math/rand"

	"github.com/raysplaceinspace/spring-challenge-2023/plans"
)

// MutationKind names the edit applied to a plan. Each kind carries its own
// quantile weight so the solver learns which edits pay off on this map.
type MutationKind int

const (
	MutateBubble MutationKind = iota
	MutateMove
	MutateSwap
	MutateShift
	MutateReverse
	MutateBarrier

	NumMutationKinds
)

func (k MutationKind) String() string {
	switch k {
	case MutateBubble:
		return "bubble"
	case MutateMove:
		return "move"
	case MutateSwap:
		return "swap"
	case MutateShift:
		return "shift"
	case MutateReverse:
		return "reverse"
	case MutateBarrier:
		return "barrier"
	default:
		return "unknown"
	}
}

// Mutator applies one weighted-random edit to a copy of the incumbent plan.
type Mutator struct {
	weights [NumMutationKinds]float64
}

func NewMutator() *Mutator {
	m := &Mutator{}
	for i := range m.weights {
		m.weights[i] = initialQuantile
	}
	return m
}

// Weight reports the current quantile weight of a mutation kind.
func (m *Mutator) Weight(kind MutationKind) float64 {
	return m.weights[kind]
}

// Learn folds a quantile-normalised score into the chosen kind's weight.
func (m *Mutator) Learn(kind MutationKind, quantile, learningRate float64) {
	m.weights[kind] = (1-learningRate)*m.weights[kind] + learningRate*quantile
}

// Mutate clones the plan and applies one edit, chosen with probability
// weight^2 over the mutation kinds. Plans shorter than 2 pass through
// unchanged apart from barrier insertion, which needs only one entry.
func (m *Mutator) Mutate(plan []plans.Milestone, rng *rand.Rand) ([]plans.Milestone, MutationKind) {
	kind := m.chooseKind(rng)
	mutated := plans.Clone(plan)

	switch kind {
	case MutateBubble:
		if len(mutated) >= 2 {
			i := rng.Intn(len(mutated) - 1)
			mutated[i], mutated[i+1] = mutated[i+1], mutated[i]
		}
	case MutateMove:
		if len(mutated) >= 2 {
			from := rng.Intn(len(mutated))
			moved := mutated[from]
			rest := append(mutated[:from], mutated[from+1:]...)
			to := rng.Intn(len(rest) + 1)
			mutated = insertAt(rest, to, moved)
		}
	case MutateSwap:
		if len(mutated) >= 2 {
			i := rng.Intn(len(mutated))
			j := rng.Intn(len(mutated) - 1)
			if j >= i {
				j++
			}
			mutated[i], mutated[j] = mutated[j], mutated[i]
		}
	case MutateShift:
		if len(mutated) >= 2 {
			mutated = shiftSlice(mutated, rng)
		}
	case MutateReverse:
		if len(mutated) >= 2 {
			start := rng.Intn(len(mutated))
			length := 2 + rng.Intn(len(mutated)-1)
			end := start + length
			if end > len(mutated) {
				end = len(mutated)
			}
			reverse(mutated[start:end])
		}
	case MutateBarrier:
		if len(mutated) >= 1 {
			mutated = toggleBarrier(mutated, rng)
		}
	}

	return mutated, kind
}

func (m *Mutator) chooseKind(rng *rand.Rand) MutationKind {
	total := 0.0
	for _, w := range m.weights {
		total += w * w
	}
	selector := total * rng.Float64()
	cumulative := 0.0
	for kind, w := range m.weights {
		cumulative += w * w
		if selector <= cumulative {
			return MutationKind(kind)
		}
	}
	return NumMutationKinds - 1
}

func insertAt(plan []plans.Milestone, index int, m plans.Milestone) []plans.Milestone {
	plan = append(plan, plans.Milestone{})
	copy(plan[index+1:], plan[index:])
	plan[index] = m
	return plan
}

// shiftSlice removes a contiguous run and reinserts it elsewhere.
func shiftSlice(plan []plans.Milestone, rng *rand.Rand) []plans.Milestone {
	length := 1 + rng.Intn(len(plan)-1)
	start := rng.Intn(len(plan) - length + 1)

	slice := append([]plans.Milestone(nil), plan[start:start+length]...)
	rest := append(plan[:start], plan[start+length:]...)
	if len(rest) == 0 {
		return slice
	}

	// Any insertion point but the one it came from.
	to := rng.Intn(len(rest))
	if to >= start {
		to++
	}
	out := make([]plans.Milestone, 0, len(rest)+len(slice))
	out = append(out, rest[:to]...)
	out = append(out, slice...)
	out = append(out, rest[to:]...)
	return out
}

func reverse(plan []plans.Milestone) {
	for i, j := 0, len(plan)-1; i < j; i, j = i+1, j-1 {
		plan[i], plan[j] = plan[j], plan[i]
	}
}

// toggleBarrier inserts a barrier after a harvest (unless one is already
// there) or removes the barrier it landed on.
func toggleBarrier(plan []plans.Milestone, rng *rand.Rand) []plans.Milestone {
	index := rng.Intn(len(plan))
	if plan[index].Kind == plans.KindBarrier {
		return append(plan[:index], plan[index+1:]...)
	}
	if index+1 < len(plan) && plan[index+1].Kind == plans.KindBarrier {
		return plan
	}
	return insertAt(plan, index+1, plans.Barrier())
}

// weightedChoice draws an index with probability weights[i]^2; shared by
// the solver-kind selection.
func weightedChoice(weights []float64, rng *rand.Rand) int {
	total := 0.0
	for _, w := range weights {
		total += math.Pow(w, 2)
	}
	selector := total * rng.Float64()
	cumulative := 0.0
	for i, w := range weights {
		cumulative += math.Pow(w, 2)
		if selector <= cumulative {
			return i
		}
	}
	return len(weights) - 1
}
