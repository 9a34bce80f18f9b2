package solving

import (
	"math"
	"math/rand"
	"sort"

	"github.com/raysplaceinspace/spring-challenge-2023/plans"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

// PheromoneMatrix learns which harvest orderings score well. Resource cells
// ("veins") get a compact id; the matrix keeps, per base, the weight of
// opening with each vein, and per vein pair, the weight of chaining them.
// Weights are smoothed quantile ranks in (0, 1].
type PheromoneMatrix struct {
	// veinLookup maps cell id to vein id, -1 for cells without resources.
	veinLookup []int
	// cellLookup maps vein id back to cell id.
	cellLookup []int

	// headQuantiles[b][v]: weight that the walk from base b opens with vein v.
	headQuantiles [][]float64
	// linkQuantiles[i][j]: weight that vein j follows vein i.
	linkQuantiles [][]float64
}

// Walks records, per base, the veins' cells chosen during one generation,
// in selection order. It is the unit of pheromone learning.
type Walks [][]int

func NewPheromoneMatrix(player int, v *view.View) *PheromoneMatrix {
	numCells := v.Layout.NumCells()

	veinLookup := make([]int, numCells)
	for i := range veinLookup {
		veinLookup[i] = -1
	}
	var cellLookup []int
	for cell, layout := range v.Layout.Cells {
		if layout.InitialResources > 0 {
			veinLookup[cell] = len(cellLookup)
			cellLookup = append(cellLookup, cell)
		}
	}

	numVeins := len(cellLookup)
	numBases := len(v.Layout.Bases[player])

	headQuantiles := make([][]float64, numBases)
	for b := range headQuantiles {
		row := make([]float64, numVeins)
		for i := range row {
			row[i] = initialQuantile
		}
		headQuantiles[b] = row
	}

	// Closer veins start with a higher link weight: 0.75^rank by distance.
	linkQuantiles := make([][]float64, numVeins)
	for vein, source := range cellLookup {
		targets := append([]int(nil), cellLookup...)
		sort.Slice(targets, func(i, j int) bool {
			di := v.Paths.DistanceBetween(source, targets[i])
			dj := v.Paths.DistanceBetween(source, targets[j])
			if di != dj {
				return di < dj
			}
			return targets[i] < targets[j]
		})

		row := make([]float64, numVeins)
		for rank, target := range targets {
			row[veinLookup[target]] = math.Pow(initialQuantileDecayBase, float64(rank))
		}
		linkQuantiles[vein] = row
	}

	return &PheromoneMatrix{
		veinLookup:    veinLookup,
		cellLookup:    cellLookup,
		headQuantiles: headQuantiles,
		linkQuantiles: linkQuantiles,
	}
}

// NumVeins reports how many resource cells the matrix indexes.
func (m *PheromoneMatrix) NumVeins() int {
	return len(m.cellLookup)
}

// Generate samples a complete ordering of the allowed veins. One walk runs
// per base; walks take turns picking (round-robin on the remaining count),
// and each pick samples proportionally to weight^power from the walk's
// current row — the base's head row first, then the link row of its last
// pick.
func (m *PheromoneMatrix) Generate(power float64, rng *rand.Rand, isAllowed func(cell int) bool) ([]plans.Milestone, Walks) {
	numVeins := len(m.cellLookup)
	allowed := make([]bool, numVeins)
	numRemaining := 0
	for vein, cell := range m.cellLookup {
		if isAllowed(cell) {
			allowed[vein] = true
			numRemaining++
		}
	}

	numBases := len(m.headQuantiles)
	walks := make(Walks, numBases)
	lastVein := make([]int, numBases)
	for b := range lastVein {
		lastVein[b] = -1
	}

	var plan []plans.Milestone
	for numRemaining > 0 {
		walk := numRemaining % numBases

		var row []float64
		if lastVein[walk] >= 0 {
			row = m.linkQuantiles[lastVein[walk]]
		} else {
			row = m.headQuantiles[walk]
		}

		vein := sampleProportional(row, allowed, power, rng)
		if vein < 0 {
			break
		}
		allowed[vein] = false
		numRemaining--
		lastVein[walk] = vein

		cell := m.cellLookup[vein]
		plan = append(plan, plans.Harvest(cell))
		walks[walk] = append(walks[walk], cell)
	}

	return plan, walks
}

// sampleProportional draws an index with probability row[i]^power over the
// allowed set, by cumulative inversion.
func sampleProportional(row []float64, allowed []bool, power float64, rng *rand.Rand) int {
	total := 0.0
	for i, weight := range row {
		if allowed[i] {
			total += math.Pow(weight, power)
		}
	}
	if total <= 0 {
		return -1
	}

	selector := total * rng.Float64()
	cumulative := 0.0
	last := -1
	for i, weight := range row {
		if !allowed[i] {
			continue
		}
		cumulative += math.Pow(weight, power)
		last = i
		if selector <= cumulative {
			return i
		}
	}
	// Floating-point shortfall: fall back to the final allowed vein.
	return last
}

// Learn folds a quantile-normalised score into every weight a generation
// exercised: each walk's opening head weight and each of its links.
func (m *PheromoneMatrix) Learn(quantile, learningRate float64, walks Walks) {
	for base, walk := range walks {
		previous := -1
		for _, cell := range walk {
			vein := m.veinLookup[cell]
			if vein < 0 {
				continue
			}
			var weight *float64
			if previous >= 0 {
				weight = &m.linkQuantiles[previous][vein]
			} else {
				weight = &m.headQuantiles[base][vein]
			}
			*weight = (1-learningRate)*(*weight) + learningRate*quantile
			previous = vein
		}
	}
}
