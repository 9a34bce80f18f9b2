// Package arena plays offline self-play matches on generated maps, using
// the same simulator the solver rolls out with.
package arena

import (
	"github.com/aquilax/go-perlin"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
)

const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinIters = 3
	noiseScale  = 0.35

	crystalThreshold = 0.18
	eggThreshold     = 0.05
)

type axial struct {
	q, r int
}

var axialDirections = [6]axial{
	{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

// GenerateLayout builds a hex-disk map of the given radius with perlin-noise
// resources. Maps are 180°-symmetric — each cell mirrors its antipode — so
// neither seat starts with an advantage. One base per player, at opposite
// edges.
func GenerateLayout(radius int, seed int64) *game.Layout {
	coords := diskCoords(radius)
	index := make(map[axial]int, len(coords))
	for i, c := range coords {
		index[c] = i
	}

	layout := &game.Layout{Cells: make([]game.CellLayout, len(coords))}
	for i, c := range coords {
		var neighbors []int
		for _, d := range axialDirections {
			if n, ok := index[axial{c.q + d.q, c.r + d.r}]; ok {
				neighbors = append(neighbors, n)
			}
		}
		layout.Cells[i].Neighbors = neighbors
	}

	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinIters, seed)
	crystals := 0
	for i, c := range coords {
		mirror := index[axial{-c.q, -c.r}]
		if mirror < i {
			continue // already assigned from its antipode
		}

		sample := noise.Noise2D(float64(c.q)*noiseScale, float64(c.r)*noiseScale)
		content, resources := classify(sample)
		if (c.q == 0 && c.r == 0) || isBaseCoord(c, radius) {
			content, resources = game.ContentNone, 0
		}

		layout.Cells[i].Content = content
		layout.Cells[i].InitialResources = resources
		layout.Cells[mirror].Content = content
		layout.Cells[mirror].InitialResources = resources
		if content == game.ContentCrystals {
			crystals++
		}
	}

	// A map without crystals is unplayable; force a symmetric pair.
	if crystals == 0 {
		a := index[axial{1, 0}]
		b := index[axial{-1, 0}]
		for _, i := range []int{a, b} {
			layout.Cells[i].Content = game.ContentCrystals
			layout.Cells[i].InitialResources = 40
		}
	}

	layout.Bases[game.Me] = []int{index[axial{radius, 0}]}
	layout.Bases[game.Enemy] = []int{index[axial{-radius, 0}]}
	return layout
}

// InitialState seeds each base with the host engine's starting garrison.
func InitialState(layout *game.Layout, antsPerBase int) *game.State {
	s := game.NewState(layout.NumCells())
	for i, cell := range layout.Cells {
		s.Resources[i] = cell.InitialResources
	}
	for p := 0; p < game.NumPlayers; p++ {
		for _, base := range layout.Bases[p] {
			s.NumAnts[p][base] = antsPerBase
		}
	}
	s.RecountAnts()
	return s
}

func diskCoords(radius int) []axial {
	var coords []axial
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			s := -q - r
			if s >= -radius && s <= radius {
				coords = append(coords, axial{q, r})
			}
		}
	}
	return coords
}

func isBaseCoord(c axial, radius int) bool {
	return (c.q == radius && c.r == 0) || (c.q == -radius && c.r == 0)
}

func classify(sample float64) (game.Content, int) {
	switch {
	case sample > crystalThreshold:
		return game.ContentCrystals, 20 + int(sample*100)
	case sample > eggThreshold:
		return game.ContentEggs, 10 + int(sample*50)
	default:
		return game.ContentNone, 0
	}
}
