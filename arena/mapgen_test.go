package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

func TestGenerateLayout(t *testing.T) {
	layout := GenerateLayout(4, 42)
	require.NotNil(t, layout)

	t.Run("disk size", func(t *testing.T) {
		// A hex disk of radius r holds 3r(r+1)+1 cells.
		assert.Len(t, layout.Cells, 3*4*5+1)
	})

	t.Run("bases are distinct and empty", func(t *testing.T) {
		me := layout.Bases[game.Me][0]
		enemy := layout.Bases[game.Enemy][0]
		assert.NotEqual(t, me, enemy)
		assert.Equal(t, game.ContentNone, layout.Cells[me].Content)
		assert.Equal(t, game.ContentNone, layout.Cells[enemy].Content)
	})

	t.Run("some crystals exist", func(t *testing.T) {
		crystals := 0
		for _, cell := range layout.Cells {
			if cell.Content == game.ContentCrystals {
				crystals += cell.InitialResources
			}
		}
		assert.Greater(t, crystals, 0)
	})

	t.Run("the map is connected", func(t *testing.T) {
		v := view.New(layout)
		for cell := range layout.Cells {
			assert.Less(t, v.Paths.DistanceBetween(0, cell), 1<<30, "cell %d unreachable", cell)
		}
	})

	t.Run("resources are antipode-symmetric", func(t *testing.T) {
		// Each player must see the same resource distances from its base.
		v := view.New(layout)
		totals := [game.NumPlayers]int{}
		for p := 0; p < game.NumPlayers; p++ {
			for _, cell := range v.ResourceCells[p] {
				totals[p] += layout.Cells[cell].InitialResources * v.BaseDistance[p][cell]
			}
		}
		assert.Equal(t, totals[game.Me], totals[game.Enemy])
	})

	t.Run("same seed reproduces the map", func(t *testing.T) {
		again := GenerateLayout(4, 42)
		assert.Equal(t, layout, again)
	})
}

func TestInitialState(t *testing.T) {
	layout := GenerateLayout(3, 7)
	s := InitialState(layout, 10)

	assert.Equal(t, 10, s.TotalAnts[game.Me])
	assert.Equal(t, 10, s.TotalAnts[game.Enemy])
	for i, cell := range layout.Cells {
		assert.Equal(t, cell.InitialResources, s.Resources[i])
	}
}
