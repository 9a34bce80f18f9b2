package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
)

const initialInput = `5
0 0 1 -1 -1 -1 -1 -1
0 0 0 2 -1 -1 -1 -1
2 10 1 3 -1 -1 -1 -1
1 4 2 4 -1 -1 -1 -1
0 0 3 -1 -1 -1 -1 -1
1
0
4
`

func TestReadInitial(t *testing.T) {
	r := NewReader(strings.NewReader(initialInput))
	layout, state, err := r.ReadInitial()
	require.NoError(t, err)

	assert.Equal(t, 5, layout.NumCells())
	assert.Equal(t, game.ContentCrystals, layout.Cells[2].Content)
	assert.Equal(t, 10, layout.Cells[2].InitialResources)
	assert.Equal(t, game.ContentEggs, layout.Cells[3].Content)
	assert.Equal(t, []int{1, 3}, layout.Cells[2].Neighbors)
	assert.Equal(t, []int{0}, layout.Bases[game.Me])
	assert.Equal(t, []int{4}, layout.Bases[game.Enemy])

	assert.Equal(t, []int{0, 0, 10, 4, 0}, state.Resources)
}

func TestReadInitialRejectsBadContent(t *testing.T) {
	bad := strings.Replace(initialInput, "2 10", "7 10", 1)
	r := NewReader(strings.NewReader(bad))
	_, _, err := r.ReadInitial()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content code")
}

func TestReadInitialRejectsBadNeighbor(t *testing.T) {
	bad := strings.Replace(initialInput, "0 0 1 -1 -1 -1 -1 -1", "0 0 9 -1 -1 -1 -1 -1", 1)
	r := NewReader(strings.NewReader(bad))
	_, _, err := r.ReadInitial()
	require.Error(t, err)
}

func TestReadTurn(t *testing.T) {
	turnInput := initialInput + `3 1
0 2 0
0 1 0
8 0 1
4 0 0
0 0 3
0 0
0 0 0
0 0 0
8 0 0
4 0 0
0 0 0
`
	r := NewReader(strings.NewReader(turnInput))
	_, state, err := r.ReadInitial()
	require.NoError(t, err)

	require.NoError(t, r.ReadTurn(state))
	assert.Equal(t, 0, state.Tick)
	assert.Equal(t, [game.NumPlayers]int{3, 1}, state.Crystals)
	assert.Equal(t, []int{0, 0, 8, 4, 0}, state.Resources)
	assert.Equal(t, []int{2, 1, 0, 0, 0}, state.NumAnts[game.Me])
	assert.Equal(t, []int{0, 0, 1, 0, 3}, state.NumAnts[game.Enemy])
	assert.Equal(t, 3, state.TotalAnts[game.Me])
	assert.Equal(t, 4, state.TotalAnts[game.Enemy])

	require.NoError(t, r.ReadTurn(state))
	assert.Equal(t, 1, state.Tick)
	assert.Equal(t, 0, state.TotalAnts[game.Enemy])
}

func TestWriteActions(t *testing.T) {
	var buf bytes.Buffer
	err := WriteActions(&buf, []game.Action{
		game.Beacon(3, 2),
		game.Line(0, 4, 1),
		game.Message("hi"),
	})
	require.NoError(t, err)
	assert.Equal(t, "BEACON 3 2;LINE 0 4 1;MESSAGE hi\n", buf.String())
}

func TestWriteActionsEmptyIsWait(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteActions(&buf, nil))
	assert.Equal(t, "WAIT\n", buf.String())
}

func TestBeaconRoundTrip(t *testing.T) {
	// Encoding a beacon set and decoding the commands recovers it, modulo
	// the zero-strength cells the wire omits.
	assignments := []int{0, 3, 0, 2, 0}
	var actions []game.Action
	for cell, strength := range assignments {
		if strength > 0 {
			actions = append(actions, game.Beacon(cell, strength))
		}
	}

	decoded := make([]int, len(assignments))
	for _, a := range actions {
		if a.Kind == game.ActionBeacon {
			decoded[a.Cell] = a.Strength
		}
	}
	assert.Equal(t, assignments, decoded)
}
