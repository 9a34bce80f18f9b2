package arena

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/monitor"
	"github.com/raysplaceinspace/spring-challenge-2023/simulator"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

func TestMatchRunsToCompletion(t *testing.T) {
	layout := GenerateLayout(3, 11)
	v := view.New(layout)

	var snapshots []monitor.Snapshot
	match := &Match{
		View:  v,
		State: InitialState(layout, 10),
		Drivers: [game.NumPlayers]Driver{
			&LineDriver{Player: game.Me, View: v},
			&ModelDriver{Player: game.Enemy, View: v},
		},
		Options: simulator.Options{},
		Budget:  time.Millisecond,
		Publish: func(s monitor.Snapshot) { snapshots = append(snapshots, s) },
		Log:     zerolog.Nop(),
	}

	result := match.Play(context.Background())
	require.NotEmpty(t, result.MatchID)
	assert.LessOrEqual(t, result.Ticks, game.MaxTicks)
	assert.Contains(t, []int{game.Me, game.Enemy}, result.Winner)
	assert.NotEmpty(t, snapshots)
	assert.Equal(t, result.Ticks, snapshots[len(snapshots)-1].Tick)
}

func TestMatchHonoursCancellation(t *testing.T) {
	layout := GenerateLayout(3, 11)
	v := view.New(layout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	match := &Match{
		View:  v,
		State: InitialState(layout, 10),
		Drivers: [game.NumPlayers]Driver{
			&LineDriver{Player: game.Me, View: v},
			&LineDriver{Player: game.Enemy, View: v},
		},
		Budget: time.Millisecond,
		Log:    zerolog.Nop(),
	}

	result := match.Play(ctx)
	assert.Equal(t, 0, result.Ticks)
}
