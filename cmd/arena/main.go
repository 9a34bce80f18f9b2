// Arena binary: generates symmetric maps and plays the searching agent
// against a baseline, optionally serving a live view and metrics.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/raysplaceinspace/spring-challenge-2023/arena"
	"github.com/raysplaceinspace/spring-challenge-2023/config"
	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/monitor"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

var (
	matches     = flag.Int("matches", 10, "number of matches to play")
	radius      = flag.Int("radius", 5, "map radius in hex rings")
	seed        = flag.Int64("seed", 1, "map generation seed")
	antsPerBase = flag.Int("ants", 10, "starting ants per base")
	opponent    = flag.String("opponent", "model", "enemy driver: model or line")
	addr        = flag.String("addr", "", "serve the live view on this address, e.g. :8080")
	configPath  = flag.String("config", "config.yaml", "solver config file")
)

func main() {
	flag.Parse()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		With().Timestamp().Logger()

	cfg, err := config.FromYaml(*configPath)
	if err != nil {
		log.Warn().Err(err).Msg("config not loaded, using defaults")
		cfg = config.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	group, ctx := errgroup.WithContext(ctx)

	var snapshots chan monitor.Snapshot
	var publish func(monitor.Snapshot)
	if *addr != "" {
		snapshots = make(chan monitor.Snapshot, 64)
		publish = func(s monitor.Snapshot) {
			select {
			case snapshots <- s:
			default: // never stall a match on a slow viewer
			}
		}
	}

	group.Go(func() error {
		defer cancel()

		wins := [game.NumPlayers]int{}
		for i := 0; i < *matches; i++ {
			if ctx.Err() != nil {
				break
			}

			layout := arena.GenerateLayout(*radius, *seed+int64(i))
			v := view.New(layout)

			if *addr != "" && i == 0 {
				server := monitor.NewServer(*addr, layout, snapshots, log)
				group.Go(func() error { return server.Serve(ctx) })
			}

			var enemy arena.Driver
			switch *opponent {
			case "line":
				enemy = &arena.LineDriver{Player: game.Enemy, View: v}
			default:
				enemy = &arena.ModelDriver{Player: game.Enemy, View: v, StrictWin: cfg.Variants.StrictWin}
			}

			match := &arena.Match{
				View:    v,
				State:   arena.InitialState(layout, *antsPerBase),
				Drivers: [game.NumPlayers]arena.Driver{arena.NewAgentDriver(game.Me, v, cfg), enemy},
				Options: cfg.SimOptions(),
				Budget:  cfg.Budget(),
				Publish: publish,
				Log:     log,
			}
			result := match.Play(ctx)
			wins[result.Winner]++
		}

		log.Info().
			Int("matches", *matches).
			Int("agentWins", wins[game.Me]).
			Int("enemyWins", wins[game.Enemy]).
			Msg("arena done")
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("arena failed")
		os.Exit(1)
	}

	// Give a last snapshot a moment to flush before exit.
	time.Sleep(50 * time.Millisecond)
}
