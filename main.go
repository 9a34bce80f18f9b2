// Contest binary: reads the map once, then loops reading turns and writing
// beacon commands until the host closes stdin. All diagnostics go to
// stderr; stdout carries only commands.
package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/raysplaceinspace/spring-challenge-2023/agent"
	"github.com/raysplaceinspace/spring-challenge-2023/config"
	"github.com/raysplaceinspace/spring-challenge-2023/game"
	"github.com/raysplaceinspace/spring-challenge-2023/protocol"
	"github.com/raysplaceinspace/spring-challenge-2023/view"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		With().Timestamp().Logger()

	cfg := config.Default()

	reader := protocol.NewReader(os.Stdin)
	out := bufio.NewWriter(os.Stdout)

	layout, state, err := reader.ReadInitial()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse initial input")
	}

	v := view.New(layout)
	bot := agent.New(game.Me, v, cfg)
	log.Info().
		Int("cells", layout.NumCells()).
		Int("bases", len(layout.Bases[game.Me])).
		Int("crystals", v.InitialCrystals).
		Msg("map loaded")

	for {
		if err := reader.ReadTurn(state); err != nil {
			if errors.Is(err, io.EOF) {
				return // host closed the stream; exit 0
			}
			log.Fatal().Err(err).Msg("failed to parse turn input")
		}

		deadline := time.Now().Add(cfg.Budget())
		actions, report := bot.Act(state, deadline)

		if err := protocol.WriteActions(out, actions); err != nil {
			log.Fatal().Err(err).Msg("failed to write commands")
		}
		if err := out.Flush(); err != nil {
			log.Fatal().Err(err).Msg("failed to flush commands")
		}

		log.Debug().
			Int("tick", state.Tick).
			Int("iterations", report.Iterations).
			Float64("score", report.BestScore).
			Str("plan", report.BestPlan).
			Dur("elapsed", report.Elapsed).
			Msg("turn")
	}
}
