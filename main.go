package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"muehle/engine"
	"muehle/game"
)

func main() {
	sides := flag.Int("sides", 4, "polygon side count; the board has 3 rings of 2*sides points")
	extended := flag.Bool("extended", false, "cross-ring links at every index, not only spokes")
	optionalCapture := flag.Bool("optional-capture", false, "allow completing a mill even when no capture is possible")
	movetime := flag.Duration("movetime", 4*time.Second, "search budget per turn")
	maxTurns := flag.Int("max-turns", 500, "stop the match after this many turns")
	seed := flag.Uint64("seed", 0, "random seed; 0 seeds from the clock")
	quiet := flag.Bool("quiet", false, "do not render the board after each move")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	var gameOpts []game.Option
	if *extended {
		gameOpts = append(gameOpts, game.WithExtended())
	}
	if *optionalCapture {
		gameOpts = append(gameOpts, game.WithOptionalCapture())
	}

	opts := []engine.Option{
		engine.WithBudget(engine.Budget{Duration: *movetime, MinIterations: 10}),
		engine.WithMaxTurns(*maxTurns),
		engine.WithSeed(*seed),
		engine.WithGameOptions(gameOpts...),
	}
	if !*quiet {
		opts = append(opts, engine.WithOutput(os.Stdout))
	}

	e := engine.New(*sides, opts...)
	winner := e.Run()
	if winner == game.NoPlayer {
		log.Info().Msg("match ended without a winner")
		return
	}
	log.Info().Int("player", int(winner)).Msg("match over")
}
