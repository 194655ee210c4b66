package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/powellquiring/wordleguess/dictionary"
	"github.com/powellquiring/wordleguess/grade"
	"github.com/powellquiring/wordleguess/guesser"
)

// GlobalConfiguration is built from the root flags once per command
type GlobalConfiguration struct {
	dictionary *dictionary.Dictionary
	config     guesser.Config
	log        zerolog.Logger
	render     renderer
	out        io.Writer
}

func newLogger(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger(), nil
}

func globalConfiguration(cmd *cli.Command) (GlobalConfiguration, error) {
	var gc GlobalConfiguration
	verbose := cmd.Bool("verbose")
	level := cmd.String("log-level")
	if verbose {
		level = "debug"
	}
	log, err := newLogger(level, os.Stderr)
	if err != nil {
		return gc, err
	}
	strategy, err := grade.ParseStrategy(cmd.String("strategy"))
	if err != nil {
		return gc, err
	}

	d := dictionary.Default()
	if path := cmd.String("words"); path != "" {
		if d, err = dictionary.Open(path); err != nil {
			return gc, err
		}
		log.Debug().Str("path", path).Int("words", d.Len()).Msg("loaded word list")
	}

	var opener guesser.OpenerPolicy = guesser.FirstCandidate{}
	if seed := cmd.Uint64("seed"); seed != 0 {
		opener = guesser.NewRandomTop(seed)
	}

	r, err := newRenderer(cmd.String("color"), os.Stdout)
	if err != nil {
		return gc, err
	}
	return GlobalConfiguration{
		dictionary: d,
		config: guesser.Config{
			Verbose:   verbose,
			HardMode:  cmd.Bool("hard"),
			Evaluator: grade.Evaluator{Strategy: strategy, Workers: cmd.Int("workers")},
			Opener:    opener,
			Logger:    log,
		},
		log:    log,
		render: r,
		out:    os.Stdout,
	}, nil
}
