package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3" // imports as package "cli"

	"github.com/powellquiring/wordleguess/grade"
)

func cpuProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

// withConfig builds the global configuration and starts profiling before running fn
func withConfig(fn func(ctx context.Context, cmd *cli.Command, gc GlobalConfiguration) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		gc, err := globalConfiguration(cmd)
		if err != nil {
			return cli.Exit(err, 2)
		}
		if path := cmd.String("profile"); path != "" {
			stop, err := cpuProfile(path)
			if err != nil {
				return cli.Exit(err, 1)
			}
			defer stop()
		}
		return fn(ctx, cmd, gc)
	}
}

func env(name string) cli.ValueSourceChain {
	return cli.EnvVars("WORDLE_" + name)
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "wdl: .env:", err)
		os.Exit(2)
	}

	cmd := &cli.Command{
		Name:  "wdl",
		Usage: "guess wordle words",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "narrate every deduction, implies --log-level debug",
				Sources: env("VERBOSE"),
			},
			&cli.BoolFlag{
				Name:    "hard",
				Aliases: []string{"H"},
				Usage:   "only probe with words that could still be the answer",
				Sources: env("HARD"),
			},
			&cli.StringFlag{
				Name:    "strategy",
				Value:   grade.Parallel.String(),
				Usage:   "grading strategy: sequential, parallel or vector",
				Sources: env("STRATEGY"),
			},
			&cli.IntFlag{
				Name:    "workers",
				Usage:   "goroutines for the parallel strategy, 0 picks from the CPU count",
				Sources: env("WORKERS"),
			},
			&cli.Uint64Flag{
				Name:    "seed",
				Usage:   "pick the opening guess at random among the best words, 0 always plays the best",
				Sources: env("SEED"),
			},
			&cli.StringFlag{
				Name:    "words",
				Usage:   "word list file, one word per line, default is the built in list",
				Sources: env("WORDS"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "trace, debug, info, warn or error",
				Sources: env("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "color",
				Value:   "auto",
				Usage:   "auto, always or never",
				Sources: env("COLOR"),
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "write a cpu profile to this file",
			},
		},
		Commands: []*cli.Command{
			{
				Name: "play",
				Usage: `play a game against the nytimes puzzle, https://www.nytimes.com/games/wordle/index.html
				With no arguments read feedback from stdin, one round per line.  Otherwise the arguments
				are guess feedback pairs and the next guess is printed.`,
				ArgsUsage: "[guess feedback]...",
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, gc GlobalConfiguration) error {
					switch {
					case cmd.NArg() == 0:
						return interactive(ctx, gc, os.Stdin)
					case cmd.NArg()%2 != 0:
						return cli.Exit("must have pairs of guess feedback", 1)
					}
					return replay(gc, cmd.Args().Slice())
				}),
			},
			{
				Name:      "auto",
				Usage:     "let the guesser play against a known secret",
				ArgsUsage: "SECRET",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "first",
						Aliases: []string{"f"},
						Usage:   "--first w1 --first w2 plays these guesses before the guesser takes over",
					},
				},
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, gc GlobalConfiguration) error {
					if cmd.NArg() != 1 {
						return cli.Exit("must have exactly one secret", 1)
					}
					return auto(gc, cmd.Args().First(), cmd.StringSlice("first"))
				}),
			},
			{
				Name:  "stats",
				Usage: "play every word in the dictionary, or the first -n words, and summarize",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "n",
						Usage: "number of secrets, 0 is all words",
					},
					&cli.StringSliceFlag{
						Name:    "first",
						Aliases: []string{"f"},
						Usage:   "initial guesses played in every game",
					},
					&cli.StringFlag{
						Name:    "tsv",
						Usage:   "write one row per game to this file",
						Sources: env("TSV"),
					},
					&cli.StringFlag{
						Name:    "db",
						Usage:   "save the run to this sqlite database",
						Sources: env("DB"),
					},
					&cli.BoolFlag{
						Name:    "progress",
						Aliases: []string{"p"},
						Usage:   "show progress bar",
					},
				},
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, gc GlobalConfiguration) error {
					return stats(ctx, gc, statsOptions{
						count:    cmd.Int("n"),
						first:    cmd.StringSlice("first"),
						tsv:      cmd.String("tsv"),
						db:       cmd.String("db"),
						progress: cmd.Bool("progress"),
						strategy: cmd.String("strategy"),
					})
				}),
			},
			{
				Name:  "runs",
				Usage: "list the stats runs saved in a database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Usage:    "sqlite database written by stats --db",
						Sources:  env("DB"),
						Required: true,
					},
					&cli.Int64Flag{
						Name:  "run",
						Usage: "list the games of this run",
					},
				},
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, gc GlobalConfiguration) error {
					return runs(ctx, gc, cmd.String("db"), cmd.Int64("run"))
				}),
			},
			{
				Name:  "first",
				Usage: "sort first words by positional letter frequency",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "n",
						Value: 20,
						Usage: "number of words to show, 0 is all",
					},
				},
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, gc GlobalConfiguration) error {
					first(gc, cmd.Int("n"))
					return nil
				}),
			},
			{
				Name:  "serve",
				Usage: "serve guessing sessions over http",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Value:   ":8080",
						Sources: env("ADDR"),
					},
				},
				Action: withConfig(func(ctx context.Context, cmd *cli.Command, gc GlobalConfiguration) error {
					return serve(gc, cmd.String("addr"))
				}),
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	// exit coders have already been handled by Run
	if err := cmd.Run(ctx, os.Args); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "wdl:", err)
		os.Exit(1)
	}
}
