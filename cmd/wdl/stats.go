package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/powellquiring/wordleguess/dictionary"
	"github.com/powellquiring/wordleguess/history"
	"github.com/powellquiring/wordleguess/selfplay"
	"github.com/powellquiring/wordleguess/server"
	"github.com/powellquiring/wordleguess/word"
)

type statsOptions struct {
	count    int
	first    []string
	tsv      string
	db       string
	progress bool
	strategy string
}

// stats plays every secret and prints the summary.  An interrupted run still reports the
// games played so far.
func stats(ctx context.Context, gc GlobalConfiguration, o statsOptions) error {
	if gc.config.Verbose {
		gc.log.Warn().Msg("verbose messages are disabled for stats runs")
		gc.config.Verbose = false
	}
	secrets := gc.dictionary.Words()
	if o.count > 0 && o.count < len(secrets) {
		secrets = secrets[:o.count]
	}
	initial, err := parseWords(o.first)
	if err != nil {
		return cli.Exit(err, 1)
	}
	var progress io.Writer
	if o.progress {
		progress = os.Stderr
	}

	started := time.Now()
	records, err := selfplay.Run(ctx, gc.dictionary, gc.config, secrets, selfplay.RunOptions{Initial: initial, Progress: progress})
	switch {
	case errors.Is(err, context.Canceled) && len(records) > 0:
		gc.log.Warn().Int("played", len(records)).Int("secrets", len(secrets)).Msg("interrupted")
	case err != nil:
		return cli.Exit(err, 1)
	}
	gc.log.Info().Int("games", len(records)).Dur("elapsed", time.Since(started)).Msg("played")
	for _, r := range selfplay.Failures(records) {
		gc.log.Warn().Stringer("secret", r.Secret).Err(r.Err).Msg("game failed")
	}

	if err := selfplay.Summarize(records).Write(gc.out); err != nil {
		return err
	}
	if o.tsv != "" {
		if err := writeTSV(o.tsv, records); err != nil {
			return cli.Exit(err, 1)
		}
		gc.log.Info().Str("path", o.tsv).Msg("wrote tsv")
	}
	if o.db != "" {
		store, err := history.Open(o.db, gc.log)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer store.Close()
		run := history.Run{
			StartedAt: started,
			Strategy:  o.strategy,
			HardMode:  gc.config.HardMode,
			Initial:   word.Strings(initial),
		}
		id, err := store.SaveRun(context.WithoutCancel(ctx), run, records)
		if err != nil {
			return cli.Exit(err, 1)
		}
		gc.log.Info().Int64("run", id).Str("db", o.db).Msg("saved run")
	}
	return nil
}

func writeTSV(path string, records []selfplay.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := selfplay.WriteTSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// runs lists the saved runs, or the games of one run when runID is not zero
func runs(ctx context.Context, gc GlobalConfiguration, db string, runID int64) error {
	store, err := history.Open(db, gc.log)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer store.Close()

	if runID != 0 {
		games, err := store.Games(ctx, runID)
		if err != nil {
			return cli.Exit(err, 1)
		}
		if len(games) == 0 {
			return cli.Exit(fmt.Sprintf("run %d not found", runID), 1)
		}
		rows := [][]string{{"secret", "won", "turns", "guesses"}}
		for _, g := range games {
			guesses := strings.Join(g.Guesses, " ")
			if g.Error != "" {
				guesses += " (" + g.Error + ")"
			}
			rows = append(rows, []string{g.Secret, strconv.FormatBool(g.Success), strconv.Itoa(g.Turns), guesses})
		}
		fmt.Fprint(gc.out, table(rows))
		return nil
	}

	all, err := store.Runs(ctx)
	if err != nil {
		return cli.Exit(err, 1)
	}
	rows := [][]string{{"id", "started", "strategy", "hard", "first", "games", "won", "win %"}}
	for _, r := range all {
		pct := 0.0
		if r.Games > 0 {
			pct = 100 * float64(r.Won) / float64(r.Games)
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Local().Format(time.DateTime),
			r.Strategy,
			strconv.FormatBool(r.HardMode),
			strings.Join(r.Initial, ","),
			strconv.Itoa(r.Games),
			strconv.Itoa(r.Won),
			strconv.FormatFloat(pct, 'f', 2, 64),
		})
	}
	fmt.Fprint(gc.out, table(rows))
	return nil
}

// first prints the n best opening words by positional letter frequency
func first(gc GlobalConfiguration, n int) {
	words := gc.dictionary.Words()
	f := dictionary.CountFrequency(words)
	type item struct {
		w     word.Word
		score int
	}
	items := make([]item, len(words))
	for i, w := range words {
		items[i] = item{w, f.Score(w)}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].score > items[j].score })
	if n > 0 && n < len(items) {
		items = items[:n]
	}
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{strconv.Itoa(i + 1), it.w.String(), strconv.Itoa(it.score)}
	}
	fmt.Fprint(gc.out, table(rows))
}

func serve(gc GlobalConfiguration, addr string) error {
	if err := server.New(gc.dictionary, gc.config, gc.log).Start(addr); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}
