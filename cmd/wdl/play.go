package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/powellquiring/wordleguess/guesser"
	"github.com/powellquiring/wordleguess/selfplay"
	"github.com/powellquiring/wordleguess/word"
)

// candidates are listed in full up to this many, the rest is only counted
const maxShownCandidates = 60

func (gc GlobalConfiguration) showCandidates(g *guesser.Guesser) {
	c := g.Candidates()
	fmt.Fprintf(gc.out, "%d candidates\n", len(c))
	fmt.Fprint(gc.out, grid(word.Strings(c[:min(len(c), maxShownCandidates)]), 10))
}

// readRound parses a line holding either the feedback for the suggestion or a guess and
// its feedback
func readRound(line string, suggestion word.Word) (word.Round, error) {
	if len(line) == word.Length {
		f, err := word.ParseFeedback(line)
		if err != nil {
			return word.Round{}, err
		}
		return word.RoundOf(suggestion, f), nil
	}
	return word.ParseRound(line)
}

// interactive reads one round per line until the game is over or the user types exit
func interactive(ctx context.Context, gc GlobalConfiguration, in io.Reader) error {
	gm := guesser.NewGame(guesser.New(gc.dictionary, gc.config, nil))
	fmt.Fprintln(gc.out, "enter the feedback for each guess: _ not in the word, ? elsewhere, + in place.")
	fmt.Fprintln(gc.out, "enter a word and its feedback when you played something else, exit to quit.")
	sc := bufio.NewScanner(in)
	for ctx.Err() == nil {
		guess, err := gm.Next()
		if err != nil {
			return report(gc, gm)
		}
		fmt.Fprintf(gc.out, "turn %d: %s\n> ", gm.Turn(), gc.render.highlight(guess.String()))
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		round, err := readRound(line, guess)
		if err != nil {
			fmt.Fprintln(gc.out, err)
			continue
		}
		st, err := gm.Play(round)
		fmt.Fprintln(gc.out, gc.render.round(round))
		if err != nil || st.Over() {
			return report(gc, gm)
		}
		if gc.config.Verbose {
			gc.showCandidates(gm.Guesser())
		}
	}
	return ctx.Err()
}

// report prints how a finished game ended
func report(gc GlobalConfiguration, gm *guesser.Game) error {
	switch gm.State() {
	case guesser.Won:
		fmt.Fprintf(gc.out, "solved in %d\n", len(gm.History()))
	case guesser.Lost:
		fmt.Fprintf(gc.out, "out of turns, the word is one of\n")
		gc.showCandidates(gm.Guesser())
	case guesser.Exhausted:
		return cli.Exit("no word in the dictionary fits the feedback", 1)
	case guesser.Failed:
		return cli.Exit(gm.Err(), 1)
	}
	return nil
}

// replay applies guess feedback pairs and prints the next guess followed by the candidates
func replay(gc GlobalConfiguration, args []string) error {
	gm := guesser.NewGame(guesser.New(gc.dictionary, gc.config, nil))
	for i := 0; i < len(args); i += 2 {
		round, err := word.ParseRound(args[i] + " " + args[i+1])
		if err != nil {
			return cli.Exit(err, 1)
		}
		if _, err := gm.Play(round); err != nil {
			if errors.Is(err, guesser.ErrGameOver) {
				return cli.Exit(fmt.Sprintf("%s: game is already over", round.Word()), 1)
			}
			return cli.Exit(err, 1)
		}
	}
	if gm.State().Over() {
		return report(gc, gm)
	}
	next, err := gm.Next()
	if err != nil {
		return report(gc, gm)
	}
	fmt.Fprint(gc.out, next, ":")
	for _, w := range gm.Guesser().Candidates() {
		fmt.Fprint(gc.out, " ", w)
	}
	fmt.Fprintln(gc.out)
	return nil
}

func parseWords(ss []string) ([]word.Word, error) {
	words := make([]word.Word, 0, len(ss))
	for _, s := range ss {
		w, err := word.Parse(s)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}

// auto plays against a known secret and prints every round
func auto(gc GlobalConfiguration, secretString string, firstStrings []string) error {
	secret, err := word.Parse(secretString)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if !gc.dictionary.Contains(secret) {
		gc.log.Warn().Stringer("secret", secret).Msg("secret is not in the dictionary, it can not be found")
	}
	initial, err := parseWords(firstStrings)
	if err != nil {
		return cli.Exit(err, 1)
	}
	rec, _ := selfplay.Play(gc.dictionary, gc.config, secret, selfplay.PlayOptions{Initial: initial})
	for i, g := range rec.Guesses {
		fmt.Fprintln(gc.out, gc.render.round(word.RoundOf(g, rec.Feedback[i])))
	}
	switch {
	case rec.Success:
		fmt.Fprintf(gc.out, "\n%s %d/%d\n%s", secret, rec.Turns(), guesser.MaxTurns, selfplay.Board(rec.Feedback))
	case rec.Err != nil:
		return cli.Exit(rec.Err, 1)
	default:
		fmt.Fprintf(gc.out, "\n%s X/%d\n%s", secret, guesser.MaxTurns, selfplay.Board(rec.Feedback))
	}
	return nil
}
