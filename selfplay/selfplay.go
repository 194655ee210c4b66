package selfplay

import (
	"context"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/powellquiring/wordleguess/dictionary"
	"github.com/powellquiring/wordleguess/grade"
	"github.com/powellquiring/wordleguess/guesser"
	"github.com/powellquiring/wordleguess/word"
)

// Oracle knows the secret and grades guesses against it
type Oracle struct {
	Secret word.Word
}

func (o Oracle) Check(guess word.Word) word.WordFeedback {
	return grade.Grade(o.Secret, guess)
}

// Record is the outcome of one self-played game
type Record struct {
	Secret   word.Word
	Success  bool
	Guesses  []word.Word
	Feedback []word.WordFeedback
	// Err is set when the game ended without a win or loss
	Err error
}

// Turns is the number of guesses played
func (r Record) Turns() int {
	return len(r.Guesses)
}

type PlayOptions struct {
	// Initial guesses are played in order before the guesser takes over
	Initial []word.Word
	// Buf is a recycled candidate buffer, may be nil
	Buf []word.Word
}

// Play one game against the secret.  The candidate buffer is returned for reuse.
func Play(dict *dictionary.Dictionary, cfg guesser.Config, secret word.Word, opts PlayOptions) (Record, []word.Word) {
	oracle := Oracle{Secret: secret}
	g := guesser.New(dict, cfg, opts.Buf)
	gm := guesser.NewGame(g)
	ret := Record{Secret: secret}
	for !gm.State().Over() {
		var err error
		if turn := gm.Turn(); turn <= len(opts.Initial) {
			guess := opts.Initial[turn-1]
			_, err = gm.Play(word.RoundOf(guess, oracle.Check(guess)))
		} else {
			var guess word.Word
			guess, err = gm.Next()
			if err == nil {
				_, err = gm.Submit(oracle.Check(guess))
			}
		}
		if err != nil {
			ret.Err = err
			break
		}
	}
	for _, t := range gm.History() {
		ret.Guesses = append(ret.Guesses, t.Guess)
		ret.Feedback = append(ret.Feedback, t.Feedback)
	}
	if ret.Err == nil && gm.State() == guesser.Exhausted {
		ret.Err = guesser.ErrExhausted
	}
	ret.Success = gm.State() == guesser.Won
	return ret, g.Recycle()
}

type RunOptions struct {
	Initial []word.Word
	// Progress receives a progress bar when it is not nil
	Progress io.Writer
}

// Run plays one game per secret, in order.  The records played so far are returned
// with the context error when ctx is done.
func Run(ctx context.Context, dict *dictionary.Dictionary, cfg guesser.Config, secrets []word.Word, opts RunOptions) ([]Record, error) {
	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(secrets),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("playing"),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	} else {
		bar = progressbar.DefaultSilent(int64(len(secrets)))
	}
	records := make([]Record, 0, len(secrets))
	var buf []word.Word
	for _, secret := range secrets {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		var r Record
		r, buf = Play(dict, cfg, secret, PlayOptions{Initial: opts.Initial, Buf: buf})
		records = append(records, r)
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return records, nil
}

// Failures are the records whose game failed rather than being lost
func Failures(records []Record) []Record {
	var ret []Record
	for _, r := range records {
		if r.Err != nil {
			ret = append(ret, r)
		}
	}
	return ret
}
