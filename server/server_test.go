package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powellquiring/wordleguess/dictionary"
	"github.com/powellquiring/wordleguess/grade"
	"github.com/powellquiring/wordleguess/guesser"
	"github.com/powellquiring/wordleguess/word"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(dictionary.Default(), guesser.DefaultConfig(), zerolog.Nop())
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "application/json; charset=utf-8", res.Header.Get("Content-Type"))
	if out != nil && res.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	var res map[string]bool
	assert.Equal(t, http.StatusOK, do(t, http.MethodGet, ts.URL+"/health", "", &res))
	assert.True(t, res["ok"])
}

func TestGrade(t *testing.T) {
	ts := newTestServer(t)
	var res gradeRes
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, ts.URL+"/grade?secret=crate&guess=REACT", "", &res))
	assert.Equal(t, gradeRes{Secret: "CRATE", Guess: "REACT", Feedback: "??+??", Emoji: "🟨🟨🟩🟨🟨"}, res)

	var e errorRes
	assert.Equal(t, http.StatusBadRequest, do(t, http.MethodGet, ts.URL+"/grade?secret=CRAT&guess=REACT", "", &e))
	assert.Equal(t, "bad_secret", e.Error)
}

func TestPlayToTheEnd(t *testing.T) {
	ts := newTestServer(t)
	secret := word.MustParse("CRATE")
	var g gameRes
	require.Equal(t, http.StatusCreated, do(t, http.MethodPost, ts.URL+"/games", "", &g))
	require.NotEmpty(t, g.ID)
	assert.Equal(t, "awaiting feedback", g.State)
	assert.Equal(t, 1, g.Turn)
	assert.Equal(t, dictionary.Default().Len(), g.Count)
	assert.Len(t, g.Candidates, maxListedCandidates)
	assert.Empty(t, g.History)

	id := g.ID
	for range guesser.MaxTurns {
		if g.State != "awaiting feedback" {
			break
		}
		guess := word.MustParse(g.Suggestion)
		body := `{"feedback":"` + grade.Grade(secret, guess).Symbols() + `"}`
		var next gameRes
		require.Equal(t, http.StatusOK, do(t, http.MethodPost, ts.URL+"/games/"+id+"/feedback", body, &next))
		g = next
	}
	assert.Contains(t, []string{"won", "lost"}, g.State)
	if g.State == "won" {
		assert.Equal(t, "CRATE", g.Confirmed)
		assert.Equal(t, "+++++", g.History[len(g.History)-1].Feedback)
	}

	var again gameRes
	require.Equal(t, http.StatusOK, do(t, http.MethodGet, ts.URL+"/games/"+id, "", &again))
	assert.Equal(t, g, again)

	var e errorRes
	assert.Equal(t, http.StatusConflict, do(t, http.MethodPost, ts.URL+"/games/"+id+"/feedback", `{"feedback":"_____"}`, &e))
	assert.Equal(t, "game_over", e.Error)
}

func TestOwnGuess(t *testing.T) {
	ts := newTestServer(t)
	var g gameRes
	require.Equal(t, http.StatusCreated, do(t, http.MethodPost, ts.URL+"/games", "", &g))
	require.Equal(t, http.StatusOK, do(t, http.MethodPost, ts.URL+"/games/"+g.ID+"/feedback",
		`{"guess":"quirk","feedback":"_____"}`, &g))
	assert.Equal(t, 2, g.Turn)
	require.Len(t, g.History, 1)
	assert.Equal(t, turnRes{Guess: "QUIRK", Feedback: "_____", Emoji: "⬜⬜⬜⬜⬜"}, g.History[0])
	for _, c := range g.Candidates[1:] {
		assert.NotContains(t, c, "Q")
		assert.NotContains(t, c, "U")
	}
}

func TestContradiction(t *testing.T) {
	ts := newTestServer(t)
	var g gameRes
	require.Equal(t, http.StatusCreated, do(t, http.MethodPost, ts.URL+"/games", "", &g))
	url := ts.URL + "/games/" + g.ID + "/feedback"
	// E is not at slot 5 but every other slot is taken
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, http.MethodPost, url, `{"guess":"SLATE","feedback":"++++?"}`, &g))
	assert.Equal(t, "failed", g.State)
	assert.Contains(t, g.Error, "contradictory")
}

func TestConcurrentNewGames(t *testing.T) {
	cfg := guesser.DefaultConfig()
	cfg.Opener = guesser.NewRandomTop(42)
	s := New(dictionary.Default(), cfg, zerolog.Nop())
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)

	const clients, games = 8, 20
	var wg sync.WaitGroup
	for range clients {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range games {
				res, err := http.Post(ts.URL+"/games", "application/json", nil)
				if !assert.NoError(t, err) {
					return
				}
				var g gameRes
				assert.NoError(t, json.NewDecoder(res.Body).Decode(&g))
				res.Body.Close()
				assert.Equal(t, http.StatusCreated, res.StatusCode)
				assert.Len(t, g.Suggestion, word.Length)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, clients*games, s.store.Len())
}

func TestBadRequests(t *testing.T) {
	ts := newTestServer(t)
	var e errorRes
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, ts.URL+"/games/nope", "", &e))
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodPost, ts.URL+"/games/nope/feedback", `{"feedback":"_____"}`, &e))
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, ts.URL+"/nowhere", "", &e))

	var g gameRes
	require.Equal(t, http.StatusCreated, do(t, http.MethodPost, ts.URL+"/games", "", &g))
	url := ts.URL + "/games/" + g.ID + "/feedback"
	assert.Equal(t, http.StatusBadRequest, do(t, http.MethodPost, url, `{"feedback":`, &e))
	assert.Equal(t, "bad_json", e.Error)
	assert.Equal(t, http.StatusBadRequest, do(t, http.MethodPost, url, `{"feedback":"__x__"}`, &e))
	assert.Equal(t, "bad_feedback", e.Error)
	assert.Equal(t, http.StatusBadRequest, do(t, http.MethodPost, url, `{"feedback":"_____","guess":"TOOLONG"}`, &e))
	assert.Equal(t, "bad_guess", e.Error)
}

func TestDelete(t *testing.T) {
	ts := newTestServer(t)
	var g gameRes
	require.Equal(t, http.StatusCreated, do(t, http.MethodPost, ts.URL+"/games", "", &g))
	assert.Equal(t, http.StatusNoContent, do(t, http.MethodDelete, ts.URL+"/games/"+g.ID, "", nil))
	var e errorRes
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, ts.URL+"/games/"+g.ID, "", &e))
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodDelete, ts.URL+"/games/"+g.ID, "", &e))
}

func TestStore(t *testing.T) {
	s := NewStore()
	sess := s.Add(guesser.NewGame(guesser.New(dictionary.Default(), guesser.DefaultConfig(), nil)))
	assert.Len(t, sess.ID, 22)
	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, s.Len())
	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
