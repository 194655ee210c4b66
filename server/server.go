// Package server exposes the guesser over HTTP.
//
//   - POST /games starts a game and returns the first suggestion.
//   - POST /games/{id}/feedback applies the feedback for the suggestion, or for a
//     different guess when one is given.
//   - GET /grade grades a guess against a secret.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/powellquiring/wordleguess/dictionary"
	"github.com/powellquiring/wordleguess/grade"
	"github.com/powellquiring/wordleguess/guesser"
	"github.com/powellquiring/wordleguess/word"
)

// candidate lists longer than this are truncated in responses
const maxListedCandidates = 50

type Server struct {
	r     *chi.Mux
	store *Store
	dict  *dictionary.Dictionary
	cfg   guesser.Config
	log   zerolog.Logger
}

func New(dict *dictionary.Dictionary, cfg guesser.Config, log zerolog.Logger) *Server {
	s := &Server{r: chi.NewRouter(), store: NewStore(), dict: dict, cfg: cfg, log: log}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(s.requestLog)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/grade", s.handleGrade)
	s.r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleNewGame)
		r.Get("/{id}", s.handleGetGame)
		r.Delete("/{id}", s.handleDeleteGame)
		r.Post("/{id}/feedback", s.handleFeedback)
	})
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start serves on addr until the listener fails
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Int("words", s.dict.Len()).Msg("listening")
	return http.ListenAndServe(addr, s.r)
}

func (s *Server) Router() chi.Router { return s.r }

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code string, err ...error) {
	res := errorRes{Error: code}
	if len(err) > 0 && err[0] != nil {
		res.Message = err[0].Error()
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(res)
}

type turnRes struct {
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"`
	Emoji    string `json:"emoji"`
}

type gameRes struct {
	ID         string    `json:"id"`
	State      string    `json:"state"`
	Turn       int       `json:"turn"`
	Suggestion string    `json:"suggestion,omitempty"`
	Count      int       `json:"count"`
	Candidates []string  `json:"candidates"`
	Confirmed  string    `json:"confirmed,omitempty"`
	History    []turnRes `json:"history"`
	Error      string    `json:"error,omitempty"`
}

// view must be called with sess.mu held
func view(sess *Session) gameRes {
	gm := sess.game
	g := gm.Guesser()
	candidates := g.Candidates()
	res := gameRes{
		ID:         sess.ID,
		State:      gm.State().String(),
		Turn:       gm.Turn(),
		Count:      len(candidates),
		Candidates: word.Strings(candidates[:min(len(candidates), maxListedCandidates)]),
		History:    []turnRes{},
	}
	if gm.State() == guesser.AwaitingFeedback {
		if w, err := gm.Next(); err == nil {
			res.Suggestion = w.String()
		}
	}
	if w, ok := g.ConfirmedWord(); ok {
		res.Confirmed = w.String()
	}
	for _, t := range gm.History() {
		res.History = append(res.History, turnRes{
			Guess:    t.Guess.String(),
			Feedback: t.Feedback.Symbols(),
			Emoji:    t.Feedback.String(),
		})
	}
	if err := gm.Err(); err != nil {
		res.Error = err.Error()
	}
	return res
}

// advance asks for the next suggestion so the session always shows one while playing
func advance(gm *guesser.Game) {
	if gm.State() == guesser.AwaitingGuess {
		_, _ = gm.Next()
	}
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	gm := guesser.NewGame(guesser.New(s.dict, s.cfg, nil))
	advance(gm)
	sess := s.store.Add(gm)
	s.log.Info().Str("game", sess.ID).Msg("new game")

	sess.mu.Lock()
	defer sess.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(view(sess))
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) *Session {
	sess, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil
	}
	return sess
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	_ = json.NewEncoder(w).Encode(view(sess))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if !s.store.Delete(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type feedbackReq struct {
	Feedback string `json:"feedback"`
	// Guess is set when a word other than the suggestion was played
	Guess string `json:"guess,omitempty"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err)
		return
	}
	f, err := word.ParseFeedback(req.Feedback)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_feedback", err)
		return
	}
	var guess word.Word
	if req.Guess != "" {
		if guess, err = word.Parse(req.Guess); err != nil {
			writeError(w, http.StatusBadRequest, "bad_guess", err)
			return
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	gm := sess.game
	if req.Guess != "" {
		_, err = gm.Play(word.RoundOf(guess, f))
	} else {
		_, err = gm.Submit(f)
	}
	switch {
	case errors.Is(err, guesser.ErrGameOver), errors.Is(err, guesser.ErrNoGuess):
		writeError(w, http.StatusConflict, "game_over", err)
		return
	case errors.Is(err, guesser.ErrContradiction):
		s.log.Warn().Str("game", sess.ID).Err(err).Msg("contradictory feedback")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(view(sess))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed", err)
		return
	}
	advance(gm)
	_ = json.NewEncoder(w).Encode(view(sess))
}

type gradeRes struct {
	Secret   string `json:"secret"`
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"`
	Emoji    string `json:"emoji"`
	Won      bool   `json:"won"`
}

func (s *Server) handleGrade(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	secret, err := word.Parse(q.Get("secret"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_secret", err)
		return
	}
	guess, err := word.Parse(q.Get("guess"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_guess", err)
		return
	}
	f := grade.Grade(secret, guess)
	_ = json.NewEncoder(w).Encode(gradeRes{
		Secret:   secret.String(),
		Guess:    guess.String(),
		Feedback: f.Symbols(),
		Emoji:    f.String(),
		Won:      f.Won(),
	})
}
