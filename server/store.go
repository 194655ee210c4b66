package server

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"

	"github.com/powellquiring/wordleguess/guesser"
)

var ErrNotFound = errors.New("not found")

// Session is one game in progress.  mu guards game, the guesser is not safe for
// concurrent use.
type Session struct {
	ID   string
	mu   sync.Mutex
	game *guesser.Game
}

// Store keeps sessions in memory, they are lost when the process exits
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (s *Store) Add(gm *guesser.Game) *Session {
	sess := &Session{ID: genID(), game: gm}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	return nil, ErrNotFound
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// genID creates a 22 char URL safe random identifier
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
