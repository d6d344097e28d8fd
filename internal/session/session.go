// Package session provides the process-scoped session store. The dispatcher
// treats sessions as opaque handles to be forwarded into tool execution;
// only tools read or write the state inside.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Session is the mutable per-caller state handed through to tool execution.
// The zero value is not usable; sessions are created by a Store.
type Session struct {
	id string

	mu     sync.Mutex
	values map[string]any
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Get returns the value stored under key, if any.
func (s *Session) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Store maps session identifiers to sessions, creating them lazily on first
// reference. Sessions live for the lifetime of the process; there is no
// expiry. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for id, creating it if this is the first
// reference. An empty id allocates a fresh session under a generated id.
func (s *Store) GetOrCreate(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = uuid.New().String()
	}
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{id: id, values: make(map[string]any)}
		s.sessions[id] = sess
	}
	return sess
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
