// Package session remembers the last Document parsed for each client so
// follow-up questions can omit it.
package session

import (
	"sync"
	"time"

	"github.com/gaurav-prasanna/docmind/core"
	"github.com/google/uuid"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = time.Hour

type entry struct {
	doc     *core.Document
	touched time.Time
}

// Store is an in-memory, concurrency-safe session table.
type Store struct {
	mu      sync.Mutex
	entries map[uuid.UUID]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewStore creates a Store. A non-positive ttl means DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries: make(map[uuid.UUID]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put stores doc under id, or under a fresh id when id is empty or not a
// UUID. It returns the id used.
func (s *Store) Put(id string, doc *core.Document) string {
	key, err := uuid.Parse(id)
	if err != nil {
		key = uuid.New()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	s.entries[key] = entry{doc: doc, touched: s.now()}
	return key.String()
}

// Get returns the Document stored under id, if it has not expired.
func (s *Store) Get(id string) (*core.Document, bool) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.touched) > s.ttl {
		delete(s.entries, key)
		return nil, false
	}
	e.touched = s.now()
	s.entries[key] = e
	return e.doc, true
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	return len(s.entries)
}

func (s *Store) evictLocked() {
	now := s.now()
	for k, e := range s.entries {
		if now.Sub(e.touched) > s.ttl {
			delete(s.entries, k)
		}
	}
}
