package session

import "sync"

// Store is the process-wide session registry, keyed by user identity. Every
// operation against one session runs under that session's own lock, so
// concurrent events for the same user serialize while different users proceed
// independently. Sessions are created on first access.
type Store struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

type entry struct {
	mu   sync.Mutex
	sess *Session
}

func NewStore() *Store {
	return &Store{entries: make(map[int64]*entry)}
}

func (st *Store) entryFor(userID int64) *entry {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.entries[userID]
	if !ok {
		e = &entry{sess: newSession(userID)}
		st.entries[userID] = e
	}
	return e
}

// With runs fn with exclusive access to the user's session. fn must not block
// on external collaborators; callers snapshot what they need, release, and
// re-enter to commit.
func (st *Store) With(userID int64, fn func(*Session)) {
	e := st.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.sess)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}
