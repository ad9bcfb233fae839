package session

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store holds one Session per active conversation. Sessions expire with
// conversation inactivity so abandoned conversations cannot pin memory.
type Store struct {
	sessions    *expirable.LRU[string, *Session]
	historySize int
}

// NewStore creates a Store bounded to size sessions with the given idle TTL.
func NewStore(size int, ttl time.Duration, historySize int) *Store {
	if size <= 0 {
		size = 2048
	}
	return &Store{
		sessions:    expirable.NewLRU[string, *Session](size, nil, ttl),
		historySize: historySize,
	}
}

// Get returns the conversation's Session, creating it on first use.
func (st *Store) Get(conversationID string) *Session {
	if s, ok := st.sessions.Get(conversationID); ok {
		return s
	}
	s := New(conversationID, st.historySize)
	st.sessions.Add(conversationID, s)
	return s
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	return st.sessions.Len()
}
