package session

import (
	"strings"
	"sync"
	"time"

	"finance-assistant/internal/intent"
)

// focusTTL bounds how long a conversation focus stays active without being
// refreshed.
const focusTTL = 10 * time.Minute

// repetitionWindow is how long an answered question suppresses an identical
// pattern answer when the user signals frustration.
const repetitionWindow = 2 * time.Minute

// PendingAction is a proposed action awaiting the user's yes/no.
type PendingAction struct {
	ID        string
	Kind      string // e.g. "create_budget"
	Params    map[string]string
	CreatedAt time.Time
}

// Session is the per-conversation mutable state. One Session belongs to one
// conversation and is owned by the caller; the engine reads and writes it
// only through explicit parameters, never through package-level state.
type Session struct {
	mu sync.Mutex

	id      string
	history *intent.History

	focus       intent.Intent
	focusSetAt  time.Time
	focusExpiry time.Time

	pending *PendingAction

	// recentAnswers maps a repetition key (solver id or matched KB
	// question) to when it was last served.
	recentAnswers map[string]time.Time
}

// New creates a Session for one conversation.
func New(conversationID string, historySize int) *Session {
	return &Session{
		id:            conversationID,
		history:       intent.NewHistory(historySize),
		recentAnswers: make(map[string]time.Time),
	}
}

// ID returns the conversation id.
func (s *Session) ID() string {
	return s.id
}

// History returns the hysteresis ring buffer. The router mutates it during
// Decide; the Session keeps ownership.
func (s *Session) History() *intent.History {
	return s.history
}

// SetFocus records the current conversation focus topic.
func (s *Session) SetFocus(in intent.Intent, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = in
	s.focusSetAt = now
	s.focusExpiry = now.Add(focusTTL)
}

// Focus returns the active focus, or UNKNOWN when none is set or it expired.
func (s *Session) Focus(now time.Time) intent.Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.focus == "" || now.After(s.focusExpiry) {
		return intent.IntentUnknown
	}
	return s.focus
}

// SetPending registers a pending action, replacing any previous one.
func (s *Session) SetPending(p *PendingAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = p
}

// TakePending removes and returns the pending action, if any.
func (s *Session) TakePending() *PendingAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pending
	s.pending = nil
	return p
}

// Pending returns the pending action without consuming it.
func (s *Session) Pending() *PendingAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// MarkAnswered records that the given repetition key was just served.
func (s *Session) MarkAnswered(key string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentAnswers[normalizeKey(key)] = now

	// Drop stale entries so the map stays small.
	for k, at := range s.recentAnswers {
		if now.Sub(at) > repetitionWindow {
			delete(s.recentAnswers, k)
		}
	}
}

// RecentlyAnswered reports whether the key was served inside the repetition
// window.
func (s *Session) RecentlyAnswered(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.recentAnswers[normalizeKey(key)]
	return ok && now.Sub(at) <= repetitionWindow
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
