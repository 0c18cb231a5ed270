package service

import (
	"sort"
	"sync"
	"time"

	"github.com/earlysteps-ai/earlysteps/internal/domain"
)

// DefaultHistoryLimit caps the number of messages retained per session.
const DefaultHistoryLimit = 12

// SessionStore maps opaque session ids to ordered message histories. Each
// session keeps at most historyLimit messages; on overflow the oldest are
// evicted first. Sessions are created on first reference and live until
// process restart, unless PruneOldest is used to bound the session count.
type SessionStore struct {
	historyLimit int

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	// mu serializes whole chat turns on this session: concurrent requests
	// with the same session id must not interleave their read-modify-append
	// on the history.
	mu       sync.Mutex
	messages []domain.Message
	lastUsed time.Time
}

// NewSessionStore creates a store capping each session at historyLimit
// messages (DefaultHistoryLimit when <= 0).
func NewSessionStore(historyLimit int) *SessionStore {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &SessionStore{
		historyLimit: historyLimit,
		sessions:     make(map[string]*session),
	}
}

// get returns the session for id, creating it if unknown. An unrecognized id
// is a new conversation, never an error.
func (s *SessionStore) get(id string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[id]; ok {
		return sess
	}
	sess = &session{lastUsed: time.Now()}
	s.sessions[id] = sess
	return sess
}

// History returns a copy of the session's messages in order. Unknown ids
// yield an empty history.
func (s *SessionStore) History(id string) []domain.Message {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]domain.Message, len(sess.messages))
	copy(out, sess.messages)
	return out
}

// Len returns the number of retained sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PruneOldest evicts least-recently-used sessions until at most max remain,
// returning the number evicted. A max <= 0 means unbounded and prunes
// nothing.
func (s *SessionStore) PruneOldest(max int) int {
	if max <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	excess := len(s.sessions) - max
	if excess <= 0 {
		return 0
	}

	type aged struct {
		id       string
		lastUsed time.Time
	}
	all := make([]aged, 0, len(s.sessions))
	for id, sess := range s.sessions {
		all = append(all, aged{id: id, lastUsed: sess.lastUsed})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].lastUsed.Before(all[j].lastUsed)
	})

	for _, a := range all[:excess] {
		delete(s.sessions, a.id)
	}
	return excess
}

// appendExchange records one completed turn on an already-locked session,
// applying the FIFO history cap.
func (s *SessionStore) appendExchange(sess *session, userMsg, assistantMsg string) {
	sess.messages = append(sess.messages,
		domain.UserMessage(userMsg),
		domain.AssistantMessage(assistantMsg),
	)
	if len(sess.messages) > s.historyLimit {
		sess.messages = sess.messages[len(sess.messages)-s.historyLimit:]
	}
	sess.lastUsed = time.Now()
}
