package session

import "sync"

// Role values for conversation turns.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single conversation message. Turns are never mutated after
// creation; ordering within a history is chronological.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Memory holds the conversational state for one session. It is owned by
// the Store that created it; pipeline stages mutate it on behalf of a
// single session id.
type Memory struct {
	SessionID          string
	History            []Turn
	LastNewsletterHTML string
	LastSummary        string
	LastTweets         []string
}

// Append records a (user, assistant) turn pair.
func (m *Memory) Append(userContent, assistantContent string) {
	m.History = append(m.History,
		Turn{Role: RoleUser, Content: userContent},
		Turn{Role: RoleAssistant, Content: assistantContent},
	)
}

// Merge extends the history with externally supplied turns, keeping at
// most the last n. Clients resend recent context because server memory is
// not durable across restarts.
func (m *Memory) Merge(turns []Turn, n int) {
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	m.History = append(m.History, turns...)
}

// Tail returns up to the last n turns of history.
func (m *Memory) Tail(n int) []Turn {
	if len(m.History) <= n {
		return m.History
	}
	return m.History[len(m.History)-n:]
}

// Store is a keyed collection of session memories. Entries are created
// lazily and live for the process lifetime; there is no eviction.
// Concurrent mutation of the same session id is last-write-wins per
// field, not atomic across the record.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Memory
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Memory)}
}

// GetOrCreate returns the memory for the given session id, creating an
// empty record on first access. Repeated calls with the same id return
// the identical instance.
func (s *Store) GetOrCreate(sessionID string) *Memory {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.sessions[sessionID]
	if !ok {
		m = &Memory{SessionID: sessionID}
		s.sessions[sessionID] = m
	}
	return m
}

// Len reports the number of sessions currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
