package voice

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/chaisthra/vibetrack/internal"
)

var ErrNoActiveSession = errors.New("voice: no active session")

// Session is the handle for one live voice conversation with the external
// agent.
type Session struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	AgentID   string `json:"agent_id"`
	StartedAt string `json:"started_at"`
}

// SessionManager owns the single active session slot. Starting a new session
// ends any session already running, whoever owns it.
type SessionManager struct {
	mu     sync.Mutex
	active *Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{}
}

// Start ends the current session if one exists and opens a new one. The
// replaced session is returned so the caller can finalize it.
func (m *SessionManager) Start(userID, agentID string) (started, replaced *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	replaced = m.active
	m.active = &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		AgentID:   agentID,
		StartedAt: internal.NowString(),
	}
	return m.active, replaced
}

// End clears the active slot and returns the session that was running.
func (m *SessionManager) End() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return nil, ErrNoActiveSession
	}
	s := m.active
	m.active = nil
	return s, nil
}

// Active reports the running session, if any.
func (m *SessionManager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}
