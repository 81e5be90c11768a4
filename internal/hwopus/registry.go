package hwopus

import (
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/theiron97/hwopusd/internal/config"
)

// recentlyClosedHandles bounds how many released handles are remembered
// so that a lookup can report "closed" instead of "not found".
const recentlyClosedHandles = 128

// Registry maps opaque handles to open decoder sessions. Handles are
// unique for the lifetime of the process; a handle is never reused.
type Registry struct {
	logger      *zap.Logger
	maxSessions int

	mu       sync.RWMutex
	sessions map[string]*Session
	closed   *lru.Cache[string, time.Time]
}

// NewRegistry creates a session registry bounded by the configured
// session limit.
func NewRegistry(logger *zap.Logger, cfg *config.Config) (*Registry, error) {
	closed, err := lru.New[string, time.Time](recentlyClosedHandles)
	if err != nil {
		return nil, err
	}

	return &Registry{
		logger:      logger,
		maxSessions: cfg.Decoder.MaxSessions,
		sessions:    make(map[string]*Session),
		closed:      closed,
	}, nil
}

// Add registers an open session and returns its handle.
func (r *Registry) Add(s *Session) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sessions) >= r.maxSessions {
		return "", ErrTooManySessions
	}

	handle := uuid.NewString()
	r.sessions[handle] = s

	r.logger.Debug("Decoder session registered",
		zap.String("handle", handle),
		zap.Int("open_sessions", len(r.sessions)))

	return handle, nil
}

// Get resolves a handle to its session. A handle that was valid once
// but has been closed yields ErrSessionClosed.
func (r *Registry) Get(handle string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[handle]
	if !exists {
		if _, wasOpen := r.closed.Get(handle); wasOpen {
			return nil, ErrSessionClosed
		}

		return nil, ErrSessionNotFound
	}

	return session, nil
}

// Close releases the session behind handle exactly once and removes it
// from the registry.
func (r *Registry) Close(handle string) error {
	r.mu.Lock()
	session, exists := r.sessions[handle]
	if exists {
		delete(r.sessions, handle)
		r.closed.Add(handle, time.Now())
	}
	r.mu.Unlock()

	if !exists {
		if _, wasOpen := r.closed.Get(handle); wasOpen {
			return ErrSessionClosed
		}

		return ErrSessionNotFound
	}

	err := session.Close()

	r.logger.Info("Decoder session closed", zap.String("handle", handle))

	return err
}

// Len reports the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
