package session

import (
	"errors"

	"go.uber.org/zap"
)

// ErrLoginRequired is returned when a protected command runs without an
// authenticated session.
var ErrLoginRequired = errors.New("not logged in (run: taskctl login)")

// State is the guard's view of the session.
type State int

const (
	// StateUnknown means the durable record has not been read yet.
	StateUnknown State = iota
	// StateAuthenticated means a session with a token was found.
	StateAuthenticated
	// StateAnonymous means no usable session was found.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "invalid"
}

// Guard decides whether protected commands may run.
// It leaves StateUnknown exactly once, on the first Resolve.
type Guard struct {
	store *Store
	log   *zap.Logger
	state State
	sess  *Session
}

// NewGuard returns a guard in StateUnknown.
func NewGuard(store *Store, log *zap.Logger) *Guard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Guard{store: store, log: log}
}

// State returns the current state without resolving.
func (g *Guard) State() State {
	return g.state
}

// Resolve reads the durable record on the first call and returns the
// resulting state. Later calls return the resolved state unchanged.
func (g *Guard) Resolve() State {
	if g.state != StateUnknown {
		return g.state
	}

	sess, err := g.store.Load()
	if err != nil {
		g.log.Warn("ignoring unreadable session", zap.String("path", g.store.Path()), zap.Error(err))
		sess = nil
	}

	if sess.Valid() {
		g.state = StateAuthenticated
		g.sess = sess
	} else {
		g.state = StateAnonymous
	}
	g.log.Debug("session resolved", zap.Stringer("state", g.state))
	return g.state
}

// Session returns the resolved session, or nil unless authenticated.
func (g *Guard) Session() *Session {
	return g.sess
}

// Authorize allows unprotected commands in every state and protected
// commands only when authenticated. StateUnknown is treated as anonymous.
func (g *Guard) Authorize(protected bool) error {
	if !protected {
		return nil
	}
	if g.state != StateAuthenticated {
		return ErrLoginRequired
	}
	return nil
}
