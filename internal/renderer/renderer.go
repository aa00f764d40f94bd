package renderer

import (
	"context"
	"errors"
	"sync"
)

// Renderer produces paginated PDF bytes from a compiled markup document.
// A failed render never returns partial bytes.
type Renderer interface {
	Render(ctx context.Context, markup string) ([]byte, error)
}

var (
	ErrLaunch               = errors.New("render_launch_failed")
	ErrContentLoadTimeout   = errors.New("content_load_timeout")
	ErrRasterizationTimeout = errors.New("rasterization_timeout")
)

// SessionState tracks the lifecycle of one exclusively-owned rendering
// process. Sessions are never shared across requests.
type SessionState string

const (
	SessionUninitialized SessionState = "uninitialized"
	SessionLaunching     SessionState = "launching"
	SessionReady         SessionState = "ready"
	SessionRendering     SessionState = "rendering"
	SessionClosing       SessionState = "closing"
	SessionClosed        SessionState = "closed"
	SessionFailed        SessionState = "failed"
)

// Session is the per-render process handle.
type Session struct {
	mu    sync.Mutex
	state SessionState
}

func NewSession() *Session {
	return &Session{state: SessionUninitialized}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) transition(next SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionFailed || s.state == SessionClosed {
		return
	}
	s.state = next
}

// fail marks the session failed. Failed is terminal; a later teardown
// keeps the failed state.
func (s *Session) fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionClosed {
		return
	}
	s.state = SessionFailed
}
