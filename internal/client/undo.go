package client

import (
	"sync"
	"time"
)

// UndoWindow is how long a destructive action stays revertible before the
// server call actually goes out.
const UndoWindow = 5 * time.Second

// UndoManager tracks pending delayed-commit actions. A destructive action
// (cancelling a reservation or contribution) is applied optimistically and
// scheduled here; the commit fires after the undo window unless the user
// reverts first.
type UndoManager struct {
	mu      sync.Mutex
	pending map[*UndoTimer]struct{}
	stopped bool
}

// UndoTimer is one pending delayed-commit action.
type UndoTimer struct {
	manager *UndoManager
	timer   *time.Timer
	commit  func()
	revert  func()
	mu      sync.Mutex
	settled bool
}

// NewUndoManager creates an empty UndoManager.
func NewUndoManager() *UndoManager {
	return &UndoManager{pending: make(map[*UndoTimer]struct{})}
}

// Schedule registers a delayed commit. commit runs once after window
// unless Undo is called first, in which case revert runs once instead.
func (m *UndoManager) Schedule(window time.Duration, commit, revert func()) *UndoTimer {
	u := &UndoTimer{manager: m, commit: commit, revert: revert}

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		u.settled = true
		return u
	}
	m.pending[u] = struct{}{}
	m.mu.Unlock()

	// a Stop racing with this Schedule may have settled u already; the
	// timer field is only touched under u.mu
	u.mu.Lock()
	if !u.settled {
		u.timer = time.AfterFunc(window, u.fire)
	}
	u.mu.Unlock()
	return u
}

// Stop cancels every outstanding timer without committing or reverting.
// Used on page teardown, where neither outcome is meaningful anymore.
func (m *UndoManager) Stop() {
	m.mu.Lock()
	pending := make([]*UndoTimer, 0, len(m.pending))
	for u := range m.pending {
		pending = append(pending, u)
	}
	m.pending = make(map[*UndoTimer]struct{})
	m.stopped = true
	m.mu.Unlock()

	for _, u := range pending {
		u.cancel()
	}
}

// Undo aborts the pending commit and runs the revert callback. It reports
// whether the action was still pending; a false return means the commit
// already fired (or the timer was stopped) and nothing was reverted.
func (u *UndoTimer) Undo() bool {
	u.mu.Lock()
	if u.settled {
		u.mu.Unlock()
		return false
	}
	u.settled = true
	if u.timer != nil {
		u.timer.Stop()
	}
	u.mu.Unlock()

	u.manager.remove(u)
	u.revert()
	return true
}

func (u *UndoTimer) fire() {
	u.mu.Lock()
	if u.settled {
		u.mu.Unlock()
		return
	}
	u.settled = true
	u.mu.Unlock()

	u.manager.remove(u)
	u.commit()
}

func (u *UndoTimer) cancel() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.settled {
		return
	}
	u.settled = true
	if u.timer != nil {
		u.timer.Stop()
	}
}

func (m *UndoManager) remove(u *UndoTimer) {
	m.mu.Lock()
	delete(m.pending, u)
	m.mu.Unlock()
}
