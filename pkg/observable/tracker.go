// Package observable tracks per-key busy flags and errors for a view-model
// and notifies subscribers on every change. View code reads the flags after
// a notification to decide between rendering real data, a loading
// placeholder, or an error state.
package observable

import (
	"errors"
	"sync"
)

// Key identifies an independently tracked unit of state, typically one
// section or field of a view-model. A Key must stay stable for as long as it
// is tracked; deriving one from a value that changes over time is a misuse.
type Key string

// Self addresses the model as a whole rather than an associated key.
const Self Key = ""

// ErrHook is called after a tracked operation fails, before subscribers are
// notified. Useful for logging; it must not block.
type ErrHook func(err error, key Key)

// Tracker records busy flags and errors per key on top of a Notifier.
// Every mutating call emits exactly one notification after the write.
//
// Each key cycles idle → busy → idle independently; keys never interact.
// Registries are guarded so that operations for different keys may be
// in flight on different goroutines at once.
type Tracker struct {
	Notifier

	mu   sync.RWMutex
	busy map[Key]bool
	errs map[Key]error
	hook ErrHook
}

// NewTracker returns a Tracker with empty registries.
func NewTracker() *Tracker {
	return &Tracker{
		busy: make(map[Key]bool),
		errs: make(map[Key]error),
	}
}

// Busy reports whether key is currently busy. Unwritten keys are idle.
func (t *Tracker) Busy(key Key) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.busy[key]
}

// AnyBusy reports whether any tracked key is currently busy.
func (t *Tracker) AnyBusy() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, b := range t.busy {
		if b {
			return true
		}
	}
	return false
}

// SetBusy writes the busy flag for key and notifies subscribers.
func (t *Tracker) SetBusy(key Key, busy bool) {
	t.mu.Lock()
	t.busy[key] = busy
	t.mu.Unlock()
	t.Notify()
}

// HasErr reports whether an error is recorded for key.
func (t *Tracker) HasErr(key Key) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.errs[key] != nil
}

// Err returns the error recorded for key, or nil if none.
func (t *Tracker) Err(key Key) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.errs[key]
}

// SetErr records err for key and notifies subscribers. A nil err clears the
// entry.
func (t *Tracker) SetErr(key Key, err error) {
	t.mu.Lock()
	if err == nil {
		delete(t.errs, key)
	} else {
		t.errs[key] = err
	}
	t.mu.Unlock()
	t.Notify()
}

// ClearErrs empties the whole error registry with a single notification.
func (t *Tracker) ClearErrs() {
	t.mu.Lock()
	clear(t.errs)
	t.mu.Unlock()
	t.Notify()
}

// SetErrHook installs the failure hook invoked by Run and RunErr.
// Passing nil restores the default no-op.
func (t *Tracker) SetErrHook(hook ErrHook) {
	t.mu.Lock()
	t.hook = hook
	t.mu.Unlock()
}

// ErrAs returns the error recorded for key as a T when it matches, using the
// errors.As unwrapping rules. The second result is false when no error is
// recorded or it does not match T.
func ErrAs[T error](t *Tracker, key Key) (T, bool) {
	var target T
	err := t.Err(key)
	if err == nil || !errors.As(err, &target) {
		var zero T
		return zero, false
	}
	return target, true
}

// begin marks key busy and discards any stale error, then notifies. The
// notification is emitted before the tracked operation starts.
func (t *Tracker) begin(key Key) {
	t.mu.Lock()
	t.busy[key] = true
	delete(t.errs, key)
	t.mu.Unlock()
	t.Notify()
}

// settle records the outcome and clears the busy flag, then notifies. The
// error write always precedes the busy-false notification.
func (t *Tracker) settle(key Key, err error) {
	t.mu.Lock()
	if err != nil {
		t.errs[key] = err
	}
	t.busy[key] = false
	hook := t.hook
	t.mu.Unlock()

	if err != nil && hook != nil {
		hook(err, key)
	}
	t.Notify()
}
