package observable

import "sync"

// Listener is invoked synchronously after every state mutation on the
// model it is subscribed to.
type Listener func()

// Notifier fans change notifications out to registered listeners. It is the
// base capability an observable view-model composes: Tracker embeds one and
// calls Notify after every registry write, and view code subscribes to
// re-read state and re-render.
//
// The zero value is ready to use.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

// Subscribe registers fn for future notifications and returns a function
// that removes the registration. Unsubscribing twice is harmless.
func (n *Notifier) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	n.mu.Lock()
	if n.listeners == nil {
		n.listeners = make(map[int]Listener)
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.listeners, id)
		n.mu.Unlock()
	}
}

// Notify invokes every registered listener on the calling goroutine.
// Listeners run outside the registration lock, so a listener may subscribe
// or unsubscribe without deadlocking.
func (n *Notifier) Notify() {
	n.mu.RLock()
	fns := make([]Listener, 0, len(n.listeners))
	for _, fn := range n.listeners {
		fns = append(fns, fn)
	}
	n.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

// ListenerCount reports how many listeners are currently subscribed.
func (n *Notifier) ListenerCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
