package services

import "sync"

// listeners holds change callbacks registered by presentation layers.
type listeners struct {
	mu  sync.RWMutex
	fns []func()
}

func (l *listeners) add(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fns = append(l.fns, fn)
}

// notify calls every listener. It must not be called with service locks held.
func (l *listeners) notify() {
	l.mu.RLock()
	fns := make([]func(), len(l.fns))
	copy(fns, l.fns)
	l.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
