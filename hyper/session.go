package hyper

import "sync"

// Session handle as provided by an external session store.
type Session interface {
	// Get the value under key, or nil. Reading a flash value removes it.
	Get(key string) any
	Set(key, value string)
	Unset(key string)
	// Flash sets a value that is removed after it has been read once.
	Flash(key, value string)
}

// MemorySession is a [Session] that is not backed by any store.
// It's used when a handler runs without a session store.
type MemorySession struct {
	lock   sync.Mutex
	values map[string]string
	flash  map[string]string
}

func NewMemorySession() *MemorySession {
	return &MemorySession{
		values: map[string]string{},
		flash:  map[string]string{},
	}
}

func (s *MemorySession) Get(key string) any {
	s.lock.Lock()
	defer s.lock.Unlock()

	if v, ok := s.flash[key]; ok {
		delete(s.flash, key)
		return v
	}
	if v, ok := s.values[key]; ok {
		return v
	}
	return nil
}

func (s *MemorySession) Set(key, value string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.values[key] = value
}

func (s *MemorySession) Unset(key string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.values, key)
	delete(s.flash, key)
}

func (s *MemorySession) Flash(key, value string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.flash[key] = value
}

var _ Session = (*MemorySession)(nil)
