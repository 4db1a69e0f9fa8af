// Package notify holds the process-wide alert slot and the component that
// displays alerts and expires them.
//
// The Service keeps at most one current alert. A new alert replaces the
// previous one; there is no queue. Observers are notified synchronously, in
// subscription order, each time the slot changes.
package notify

import (
	"sync"
)

// Type is the severity of an alert.
type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Info    Type = "info"
	Warning Type = "warning"
)

// Alert is a transient user-facing message.
type Alert struct {
	Message string
	Type    Type
}

// Service is the single alert slot. The zero value is not usable; use NewService.
type Service struct {
	mu      sync.Mutex
	current *Alert
	subs    map[int]func(*Alert)
	order   []int
	nextID  int
}

func NewService() *Service {
	return &Service{subs: make(map[int]func(*Alert))}
}

// ShowAlert replaces the current alert unconditionally.
func (s *Service) ShowAlert(a Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &a
	s.publish()
}

// ClearAlert empties the slot. It does nothing when the slot is already empty.
func (s *Service) ClearAlert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	s.current = nil
	s.publish()
}

// Dismiss clears the slot only if a is still the current alert. Observers
// receive the *Alert they are given, so a stale pointer never clears a newer
// alert.
func (s *Service) Dismiss(a *Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a == nil || s.current != a {
		return
	}
	s.current = nil
	s.publish()
}

// Current returns a copy of the current alert.
func (s *Service) Current() (Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Alert{}, false
	}
	return *s.current, true
}

// Subscribe registers fn and returns a function that removes it. fn runs with
// the slot locked and must not call back into the Service synchronously.
// A nil argument means the slot was emptied.
func (s *Service) Subscribe(fn func(*Alert)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// publish must be called with mu held.
func (s *Service) publish() {
	for _, id := range s.order {
		s.subs[id](s.current)
	}
}
