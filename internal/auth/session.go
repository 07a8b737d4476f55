package auth

import "sync"

type State struct {
	User          *Profile
	Loading       bool
	Authenticated bool
}

type Action interface {
	reduce(State) State
}

type (
	LoginStart   struct{}
	LoginSuccess struct{ Profile Profile }
	LoginFailure struct{}
	Logout       struct{}
)

func Reduce(s State, a Action) State {
	return a.reduce(s)
}

func (LoginStart) reduce(s State) State {
	s.Loading = true
	return s
}

func (a LoginSuccess) reduce(State) State {
	p := a.Profile
	return State{User: &p, Authenticated: true}
}

func (LoginFailure) reduce(State) State {
	return State{}
}

func (Logout) reduce(State) State {
	return State{}
}

// Sessions holds the auth state of every chat user.
type Sessions struct {
	mu     sync.RWMutex
	states map[int64]State
}

func NewSessions() *Sessions {
	return &Sessions{states: make(map[int64]State)}
}

func (s *Sessions) Dispatch(userID int64, a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := Reduce(s.states[userID], a)
	if next == (State{}) {
		delete(s.states, userID)
	} else {
		s.states[userID] = next
	}
	return next
}

func (s *Sessions) Get(userID int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[userID]
}
