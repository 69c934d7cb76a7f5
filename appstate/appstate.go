// Package appstate holds the in-memory session state of a single client
// instance. It is the reactive side of the session: handlers and guards
// read it on every decision, the hydrator repopulates it from durable
// storage at startup. It is private per instance — two clients of the
// same origin share durable storage, never appstate.
package appstate

import (
	"sync"

	"github.com/shiftwatch/sessionguard/role"
)

type State struct {
	lock sync.RWMutex

	selectedRole        role.Role
	onboardingCompleted bool
	rememberMe          bool
	activeShiftCount    int
	signatureCached     bool
}

func New() *State {
	return &State{}
}

func (s *State) SelectedRole() role.Role {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.selectedRole
}

func (s *State) SetSelectedRole(r role.Role) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.selectedRole = r
}

func (s *State) OnboardingCompleted() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.onboardingCompleted
}

func (s *State) SetOnboardingCompleted(completed bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.onboardingCompleted = completed
}

func (s *State) RememberMe() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.rememberMe
}

func (s *State) SetRememberMe(remember bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.rememberMe = remember
}

func (s *State) ActiveShiftCount() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.activeShiftCount
}

func (s *State) SetActiveShiftCount(count int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.activeShiftCount = count
}

func (s *State) SignatureCached() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.signatureCached
}

func (s *State) SetSignatureCached(cached bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.signatureCached = cached
}

// Facts snapshots the profile facts the role routing needs.
func (s *State) Facts() role.Facts {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return role.Facts{ActiveShiftCount: s.activeShiftCount}
}

// Reset returns every field to its zero value. Called on logout so the
// in-memory side matches the cleared durable side.
func (s *State) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.selectedRole = role.Unknown
	s.onboardingCompleted = false
	s.rememberMe = false
	s.activeShiftCount = 0
	s.signatureCached = false
}
