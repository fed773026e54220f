// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package session tracks the signed-in user and notifies subscribers when it changes.
//
// Authentication itself happens elsewhere; a Session only records its outcome.
package session

import (
	"log/slog"
	"sync"
)

// Change describes an auth transition. An empty id means signed out.
type Change struct {
	Previous string
	Current  string
}

// SignedIn reports whether the transition went from anonymous to a user.
func (c Change) SignedIn() bool {
	return c.Previous == "" && c.Current != ""
}

// SignedOut reports whether the transition went from a user to anonymous.
func (c Change) SignedOut() bool {
	return c.Previous != "" && c.Current == ""
}

// Switched reports whether one user replaced another without a sign-out in between.
func (c Change) Switched() bool {
	return c.Previous != "" && c.Current != "" && c.Previous != c.Current
}

// Listener receives auth changes.
type Listener func(Change)

// Session holds the current user id.
type Session struct {
	mu        sync.Mutex
	userID    string
	nextID    int
	listeners map[int]Listener
	logger    *slog.Logger
}

// New creates an anonymous session.
func New() *Session {
	return &Session{
		listeners: make(map[int]Listener),
		logger:    slog.Default().With("component", "session"),
	}
}

// CurrentUserID returns the signed-in user id. The boolean is false when anonymous.
func (s *Session) CurrentUserID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID, s.userID != ""
}

// SignIn records userID as the current user. An empty id signs out.
func (s *Session) SignIn(userID string) {
	s.set(userID)
}

// SignOut makes the session anonymous.
func (s *Session) SignOut() {
	s.set("")
}

// Subscribe registers fn for auth changes and returns a function that unregisters it.
// Listeners run synchronously on the goroutine that changed the session, in no
// particular order, and must not block.
func (s *Session) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Session) set(userID string) {
	s.mu.Lock()
	if s.userID == userID {
		s.mu.Unlock()
		return
	}
	change := Change{Previous: s.userID, Current: userID}
	s.userID = userID
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	s.logger.Info("auth changed", "signed_in", change.Current != "", "listeners", len(listeners))
	for _, l := range listeners {
		l(change)
	}
}
