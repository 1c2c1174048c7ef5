/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package session holds the signed-in operator for the lifetime of one
// console run. A Store is created at start-up, begun after sign-in, ended at
// logout and passed explicitly to whatever needs it.
package session

import (
	"errors"
	"sync"
	"time"

	"topmart-admin/internal/models"

	"go.uber.org/zap"
)

var ErrNotAuthenticated = errors.New("not authenticated")

type Store struct {
	mu            sync.RWMutex
	user          *models.User
	authenticated bool
	startedAt     time.Time
	onEnd         []func()
}

func NewStore() *Store {
	return &Store{}
}

// Begin marks the store authenticated as user
func (s *Store) Begin(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
	s.authenticated = true
	s.startedAt = time.Now()

	zap.L().Info("Session started",
		zap.String("email", user.Email),
		zap.String("role", user.Role))
}

// End clears the user and runs teardown hooks registered with OnEnd.
// Ending an already ended session is a no-op.
func (s *Store) End() {
	s.mu.Lock()
	if !s.authenticated {
		s.mu.Unlock()
		return
	}
	email := s.user.Email
	hooks := s.onEnd
	s.user = nil
	s.authenticated = false
	s.onEnd = nil
	s.mu.Unlock()

	for _, h := range hooks {
		h()
	}
	zap.L().Info("Session ended", zap.String("email", email))
}

// OnEnd registers fn to run when the session ends
func (s *Store) OnEnd(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnd = append(s.onEnd, fn)
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// User returns a copy of the signed-in user
func (s *Store) User() (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.authenticated {
		return models.User{}, ErrNotAuthenticated
	}
	return *s.user, nil
}

// Reviewer is the label recorded against review actions
func (s *Store) Reviewer() string {
	u, err := s.User()
	if err != nil {
		return ""
	}
	if u.Email != "" {
		return u.Email
	}
	return u.Name
}
