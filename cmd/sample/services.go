package main

import (
	"fmt"
	"sync"
	"time"
)

// healthService reports process status.
type healthService struct {
	started time.Time
}

func newHealthService() *healthService {
	return &healthService{started: time.Now()}
}

func (s *healthService) Status() (string, time.Duration) {
	return "ok", time.Since(s.started)
}

// echoService returns messages back to the caller.
type echoService struct{}

func newEchoService() *echoService { return &echoService{} }

func (s *echoService) Echo(msg string) string { return msg }

// user is the stored representation.
type user struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// userStore is an in-memory user repository.
type userStore struct {
	mu    sync.RWMutex
	seq   int
	users map[string]user
}

func newUserStore() *userStore {
	return &userStore{users: make(map[string]user)}
}

func (s *userStore) List(role string) []user {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]user, 0, len(s.users))
	for _, u := range s.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

func (s *userStore) Create(name, email, role string) user {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	u := user{
		ID:    fmt.Sprintf("u%d", s.seq),
		Name:  name,
		Email: email,
		Role:  role,
	}
	s.users[u.ID] = u
	return u
}

func (s *userStore) Get(id string) (user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *userStore) Update(id string, u user) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}
	u.ID = id
	s.users[id] = u
	return true
}

func (s *userStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}
