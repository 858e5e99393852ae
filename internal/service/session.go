package service

import (
	"sync"

	"github.com/codeai-site/internal/models"
)

// Session holds the signed-in user of one viewer. A new session is anonymous.
type Session struct {
	mu   sync.RWMutex
	user *models.User
}

// NewSession creates an anonymous session
func NewSession() *Session {
	return &Session{}
}

// User returns the signed-in user, if any
func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) begin(user models.User) {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

func (s *Session) end() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}
