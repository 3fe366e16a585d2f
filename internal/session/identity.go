package session

import (
	"sync"

	"github.com/noah-isme/elores-client/internal/models"
)

// Identity is the single current-user slot. Only login and logout write it.
type Identity struct {
	mu   sync.RWMutex
	user *models.User
}

// NewIdentity returns an empty slot.
func NewIdentity() *Identity {
	return &Identity{}
}

// Set stores a copy of u.
func (i *Identity) Set(u models.User) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.user = &u
}

// Clear empties the slot.
func (i *Identity) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.user = nil
}

// Current returns a snapshot of the authenticated user.
func (i *Identity) Current() (models.User, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.user == nil {
		return models.User{}, false
	}
	return *i.user, true
}

// IsAuthenticated reports whether a user is set.
func (i *Identity) IsAuthenticated() bool {
	_, ok := i.Current()
	return ok
}
