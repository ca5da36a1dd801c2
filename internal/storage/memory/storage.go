package memory

import (
	"context"
	"sync"

	"github.com/mcoot/aqua-access/internal/model"
	"github.com/mcoot/aqua-access/internal/storage"
)

// Usernames is an in-memory set of username texts
type Usernames struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

// NewUsernames creates an empty username set
func NewUsernames() *Usernames {
	return &Usernames{names: make(map[string]struct{})}
}

// Ensure Usernames implements the interface
var _ storage.Usernames = (*Usernames)(nil)

func (u *Usernames) Add(ctx context.Context, username model.Username) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.names[username.Text()] = struct{}{}
	return nil
}

func (u *Usernames) Contains(ctx context.Context, username model.Username) (bool, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	_, ok := u.names[username.Text()]
	return ok, nil
}

func (u *Usernames) Remove(ctx context.Context, username model.Username) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.names, username.Text())
	return nil
}

// CredentialSet is an in-memory map of username text to rejected passwords
type CredentialSet struct {
	mu        sync.RWMutex
	passwords map[string]map[string]struct{}
}

// NewCredentialSet creates an empty credential set
func NewCredentialSet() *CredentialSet {
	return &CredentialSet{passwords: make(map[string]map[string]struct{})}
}

// Ensure CredentialSet implements the interface
var _ storage.CredentialSet = (*CredentialSet)(nil)

func (c *CredentialSet) Add(ctx context.Context, credentials model.Credentials) error {
	key := credentials.Key()

	c.mu.Lock()
	defer c.mu.Unlock()

	passwords, ok := c.passwords[key.Username]
	if !ok {
		passwords = make(map[string]struct{})
		c.passwords[key.Username] = passwords
	}
	passwords[key.Password] = struct{}{}
	return nil
}

func (c *CredentialSet) Contains(ctx context.Context, credentials model.Credentials) (bool, error) {
	key := credentials.Key()

	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.passwords[key.Username][key.Password]
	return ok, nil
}

// NewCaches creates a fresh, empty set of in-memory caches
func NewCaches() storage.Caches {
	return storage.Caches{
		RegisteredUsernames:   NewUsernames(),
		UnregisteredUsernames: NewUsernames(),
		InvalidCredentials:    NewCredentialSet(),
	}
}
