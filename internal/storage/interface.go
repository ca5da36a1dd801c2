package storage

import (
	"context"

	"github.com/mcoot/aqua-access/internal/model"
)

// Usernames is a set of username texts. The registered and unregistered
// caches are two separate instances and are never merged.
type Usernames interface {
	Add(ctx context.Context, username model.Username) error
	Contains(ctx context.Context, username model.Username) (bool, error)
	Remove(ctx context.Context, username model.Username) error
}

// CredentialSet remembers username and password pairs the backend rejected.
// Pairs match on their exact texts.
type CredentialSet interface {
	Add(ctx context.Context, credentials model.Credentials) error
	Contains(ctx context.Context, credentials model.Credentials) (bool, error)
}

// Caches groups the negative-result caches shared by the use cases
type Caches struct {
	// RegisteredUsernames holds names the backend reported as taken
	RegisteredUsernames Usernames
	// UnregisteredUsernames holds names the backend reported as free
	UnregisteredUsernames Usernames
	// InvalidCredentials holds pairs the backend refused to authorize
	InvalidCredentials CredentialSet
}
