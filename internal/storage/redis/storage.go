package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/aqua-access/internal/model"
	"github.com/mcoot/aqua-access/internal/storage"
)

// Storage owns the Redis connection shared by the cache repositories
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Caches returns the repositories backed by this connection
func (s *Storage) Caches() storage.Caches {
	return storage.Caches{
		RegisteredUsernames:   s.RegisteredUsernames(),
		UnregisteredUsernames: s.UnregisteredUsernames(),
		InvalidCredentials:    s.InvalidCredentials(),
	}
}

// RegisteredUsernames returns the set of names known to be taken
func (s *Storage) RegisteredUsernames() *Usernames {
	return &Usernames{storage: s, key: usernamesKey(s.cfg.Session, registeredSet)}
}

// UnregisteredUsernames returns the set of names known to be free
func (s *Storage) UnregisteredUsernames() *Usernames {
	return &Usernames{storage: s, key: usernamesKey(s.cfg.Session, unregisteredSet)}
}

// InvalidCredentials returns the set of rejected username and password pairs
func (s *Storage) InvalidCredentials() *CredentialSet {
	return &CredentialSet{storage: s}
}

// addWithTTL adds member to the SET at key and refreshes its expiry
func (s *Storage) addWithTTL(ctx context.Context, key, member string) error {
	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, key, member)
	if s.cfg.CacheTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.CacheTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Usernames is a Redis SET of username texts
type Usernames struct {
	storage *Storage
	key     string
}

// Ensure Usernames implements the interface
var _ storage.Usernames = (*Usernames)(nil)

func (u *Usernames) Add(ctx context.Context, username model.Username) error {
	return u.storage.addWithTTL(ctx, u.key, username.Text())
}

func (u *Usernames) Contains(ctx context.Context, username model.Username) (bool, error) {
	return u.storage.client.SIsMember(ctx, u.key, username.Text()).Result()
}

func (u *Usernames) Remove(ctx context.Context, username model.Username) error {
	return u.storage.client.SRem(ctx, u.key, username.Text()).Err()
}

// CredentialSet keeps one Redis SET of password digests per username
type CredentialSet struct {
	storage *Storage
}

// Ensure CredentialSet implements the interface
var _ storage.CredentialSet = (*CredentialSet)(nil)

func (c *CredentialSet) Add(ctx context.Context, credentials model.Credentials) error {
	key := credentials.Key()
	return c.storage.addWithTTL(ctx,
		rejectedCredentialsKey(c.storage.cfg.Session, key.Username),
		passwordDigest(key.Password))
}

func (c *CredentialSet) Contains(ctx context.Context, credentials model.Credentials) (bool, error) {
	key := credentials.Key()
	return c.storage.client.SIsMember(ctx,
		rejectedCredentialsKey(c.storage.cfg.Session, key.Username),
		passwordDigest(key.Password)).Result()
}
