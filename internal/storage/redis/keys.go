package redis

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Key prefix for all cache data
const keyPrefix = "aqua"

// Names of the two username sets
const (
	registeredSet   = "registered_usernames"
	unregisteredSet = "unregistered_usernames"
)

// usernamesKey returns the Redis key for a SET of username texts
func usernamesKey(session, set string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, session, set)
}

// rejectedCredentialsKey returns the Redis key for the SET of rejected
// password digests of one username
func rejectedCredentialsKey(session, username string) string {
	return fmt.Sprintf("%s:%s:rejected_credentials:%s", keyPrefix, session, username)
}

// passwordDigest hashes a password so it is never stored in clear text
func passwordDigest(password string) string {
	sum := blake2b.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
