package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"aptchat/utilities"
)

const nonceSweepInterval = 10 * time.Minute

// NonceRegistry is a single-use challenge store. Every login attempt burns
// its nonce: a value can be presented at most once, matched or not, and
// unused entries expire after the TTL.
type NonceRegistry struct {
	store *gocache.Cache
	ttl   time.Duration
}

func NewNonceRegistry(ttl time.Duration) *NonceRegistry {
	return &NonceRegistry{
		store: gocache.New(ttl, nonceSweepInterval),
		ttl:   ttl,
	}
}

// Issue generates a challenge and stores it under key. When the client's
// address is not known yet, pass an empty key and the nonce keys itself.
func (n *NonceRegistry) Issue(key string) (string, error) {
	nonce, err := utilities.GenerateNonce()
	if err != nil {
		return "", err
	}

	key = normalizeNonceKey(key)
	if key == "" {
		key = nonce
	}

	n.store.Set(key, nonce, n.ttl)
	log.Debugf("Issued nonce for key %s", key)

	return nonce, nil
}

// Consume validates a presented nonce against the entry under key, falling
// back to the self-keyed entry for clients that requested the challenge
// before identifying themselves. The entry is deleted whether or not the
// value matches, so replays and guesses both restart the handshake.
func (n *NonceRegistry) Consume(key, presented string) bool {
	if presented == "" {
		return false
	}

	key = normalizeNonceKey(key)

	value, found := n.store.Get(key)
	if !found {
		key = presented
		value, found = n.store.Get(key)
	}
	if !found {
		return false
	}

	n.store.Delete(key)

	return value == presented
}

func normalizeNonceKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
