package session

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Keyer derives store keys from session ids so stored keys never equal a
// live cookie value.
type Keyer struct {
	prefix string
	secret []byte
}

// NewKeyer returns a Keyer. BLAKE2b accepts keys up to 64 bytes; longer
// secrets are folded through an unkeyed digest first.
func NewKeyer(prefix, secret string) Keyer {
	key := []byte(secret)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum512(key)
		key = sum[:]
	}
	return Keyer{prefix: prefix, secret: key}
}

// Key returns the store key for a session id and slot name.
func (k Keyer) Key(sessionID, slot string) string {
	h, err := blake2b.New256(k.secret)
	if err != nil {
		// only reachable with an oversized key, which NewKeyer rules out
		panic(err)
	}
	h.Write([]byte(sessionID))
	return k.prefix + hex.EncodeToString(h.Sum(nil)) + ":" + slot
}
