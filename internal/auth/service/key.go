package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// newSessionKey generates an opaque session key with 256 bits of entropy.
// Keys are owned by the session store and never carry structure a client
// could inspect.
func newSessionKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
