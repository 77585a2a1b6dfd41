package web

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
)

const (
	stampSize = 8
	macSize   = blake2b.Size256
	// Tokens issued by a clock slightly ahead are still accepted.
	clockSkew = time.Minute
)

var (
	ErrCSRFMissing = errors.New("missing csrf token")
	ErrCSRFInvalid = errors.New("invalid csrf token")
	ErrCSRFExpired = errors.New("expired csrf token")
)

// CSRF issues and verifies stateless form tokens. A token is the issue time
// followed by a keyed BLAKE2b MAC over that time and the subject, so a token
// issued to one role is rejected for another.
type CSRF struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewCSRF creates a token issuer. An empty key is replaced by a random one,
// in which case tokens do not survive a restart.
func NewCSRF(key []byte, ttl time.Duration) (*CSRF, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("csrf token ttl must be positive (got %s)", ttl)
	}
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("csrf key must be at most %d bytes (got %d)", blake2b.Size, len(key))
	}
	if len(key) == 0 {
		key = make([]byte, blake2b.Size)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate csrf key: %w", err)
		}
	}
	return &CSRF{key: key, ttl: ttl, now: time.Now}, nil
}

// Issue returns a token for subject.
func (c *CSRF) Issue(subject string) string {
	raw := make([]byte, stampSize, stampSize+macSize)
	binary.BigEndian.PutUint64(raw, uint64(c.now().Unix()))
	raw = append(raw, c.sign(raw, subject)...)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Verify checks that token was issued for subject and has not expired.
func (c *CSRF) Verify(token, subject string) error {
	if token == "" {
		return ErrCSRFMissing
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) != stampSize+macSize {
		return ErrCSRFInvalid
	}

	stamp, mac := raw[:stampSize], raw[stampSize:]
	if subtle.ConstantTimeCompare(mac, c.sign(stamp, subject)) != 1 {
		return ErrCSRFInvalid
	}

	issued := time.Unix(int64(binary.BigEndian.Uint64(stamp)), 0)
	age := c.now().Sub(issued)
	switch {
	case age < -clockSkew:
		return ErrCSRFInvalid
	case age > c.ttl:
		return ErrCSRFExpired
	}
	return nil
}

func (c *CSRF) sign(stamp []byte, subject string) []byte {
	// The key length is checked in NewCSRF, New256 cannot fail here.
	h, _ := blake2b.New256(c.key)
	h.Write(stamp)
	h.Write([]byte{0})
	h.Write([]byte(subject))
	return h.Sum(nil)
}
