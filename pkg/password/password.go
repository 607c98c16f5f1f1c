// Package password turns plaintext credentials into storable digests and verifies them.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeBcrypt = "bcrypt"
	SchemeSHA256 = "sha256"
)

// Hasher hashes plaintext passwords and checks them against stored digests.
type Hasher interface {
	Hash(plain string) (string, error)
	Check(plain, hash string) bool
}

// New returns the hasher for the configured scheme.
func New(scheme string, cost int) (Hasher, error) {
	switch strings.ToLower(scheme) {
	case "", SchemeBcrypt:
		return NewBcrypt(cost), nil
	case SchemeSHA256:
		return SHA256Hasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

// SHA256Hasher is the legacy unsalted scheme: a hex SHA-256 digest of the password.
// Identical passwords produce identical digests, so it is weak against precomputed tables.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plain string) (string, error) {
	return sha256Hex(plain), nil
}

func (SHA256Hasher) Check(plain, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(sha256Hex(plain)), []byte(hash)) == 1
}

// BcryptHasher produces salted bcrypt digests. The password is reduced to its
// SHA-256 hex digest first, since bcrypt only reads 72 bytes of input.
// Legacy SHA-256 digests still verify.
type BcryptHasher struct {
	cost int
}

func NewBcrypt(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{cost: cost}
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(sha256Hex(plain)), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(out), nil
}

func (h BcryptHasher) Check(plain, hash string) bool {
	if isLegacyDigest(hash) {
		return SHA256Hasher{}.Check(plain, hash)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(sha256Hex(plain))) == nil
}

func sha256Hex(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func isLegacyDigest(hash string) bool {
	if len(hash) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
