// Package auth contains the password hashers and the access token manager.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a plaintext password into a storable digest and checks a
// plaintext against one.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// NewHasher returns the hasher configured by name: "sha256" or "bcrypt".
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "sha256", "":
		return SHA256Hasher{}, nil
	case "bcrypt":
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

// SHA256Hasher stores the lowercase hex SHA-256 of the password. It is
// unsalted and fast, so equal passwords share a digest and offline guessing
// is cheap. It stays the default only for compatibility with existing rows;
// new deployments should pick BcryptHasher.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(password, digest string) bool {
	want, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(want), []byte(digest)) == 1
}

// BcryptHasher is the salted alternative. Cost zero means bcrypt.DefaultCost.
// bcrypt reads at most 72 bytes, so the password is first reduced to the
// base64 of its SHA-256 sum; every byte of a long password still counts.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword(prehash(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

func (BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), prehash(password)) == nil
}

func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
