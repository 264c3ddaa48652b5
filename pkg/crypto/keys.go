package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the length in bytes of every derived key.
const KeySize = 32

// Purposes used as HKDF info so one secret yields independent keys.
const (
	PurposeSessionEncryption = "core-dashboard/session-encryption"
	PurposeTokenSigning      = "core-dashboard/token-signing"
)

var (
	ErrEmptySecret = errors.New("secret must not be empty")

	randomRead = rand.Read
)

// DeriveKey expands secret into a KeySize key bound to purpose.
func DeriveKey(secret, purpose string) ([]byte, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}

// GenerateRandomToken generates a random hex token of length bytes
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateSessionID returns a URL-safe 256-bit identifier.
func GenerateSessionID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// GenerateOAuthState returns the opaque value sent as the OAuth state parameter.
func GenerateOAuthState() (string, error) {
	return GenerateRandomToken(16)
}
