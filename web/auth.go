package web

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Token errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// GenerateSecretKey returns a hex-encoded cryptographically secure key.
func GenerateSecretKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating secret key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// tokenClaims is what an access token carries.
type tokenClaims struct {
	Subject   string    `json:"sub"`
	ExpiresAt time.Time `json:"exp"`
}

// CreateAccessToken signs a token for the subject, valid for ttl. The token
// is base64url(payload) + "." + base64url(HMAC-SHA256(payload)).
func CreateAccessToken(secretKey, subject string, ttl time.Duration) (string, error) {
	if secretKey == "" {
		return "", errors.New("secret key is required")
	}

	payload, err := json.Marshal(tokenClaims{
		Subject:   subject,
		ExpiresAt: time.Now().Add(ttl).UTC(),
	})
	if err != nil {
		return "", err
	}

	sig := sign(secretKey, payload)
	return base64.RawURLEncoding.EncodeToString(payload) + "." +
		base64.RawURLEncoding.EncodeToString(sig), nil
}

// VerifyAccessToken checks the token's signature and expiry, returning the
// subject when valid.
func VerifyAccessToken(secretKey, token string) (string, error) {
	payloadPart, sigPart, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(payloadPart)
	if err != nil {
		return "", ErrInvalidToken
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return "", ErrInvalidToken
	}

	if !hmac.Equal(sig, sign(secretKey, payload)) {
		return "", ErrInvalidToken
	}

	var claims tokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", ErrInvalidToken
	}
	if time.Now().After(claims.ExpiresAt) {
		return "", ErrTokenExpired
	}

	return claims.Subject, nil
}

func sign(secretKey string, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write(payload)
	return mac.Sum(nil)
}
