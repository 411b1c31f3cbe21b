package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tiketi/clock"
	"tiketi/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

const defaultTokenTTL = 24 * time.Hour

// Claims is what a verified bearer token asserts about its holder.
type Claims struct {
	UserID   string
	Email    string
	Role     models.Role
	IssuedAt time.Time
}

// Tokens mints and verifies signed bearer tokens. The token is a
// base64-wrapped "userID|email|role|issuedAt|signature" string where
// the signature is a secret-keyed sha256 over the payload. The email
// field is base64-encoded inside the payload: addresses are free-form
// and must not collide with the field separator.
type Tokens struct {
	secret string
	ttl    time.Duration
	clk    clock.Clock
}

func NewTokens(secret string, clk clock.Clock) *Tokens {
	return &Tokens{secret: secret, ttl: defaultTokenTTL, clk: clk}
}

func (t *Tokens) sign(payload string) string {
	sum := sha256.Sum256([]byte(t.secret + ":" + payload))
	return hex.EncodeToString(sum[:])
}

func (t *Tokens) Mint(user *models.User) string {
	email := base64.RawURLEncoding.EncodeToString([]byte(user.Email))
	payload := fmt.Sprintf("%s|%s|%s|%d", user.ID, email, user.Role, t.clk.Now().Unix())
	raw := payload + "|" + t.sign(payload)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func (t *Tokens) Verify(token string) (Claims, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), "|")
	if len(parts) != 5 {
		return Claims{}, ErrInvalidToken
	}
	payload := strings.Join(parts[:4], "|")
	if !hmac.Equal([]byte(t.sign(payload)), []byte(parts[4])) {
		return Claims{}, ErrInvalidToken
	}

	email, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	role, err := models.ParseRole(parts[2])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	issued, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{
		UserID:   parts[0],
		Email:    string(email),
		Role:     role,
		IssuedAt: time.Unix(issued, 0).UTC(),
	}
	if t.clk.Now().After(claims.IssuedAt.Add(t.ttl)) {
		return Claims{}, ErrTokenExpired
	}
	return claims, nil
}
