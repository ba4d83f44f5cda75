package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenKind separates the two token classes. A refresh token is never
// accepted where an access token is expected, and vice versa.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// MinKeyLen is the minimum signing key length in bytes. Shorter keys are
// refused at construction so the service fails fast instead of signing with
// weak material.
const MinKeyLen = 32

// Default lifetimes for the two token classes.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

var (
	// ErrTokenExpired marks a structurally valid token whose expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid marks a bad signature, malformed structure or
	// wrong-kind secret use.
	ErrTokenInvalid = errors.New("invalid token")
)

// Config holds JWT configuration. RefreshSigningKey falls back to
// AccessSigningKey when empty; a deliberate simplification for single-secret
// deployments.
type Config struct {
	AccessSigningKey  string
	RefreshSigningKey string
	Issuer            string
	Audience          string
	AccessTTL         time.Duration
	RefreshTTL        time.Duration
}

// UserClaims is the claim set carried by both token classes.
type UserClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTUtil signs and verifies the service's access and refresh tokens.
type JWTUtil struct {
	config Config
	now    func() time.Time
}

// New creates a JWT utility, validating the signing keys. An absent or short
// access key is a startup error, never a silent fallback. The configuration
// is copied; defaults are applied to the copy, not the caller's struct.
func New(config *Config) (*JWTUtil, error) {
	if config == nil {
		return nil, errors.New("jwtutil: configuration not provided")
	}
	cfg := *config
	if len(cfg.AccessSigningKey) < MinKeyLen {
		return nil, fmt.Errorf("jwtutil: access signing key must be at least %d bytes", MinKeyLen)
	}
	if cfg.RefreshSigningKey == "" {
		cfg.RefreshSigningKey = cfg.AccessSigningKey
	}
	if len(cfg.RefreshSigningKey) < MinKeyLen {
		return nil, fmt.Errorf("jwtutil: refresh signing key must be at least %d bytes", MinKeyLen)
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &JWTUtil{config: cfg, now: time.Now}, nil
}

// WithClock overrides the time source, used by tests to pin the clock.
func (j *JWTUtil) WithClock(now func() time.Time) *JWTUtil {
	j.now = now
	return j
}

// GenerateAccessToken creates a short-lived access token for the user.
func (j *JWTUtil) GenerateAccessToken(userID uint, email, role string) (string, error) {
	return j.generate(userID, email, role, KindAccess)
}

// GenerateRefreshToken creates a longer-lived refresh token for the user.
func (j *JWTUtil) GenerateRefreshToken(userID uint, email, role string) (string, error) {
	return j.generate(userID, email, role, KindRefresh)
}

func (j *JWTUtil) generate(userID uint, email, role string, kind TokenKind) (string, error) {
	ttl := j.config.AccessTTL
	key := j.config.AccessSigningKey
	if kind == KindRefresh {
		ttl = j.config.RefreshTTL
		key = j.config.RefreshSigningKey
	}

	now := j.now()
	claims := UserClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.config.Issuer,
			Audience:  jwt.ClaimStrings{j.config.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(key))
}

// ValidateToken verifies a token of the expected kind and returns its claims.
// Expiry is reported as ErrTokenExpired; every other failure, including a
// token signed for the other kind, is ErrTokenInvalid.
func (j *JWTUtil) ValidateToken(tokenString string, kind TokenKind) (*UserClaims, error) {
	key := j.config.AccessSigningKey
	if kind == KindRefresh {
		key = j.config.RefreshSigningKey
	}

	// Claims are validated by hand below so expiry is checked against the
	// injected clock and reported separately from signature failures.
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(
		tokenString,
		&UserClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(key), nil
		},
	)
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	// Reject tokens minted by or for another service.
	if !claims.VerifyIssuer(j.config.Issuer, true) {
		return nil, ErrTokenInvalid
	}
	if !claims.VerifyAudience(j.config.Audience, true) {
		return nil, ErrTokenInvalid
	}

	if !claims.VerifyExpiresAt(j.now(), true) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}
