package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/kataras/golog"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues HS256 tokens for logged-in users and verifies them.
// With a JWKS attached it also accepts asymmetric tokens signed by that
// issuer's keys.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	jwks   *keyfunc.JWKS
	now    func() time.Time
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// UseJWKS fetches the key set at url and keeps it refreshed in the background
// until Close.
func (m *TokenManager) UseJWKS(url string) error {
	jwks, err := keyfunc.Get(url, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			golog.Warnf("jwks refresh from %s: %v", url, err)
		},
	})
	if err != nil {
		return fmt.Errorf("load jwks from %s: %w", url, err)
	}
	m.WithJWKS(jwks)
	return nil
}

func (m *TokenManager) WithJWKS(jwks *keyfunc.JWKS) *TokenManager {
	m.jwks = jwks
	return m
}

func (m *TokenManager) Close() {
	if m.jwks != nil {
		m.jwks.EndBackground()
	}
}

func (m *TokenManager) Issue(userID uint, role string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.Parser{}
	token, err := parser.ParseWithClaims(tokenString, claims, m.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	now := m.now()
	if !claims.VerifyExpiresAt(now, true) {
		return nil, fmt.Errorf("%w: expired or missing exp", ErrInvalidToken)
	}

	if _, local := token.Method.(*jwt.SigningMethodHMAC); local {
		if !claims.VerifyIssuer(m.issuer, true) {
			return nil, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
		}
	}

	if claims.UserID == 0 {
		id, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("%w: no user id", ErrInvalidToken)
		}
		claims.UserID = uint(id)
	}
	if claims.Role == "" {
		claims.Role = "user"
	}
	return claims, nil
}

func (m *TokenManager) keyFunc(t *jwt.Token) (interface{}, error) {
	switch t.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return m.secret, nil
	case *jwt.SigningMethodRSA, *jwt.SigningMethodRSAPSS, *jwt.SigningMethodECDSA, *jwt.SigningMethodEd25519:
		if m.jwks == nil {
			return nil, fmt.Errorf("signing method %s needs a JWKS", t.Method.Alg())
		}
		return m.jwks.Keyfunc(t)
	default:
		return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
	}
}
