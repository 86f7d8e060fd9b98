package token

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/cufc/member-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("token: invalid token")
	ErrExpiredToken = errors.New("token: expired token")
	ErrUnknownKey   = errors.New("token: signing key not found")
)

// Claims carries the verified token claims the application cares about.
type Claims struct {
	Subject string
}

// Verifier validates a bearer token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}

// JWKS represents the JSON Web Key Set structure
type JWKS struct {
	Keys []JSONWebKey `json:"keys"`
}

// JSONWebKey represents a single key in the JWKS
type JSONWebKey struct {
	Kid string `json:"kid"` // Key ID
	Kty string `json:"kty"` // Key Type (e.g., "RSA")
	Use string `json:"use"` // Key Use (e.g., "sig")
	N   string `json:"n"`   // Modulus
	E   string `json:"e"`   // Exponent
}

// JWKSVerifier verifies RS256 tokens against the identity provider's
// published key set. Keys are cached by kid and refreshed at most once per
// refresh interval, or on a cache miss.
type JWKSVerifier struct {
	jwksURL         string
	issuer          string
	audience        string
	refreshInterval time.Duration

	mu            sync.RWMutex
	keys          map[string]*rsa.PublicKey
	lastFetchTime time.Time

	httpClient *http.Client
}

const defaultRefreshInterval = time.Hour

// NewJWKSVerifier creates a verifier for the configured identity provider.
func NewJWKSVerifier(cfg *config.Config) *JWKSVerifier {
	return &JWKSVerifier{
		jwksURL:         cfg.Auth.JWKSURL(),
		issuer:          cfg.Auth.Issuer(),
		audience:        cfg.Auth.Audience,
		refreshInterval: defaultRefreshInterval,
		keys:            make(map[string]*rsa.PublicKey),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Verify checks the token signature against the cached key set and validates
// issuer, audience and expiry. Any failure means the request is rejected
// before a handler runs.
func (v *JWKSVerifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)

	parsed, err := parser.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		kid, ok := t.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("token missing 'kid' header")
		}
		return v.publicKey(ctx, kid)
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return &Claims{Subject: claims.Subject}, nil
}

// publicKey retrieves the public key for a given key ID, refreshing the
// cached key set when the kid is unknown.
func (v *JWKSVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, exists := v.keys[kid]
	v.mu.RUnlock()

	if exists {
		return key, nil
	}

	if err := v.fetchJWKS(ctx); err != nil {
		return nil, fmt.Errorf("failed to refresh key set: %w", err)
	}

	v.mu.RLock()
	key, exists = v.keys[kid]
	v.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: kid=%s", ErrUnknownKey, kid)
	}

	return key, nil
}

// fetchJWKS retrieves and caches the public keys from the JWKS endpoint.
// A fetch within the refresh interval of the previous one is a no-op so a
// burst of unknown-kid tokens cannot hammer the provider.
func (v *JWKSVerifier) fetchJWKS(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if time.Since(v.lastFetchTime) < v.refreshInterval && len(v.keys) > 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create key set request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch key set: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("key set endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read key set response: %w", err)
	}

	var jwks JWKS
	if err := json.Unmarshal(body, &jwks); err != nil {
		return fmt.Errorf("failed to unmarshal key set: %w", err)
	}

	// Clear old keys and add new ones
	v.keys = make(map[string]*rsa.PublicKey)
	for _, key := range jwks.Keys {
		if key.Kty != "RSA" {
			continue
		}

		publicKey, err := buildRSAPublicKey(key)
		if err != nil {
			slog.Warn("failed to build RSA public key", "kid", key.Kid, "error", err)
			continue
		}

		v.keys[key.Kid] = publicKey
	}

	v.lastFetchTime = time.Now()
	slog.Info("signing key set refreshed", "key_count", len(v.keys))

	return nil
}

// buildRSAPublicKey constructs an RSA public key from a JWK
func buildRSAPublicKey(key JSONWebKey) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}

	eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	n := new(big.Int).SetBytes(nBytes)
	var e int
	for _, b := range eBytes {
		e = e<<8 + int(b)
	}

	return &rsa.PublicKey{
		N: n,
		E: e,
	}, nil
}
