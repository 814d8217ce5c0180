package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the Supabase JWT claims the API relies on
type Claims struct {
	Sub   string `json:"sub"`   // User ID
	Email string `json:"email"` // User email
	Phone string `json:"phone"` // User phone (optional)
	Role  string `json:"role"`  // Supabase role (authenticated, anon, ...)

	jwt.RegisteredClaims
}

// JWK represents a JSON Web Key
type JWK struct {
	Kty string `json:"kty"` // Key type
	Kid string `json:"kid"` // Key ID
	Use string `json:"use"` // Public key use
	Alg string `json:"alg"` // Algorithm
	Crv string `json:"crv"` // Curve (for EC keys)
	X   string `json:"x"`   // X coordinate (for EC keys)
	Y   string `json:"y"`   // Y coordinate (for EC keys)
}

// JWKS represents a JSON Web Key Set
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// ValidatorOptions configures token validation. At least one of JWKSURL and
// JWTSecret is required unless only the dev token is in use.
type ValidatorOptions struct {
	JWKSURL      string // ES256 signing keys published by the project
	JWTSecret    string // legacy HS256 shared secret
	DevAuthToken string // accepted verbatim as the dev user when set
}

// Validator checks Supabase access tokens
type Validator struct {
	jwksURL       string
	secret        []byte
	httpClient    *http.Client
	keys          map[string]*ecdsa.PublicKey
	keysMutex     sync.RWMutex
	lastFetch     time.Time
	cacheDuration time.Duration
	devAuthToken  string
}

// NewValidator creates a token validator. When a JWKS URL is configured the
// keys are fetched immediately so a bad URL fails at startup.
func NewValidator(opts ValidatorOptions) (*Validator, error) {
	if opts.JWKSURL == "" && opts.JWTSecret == "" && opts.DevAuthToken == "" {
		return nil, fmt.Errorf("JWKS URL or JWT secret is required")
	}

	v := &Validator{
		jwksURL:       opts.JWKSURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		keys:          make(map[string]*ecdsa.PublicKey),
		cacheDuration: time.Hour, // Cache keys for 1 hour
		devAuthToken:  opts.DevAuthToken,
	}
	if opts.JWTSecret != "" {
		v.secret = []byte(opts.JWTSecret)
	}

	if v.jwksURL != "" {
		if err := v.fetchJWKS(); err != nil {
			return nil, fmt.Errorf("failed to fetch initial JWKS: %w", err)
		}
	}

	return v, nil
}

// SetDevAuth configures the development token; empty disables it
func (v *Validator) SetDevAuth(token string) {
	v.devAuthToken = token
}

// DevAuthEnabled reports whether a development token is accepted
func (v *Validator) DevAuthEnabled() bool {
	return v.devAuthToken != ""
}

// fetchJWKS fetches and parses the JWKS from the URL
func (v *Validator) fetchJWKS() error {
	resp, err := v.httpClient.Get(v.jwksURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrJWKSFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: endpoint returned status %d", ErrJWKSFetch, resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return fmt.Errorf("failed to decode JWKS: %w", err)
	}

	keys := make(map[string]*ecdsa.PublicKey)
	for _, jwk := range jwks.Keys {
		if jwk.Kty == "EC" && jwk.Alg == "ES256" {
			pubKey, err := parseECKey(jwk)
			if err != nil {
				continue // Skip invalid keys
			}
			keys[jwk.Kid] = pubKey
		}
	}

	v.keysMutex.Lock()
	v.keys = keys
	v.lastFetch = time.Now()
	v.keysMutex.Unlock()
	return nil
}

// parseECKey converts a JWK to an ECDSA public key
func parseECKey(jwk JWK) (*ecdsa.PublicKey, error) {
	xBytes, err := base64.RawURLEncoding.DecodeString(jwk.X)
	if err != nil {
		return nil, fmt.Errorf("failed to decode X coordinate: %w", err)
	}

	yBytes, err := base64.RawURLEncoding.DecodeString(jwk.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Y coordinate: %w", err)
	}

	return &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(xBytes),
		Y:     new(big.Int).SetBytes(yBytes),
	}, nil
}

// getPublicKey retrieves a public key by kid, refreshing JWKS if necessary
func (v *Validator) getPublicKey(kid string) (*ecdsa.PublicKey, error) {
	v.keysMutex.RLock()
	key, exists := v.keys[kid]
	shouldRefresh := time.Since(v.lastFetch) > v.cacheDuration
	v.keysMutex.RUnlock()

	if !exists || shouldRefresh {
		if err := v.fetchJWKS(); err != nil {
			return nil, fmt.Errorf("failed to refresh JWKS: %w", err)
		}

		v.keysMutex.RLock()
		key, exists = v.keys[kid]
		v.keysMutex.RUnlock()
	}

	if !exists {
		return nil, fmt.Errorf("key with id %s not found", kid)
	}

	return key, nil
}

func (v *Validator) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodECDSA:
		if v.jwksURL == "" {
			return nil, fmt.Errorf("ES256 tokens are not accepted without a JWKS URL")
		}
		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("no kid found in token header")
		}
		return v.getPublicKey(kid)
	case *jwt.SigningMethodHMAC:
		if len(v.secret) == 0 {
			return nil, fmt.Errorf("HS256 tokens are not accepted without a JWT secret")
		}
		return v.secret, nil
	default:
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
}

// ValidateToken validates a Supabase access token and returns its claims
func (v *Validator) ValidateToken(tokenString string) (*Claims, error) {
	if v.devAuthToken != "" &&
		subtle.ConstantTimeCompare([]byte(tokenString), []byte(v.devAuthToken)) == 1 {
		return GetDevClaims(), nil
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, v.keyFunc,
		jwt.WithValidMethods([]string{"ES256", "HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Sub == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetDevClaims returns fixed claims for development mode
func GetDevClaims() *Claims {
	return &Claims{
		Sub:   DevUserID,
		Email: "dev@fieldguide.local",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(365 * 24 * time.Hour)), // 1 year
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
}

// DevUserID is the owner of rows created with the development token
const DevUserID = "dev-user-001"

// UserInfo represents public user information
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// GetUserInfo extracts user info from claims
func GetUserInfo(claims *Claims) *UserInfo {
	return &UserInfo{
		ID:    claims.Sub,
		Email: claims.Email,
		Role:  claims.Role,
	}
}
