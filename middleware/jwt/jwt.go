// Package jwt provides a Fang that authenticates requests against a JWT
// bearer token in the Authorization header, adapted from
// bolt/middleware/jwt's config-plus-cache shape onto volt's Fang value.
package jwt

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voltweb/volt"
	"github.com/voltweb/volt/engine"
)

// claimsKey is the Memory/Memorize key validated claims are stored under.
type claimsKey struct{}

// Config defines JWT middleware configuration, grounded on
// bolt/middleware/jwt/jwt.go's JWTConfig.
type Config struct {
	Secret       []byte
	Algorithm    string
	SkipPaths    []string
	ErrorHandler func(req *engine.Request, err error) *engine.Response
	CacheTTL     time.Duration
}

// DefaultConfig returns HS256 with a 5-minute validated-token cache.
func DefaultConfig(secret []byte) Config {
	return Config{
		Secret:    secret,
		Algorithm: "HS256",
		CacheTTL:  5 * time.Minute,
	}
}

var (
	ErrMissingToken      = errors.New("missing authorization token")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidClaims     = errors.New("invalid token claims")
)

// JWT returns a Fang with DefaultConfig(secret).
func JWT(secret []byte) volt.Fang { return JWTWithConfig(DefaultConfig(secret)) }

// JWTWithConfig returns a Fang that validates a "Bearer <token>"
// Authorization header with golang-jwt/jwt/v5, memoizing validated claims
// on req's store under claimsKey for Claims to Recall, and caching
// validated token strings for CacheTTL the way bolt's tokenCache does to
// avoid re-parsing a hot token on every request.
func JWTWithConfig(config Config) volt.Fang {
	if config.Algorithm == "" {
		config.Algorithm = "HS256"
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 5 * time.Minute
	}
	skip := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = true
	}

	cache := newTokenCache(config.CacheTTL)
	go cache.cleanupLoop()

	return func(inner volt.FangProc) volt.FangProc {
		return func(ctx *volt.Context, req *engine.Request) *engine.Response {
			if skip[string(req.Path())] {
				return inner(ctx, req)
			}

			auth, ok := req.Headers.Get("authorization")
			if !ok || len(auth) == 0 {
				return jwtError(req, config.ErrorHandler, ErrMissingToken)
			}

			parts := strings.SplitN(string(auth), " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return jwtError(req, config.ErrorHandler, ErrInvalidAuthHeader)
			}
			tokenString := parts[1]

			if claims, ok := cache.get(tokenString); ok {
				volt.Memorize(req, claimsKey{}, claims)
				return inner(ctx, req)
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
				if t.Method.Alg() != config.Algorithm {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return config.Secret, nil
			})
			if err != nil {
				return jwtError(req, config.ErrorHandler, err)
			}
			if !token.Valid {
				return jwtError(req, config.ErrorHandler, ErrInvalidToken)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return jwtError(req, config.ErrorHandler, ErrInvalidClaims)
			}

			cache.set(tokenString, claims)
			volt.Memorize(req, claimsKey{}, claims)
			return inner(ctx, req)
		}
	}
}

// Claims recalls the MapClaims a JWT fang validated for req.
func Claims(req *engine.Request) (jwt.MapClaims, bool) {
	v, ok := volt.Recall(req, claimsKey{})
	if !ok {
		return nil, false
	}
	claims, ok := v.(jwt.MapClaims)
	return claims, ok
}

func jwtError(req *engine.Request, handler func(*engine.Request, error) *engine.Response, err error) *engine.Response {
	if handler != nil {
		return handler(req, err)
	}
	return engine.NewTextResponse(401, err.Error())
}

type cacheEntry struct {
	claims    jwt.MapClaims
	expiresAt time.Time
}

type tokenCache struct {
	mu     sync.RWMutex
	tokens map[string]*cacheEntry
	ttl    time.Duration
}

func newTokenCache(ttl time.Duration) *tokenCache {
	return &tokenCache{tokens: make(map[string]*cacheEntry), ttl: ttl}
}

func (c *tokenCache) get(token string) (jwt.MapClaims, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.tokens[token]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.claims, true
}

func (c *tokenCache) set(token string, claims jwt.MapClaims) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[token] = &cacheEntry{claims: claims, expiresAt: time.Now().Add(c.ttl)}
}

func (c *tokenCache) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for token, e := range c.tokens {
			if now.After(e.expiresAt) {
				delete(c.tokens, token)
			}
		}
		c.mu.Unlock()
	}
}
