package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"

	"sitecrew/config"
	"sitecrew/gateway"
	"sitecrew/utils"
)

// SessionGateway is the slice of the identity gateway the session guard needs.
type SessionGateway interface {
	GetSession(ctx context.Context, hdr http.Header) (*gateway.SessionData, error)
}

// SessionCache keeps recently resolved sessions in redis so every gated
// request doesn't hit the gateway. Keys are token hashes, never raw tokens.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache returns nil when redis is not configured; the guard then
// resolves every request through the gateway.
func NewSessionCache(cfg config.RedisConfig, ttl time.Duration) *SessionCache {
	if !cfg.Enabled {
		return nil
	}
	return &SessionCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: ttl,
	}
}

func (sc *SessionCache) get(ctx context.Context, key string) *gateway.SessionData {
	data, err := sc.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var session gateway.SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return nil
	}
	return &session
}

func (sc *SessionCache) set(ctx context.Context, key string, session *gateway.SessionData) {
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	_ = sc.client.Set(ctx, key, data, sc.ttl).Err()
}

// Protected gates a route group on an active gateway session. The resolved
// session and user land in c.Locals for downstream handlers.
func Protected(gw SessionGateway, cache *SessionCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c)
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required. Please sign in first.")
		}

		hdr := utils.ForwardedHeaders(c)
		cacheKey := "sess:" + hashToken(token)

		var session *gateway.SessionData
		if cache != nil {
			session = cache.get(c.Context(), cacheKey)
		}

		if session == nil {
			var err error
			session, err = gw.GetSession(c.Context(), hdr)
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadGateway, "Failed to verify session")
			}
			if session == nil {
				return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required. Session is invalid or expired.")
			}
			if cache != nil {
				cache.set(c.Context(), cacheKey, session)
			}
		}

		c.Locals("session", session)
		if session.User != nil {
			c.Locals("userID", session.User.ID)
		}

		return c.Next()
	}
}

// sessionToken extracts the opaque gateway token from the Authorization
// header or the session cookie. The token is only used as a cache key; the
// gateway remains the authority on its validity.
func sessionToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) == 2 && tokenParts[0] == "Bearer" {
			return tokenParts[1]
		}
		return ""
	}

	for _, name := range []string{"better-auth.session_token", "session_token"} {
		if token := c.Cookies(name); token != "" {
			return token
		}
	}
	return ""
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
