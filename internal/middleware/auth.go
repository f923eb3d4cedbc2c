package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/farebd/leasehold/api/internal/config"
	"github.com/farebd/leasehold/api/internal/models"
)

const (
	// UserKey is the context key for the authenticated user.
	UserKey = "auth_user"
)

// AuthUser is the identity extracted from a verified access token, plus the
// marketplace role resolved from the profile store.
type AuthUser struct {
	Email    string
	Name     string
	PhotoURL string
	Role     models.Role
}

// authClaims is the claim set the identity provider issues. Email doubles as
// the subject; name and picture are optional profile hints.
type authClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// RoleResolver maps a verified email to the marketplace role. The auth
// middleware calls it once per request; implementations are expected to be
// cheap (the user service backs it with a keyed document read).
type RoleResolver func(c *gin.Context, email string) models.Role

// Auth verifies the Bearer token against the identity provider's signing
// secret and stores the resulting AuthUser in the gin context. Requests
// without a valid token are rejected with 401.
func Auth(cfg config.AuthConfig, resolveRole RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c.GetHeader("Authorization"), cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":       "UNAUTHORIZED",
					"message":    err.Error(),
					"request_id": GetRequestID(c),
				},
			})
			return
		}

		user := AuthUser{
			Email:    claims.email(),
			Name:     claims.Name,
			PhotoURL: claims.Picture,
			Role:     models.RoleUser,
		}
		if resolveRole != nil {
			if role := resolveRole(c, user.Email); role.Valid() {
				user.Role = role
			}
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// RequireRole gates a route group to the listed roles. It must run after
// Auth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := GetAuthUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":       "UNAUTHORIZED",
					"message":    "Authentication required",
					"request_id": GetRequestID(c),
				},
			})
			return
		}

		if _, ok := allowed[user.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":       "FORBIDDEN",
					"message":    "Insufficient permissions",
					"request_id": GetRequestID(c),
				},
			})
			return
		}

		c.Next()
	}
}

// GetAuthUser retrieves the authenticated user from the gin context.
func GetAuthUser(c *gin.Context) (AuthUser, bool) {
	value, exists := c.Get(UserKey)
	if !exists {
		return AuthUser{}, false
	}
	user, ok := value.(AuthUser)
	return user, ok
}

// email prefers the explicit email claim and falls back to the subject.
func (c *authClaims) email() string {
	if c.Email != "" {
		return c.Email
	}
	return c.Subject
}

// parseToken extracts and verifies the Bearer token. Only HS256 from the
// configured issuer is accepted; audience is checked when configured.
func parseToken(authHeader string, cfg config.AuthConfig) (*authClaims, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return nil, errors.New("missing Authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, errors.New("Authorization header must use the Bearer scheme")
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if tokenString == "" {
		return nil, errors.New("empty access token")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method: " + token.Method.Alg())
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithLeeway(30*time.Second))

	if err != nil || !token.Valid {
		return nil, errors.New("invalid access token")
	}

	if cfg.JWTIssuer != "" && claims.Issuer != cfg.JWTIssuer {
		return nil, errors.New("invalid token issuer")
	}
	if cfg.JWTAudience != "" && !containsAudience(claims.Audience, cfg.JWTAudience) {
		return nil, errors.New("invalid token audience")
	}
	if claims.email() == "" {
		return nil, errors.New("token carries no identity")
	}

	return claims, nil
}

func containsAudience(audience jwt.ClaimStrings, want string) bool {
	for _, a := range audience {
		if a == want {
			return true
		}
	}
	return false
}
