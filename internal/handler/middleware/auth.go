package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"order-core/internal/domain/cart"
	"order-core/internal/handler/httperr"
	"order-core/internal/pkg/cookie"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionHeader = "X-Session-ID"

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxOwnerKey    = "owner"
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

var (
	errTokenRequired    = errs.New("access token required")
	errOwnerRequired    = errs.New("bearer token or session id required")
	errInsufficientRole = errs.New("insufficient role")
)

var roleHierarchy = map[usecase.Role]int{
	usecase.RoleCustomer: 1,
	usecase.RoleOperator: 2,
	usecase.RoleAdmin:    3,
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func bearerToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

// authenticate validates the token and stores the identity. It reports false
// after aborting the request.
func (m *AuthMiddleware) authenticate(c *gin.Context, token string) bool {
	userID, role, err := m.tokenValidator.ValidateToken(token)
	if err != nil {
		slog.Warn("Token validation failed in auth middleware", "error", err.Error())
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
		return false
	}

	c.Set(ctxOwnerKey, cart.UserOwner(userID))
	c.Set(ctxUserIDKey, userID)
	c.Set(ctxUserRoleKey, role)
	c.Set("jwt_claims", map[string]any{
		"user_id": userID.String(),
		"role":    string(role),
	})
	return true
}

// RequireAuth demands a signed-in caller.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Access token required", nil)
			return
		}
		if !m.authenticate(c, token) {
			return
		}
		c.Next()
	}
}

// RequireOwner accepts a signed-in user or an anonymous storefront session.
// A presented token must be valid; it never falls back to the session.
func (m *AuthMiddleware) RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if !m.authenticate(c, token) {
				return
			}
			c.Next()
			return
		}

		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			sessionID = cookie.GetSessionID(c)
		}
		if sessionID == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errOwnerRequired, "Authentication required", nil)
			return
		}
		owner, err := cart.SessionOwner(sessionID)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session id", nil)
			return
		}

		c.Set(ctxOwnerKey, owner)
		c.Next()
	}
}

func hasMinimumRole(userRole, minRole usecase.Role) bool {
	userLevel, userExists := roleHierarchy[userRole]
	minLevel, minExists := roleHierarchy[minRole]
	return userExists && minExists && userLevel >= minLevel
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole usecase.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError,
				errs.New("role check without authentication"), "Internal server error", nil)
			return
		}

		if !hasMinimumRole(role, minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errInsufficientRole, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func GetOwner(c *gin.Context) (cart.Owner, bool) {
	v, exists := c.Get(ctxOwnerKey)
	if !exists {
		return cart.Owner{}, false
	}
	owner, ok := v.(cart.Owner)
	return owner, ok
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (usecase.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(usecase.Role)
	return role, ok
}

// SetOwner is used by tests and trusted upstream adapters.
func SetOwner(c *gin.Context, owner cart.Owner) {
	c.Set(ctxOwnerKey, owner)
}
