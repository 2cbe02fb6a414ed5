package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/domain/user"
	"fitclub-core/internal/handler/httperr"
	"fitclub-core/internal/pkg/errs"
	"fitclub-core/internal/pkg/jwt"
	"fitclub-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenValidator checks bearer tokens minted by the club's auth service.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokens       TokenValidator
	users        queries.UserQueries
	entitlements queries.EntitlementQueries
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

var roleHierarchy = map[user.Role]int{
	user.RoleMember:  1,
	user.RoleTrainer: 2,
	user.RoleAdmin:   3,
}

func NewAuthMiddleware(tokens TokenValidator, users queries.UserQueries, entitlements queries.EntitlementQueries) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:       tokens,
		users:        users,
		entitlements: entitlements,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.Abort(c, http.StatusUnauthorized, "Access token required")
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}
		role, err := user.NewRole(claims.Role)
		if err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxUserRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"user_id": claims.UserID.String(),
			"role":    role.String(),
		})
		c.Next()
	}
}

// RequireActiveUser rejects accounts the expiry sweep has deactivated.
// Must run after RequireAuth.
func (m *AuthMiddleware) RequireActiveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			httperr.Abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		if _, err := m.users.GetActiveUser(c.Request.Context(), userID); err != nil {
			switch {
			case errs.Is(err, queries.ErrUserInactive):
				httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive",
					gin.H{"hint": "activate a membership plan to regain access"})
			case errs.Is(err, queries.ErrUserNotFound):
				httperr.AbortWithError(c, http.StatusUnauthorized, err, "Unknown user", nil)
			default:
				httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
			}
			return
		}
		c.Next()
	}
}

func hasMinimumRole(userRole, minRole user.Role) bool {
	userLevel, userExists := roleHierarchy[userRole]
	minLevel, minExists := roleHierarchy[minRole]
	return userExists && minExists && userLevel >= minLevel
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			// should be used after RequireAuth()
			httperr.Abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		if !hasMinimumRole(role, minRole) {
			httperr.Abort(c, http.StatusForbidden, "Insufficient permissions")
			return
		}

		c.Next()
	}
}

// RequireEntitlement gates a feature on the user's current membership plan.
func (m *AuthMiddleware) RequireEntitlement(feature membership.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			httperr.Abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		ents, err := m.entitlements.ResolveEntitlements(c.Request.Context(), userID)
		if err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
			return
		}
		if !ents.Allows(feature) {
			httperr.Abort(c, http.StatusForbidden, "Feature not included in your membership",
				gin.H{"feature": string(feature), "hint": "upgrade your membership plan"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}
