package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/service-scheduler/internal/config"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

const (
	ContextUserID     = "userID"
	ContextProviderID = "providerID"
	ContextUserRole   = "userRole"
	ContextEmployeeID = "employeeID"
)

// Identity is the caller resolved from the bearer token.
type Identity struct {
	UserID     uint
	ProviderID uint
	Role       string
	EmployeeID *uint
}

func (i Identity) IsOwner() bool {
	return i.Role == models.RoleOwner
}

// IssueToken signs a 24h HS256 token carrying the claims AuthMiddleware
// reads back.
func IssueToken(cfg *config.Config, user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"providerId": user.ProviderID,
		"role":       user.Role,
		"iat":        now.Unix(),
		"exp":        now.Add(24 * time.Hour).Unix(),
	}
	if user.EmployeeID != nil {
		claims["employeeId"] = *user.EmployeeID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		userID, ok1 := claims["sub"].(float64)
		providerID, ok2 := claims["providerId"].(float64)
		role, _ := claims["role"].(string)
		if !ok1 || !ok2 {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextProviderID, uint(providerID))
		c.Set(ContextUserRole, role)
		if employeeID, ok := claims["employeeId"].(float64); ok {
			id := uint(employeeID)
			c.Set(ContextEmployeeID, &id)
		}

		c.Next()
	}
}

// RequireOwner rejects staff callers. It must run after AuthMiddleware.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).IsOwner() {
			httperr.Forbidden(c, "owner_only", "Only the business owner can do this.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity reads what AuthMiddleware stored in the context.
func CurrentIdentity(c *gin.Context) Identity {
	id := Identity{
		UserID:     c.GetUint(ContextUserID),
		ProviderID: c.GetUint(ContextProviderID),
		Role:       c.GetString(ContextUserRole),
	}
	if v, ok := c.Get(ContextEmployeeID); ok {
		id.EmployeeID, _ = v.(*uint)
	}
	return id
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Authentication required.")
	c.Abort()
}
