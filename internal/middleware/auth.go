package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/autoconnect-transport/service-admin/internal/auth"
	bookingDomain "github.com/autoconnect-transport/service-admin/internal/domain/booking"
)

const actorContextKey = "admin_actor"

// AuthMiddleware validates the bearer token and stores the acting admin in
// the request context.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(401, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := jwtManager.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid token"})
			return
		}

		adminID, err := uuid.Parse(claims.AdminID)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid token"})
			return
		}

		c.Set(actorContextKey, bookingDomain.Actor{
			ID:   adminID,
			Name: claims.AdminName,
			Role: claims.AdminRole,
		})
		c.Next()
	}
}

// GetActor retrieves the acting admin stored by AuthMiddleware.
func GetActor(c *gin.Context) (bookingDomain.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return bookingDomain.Actor{}, false
	}
	actor, ok := v.(bookingDomain.Actor)
	return actor, ok
}
