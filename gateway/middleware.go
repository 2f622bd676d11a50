package gateway

import (
	"net/http"
	"strings"

	"github.com/example/storefront/pkg/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const contextUserKey = "currentUser"

// requireAuth verifies the bearer token, resolves the caller and injects
// the identity into the request context. Every service call downstream
// receives an explicit user id, never ambient session state.
func (g *Gateway) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		userID, err := g.auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		user, err := g.auth.Profile(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func currentUserID(c *gin.Context) primitive.ObjectID {
	if user := currentUser(c); user != nil {
		return user.ID
	}
	return primitive.NilObjectID
}
