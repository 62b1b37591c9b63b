package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopnest/ecommerce-api/auth"
	"github.com/shopnest/ecommerce-api/config"
	"github.com/shopnest/ecommerce-api/db"
	"github.com/shopnest/ecommerce-api/models"
)

// ContextUserID is the gin context key holding the authenticated user's id.
const ContextUserID = "userID"

// RequireSignIn verifies the bearer token carried in the authorization
// header. The header holds the raw token, no "Bearer " prefix. All
// verification failures produce the same generic 401.
func RequireSignIn(cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := auth.Parse(c.GetHeader("Authorization"), cfg.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid token",
			})
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// IsAdmin loads the signed-in user and requires the administrator role.
// Must run after RequireSignIn.
func IsAdmin(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString(ContextUserID))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid token",
			})
			return
		}

		var user models.User
		err = database.Collection(db.UsersCollection).
			FindOne(context.Background(), bson.M{"_id": userID}).
			Decode(&user)
		if err != nil {
			log.Printf("admin check: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid token",
			})
			return
		}

		if user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "UnAuthorized Access",
			})
			return
		}
		c.Next()
	}
}
