package middleware

import (
	"net/http"

	userRepo "hemovida/database/repository/user"
	"hemovida/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// StaffOnlyMiddleware restricts a route group to clinic staff accounts. It
// must run after JWTAuthUserMiddleware, which sets "userID".
func StaffOnlyMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		u, err := repo.GetByIDWithProjection(userID, bson.M{"id": 1, "role": 1})
		if err != nil || u.Role != models.RoleStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			return
		}
		c.Next()
	}
}
