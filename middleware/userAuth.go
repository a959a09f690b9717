package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "hemovida/database/repository/user"
	"hemovida/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
)

// JWTAuthUserMiddleware validates the bearer token, checks that it is the
// user's currently issued token (via the Redis auth cache, falling back to
// the user record) and sets "userID" on the request context.
func JWTAuthUserMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		cache := utils.GetAuthCacheClient()
		cachedHash, err := cache.Get(ctx, cacheKey).Result()
		if err != nil && err != redis.Nil {
			utils.GetLogger().Sugar().Warnf("auth cache read failed: %v", err)
		}

		if cachedHash == "" {
			// Cache miss: read the stored hash and repopulate.
			u, err := repo.GetByIDWithProjection(userID, bson.M{"id": 1, "token_hash": 1, "role": 1})
			if err != nil || u.TokenHash == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
				return
			}
			cachedHash = u.TokenHash
			if err := cache.Set(ctx, cacheKey, cachedHash, utils.AuthCacheTTL).Err(); err != nil {
				utils.GetLogger().Sugar().Warnf("auth cache write failed: %v", err)
			}
		}

		if computedHash != cachedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
