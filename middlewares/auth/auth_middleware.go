package auth

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/condovia/reservation/booking"
	"github.com/condovia/reservation/logger"
	"github.com/condovia/reservation/utils"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.WarnLogger.Warn("JWT_SECRET environment variable not set, using insecure development secret")
		return []byte("default-insecure-secret-only-for-development")
	}
	return []byte(secret)
}

// callerID accepts the sub claim as either a JSON number or a numeric
// string, which is how the upstream auth service has issued it over time.
func callerID(claim any) (int64, error) {
	switch v := claim.(type) {
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported sub claim type %T", claim)
	}
}

// AuthMiddleware resolves the calling principal from a bearer JWT issued by
// the auth service and places a booking.Caller in the request context. Role
// strings outside the closed role set are rejected here and never reach the
// engine.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authorization token"})
			return
		}

		var tokenString string
		if len(authHeader) > 7 && strings.ToLower(authHeader[:7]) == "bearer " {
			tokenString = authHeader[7:]
		} else {
			tokenString = authHeader
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret(), nil
		})
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to parse JWT token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		sub, exists := claims["sub"]
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		id, err := callerID(sub)
		if err != nil {
			logger.ErrorLogger.Errorf("Invalid sub claim: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		roleClaim, _ := claims["role"].(string)
		role, err := booking.ParseRole(roleClaim)
		if err != nil {
			logger.WarnLogger.Warnf("Rejected token with unrecognized role %q", roleClaim)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		utils.SetCaller(c, booking.Caller{ID: id, Role: role})
		c.Next()
	}
}
