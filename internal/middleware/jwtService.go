package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func GenerateToken(user entity.Users, secret []byte, expireMinutes int) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID: strconv.FormatUint(uint64(user.ID), 10),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "boltz-rag",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireMinutes) * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// AuthMiddleware validates the bearer token and attaches the authenticated
// user's internal id to the request context as "userID" (uint).
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apperrors.HandleError(c, apperrors.New(apperrors.AuthInvalidToken, "missing Authorization header"), "auth middleware")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				apperrors.HandleError(c, apperrors.New(apperrors.AuthTokenExpired, ""), "auth middleware")
			} else {
				apperrors.HandleError(c, apperrors.New(apperrors.AuthInvalidToken, err.Error()), "auth middleware")
			}
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*JWTClaims)
		if !ok || !token.Valid {
			apperrors.HandleError(c, apperrors.New(apperrors.AuthInvalidToken, ""), "auth middleware")
			c.Abort()
			return
		}

		userID, err := strconv.ParseUint(claims.UserID, 10, 64)
		if err != nil {
			apperrors.HandleError(c, apperrors.New(apperrors.AuthInvalidToken, "malformed subject claim"), "auth middleware")
			c.Abort()
			return
		}

		c.Set("userID", uint(userID))
		c.Set("email", claims.Email)
		c.Next()
	}
}
