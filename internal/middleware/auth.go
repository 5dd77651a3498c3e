package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"inspection-report/internal/models"
)

const (
	UserIDKey   = "user_id"
	UserNameKey = "user_name"

	TokenTTL = 24 * time.Hour
)

// Claims identify a signed-in reporter.
type Claims struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	TeamName string `json:"teamName,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, user *models.User, now time.Time) (string, error) {
	claims := Claims{
		UserID:   user.ID.String(),
		Name:     user.Name,
		TeamName: user.TeamName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, "missing authorization header", "")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, "invalid authorization header format", "")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			abort(c, "empty token", "")
			return
		}

		claims, err := ValidateToken(secret, tokenString)
		if err != nil {
			var msg string
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				msg = "token has expired"
			case errors.Is(err, jwt.ErrTokenSignatureInvalid):
				msg = "token signature is invalid"
			case errors.Is(err, jwt.ErrTokenMalformed):
				msg = "token is malformed"
			default:
				msg = err.Error()
			}
			abort(c, "invalid token", msg)
			return
		}

		if claims.UserID == "" {
			abort(c, "missing user id in token", "")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserNameKey, claims.Name)
		c.Next()
	}
}

func abort(c *gin.Context, errMsg, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: errMsg, Message: message})
}
