package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"anoa.com/kitaplik/internal/entity"
	userRepo "anoa.com/kitaplik/internal/modules/user/repository"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	secret   string
}

func NewAuthMiddleware(userRepo userRepo.UserRepository, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		secret:   secret,
	}
}

// RequireAuth accepts an HS256 token whose subject is the user id, from the
// Authorization header or the "token" query parameter.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {

		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Fallback to query parameter "token" (useful for WebSockets)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "oturum açmanız gerekiyor", "code": "UNAUTHORIZED"})
			c.Abort()
			return
		}
		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "geçersiz veya süresi dolmuş oturum", "code": "UNAUTHORIZED"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "geçersiz oturum bilgisi", "code": "UNAUTHORIZED"})
			c.Abort()
			return
		}
		if _, err := uuid.Parse(claims.Subject); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "geçersiz oturum bilgisi", "code": "UNAUTHORIZED"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "oturum açmanız gerekiyor", "code": "UNAUTHORIZED"})
			c.Abort()
			return
		}

		id, err := uuid.Parse(userID.(string))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "geçersiz oturum bilgisi", "code": "UNAUTHORIZED"})
			c.Abort()
			return
		}
		user, err := m.userRepo.FindByID(dbctx.New(c.Request.Context()), id)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "kullanıcı bulunamadı", "code": "UNAUTHORIZED"})
			c.Abort()
			return
		}

		if user.Role != entity.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "yönetici yetkisi gerekiyor", "code": "FORBIDDEN"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
