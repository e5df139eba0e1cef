package util

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims của phiên ẩn danh: chỉ dùng SessionID để khoá yêu cầu đang chạy
// và gom lịch sử sinh ma trận theo từng client.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

func GenerateSessionJWT(sessionID, secret string, expiration time.Duration) (string, error) {
	expirationTime := time.Now().Add(expiration)

	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, err
}

func GetSessionFromContext(c *gin.Context) *Claims {
	session, exists := c.Get("session")
	if !exists {
		return nil
	}
	claims, ok := session.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
