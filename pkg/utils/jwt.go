package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims terpadu dengan field flat untuk role, posisi, dan penugasan bidan.
type Claims struct {
	UserID     int    `json:"user_id"`
	Role       string `json:"role"`
	Position   string `json:"position,omitempty"`
	VillageID  int    `json:"village_id,omitempty"`
	PracticeID int    `json:"practice_id,omitempty"`
	Username   string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateJWTToken membuat token JWT dengan payload flat dan exp sesuai parameter.
func GenerateJWTToken(userID int, role, position string, villageID, practiceID int, username string, exp time.Time) (string, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET_KEY"))
	if len(jwtKey) == 0 {
		return "", fmt.Errorf("JWT secret key is missing")
	}

	claims := Claims{
		UserID:     userID,
		Role:       role,
		Position:   position,
		VillageID:  villageID,
		PracticeID: practiceID,
		Username:   username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ValidateJWTToken memvalidasi token JWT dan mengembalikan klaim terpadu.
func ValidateJWTToken(tokenString string) (*Claims, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET_KEY"))
	if len(jwtKey) == 0 {
		return nil, fmt.Errorf("JWT secret key is missing")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
