package tokens

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims полезная нагрузка сессионной куки. Срок жизни не выставляется:
// сессия живет до логаута, как и подписанная кука источника.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	UserType string `json:"user_type"`
}

func GenerateSessionJWT(userID, userName, userType string, key []byte) (string, error) {
	claims := SessionClaims{
		UserID:   userID,
		UserName: userName,
		UserType: userType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating session jwt token: %s", err.Error())
	}
	return tokenString, nil
}

func ValidateSessionJWT(tokenString string, key []byte) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, new(SessionClaims), func(_ *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		return nil, fmt.Errorf("parsing session jwt token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
