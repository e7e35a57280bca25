package helpers

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Decode for malformed input, a bad signature,
// or an unexpected signing algorithm.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager encodes and decodes the signed session tokens handed out at
// sign-in. Tokens carry only the user identity; there is no expiry claim and
// no revocation, so validity is purely structural.
type JWTManager struct {
	Secret []byte
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{Secret: []byte(secret)}
}

// Claims is the session-token payload.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Encode signs a token asserting the given user identity.
func (m *JWTManager) Encode(userID string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: userID})
	return t.SignedString(m.Secret)
}

// Decode validates the signature and returns the embedded claims.
func (m *JWTManager) Decode(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !tkn.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
