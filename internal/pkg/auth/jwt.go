// Package auth provides JSON Web Token based authentication for wishlist
// owners and the extraction of the acting identity (owner bearer token or
// anonymous guest token) from incoming requests.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// secretKey is the key used to sign the JWT. It should be kept secure.
var secretKey = []byte("supersecretkey")

// TOKENEXP defines the token expiration duration.
const TOKENEXP = time.Hour * 24 * 7

// Claims represents the custom JWT claims that include the user ID and
// standard claims. It embeds jwt.RegisteredClaims for standard fields like
// expiration time.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// GenerateToken creates a new JWT token for a given userID.
// It sets the expiration time based on TOKENEXP and includes the userID in
// the claims.
func GenerateToken(userID uuid.UUID) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TOKENEXP)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ParseToken validates the provided JWT token string and parses its claims.
// It returns the Claims if the token is valid, or an error otherwise.
func ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
