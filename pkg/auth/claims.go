package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims is the JWT payload carried by owner bearer tokens.
type AccessTokenClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// AccessTokenPayload is the input to token minting.
type AccessTokenPayload struct {
	UserID uuid.UUID
	JTI    string
}
