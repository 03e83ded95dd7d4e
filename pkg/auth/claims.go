package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload is the input for minting an admin access token.
type AccessTokenPayload struct {
	Email string
	// JTI references the persisted session record; blank mints a new one.
	JTI string
}

// AccessTokenClaims is the JWT claim set carried by admin tokens.
type AccessTokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
