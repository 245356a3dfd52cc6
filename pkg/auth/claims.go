package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uint
	Name   string
	Email  string
	Role   enums.UserRole
	JTI    string
}

// AccessTokenClaims is the typed JWT issued to clients. The registered
// subject claim carries the user's email.
type AccessTokenClaims struct {
	UserID uint           `json:"user_id"`
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
