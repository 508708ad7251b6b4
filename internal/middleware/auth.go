package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
)

const (
	ContextBarberID     = "barberID"
	ContextBarbershopID = "barbershopID"
)

// Claims carried by barber tokens. Sign-up and login live in another service;
// this one only verifies.
type Claims struct {
	BarbershopID uint `json:"barbershopId"`
	jwt.RegisteredClaims
}

// AuthMiddleware accepts HS256 bearer tokens whose subject is the barber id.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a bearer token.")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token is invalid or expired.")
			return
		}

		barberID, err := parseUint(claims.Subject)
		if err != nil || barberID == 0 || claims.BarbershopID == 0 {
			httperr.Unauthorized(c, "invalid_token_payload", "Token does not identify a barber.")
			return
		}

		c.Set(ContextBarberID, barberID)
		c.Set(ContextBarbershopID, claims.BarbershopID)

		c.Next()
	}
}

// IssueToken signs a barber token. Used by the token command and tests.
func IssueToken(secret string, barberID, barbershopID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		BarbershopID: barbershopID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   formatUint(barberID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Identity returns the authenticated barber and barbershop.
func Identity(c *gin.Context) (barberID, barbershopID uint) {
	return c.GetUint(ContextBarberID), c.GetUint(ContextBarbershopID)
}
