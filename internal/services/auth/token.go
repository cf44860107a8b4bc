package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bobmcallan/citypulse/internal/models"
)

const issuer = "citypulse-server"

// signToken creates a signed HMAC-SHA256 JWT for the citizen's session.
func signToken(user *models.Citizen, session *models.Session, secret []byte, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"sid":   session.ID,
		"phone": user.Phone,
		"name":  user.Name,
		"iss":   issuer,
		"iat":   issuedAt.Unix(),
		"exp":   session.ExpiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// tokenClaims are the identifiers extracted from a validated token.
type tokenClaims struct {
	UserID    string
	SessionID string
}

// parseToken validates the signature and expiry of tokenString against now.
func parseToken(tokenString string, secret []byte, now func() time.Time) (*tokenClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(now), jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}

	sub, _ := claims["sub"].(string)
	sid, _ := claims["sid"].(string)
	if sub == "" || sid == "" {
		return nil, fmt.Errorf("%w: token missing subject or session", models.ErrUnauthorized)
	}
	return &tokenClaims{UserID: sub, SessionID: sid}, nil
}
