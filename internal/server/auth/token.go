// Package auth issues and verifies the signed session tokens carried in the
// phonebook session cookie.
package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/phonebook/internal/models"
)

// CookieName is the name of the session cookie set on login.
const CookieName = "phonebook_session"

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the signed-in user's identity alongside the standard
// registered claims. Role is a snapshot taken at login; handlers that need
// the current role reload the user from storage.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64       `json:"uid"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// GenerateToken signs a session token for the given user (HS256).
func GenerateToken(user *models.User, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies a session token and returns its claims.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// SessionCookie wraps a signed token in the session cookie. The cookie is
// HttpOnly and scoped to the whole site; maxAge <= 0 produces an expired
// cookie, which is how logout clears the session.
func SessionCookie(token string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge > 0 {
		c.MaxAge = int(maxAge.Seconds())
	} else {
		c.MaxAge = -1
	}
	return c
}
