package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName carries the signed visitor id in the browser.
const CookieName = "tsid"

type visitorClaims struct {
	jwt.RegisteredClaims
	VisitorID string `json:"sid"`
}

// Cookies mints and verifies the signed visitor id carried by the browser
// cookie. The token only proves the id was issued by us; authentication
// state lives in the visitor store, never in the cookie.
type Cookies struct {
	secret []byte
	ttl    time.Duration
}

// NewCookies builds a cookie codec with the given signing secret.
func NewCookies(secret string, ttl time.Duration) (*Cookies, error) {
	if secret == "" {
		return nil, errors.New("session: cookie secret must not be empty")
	}
	return &Cookies{secret: []byte(secret), ttl: ttl}, nil
}

// Issue mints a token for a fresh visitor id.
func (c *Cookies) Issue() (visitorID, token string, err error) {
	visitorID = uuid.NewString()
	now := time.Now()
	claims := visitorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		VisitorID: visitorID,
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", "", err
	}
	return visitorID, token, nil
}

// Parse verifies a token and returns the visitor id it carries.
func (c *Cookies) Parse(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &visitorClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*visitorClaims)
	if !ok || !parsed.Valid || claims.VisitorID == "" {
		return "", errors.New("session: invalid visitor token")
	}
	return claims.VisitorID, nil
}

// TTL exposes the cookie lifetime for the Set-Cookie header.
func (c *Cookies) TTL() time.Duration {
	return c.ttl
}
