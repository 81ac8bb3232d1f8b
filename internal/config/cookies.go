package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PlayerClaims is what a signed-in player carries around in their token.
type PlayerClaims struct {
	PlayerID int64  `json:"player_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Cookies issues and parses the auth token as a split cookie: the header
// and payload stay readable by the frontend, the signature is HttpOnly.
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

const (
	claimsCookie    = "claims"
	signatureCookie = "sig"
)

func NewCookies(jwt *JWT) (*Cookies, error) {
	domain, ok := os.LookupEnv("COOKIES_DOMAIN")
	if !ok {
		return nil, fmt.Errorf("no COOKIES_DOMAIN env variable set")
	}

	sameSite := http.SameSiteStrictMode
	if Development() {
		sameSite = http.SameSiteNoneMode
	}

	return &Cookies{
		Domain:   domain,
		Secure:   os.Getenv("COOKIES_SECURE") != "0",
		SameSite: sameSite,
		jwt:      jwt,
	}, nil
}

func (c *Cookies) set(w http.ResponseWriter, name, value string, expires time.Time, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Path:     "/",
		Value:    value,
		Expires:  expires,
		HttpOnly: httpOnly,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// Issue signs claims and writes both halves of the token.
func (c *Cookies) Issue(w http.ResponseWriter, claims *PlayerClaims) error {
	expires := time.Now().Add(c.jwt.TokenLifetime())
	claims.ExpiresAt = jwt.NewNumericDate(expires)
	token, err := c.jwt.Sign(claims)
	if err != nil {
		return err
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed JWT token generated")
	}
	c.set(w, claimsCookie, parts[0]+"."+parts[1], expires, false)
	c.set(w, signatureCookie, parts[2], expires, true)
	return nil
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{claimsCookie, signatureCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Path:     "/",
			Value:    "delete",
			MaxAge:   -1,
			HttpOnly: name == signatureCookie,
			Domain:   c.Domain,
			Secure:   c.Secure,
			SameSite: c.SameSite,
		})
	}
}

// ParsePlayerClaims reassembles the split cookie and verifies it.
func (c *Cookies) ParsePlayerClaims(r *http.Request) (*PlayerClaims, error) {
	head, err := r.Cookie(claimsCookie)
	if err != nil {
		return nil, err
	}
	sig, err := r.Cookie(signatureCookie)
	if err != nil {
		return nil, err
	}
	token, err := c.jwt.ParseWithClaims(head.Value+"."+sig.Value, &PlayerClaims{})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*PlayerClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
