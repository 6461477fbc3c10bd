package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims is the local session representation: a signed token in
// an HTTPOnly cookie carrying the provider user id and email plus the
// provider access token needed for remote sign-out.
type sessionClaims struct {
	UserID        string `json:"uid"`
	Email         string `json:"email"`
	ProviderToken string `json:"pat,omitempty"`
	jwt.RegisteredClaims
}

func (handler *Handler) setSessionCookie(c *fiber.Ctx, claims sessionClaims) error {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  now.Add(sessionTokenTTL),
	})
	return nil
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (handler *Handler) parseSessionCookie(c *fiber.Ctx) (*sessionClaims, error) {
	rawToken := strings.TrimSpace(c.Cookies(sessionCookieName))
	if rawToken == "" {
		return nil, errors.New("missing session cookie")
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid session token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("session expired")
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return nil, errors.New("session has no user id")
	}

	return claims, nil
}

// hasSession reports whether the request carries a valid session cookie
// without touching the database.
func (handler *Handler) hasSession(c *fiber.Ctx) bool {
	_, err := handler.parseSessionCookie(c)
	return err == nil
}
