package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// HeaderAuthToken is the legacy header some clients send the raw token in.
const HeaderAuthToken = "x-auth-token"

const (
	MsgNoToken      = "No token, authorization denied"
	MsgInvalidToken = "Token is not valid"
)

type MyClaims struct {
	UID  string     `json:"uid,omitempty"`
	User *UserClaim `json:"user,omitempty"`
	jwt.RegisteredClaims
}

type UserClaim struct {
	ID string `json:"id"`
}

// UserID picks the user id from uid, then sub, then user.id.
func (c MyClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	if c.Subject != "" {
		return c.Subject
	}
	if c.User != nil {
		return c.User.ID
	}
	return ""
}

func tokenFrom(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return strings.TrimSpace(c.Get(HeaderAuthToken))
}

// JWTUidOnly verifies an HS256 token when one is present and stores the
// caller's id in Locals("user_id"). Requests without a token pass through;
// RequireAuth decides whether that is acceptable.
func JWTUidOnly(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := tokenFrom(c)
		if tokenStr == "" {
			return c.Next()
		}

		var claims MyClaims
		token, err := jwt.ParseWithClaims(
			tokenStr,
			&claims,
			func(t *jwt.Token) (any, error) {
				return []byte(secret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, MsgInvalidToken)
		}

		uid := strings.TrimSpace(claims.UserID())
		if uid == "" {
			return fiber.NewError(fiber.StatusUnauthorized, MsgInvalidToken)
		}

		c.Locals("user_id", uid)
		return c.Next()
	}
}

// RequireAuth rejects requests that JWTUidOnly did not authenticate.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid, ok := c.Locals("user_id").(string); !ok || strings.TrimSpace(uid) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, MsgNoToken)
		}
		return c.Next()
	}
}

// SignToken issues an HS256 token for uid that expires after ttl.
func SignToken(secret, uid string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := MyClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
