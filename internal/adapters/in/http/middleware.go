package http

import (
	"errors"
	"net/http"
	"strings"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// sessionContextKey is where the auth middleware stores the caller's session
// on the echo context.
const sessionContextKey = "session"

// SessionMiddleware authenticates requests with a bearer JWT signed with
// jwtSecret. The token must carry a "user_id" (UUID string) and a "role"
// ("student", "teacher" or "merchant") claim; the resulting user.Session is
// stored on the context for handlers to pick up with sessionFromContext.
func SessionMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authHeader := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return respondError(ctx, http.StatusUnauthorized, "unauthorized", "missing authorization header")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return respondError(ctx, http.StatusUnauthorized, "unauthorized", "invalid token format")
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return respondError(ctx, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			}

			session, err := sessionFromClaims(token.Claims)
			if err != nil {
				return respondError(ctx, http.StatusUnauthorized, "unauthorized", "invalid session claims")
			}

			ctx.Set(sessionContextKey, session)
			return next(ctx)
		}
	}
}

func sessionFromClaims(claims jwt.Claims) (user.Session, error) {
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return user.Session{}, errors.New("unexpected claims type")
	}

	rawUserID, ok := mapClaims["user_id"].(string)
	if !ok {
		return user.Session{}, errors.New("user_id claim is missing")
	}
	userID, err := kernel.UUIDFromString(rawUserID)
	if err != nil {
		return user.Session{}, err
	}

	rawRole, ok := mapClaims["role"].(string)
	if !ok {
		return user.Session{}, errors.New("role claim is missing")
	}
	role, err := user.RoleFromString(rawRole)
	if err != nil {
		return user.Session{}, err
	}

	return user.NewSession(userID, role)
}

// sessionFromContext retrieves the session stored by SessionMiddleware.
func sessionFromContext(ctx echo.Context) (user.Session, error) {
	session, ok := ctx.Get(sessionContextKey).(user.Session)
	if !ok {
		return user.Session{}, errors.New("no session on request context")
	}
	return session, nil
}

// ClientOnly rejects merchant callers. Draft manipulation and the dashboard
// views belong to the ordering side of the shop.
func ClientOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		session, err := sessionFromContext(ctx)
		if err != nil {
			return respondError(ctx, http.StatusUnauthorized, "unauthorized", "missing session")
		}
		if session.Role().IsMerchant() {
			return respondError(ctx, http.StatusForbidden, "forbidden", "clients only")
		}
		return next(ctx)
	}
}

// MerchantOnly rejects client callers. Only shop staff drives orders through
// the processing pipeline.
func MerchantOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		session, err := sessionFromContext(ctx)
		if err != nil {
			return respondError(ctx, http.StatusUnauthorized, "unauthorized", "missing session")
		}
		if !session.Role().IsMerchant() {
			return respondError(ctx, http.StatusForbidden, "forbidden", "merchants only")
		}
		return next(ctx)
	}
}
