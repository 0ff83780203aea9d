package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"loanbook-backend/internal/domain/auth"
)

const principalKey = "principal"

// TokenParser resolves a raw bearer token into a principal.
type TokenParser interface {
	Parse(raw string) (auth.Principal, error)
}

// Auth resolves the caller from "Authorization: Bearer <token>" and stores it on
// the context. It never rejects a request: a missing or bad token leaves the
// caller anonymous and the usecase decides.
func Auth(parser TokenParser, log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				SetPrincipal(c, auth.Anonymous())
				return next(c)
			}
			p, err := parser.Parse(raw)
			if err != nil {
				log.WithError(err).WithField("path", c.Path()).Debug("bearer token ignored")
				p = auth.Anonymous()
			}
			SetPrincipal(c, p)
			return next(c)
		}
	}
}

func bearer(header string) (string, bool) {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

func SetPrincipal(c echo.Context, p auth.Principal) { c.Set(principalKey, p) }

// PrincipalFrom returns the anonymous principal when Auth did not run.
func PrincipalFrom(c echo.Context) auth.Principal {
	if p, ok := c.Get(principalKey).(auth.Principal); ok {
		return p
	}
	return auth.Anonymous()
}
