package handler

import (
	"context"
	"errors"
	"strings"

	"pulsearena/internal/models"
	"pulsearena/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type ctxKey string

var ctxKeyAuthUser ctxKey = "AUTH_USER"

// Authn resolves the bearer token into a session user. It does NOT
// terminate unauthenticated requests; handlers that need a user call
// ResolveValidUser.
func Authn(verifier interface {
	Validate(token string) (*models.UserFromAuth, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.Split(header, "Bearer")
			if len(parts) != 2 {
				return next(c)
			}

			token := strings.TrimSpace(parts[1])
			if len(token) == 0 {
				return next(c)
			}

			user, err := verifier.Validate(token)
			if err != nil {
				// although it's a client error, we don't want to leak details
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("invalid access token"), errorx.Authn), -1)
				return nil
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ctxKeyAuthUser, user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func ResolveValidUser(ctx context.Context) (*models.UserFromAuth, error) {
	user, ok := ctx.Value(ctxKeyAuthUser).(*models.UserFromAuth)
	if !ok {
		return nil, errorx.Wrap(errors.New("missing session"), errorx.Authn)
	}

	return user, nil
}

// ResolveOptionalUser is for routes that serve both anonymous and
// signed-in sessions.
func ResolveOptionalUser(ctx context.Context) *models.UserFromAuth {
	user, _ := ctx.Value(ctxKeyAuthUser).(*models.UserFromAuth)
	return user
}

// middlewareJoinableChallenge rejects join attempts on challenges that
// already ended before any flow state is created.
func middlewareJoinableChallenge(container *do.Injector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			challengeID := c.Param("id")
			if challengeID == "" {
				return next(c)
			}

			serviceTournament, err := do.Invoke[*services.ServiceTournament](container)
			if err != nil {
				return err
			}

			tournament, err := serviceTournament.GetChallenge(c.Request().Context(), challengeID)
			if err != nil {
				httpx.Abort(c, err, -1)
				return nil
			}

			if tournament.IsEnded() {
				httpx.Abort(c, errorx.Wrap(services.ErrChallengeEnded, errorx.Invalid), -1)
				return nil
			}

			return next(c)
		}
	}
}
