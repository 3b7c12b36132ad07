package handler

import (
	"pulsearena/internal/models"
	"pulsearena/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAuth struct {
	container *do.Injector
}

type otpStartPayload struct {
	Method      string `json:"method"`
	Destination string `json:"destination"`
}

func (gr *groupAuth) StartOTP(c echo.Context) error {
	serviceAuth, err := do.Invoke[*services.ServiceAuth](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload otpStartPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	code, err := serviceAuth.StartOTP(c.Request().Context(), models.SigninMethod(payload.Method), payload.Destination)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	// The code goes straight back to the client, no gateway exists in this
	// environment.
	return httpx.RestAbort(c, map[string]interface{}{"code": code}, nil)
}

type otpVerifyPayload struct {
	Method      string `json:"method"`
	Destination string `json:"destination"`
	Code        string `json:"code"`
}

func (gr *groupAuth) VerifyOTP(c echo.Context) error {
	serviceAuth, err := do.Invoke[*services.ServiceAuth](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload otpVerifyPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	user, token, err := serviceAuth.VerifyOTP(c.Request().Context(), models.SigninMethod(payload.Method), payload.Destination, payload.Code)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{"user": user, "token": token}, nil)
}

type walletSigninPayload struct {
	Address string `json:"address"`
}

func (gr *groupAuth) WalletSignin(c echo.Context) error {
	serviceAuth, err := do.Invoke[*services.ServiceAuth](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload walletSigninPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	method := models.SigninMethod(c.Param("method"))
	user, token, err := serviceAuth.WalletSignin(c.Request().Context(), method, payload.Address)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{"user": user, "token": token}, nil)
}

type socialSigninPayload struct {
	Handle string `json:"handle"`
}

func (gr *groupAuth) SocialSignin(c echo.Context) error {
	serviceAuth, err := do.Invoke[*services.ServiceAuth](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload socialSigninPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	method := models.SigninMethod(c.Param("method"))
	user, token, err := serviceAuth.SocialSignin(c.Request().Context(), method, payload.Handle)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{"user": user, "token": token}, nil)
}

func (gr *groupAuth) Logout(c echo.Context) error {
	serviceAuth, err := do.Invoke[*services.ServiceAuth](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	ctx := c.Request().Context()
	user, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	if err := serviceAuth.Logout(ctx, user.ID); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{"ok": true}, nil)
}
