package handler

import (
	"pulsearena/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupJoin struct {
	container *do.Injector
}

func (gr *groupJoin) Start(c echo.Context) error {
	serviceJoinFlow, err := do.Invoke[*services.ServiceJoinFlow](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	ctx := c.Request().Context()
	flow, err := serviceJoinFlow.StartFlow(ctx, ResolveOptionalUser(ctx), c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, flow, nil)
}

func (gr *groupJoin) Get(c echo.Context) error {
	serviceJoinFlow, err := do.Invoke[*services.ServiceJoinFlow](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	flow, err := serviceJoinFlow.GetFlow(c.Param("id"), ResolveOptionalUser(c.Request().Context()))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, flow, nil)
}

// SignIn binds the now-authenticated session user to a flow that was
// opened anonymously.
func (gr *groupJoin) SignIn(c echo.Context) error {
	serviceJoinFlow, err := do.Invoke[*services.ServiceJoinFlow](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	ctx := c.Request().Context()
	user, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	flow, err := serviceJoinFlow.CompleteSignIn(ctx, c.Param("id"), user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, flow, nil)
}

type selectPaymentPayload struct {
	Method string `json:"method"`
}

func (gr *groupJoin) SelectPayment(c echo.Context) error {
	serviceJoinFlow, err := do.Invoke[*services.ServiceJoinFlow](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload selectPaymentPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	ctx := c.Request().Context()
	user, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	flow, err := serviceJoinFlow.SelectPayment(ctx, c.Param("id"), user, payload.Method)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, flow, nil)
}

type termsPayload struct {
	Accepted bool `json:"accepted"`
}

func (gr *groupJoin) SetTerms(c echo.Context) error {
	serviceJoinFlow, err := do.Invoke[*services.ServiceJoinFlow](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload termsPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	user, err := ResolveValidUser(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	flow, err := serviceJoinFlow.SetTerms(c.Param("id"), user, payload.Accepted)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, flow, nil)
}

func (gr *groupJoin) Connect(c echo.Context) error {
	serviceJoinFlow, err := do.Invoke[*services.ServiceJoinFlow](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	ctx := c.Request().Context()
	user, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	flow, err := serviceJoinFlow.Connect(ctx, c.Param("id"), user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, flow, nil)
}

func (gr *groupJoin) Confirm(c echo.Context) error {
	serviceJoinFlow, err := do.Invoke[*services.ServiceJoinFlow](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	ctx := c.Request().Context()
	user, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	flow, participation, err := serviceJoinFlow.Confirm(ctx, c.Param("id"), user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"flow":          flow,
		"participation": participation,
	}, nil)
}

func (gr *groupJoin) Cancel(c echo.Context) error {
	serviceJoinFlow, err := do.Invoke[*services.ServiceJoinFlow](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	flow, err := serviceJoinFlow.CancelFlow(c.Param("id"), ResolveOptionalUser(c.Request().Context()))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, flow, nil)
}
