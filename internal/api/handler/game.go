package handler

import (
	"strconv"

	"jumble/internal/interfaces"
	"jumble/internal/services"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupGame struct {
	container *do.Injector
}

func (gr *groupGame) StartJumble(c echo.Context) error {
	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	channelID, err := paramChannel(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	resp, err := serviceGame.StartJumble(ctx, channelID, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, resp, nil)
}

func (gr *groupGame) StartPixelation(c echo.Context) error {
	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	channelID, err := paramChannel(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	resp, err := serviceGame.StartPixelation(ctx, channelID, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, resp, nil)
}

func (gr *groupGame) CurrentSession(c echo.Context) error {
	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	channelID, err := paramChannel(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	session, err := serviceGame.SessionByChannel(ctx, channelID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, session, nil)
}

func (gr *groupGame) AddHint(c echo.Context) error {
	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	sessionID, err := paramSession(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	resp, err := serviceGame.AddHint(c.Request().Context(), sessionID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, resp, nil)
}

func (gr *groupGame) Reshuffle(c echo.Context) error {
	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	sessionID, err := paramSession(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	resp, err := serviceGame.Reshuffle(c.Request().Context(), sessionID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, resp, nil)
}

func (gr *groupGame) GiveUp(c echo.Context) error {
	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	sessionID, err := paramSession(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	resp, err := serviceGame.GiveUp(ctx, sessionID, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, resp, nil)
}

func (gr *groupGame) Answer(c echo.Context) error {
	serviceGame, err := do.Invoke[*services.ServiceGame](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	limiter, err := do.Invoke[interfaces.Limiter](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	channelID, err := paramChannel(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	if err := limiter.Allow(ctx, services.LimitKeyUserAnswers(user.ID), redis_rate.PerMinute(services.ANSWER_RATE_LIMIT_PER_MINUTE)); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	result, err := serviceGame.ProcessAnswer(ctx, channelID, user, payload.Text)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

func paramChannel(c echo.Context) (int64, error) {
	channelID, err := strconv.ParseInt(c.Param("channel"), 10, 64)
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Invalid)
	}
	return channelID, nil
}

func paramSession(c echo.Context) (int, error) {
	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Invalid)
	}
	return sessionID, nil
}
