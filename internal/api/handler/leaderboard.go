package handler

import (
	"errors"
	"strconv"

	"jumble/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupLeaderboard struct {
	container *do.Injector
}

func (gr *groupLeaderboard) GetWinLeaderboard(c echo.Context) error {
	serviceStats, err := do.Invoke[*services.ServiceStats](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	num := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid limit"), errorx.Invalid))
		}
		num = parsed
	}

	items, err := serviceStats.WinLeaderboard(c.Request().Context(), num)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, items, nil)
}
