package handler

import (
	"net/http"

	"jumble/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🎲")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		bot, err := do.Invoke[*services.Bot](cfg.Container)
		if err != nil {
			return nil, err
		}
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)

		routesAPIv1Me := routesAPIv1.Group("/user/me")
		routesAPIv1Me.Use(Authn(bot))
		{
			u := groupUser{cfg.Container}
			routesAPIv1Me.GET("", u.Me)
		}

		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated request.

		routesAPIv1User := routesAPIv1.Group("/user")
		{
			u := groupUser{cfg.Container}
			routesAPIv1User.POST("/connect/lastfm", u.ConnectLastfm)
			routesAPIv1User.GET("/stats", u.Stats)
		}

		routesAPIv1Game := routesAPIv1.Group("/game")
		{
			g := groupGame{cfg.Container}

			routesAPIv1Game.POST("/channel/:channel/jumble", g.StartJumble)
			routesAPIv1Game.POST("/channel/:channel/pixelation", g.StartPixelation)
			routesAPIv1Game.POST("/channel/:channel/answer", g.Answer)
			routesAPIv1Game.GET("/channel/:channel/session", g.CurrentSession)
			routesAPIv1Game.POST("/session/:id/hint", g.AddHint)
			routesAPIv1Game.POST("/session/:id/reshuffle", g.Reshuffle)
			routesAPIv1Game.POST("/session/:id/giveup", g.GiveUp)
		}

		l := groupLeaderboard{cfg.Container}
		routesAPIv1.GET("/leaderboard/wins", l.GetWinLeaderboard)
	}

	return r, nil
}
