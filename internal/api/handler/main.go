package handler

import (
	"net/http"

	"pulsearena/internal/services"

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
		return c.String(http.StatusOK, "⚡")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
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
		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated request.
		routesAPIv1.GET("", Hello)

		a := groupAuth{cfg.Container}
		routesAPIv1.POST("/auth/otp/start", a.StartOTP)
		routesAPIv1.POST("/auth/otp/verify", a.VerifyOTP)
		routesAPIv1.POST("/auth/wallet/:method", a.WalletSignin)
		routesAPIv1.POST("/auth/social/:method", a.SocialSignin)
		routesAPIv1.POST("/auth/logout", a.Logout)

		ch := groupChallenge{cfg.Container}
		routesAPIv1.GET("/challenges", ch.GetChallenges)
		routesAPIv1.GET("/challenge/:id", ch.GetChallenge)
		routesAPIv1.GET("/challenge/:id/leaderboard", ch.GetChallengeLeaderboard)
		routesAPIv1.DELETE("/challenge/:id/participation", ch.Leave)

		w := groupWallet{cfg.Container}
		routesAPIv1.GET("/wallets", w.GetPaymentMethods)
		routesAPIv1.POST("/wallet/:id/connect", w.Connect)
		routesAPIv1.DELETE("/wallet/:id", w.Disconnect)

		routesAPIv1Join := routesAPIv1.Group("/challenge/:id/join")
		{
			routesAPIv1Join.Use(middlewareJoinableChallenge(cfg.Container))
			j := groupJoin{cfg.Container}
			routesAPIv1Join.POST("", j.Start)
		}

		j := groupJoin{cfg.Container}
		routesAPIv1.GET("/flow/:id", j.Get)
		routesAPIv1.POST("/flow/:id/sign-in", j.SignIn)
		routesAPIv1.POST("/flow/:id/payment-method", j.SelectPayment)
		routesAPIv1.POST("/flow/:id/terms", j.SetTerms)
		routesAPIv1.POST("/flow/:id/connect", j.Connect)
		routesAPIv1.POST("/flow/:id/confirm", j.Confirm)
		routesAPIv1.DELETE("/flow/:id", j.Cancel)

		u := groupUser{cfg.Container}
		routesAPIv1.GET("/user/me", u.Me)
		routesAPIv1.GET("/user/participations", u.GetParticipations)
	}

	return r, nil
}

func Hello(c echo.Context) error {
	return httpx.RestAbort(c, "hello world", nil)
}
