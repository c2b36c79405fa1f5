package server

import (
	"shop/internal/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RouteRegistrar は各ハンドラが自分のルートを登録するための口
type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo, cfg config.Config)
}

func New(cfg config.Config, handlers ...RouteRegistrar) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	for _, h := range handlers {
		h.RegisterRoutes(e, cfg)
	}

	return e
}

func Start(e *echo.Echo, cfg config.Config) error {
	addr := cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}
	return e.Start(addr)
}
