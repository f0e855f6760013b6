package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/askanything/board/internal/api/handler"
	"github.com/askanything/board/internal/api/middleware"
	"github.com/askanything/board/internal/core/ports"
)

// Dependencies are the collaborators the HTTP surface needs.
type Dependencies struct {
	Service ports.BoardService
	Hub     *handler.StreamHub
	// Pinger backs the readiness probe; nil means always ready.
	Pinger ports.Pinger
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(middleware.LocalOnly())

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Pinger)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – does the store answer?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Board ---
	boardHandler := handler.NewBoardHandler(deps.Service)
	profileHandler := handler.NewProfileHandler(deps.Service)

	v1 := e.Group("/v1")

	v1.GET("/me", profileHandler.Me)
	v1.PUT("/me", profileHandler.Rename)
	v1.POST("/me/abandon", profileHandler.Abandon)
	v1.GET("/me/votes", profileHandler.Votes)
	v1.DELETE("/me/votes/questions/:id", profileHandler.RemoveVote)
	v1.GET("/users", profileHandler.Users)

	v1.GET("/questions", boardHandler.List)
	v1.POST("/questions", boardHandler.Create)
	v1.GET("/questions/:id", boardHandler.Get)
	v1.PUT("/questions/:id", boardHandler.Edit)
	v1.DELETE("/questions/:id", boardHandler.Delete)
	v1.POST("/questions/:id/vote", boardHandler.Vote)
	v1.POST("/questions/:id/answers", boardHandler.CreateAnswer)

	v1.PUT("/answers/:id", boardHandler.EditAnswer)
	v1.DELETE("/answers/:id", boardHandler.DeleteAnswer)
	v1.POST("/answers/:id/vote", boardHandler.VoteAnswer)

	if deps.Hub != nil {
		v1.GET("/stream", deps.Hub.Stream)
		// Open streams never end on their own; close them so Shutdown can drain.
		e.Server.RegisterOnShutdown(deps.Hub.Close)
	}

	return e
}
