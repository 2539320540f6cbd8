package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/orangesnowtech/dxi-reactions/internal/config"
	"github.com/orangesnowtech/dxi-reactions/internal/domain"
)

// ReactionService is the application surface the handlers call into.
type ReactionService interface {
	Variant() domain.Variant
	GetCounts(ctx context.Context, itemID string) (domain.Counts, error)
	ApplyReaction(ctx context.Context, itemID string, kind domain.Kind, intent domain.Intent, previous domain.Kind) (domain.Counts, error)
	ResetAll(ctx context.Context) (int, error)
}

// redisPinger is the minimal interface the readiness check needs. It is nil
// when the server runs on the in-memory store.
type redisPinger interface {
	Ping(ctx context.Context) *goredis.StatusCmd
}

type postgresPinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	reactions ReactionService
	content   domain.ContentStore
	redisPing redisPinger
	dbPing    postgresPinger
	startTime time.Time
}

func NewServer(cfg *config.Config, reactions ReactionService, content domain.ContentStore, redisPing redisPinger, dbPing postgresPinger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestIDMiddleware())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	srv := &Server{
		echo:      e,
		config:    cfg,
		reactions: reactions,
		content:   content,
		redisPing: redisPing,
		dbPing:    dbPing,
		startTime: time.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("starting server", "port", s.config.Port, "variant", s.reactions.Variant())
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
