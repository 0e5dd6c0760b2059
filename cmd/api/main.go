package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/awoyaledolapo/clytix-1/internal/config"
	"github.com/awoyaledolapo/clytix-1/internal/database"
	"github.com/awoyaledolapo/clytix-1/internal/repository/memory"
	"github.com/awoyaledolapo/clytix-1/internal/repository/postgres"
	"github.com/awoyaledolapo/clytix-1/internal/router"
	"github.com/awoyaledolapo/clytix-1/pkg/logger"
)

func main() {
	// config + logger
	_ = godotenv.Load()
	cfg := config.Load()
	l := logger.New(cfg.Env)

	// stores: Postgres by default, in-memory when DB_DSN=memory
	var deps router.Deps
	if cfg.DBURL == "memory" {
		l.Warn().Msg("using in-memory stores; data is lost on restart")
		deps = router.Deps{Tickets: memory.NewTicketStore(), Users: memory.NewUserStore()}
	} else {
		pool, err := database.Open(context.Background(), cfg)
		if err != nil {
			l.Fatal().Err(err).Msg("db connect failed")
		}
		defer pool.Close()
		deps = router.Deps{Tickets: postgres.NewTicketRepo(pool), Users: postgres.NewUserRepo(pool)}
	}

	// http
	r := router.New(l, deps, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}
