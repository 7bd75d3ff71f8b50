package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/dukkanpos/backoffice-api/internal/config"
	"github.com/dukkanpos/backoffice-api/internal/database"
	"github.com/dukkanpos/backoffice-api/internal/modules/auth"
	"github.com/dukkanpos/backoffice-api/internal/modules/catalog"
	"github.com/dukkanpos/backoffice-api/internal/modules/order"
	"github.com/dukkanpos/backoffice-api/internal/modules/pos"
	"github.com/dukkanpos/backoffice-api/internal/modules/stats"
	"github.com/dukkanpos/backoffice-api/internal/modules/user"
)

func main() {
	app := &cli.App{
		Name:  "backoffice-api",
		Usage: "back-office API for catalog, inventory, orders and POS",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run database migrations and start the HTTP server",
				Action: func(*cli.Context) error {
					return serve()
				},
			},
			{
				Name:  "migrate",
				Usage: "run database migrations and exit",
				Action: func(*cli.Context) error {
					return migrateOnly()
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("exited")
	}
}

func migrateOnly() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	return database.Migrate(db, cfg.MigrationsDir)
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.MigrationsDir); err != nil {
		return err
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo, cfg.BcryptCost)

	authService := auth.NewService(userRepo, tokens)

	categoryRepo := catalog.NewCategoryPostgresRepository(db)
	productRepo := catalog.NewProductPostgresRepository(db)
	catalogService := catalog.NewService(categoryRepo, productRepo)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, cfg.TxTimeout)

	posRepo := pos.NewPostgresRepository(db)
	posService := pos.NewService(posRepo, orderService)

	statsService := stats.NewService(stats.NewPostgresRepository(db))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(auth.Authenticator(tokens))

	auth.NewHandler(authService).RegisterRoutes(r)
	user.NewHandler(userService).RegisterRoutes(r, auth.Guard)
	catalog.NewHandler(catalogService).RegisterRoutes(r, auth.Guard)
	order.NewHandler(orderService).RegisterRoutes(r, auth.Guard)
	pos.NewHandler(posService).RegisterRoutes(r, auth.Guard)
	stats.NewHandler(statsService).RegisterRoutes(r, auth.Guard)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("port", cfg.Port).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
