package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	registry "github.com/MiotoIntelligentApplications/integrado-back"
)

type App struct {
	config *registry.AppConfig
	bunDB  *bun.DB
	auth   *registry.Auther
	auther *registry.RouteAuthenticator
	repo   registry.RepositoryManager
	srv    router.Server[*fiber.App]
	logger *glog.BaseLogger
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("integrado"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := registry.LoadConfig()
	if err != nil {
		lgr.Error("configuration error", "error", err)
		os.Exit(1)
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	ctx := context.Background()

	if err := WithPersistence(ctx, app); err != nil {
		lgr.Error("persistence error", "error", err)
		os.Exit(1)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		lgr.Error("http server error", "error", err)
		os.Exit(1)
	}

	if err := WithHTTPAuth(ctx, app); err != nil {
		lgr.Error("auth error", "error", err)
		os.Exit(1)
	}

	if err := app.srv.Serve(cfg.HTTPAddr); err != nil {
		lgr.Error("server stopped", "error", err)
		os.Exit(1)
	}

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	db, err := sql.Open(sqliteshim.ShimName, app.config.DatabaseURL)
	if err != nil {
		return err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}

	bunDB := bun.NewDB(db, sqlitedialect.New())

	if err := registry.CreateSchema(ctx, bunDB); err != nil {
		return err
	}

	app.bunDB = bunDB
	app.repo = registry.NewRepositoryManager(bunDB)

	return app.repo.Validate()
}

func WithHTTPServer(ctx context.Context, app *App) error {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
			AppName:       "integrado-back",
		}))
	})

	srv.Router().WithLogger(app.GetLogger("router"))

	app.srv = srv
	return nil
}

func WithHTTPAuth(ctx context.Context, app *App) error {
	cfg := app.config

	ownerProvider := registry.NewOwnerProvider(app.repo.Owners())
	ownerProvider.WithLogger(app.GetLogger("auth:prv"))

	authenticator := registry.NewAuthenticator(ownerProvider, cfg)
	authenticator.WithLogger(app.GetLogger("auth:authz"))

	app.auth = authenticator

	httpAuth, err := registry.NewHTTPAuthenticator(authenticator, cfg)
	if err != nil {
		return err
	}
	httpAuth.WithLogger(app.GetLogger("auth:http"))

	app.auther = httpAuth

	protected := httpAuth.ProtectedRoute(cfg, httpAuth.MakeAuthErrorHandler(false))

	registry.RegisterOwnerRoutes(app.srv.Router().Group("/"),
		func(c *registry.OwnerController) *registry.OwnerController {
			c.Repo = app.repo
			c.Auther = authenticator
			c.Protected = protected
			c.ContextKey = cfg.GetContextKey()
			c.Logger = app.GetLogger("owners:ctrl")
			return c
		})

	registry.RegisterVehicleRoutes(app.srv.Router().Group("/"),
		func(c *registry.VehicleController) *registry.VehicleController {
			c.Repo = app.repo
			c.Protected = protected
			c.ContextKey = cfg.GetContextKey()
			c.Logger = app.GetLogger("vehicles:ctrl")
			return c
		})

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
