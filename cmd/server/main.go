package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/eisenhub/catalog/modules/catalog"
	"github.com/eisenhub/catalog/pkg/application"
	"github.com/eisenhub/catalog/pkg/configuration"
	"github.com/eisenhub/catalog/pkg/eventbus"
	"github.com/eisenhub/catalog/pkg/metrics"
	"github.com/eisenhub/catalog/pkg/middleware"
	"github.com/eisenhub/catalog/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	if err := runMigrations(conf); err != nil {
		logger.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := application.Load(app, catalog.NewModule()); err != nil {
		logger.Fatalf("failed to load modules: %v", err)
	}
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}
	app.RegisterMiddleware(
		middleware.LogRequests(logger),
		middleware.ProvidePool(pool),
	)

	srv := server.NewHTTPServer(app)
	logger.Infof("listening on %s", conf.SocketAddress)
	if err := srv.Start(conf.SocketAddress); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}

func runMigrations(conf *configuration.Configuration) error {
	db, err := sql.Open("pgx", conf.Database.Opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, conf.MigrationsDir)
}
