package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DedS3t/monopoly-engine/app/controllers"
	"github.com/DedS3t/monopoly-engine/pkg/routes"
	"github.com/DedS3t/monopoly-engine/platform/cache"
	"github.com/DedS3t/monopoly-engine/platform/config"
	"github.com/DedS3t/monopoly-engine/platform/database"
	"github.com/DedS3t/monopoly-engine/platform/logging"
	"github.com/DedS3t/monopoly-engine/platform/queries"
	socket "github.com/DedS3t/monopoly-engine/platform/sockets"
	"github.com/DedS3t/monopoly-engine/platform/table"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("loading config failed")
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	observers := []table.ObserverFactory{logging.EventLogger}
	controller := &controllers.GameController{Secret: []byte(cfg.JWTSecret)}

	if cfg.RedisURL != "" {
		pool := cache.CreateRedisPool(cfg.RedisURL)
		defer pool.Close()
		controller.Journal = cache.NewJournal(pool, cfg.JournalTTL)
		observers = append(observers, controller.Journal.Observer)
	}

	var store table.Store
	if database.Enabled(cfg) {
		db := database.PostgreSQLConnection(cfg)
		defer db.Close()
		if err := queries.CreateSchema(db); err != nil {
			logrus.WithError(err).Fatal("creating schema failed")
		}
		recorder := queries.NewRecorder(db)
		store = recorder
		controller.Records = recorder
	}

	// the hub needs the manager and the manager needs the hub's observer
	var tables *table.Manager
	hub, err := socket.NewHub(tablesFunc(func(id string) (*table.Table, error) { return tables.Get(id) }), cfg.SocketAddr, cfg.AllowedOrigin)
	if err != nil {
		logrus.WithError(err).Fatal("creating socket server failed")
	}
	observers = append(observers, hub.Observer)
	tables = table.NewManager(ctx, cfg.Seed, store, observers...)
	controller.Tables = tables

	go func() {
		if err := hub.Serve(); err != nil {
			logrus.WithError(err).Error("socket server failed")
		}
	}()

	app := fiber.New()
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowedOrigin}))
	routes.AuthRoutes(app, controller.Secret)
	routes.GameRoutes(app, controller)

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hub.Close(shutdown); err != nil {
			logrus.WithError(err).Warn("closing socket server failed")
		}
		if err := app.Shutdown(); err != nil {
			logrus.WithError(err).Warn("closing http server failed")
		}
	}()

	logrus.WithFields(logrus.Fields{"http": cfg.HTTPAddr, "socket": cfg.SocketAddr}).Info("server starting")
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		logrus.WithError(err).Fatal("http server failed")
	}
}

type tablesFunc func(id string) (*table.Table, error)

func (f tablesFunc) Get(id string) (*table.Table, error) { return f(id) }
