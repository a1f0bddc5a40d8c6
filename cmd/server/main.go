// @title DevConnector Posts API
// @version 1.0
// @description Posts, likes and comments for the developer network.
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/valeryfun/mern-dev-connector/bootstrap"
	"github.com/valeryfun/mern-dev-connector/config"
	"github.com/valeryfun/mern-dev-connector/database"
	_ "github.com/valeryfun/mern-dev-connector/docs"
	"github.com/valeryfun/mern-dev-connector/internal/logger"
	"github.com/valeryfun/mern-dev-connector/internal/repository"
	"github.com/valeryfun/mern-dev-connector/internal/server"
	"github.com/valeryfun/mern-dev-connector/internal/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"mongo_db": cfg.MongoDB,
		"timeout":  cfg.RequestTimeout.String(),
	}).Info("starting")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("connect mongo")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.DisconnectMongo(ctx, client); err != nil {
			log.WithError(err).Warn("disconnect mongo")
		}
	}()

	db := client.Database(cfg.MongoDB)

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = bootstrap.EnsurePostIndexes(ctx, db)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("ensure indexes")
	}

	posts := services.NewPostService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		services.WithLogger(log),
	)

	app := server.New(server.Deps{
		Posts:          posts,
		Log:            log,
		JWTSecret:      cfg.JWTSecret,
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Error("listen")
	}
}
