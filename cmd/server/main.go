package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-todo-sync/internal/broadcast"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/handler"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/server"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("todo-sync-server")
	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	hub := broadcast.NewHub(log.Named("broadcast"))
	services := service.NewServices(storages, hub, log)

	handlers, err := handler.NewHandlers(services, hub, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log, hub.Close, func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
