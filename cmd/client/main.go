package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-todo-sync/internal/client"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/internal/tui"
	"github.com/MKhiriev/go-todo-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewClientLogger("todo-sync-client")
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	services, err := service.NewClientServices(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	ui := tui.New(services.Controller, cfg, log.Named("tui"))

	app, err := client.NewApp(services, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
