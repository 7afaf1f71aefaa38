package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/vin/internal/client"
	"github.com/jhoicas/vin/internal/form"
	"github.com/jhoicas/vin/internal/tui"
	"github.com/jhoicas/vin/pkg/config"
	"github.com/jhoicas/vin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	// Los prompts usan stdout; los logs van a stderr y solo desde warn.
	log := logger.New(logger.Config{
		Env:    cfg.App.Env,
		Level:  "warn",
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.NewWinesAPI(client.New(cfg.Client.APIURL, nil))
	app := tui.NewApp(api, tui.NewSurveyDriver(os.Stdout), form.Options{Delay: cfg.Client.Debounce}, log.Named("vin"))

	if err := app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("cliente finalizado con error")
		os.Exit(1)
	}
}
