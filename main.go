// Package main provides the entry point for the hardware Opus decoder service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	"github.com/theiron97/hwopusd/internal/app"
	"github.com/theiron97/hwopusd/internal/codec"
	"github.com/theiron97/hwopusd/internal/config"
	"github.com/theiron97/hwopusd/internal/hwopus"
	"github.com/theiron97/hwopusd/internal/infrastructure"
	"github.com/theiron97/hwopusd/internal/service"
	"github.com/theiron97/hwopusd/internal/transport"
	pkginfra "github.com/theiron97/hwopusd/pkg/infrastructure"
)

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	application := app.New(
		// Core modules
		config.Module,
		infrastructure.LoggerModule,

		// Decoder modules
		codec.Module,
		hwopus.Module,
		service.Module,
		transport.Module,

		// Supply the config path
		fx.Supply(configPath),

		// Configure Fx to use our Zap logger for its own internal logging
		fx.WithLogger(pkginfra.NewFxLoggerAdapter),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go application.Run()

	sig := <-sigCh
	fmt.Printf("Received signal: %s, initiating shutdown.\n", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	err := application.Stop(shutdownCtx)
	cancel()

	if err != nil {
		fmt.Printf("Error during shutdown: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Application has shut down gracefully.")
}
