package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/appclacks/slo-server/config"
	"github.com/appclacks/slo-server/internal/database"
	"github.com/appclacks/slo-server/internal/exporter"
	"github.com/appclacks/slo-server/internal/http"
	"github.com/appclacks/slo-server/internal/http/handlers"
	"github.com/appclacks/slo-server/internal/tracing"
	"github.com/appclacks/slo-server/pkg/slo"
	"github.com/appclacks/slo-server/pkg/slo/aggregates"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func buildServerCmd(logger *slog.Logger) *cobra.Command {
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Runs the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			err := runServer(logger)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(2)
			}

		},
	}
	return serverCmd
}

func toDefinition(definition config.SLODefinition) aggregates.SLODefinition {
	result := aggregates.SLODefinition{
		Name:       definition.Name,
		Labels:     definition.Labels,
		Target:     definition.Target,
		Window:     aggregates.SLOWindow(definition.Window),
		MetricKind: aggregates.MetricKind(definition.MetricKind),
		Threshold:  definition.Threshold,
		Unit:       definition.Unit,
	}
	if definition.Description != "" {
		result.Description = &definition.Description
	}
	return result
}

func runServer(logger *slog.Logger) error {
	file, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("fail to read configuration file: %w", err)
	}
	var config config.Configuration
	if err := yaml.Unmarshal(file, &config); err != nil {
		return fmt.Errorf("fail to parse yaml configuration file: %w", err)
	}
	ctx := context.Background()
	traces, err := tracing.New(ctx, config.Tracing)
	if err != nil {
		return err
	}
	store, err := database.New(logger, config.Database)
	if err != nil {
		return err
	}
	registry := prometheus.DefaultRegisterer.(*prometheus.Registry)
	sloExporter, err := exporter.New(registry)
	if err != nil {
		return err
	}
	manager, err := slo.NewManager(ctx, logger, store, sloExporter)
	if err != nil {
		return err
	}
	for _, definition := range config.SLO.Definitions {
		if err := manager.RegisterSLO(ctx, toDefinition(definition)); err != nil {
			return fmt.Errorf("fail to register SLO %s from the configuration: %w", definition.Name, err)
		}
	}
	handlersBuilder := handlers.NewBuilder(manager)
	server, err := http.NewServer(logger, config.HTTP, registry, handlersBuilder)
	if err != nil {
		return err
	}
	signals := make(chan os.Signal, 1)
	errChan := make(chan error)

	signal.Notify(
		signals,
		syscall.SIGINT,
		syscall.SIGTERM)

	server.Start()
	go func() {
		for sig := range signals {
			switch sig {
			case syscall.SIGINT, syscall.SIGTERM:
				logger.Info(fmt.Sprintf("received signal %s, starting shutdown", sig))
				signal.Stop(signals)
				err := server.Stop()
				if err != nil {
					errChan <- err
				}
				if err := traces.Stop(); err != nil {
					logger.Error(err.Error())
				}
				errChan <- nil
			}

		}
	}()
	exitErr := <-errChan
	return exitErr
}
