// Command admin provides account, moderation and skill management utilities.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"creativeapp/internal/config"
	"creativeapp/internal/database"
	"creativeapp/internal/observability"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	observability.ConfigureLogger(cfg.Env, cfg.LogFormat, cfg.LogLevel)

	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "creativeapp-admin",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
	if err != nil {
		log.Fatalf("Failed to init tracing: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	a := newApp(db, cfg.BcryptCost, os.Stdout)
	if err := a.run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
