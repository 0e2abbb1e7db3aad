// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/AleutianAI/osli/services/licenses/compat"
	"github.com/AleutianAI/osli/services/licenses/middleware"
	"github.com/AleutianAI/osli/services/licenses/npm"
	"github.com/AleutianAI/osli/services/licenses/observability"
	"github.com/AleutianAI/osli/services/licenses/routes"
	"github.com/AleutianAI/osli/services/licenses/spdx"
	"github.com/AleutianAI/osli/services/llm"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
)

func initTracer() (func(context.Context), error) {
	ctx := context.Background()

	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		otelEndpoint = "osli-otel-collector:4317"
	}
	conn, err := grpc.NewClient(otelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("licenses-service")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

func main() {
	port := os.Getenv("OSLI_PORT")
	if port == "" {
		port = "12290"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// --- Init the tracer ---
	cleanup, err := initTracer()
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	defer cleanup(context.Background())

	observability.InitMetrics()

	// The SPDX dataset is the ground truth for every endpoint; refusing to
	// start beats serving guesses.
	datasetPath := os.Getenv("SPDX_DATASET_PATH")
	if datasetPath == "" {
		datasetPath = "/app/data/licenses.json"
	}
	registry, err := spdx.Load(datasetPath)
	if err != nil {
		log.Fatalf("FATAL: Could not load the SPDX dataset from %s: %v", datasetPath, err)
	}
	slog.Info("Loaded SPDX dataset", "path", datasetPath, "licenses", registry.Count())

	engine, err := compat.NewEngine()
	if err != nil {
		log.Fatalf("FATAL: Could not initialize the compatibility engine: %v", err)
	}
	norm := spdx.NewNormalizer(registry)
	npmClient := npm.NewClient(nil)

	log.Println("Configuring the LLM Client")
	llmClient, err := llm.NewFromEnv()
	if err != nil {
		// Deterministic endpoints do not need a model; run without one.
		slog.Warn("No generative backend available, discovery endpoints disabled", "error", err)
		llmClient = nil
	}

	router := gin.Default()
	router.Use(otelgin.Middleware("licenses-service"))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	routes.SetupRoutes(router, registry, engine, norm, npmClient, llmClient)

	log.Println("Starting the licenses server on port ", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
