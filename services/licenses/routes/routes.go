// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/osli/services/licenses/compat"
	"github.com/AleutianAI/osli/services/licenses/handlers"
	"github.com/AleutianAI/osli/services/licenses/npm"
	"github.com/AleutianAI/osli/services/licenses/spdx"
	"github.com/AleutianAI/osli/services/llm"
)

// SetupRoutes wires every endpoint of the licenses service. llmClient may
// be nil; the generative endpoints then answer 503 and everything
// deterministic keeps working.
func SetupRoutes(router *gin.Engine, registry *spdx.Registry, engine *compat.Engine,
	norm *spdx.Normalizer, npmClient *npm.Client, llmClient llm.Client) {

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		v1.GET("/licenses/:licenseId", handlers.GetLicense(registry, engine))
		v1.POST("/search", handlers.HandleSearch(registry, engine, llmClient))
		v1.POST("/alternatives", handlers.HandleAlternatives(registry, engine, llmClient))
		v1.POST("/analyze", handlers.HandleAnalyze(engine, norm, llmClient))
		v1.POST("/audit", handlers.HandleAudit(engine, norm, npmClient))
		v1.POST("/compatibility-check", handlers.HandleCompatibility(engine, norm))
		v1.POST("/resolve-conflicts", handlers.HandleConflictResolution(engine, norm, llmClient))
		v1.POST("/generate-header", handlers.HandleHeader(registry))
	}
}
