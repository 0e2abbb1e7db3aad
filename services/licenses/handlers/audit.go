// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/osli/services/licenses/compat"
	"github.com/AleutianAI/osli/services/licenses/datatypes"
	"github.com/AleutianAI/osli/services/licenses/npm"
	"github.com/AleutianAI/osli/services/licenses/observability"
	"github.com/AleutianAI/osli/services/licenses/spdx"
)

// auditFetchConcurrency bounds parallel registry round trips per request.
const auditFetchConcurrency = 8

// HandleAudit serves POST /v1/audit. Every dependency name is resolved
// against the registry concurrently; a failed lookup degrades that entry to
// UNKNOWN instead of failing the batch.
func HandleAudit(engine *compat.Engine, norm *spdx.Normalizer, client *npm.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleAudit")
		defer span.End()
		start := time.Now()

		var req datatypes.AuditRequest
		if err := c.BindJSON(&req); err != nil {
			slog.Error("Failed to parse the audit request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if len(req.Dependencies) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no dependencies provided"})
			return
		}
		if len(req.Dependencies) > datatypes.MaxAuditDependencies {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "too many dependencies; split the manifest into smaller batches",
			})
			return
		}
		span.SetAttributes(attribute.Int("audit.dependencies", len(req.Dependencies)))

		// Deterministic report order regardless of map iteration.
		names := make([]string, 0, len(req.Dependencies))
		for name := range req.Dependencies {
			names = append(names, name)
		}
		sort.Strings(names)

		var project spdx.Declaration
		if req.ProjectLicense != "" {
			project = norm.NormalizeString(req.ProjectLicense)
		}

		items := make([]datatypes.AuditItem, len(names))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(auditFetchConcurrency)
		for i, name := range names {
			g.Go(func() error {
				items[i] = auditOne(gctx, engine, norm, client, name, req.ProjectLicense, project)
				return nil
			})
		}
		// Workers never return errors; the group exists for the limit and
		// context propagation.
		_ = g.Wait()

		var summary datatypes.AuditSummary
		for _, item := range items {
			observability.DefaultMetrics.RecordAuditVerdict(item.Status)
			switch compat.AuditStatus(item.Status) {
			case compat.StatusSafe:
				summary.Safe++
			case compat.StatusWarn:
				summary.Warn++
			default:
				summary.Unknown++
			}
		}

		observability.DefaultMetrics.RecordRequest("audit", true)
		observability.DefaultMetrics.ObserveAuditDuration(time.Since(start).Seconds())
		c.JSON(http.StatusOK, datatypes.AuditResponse{
			ProjectLicense: req.ProjectLicense,
			Items:          items,
			Summary:        summary,
		})
	}
}

func auditOne(ctx context.Context, engine *compat.Engine, norm *spdx.Normalizer, client *npm.Client,
	name, projectLicense string, project spdx.Declaration) datatypes.AuditItem {

	info, err := client.PackageLicense(ctx, name)
	if err != nil {
		outcome := "unavailable"
		detail := "registry lookup failed"
		if errors.Is(err, npm.ErrPackageNotFound) {
			outcome = "not_found"
			detail = "package not found in registry"
		}
		observability.DefaultMetrics.RecordRegistryFetch(outcome)
		slog.Warn("Audit entry degraded to UNKNOWN", "package", name, "error", err)
		return datatypes.AuditItem{
			Package: name,
			Status:  string(compat.StatusUnknown),
			Detail:  detail,
		}
	}
	observability.DefaultMetrics.RecordRegistryFetch("ok")

	decl := norm.Normalize(info.License)
	status := engine.Audit(decl)
	item := datatypes.AuditItem{
		Package: name,
		License: decl.String(),
		Status:  string(status),
	}

	// A declared project license tightens the check from categorical risk
	// to pairwise compatibility.
	if projectLicense != "" && status != compat.StatusUnknown {
		verdict := engine.Evaluate(project, decl)
		if !verdict.Compatible {
			item.Status = string(compat.StatusWarn)
			item.Detail = verdict.Reason
		}
	}
	return item
}
