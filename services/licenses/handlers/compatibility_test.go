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
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/osli/services/licenses/datatypes"
)

func compatibilityRouter(t *testing.T) *gin.Engine {
	deps := newTestDeps(t)
	router := gin.New()
	router.POST("/v1/compatibility-check", HandleCompatibility(deps.engine, deps.norm))
	return router
}

func TestHandleCompatibility(t *testing.T) {
	router := compatibilityRouter(t)

	tests := []struct {
		name       string
		project    string
		dependency string
		compatible bool
	}{
		{"permissive into copyleft", "GPL-3.0-only", "MIT", true},
		{"network copyleft into permissive", "MIT", "SSPL-1.0", false},
		{"matrix entry wins", "MIT", "GPL-3.0", true},
		{"gpl version clash", "GPL-2.0", "GPL-3.0", false},
		{"dual license picks the workable branch", "ISC", "MIT OR SSPL-1.0", true},
		{"unresolved fails closed", "MIT", "SEE LICENSE IN LICENSE.txt", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var resp datatypes.CompatibilityResponse
			w := doJSON(t, router, "POST", "/v1/compatibility-check", datatypes.CompatibilityRequest{
				ProjectLicense:    tc.project,
				DependencyLicense: tc.dependency,
			}, &resp)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.compatible, resp.Compatible, "reason: %s", resp.Reason)
			assert.NotEmpty(t, resp.Reason)
			assert.Equal(t, tc.project, resp.ProjectLicense)
		})
	}
}

func TestHandleCompatibility_MissingField(t *testing.T) {
	router := compatibilityRouter(t)

	w := doJSON(t, router, "POST", "/v1/compatibility-check",
		map[string]string{"project_license": "MIT"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
