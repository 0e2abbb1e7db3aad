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

func licensesRouter(t *testing.T) (*gin.Engine, testDeps) {
	deps := newTestDeps(t)
	router := gin.New()
	router.GET("/v1/licenses/:licenseId", GetLicense(deps.registry, deps.engine))
	return router, deps
}

func TestGetLicense_CanonicalCasing(t *testing.T) {
	router, _ := licensesRouter(t)

	var resp datatypes.LicenseInfoResponse
	w := doJSON(t, router, "GET", "/v1/licenses/mit", nil, &resp)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MIT", resp.LicenseID)
	assert.Equal(t, "MIT License", resp.Name)
	assert.Equal(t, "permissive", resp.Category)
	assert.True(t, resp.IsOsiApproved)
}

func TestGetLicense_CopyleftCategory(t *testing.T) {
	router, _ := licensesRouter(t)

	var resp datatypes.LicenseInfoResponse
	w := doJSON(t, router, "GET", "/v1/licenses/AGPL-3.0-only", nil, &resp)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "network_copyleft", resp.Category)
}

func TestGetLicense_UnknownIs404(t *testing.T) {
	router, _ := licensesRouter(t)

	w := doJSON(t, router, "GET", "/v1/licenses/Not-A-License", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "unknown license")
}

func TestGetLicense_DeprecatedFlagSurfaces(t *testing.T) {
	router, _ := licensesRouter(t)

	var resp datatypes.LicenseInfoResponse
	w := doJSON(t, router, "GET", "/v1/licenses/GPL-3.0", nil, &resp)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.IsDeprecated, "bare GPL-3.0 is a deprecated SPDX id")
}
