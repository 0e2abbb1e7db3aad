// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package npm looks up package metadata against the public npm registry.
// The registry's license field is untrusted input; this package only decodes
// it into the closed spdx.RawLicense shape and leaves interpretation to the
// normalizer.
package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/AleutianAI/osli/pkg/validation"
	"github.com/AleutianAI/osli/services/licenses/spdx"
)

// HTTPClient interface allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches package metadata from an npm-compatible registry.
//
// Requests are rate limited client-side so a large audit batch cannot hammer
// the public registry. Safe for concurrent use.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	limiter    *rate.Limiter
}

// PackageInfo is the slice of the registry packument this service needs.
type PackageInfo struct {
	Name    string
	License spdx.RawLicense
}

type packument struct {
	Name     string          `json:"name"`
	License  spdx.RawLicense `json:"license"`
	Licenses spdx.RawLicense `json:"licenses"`
}

// NewClient builds a registry client. baseURL defaults to the public npm
// registry; NPM_REGISTRY_URL overrides it for mirrors and air-gapped
// deployments. httpClient may be nil, in which case a 15s-timeout client
// is used.
func NewClient(httpClient HTTPClient) *Client {
	baseURL := os.Getenv("NPM_REGISTRY_URL")
	if baseURL == "" {
		baseURL = "https://registry.npmjs.org"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		// 10 rps with small bursts is well under the registry's public limits.
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// PackageLicense fetches the package's raw license declaration.
//
// The legacy "licenses" array field is consulted when the modern "license"
// field is absent, matching what the registry actually serves for old
// packages.
func (c *Client) PackageLicense(ctx context.Context, name string) (PackageInfo, error) {
	// An invalid name can never exist in the registry; reject it before it
	// reaches a URL.
	if err := validation.ValidatePackageName(name); err != nil {
		return PackageInfo{}, fmt.Errorf("%w: %v", ErrPackageNotFound, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return PackageInfo{}, err
	}

	reqURL := c.baseURL + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return PackageInfo{}, fmt.Errorf("building registry request for %q: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PackageInfo{}, fmt.Errorf("%w: fetching %q: %v", ErrRegistryUnavailable, name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return PackageInfo{}, fmt.Errorf("%w: %q", ErrPackageNotFound, name)
	case resp.StatusCode != http.StatusOK:
		slog.Warn("Registry returned unexpected status", "package", name, "status", resp.StatusCode)
		return PackageInfo{}, fmt.Errorf("%w: %q returned status %d", ErrRegistryUnavailable, name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return PackageInfo{}, fmt.Errorf("%w: reading body for %q: %v", ErrRegistryUnavailable, name, err)
	}

	var doc packument
	if err := json.Unmarshal(body, &doc); err != nil {
		return PackageInfo{}, fmt.Errorf("%w: decoding packument for %q: %v", ErrRegistryUnavailable, name, err)
	}

	// An absent field never runs UnmarshalJSON, so the zero Kind also means
	// "no modern license field".
	raw := doc.License
	if raw.Kind == spdx.RawNone || raw.Kind == "" {
		raw = doc.Licenses
	}
	return PackageInfo{Name: name, License: raw}, nil
}
