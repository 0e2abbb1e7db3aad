// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package npm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/AleutianAI/osli/services/licenses/spdx"
)

// --- Mock HTTP Client ---

type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.DoFunc(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestPackageLicense_ModernStringField(t *testing.T) {
	client := NewClient(&MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != "/express" {
				t.Errorf("unexpected path %q", req.URL.Path)
			}
			return jsonResponse(http.StatusOK, `{"name": "express", "license": "MIT"}`), nil
		},
	})

	info, err := client.PackageLicense(context.Background(), "express")
	if err != nil {
		t.Fatalf("PackageLicense failed: %v", err)
	}
	if info.License.Kind != spdx.RawString || info.License.Value != "MIT" {
		t.Errorf("unexpected raw license: %+v", info.License)
	}
}

func TestPackageLicense_LegacyLicensesArray(t *testing.T) {
	client := NewClient(&MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK,
				`{"name": "old-pkg", "licenses": [{"type": "MIT", "url": "x"}, {"type": "Apache-2.0"}]}`), nil
		},
	})

	info, err := client.PackageLicense(context.Background(), "old-pkg")
	if err != nil {
		t.Fatalf("PackageLicense failed: %v", err)
	}
	if info.License.Kind != spdx.RawList {
		t.Fatalf("expected list shape, got %q", info.License.Kind)
	}
	if len(info.License.Entries) != 2 || info.License.Entries[0] != "MIT" {
		t.Errorf("unexpected entries: %v", info.License.Entries)
	}
}

func TestPackageLicense_MissingField(t *testing.T) {
	client := NewClient(&MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"name": "no-license-pkg"}`), nil
		},
	})

	info, err := client.PackageLicense(context.Background(), "no-license-pkg")
	if err != nil {
		t.Fatalf("PackageLicense failed: %v", err)
	}
	if info.License.Kind != spdx.RawNone {
		t.Errorf("expected RawNone, got %q", info.License.Kind)
	}
}

func TestPackageLicense_NotFound(t *testing.T) {
	client := NewClient(&MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusNotFound, `{"error": "Not found"}`), nil
		},
	})

	_, err := client.PackageLicense(context.Background(), "definitely-not-a-package")
	if !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("expected ErrPackageNotFound, got %v", err)
	}
}

func TestPackageLicense_RegistryDown(t *testing.T) {
	client := NewClient(&MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	})

	_, err := client.PackageLicense(context.Background(), "express")
	if !errors.Is(err, ErrRegistryUnavailable) {
		t.Errorf("expected ErrRegistryUnavailable, got %v", err)
	}
}

func TestPackageLicense_InvalidNameRejectedBeforeFetch(t *testing.T) {
	var called bool
	client := NewClient(&MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			called = true
			return jsonResponse(http.StatusOK, `{}`), nil
		},
	})

	_, err := client.PackageLicense(context.Background(), "../../../etc/passwd")
	if !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("expected ErrPackageNotFound, got %v", err)
	}
	if called {
		t.Error("invalid names must never reach the registry")
	}
}

func TestPackageLicense_ScopedNameEscaping(t *testing.T) {
	var seenPath string
	client := NewClient(&MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			seenPath = req.URL.RawPath
			return jsonResponse(http.StatusOK, `{"name": "@types/node", "license": "MIT"}`), nil
		},
	})

	if _, err := client.PackageLicense(context.Background(), "@types/node"); err != nil {
		t.Fatalf("PackageLicense failed: %v", err)
	}
	if seenPath != "/@types%2Fnode" {
		t.Errorf("scoped package slash must be escaped, got %q", seenPath)
	}
}
