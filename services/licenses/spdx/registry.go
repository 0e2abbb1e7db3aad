// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package spdx loads the SPDX license dataset and normalizes free-form license
// declarations into canonical identifiers or structured SPDX expressions.
//
// The Registry is loaded once at process start and is read-only afterwards,
// so it is safe for concurrent use without locking. All normalization entry
// points are total functions: bad input degrades to an unresolved declaration
// rather than an error.
package spdx

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// LicenseRecord is one entry of the SPDX license dataset. Records are
// immutable once loaded.
type LicenseRecord struct {
	LicenseID             string   `json:"licenseId"`
	Name                  string   `json:"name"`
	IsOsiApproved         bool     `json:"isOsiApproved"`
	IsDeprecatedLicenseID bool     `json:"isDeprecatedLicenseId"`
	SeeAlso               []string `json:"seeAlso"`
}

// Registry indexes the SPDX dataset by case-folded identifier. Construct it
// with Load at startup and inject it; it must never be mutated afterwards.
type Registry struct {
	byID map[string]LicenseRecord
}

type datasetFile struct {
	Licenses []LicenseRecord `json:"licenses"`
}

// Load reads and indexes the SPDX license dataset from path.
//
// The file must be a JSON object with a top-level "licenses" array of objects
// carrying at least a licenseId. A missing file, invalid JSON, or a dataset
// with no usable entries all fail with ErrDatasetUnavailable. Callers treat
// that as fatal: the service refuses to start without its reference data.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrDatasetUnavailable, path, err)
	}

	var file datasetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrDatasetUnavailable, path, err)
	}
	if len(file.Licenses) == 0 {
		return nil, fmt.Errorf("%w: %s contains no licenses array", ErrDatasetUnavailable, path)
	}

	byID := make(map[string]LicenseRecord, len(file.Licenses))
	for _, rec := range file.Licenses {
		if rec.LicenseID == "" {
			return nil, fmt.Errorf("%w: %s contains a license entry without licenseId", ErrDatasetUnavailable, path)
		}
		byID[strings.ToLower(rec.LicenseID)] = rec
	}

	slog.Info("Loaded SPDX license dataset", "path", path, "licenses", len(byID))
	return &Registry{byID: byID}, nil
}

// Lookup returns the record for an identifier. Matching is case-insensitive;
// the returned record carries the canonical SPDX casing. Fails with
// ErrUnknownLicense if the identifier is not in the dataset.
func (r *Registry) Lookup(identifier string) (LicenseRecord, error) {
	rec, ok := r.byID[strings.ToLower(strings.TrimSpace(identifier))]
	if !ok {
		return LicenseRecord{}, fmt.Errorf("%w: %q", ErrUnknownLicense, identifier)
	}
	return rec, nil
}

// Exists reports whether the identifier is in the dataset. Never fails.
func (r *Registry) Exists(identifier string) bool {
	_, ok := r.byID[strings.ToLower(strings.TrimSpace(identifier))]
	return ok
}

// Count returns the number of loaded license records.
func (r *Registry) Count() int {
	return len(r.byID)
}
