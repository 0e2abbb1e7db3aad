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
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/osli/services/licenses/datatypes"
)

// packageManifest is the slice of package.json the audit needs.
type packageManifest struct {
	License      string            `json:"license"`
	Dependencies map[string]string `json:"dependencies"`
}

func runAudit(cmd *cobra.Command, args []string) {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("Failed to read manifest: %v", err)
	}
	var manifest packageManifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		log.Fatalf("Failed to parse %s: %v", args[0], err)
	}
	if len(manifest.Dependencies) == 0 {
		log.Fatalf("No dependencies found in %s", args[0])
	}

	// Flag beats manifest when both declare a project license.
	project := projectLicense
	if project == "" {
		project = manifest.License
	}

	var resp datatypes.AuditResponse
	err = callAPI("POST", "/v1/audit", datatypes.AuditRequest{
		ProjectLicense: project,
		Dependencies:   manifest.Dependencies,
	}, &resp)
	if err != nil {
		log.Fatalf("Audit failed: %v", err)
	}
	if jsonOutput {
		outputJSON(resp)
	} else {
		for _, item := range resp.Items {
			line := fmt.Sprintf("%-8s %-32s %s", item.Status, item.Package, item.License)
			if item.Detail != "" {
				line += "  (" + item.Detail + ")"
			}
			fmt.Println(line)
		}
		fmt.Printf("\n%d safe, %d warnings, %d unknown\n",
			resp.Summary.Safe, resp.Summary.Warn, resp.Summary.Unknown)
	}

	if resp.Summary.Warn > 0 || resp.Summary.Unknown > 0 {
		os.Exit(1)
	}
}
