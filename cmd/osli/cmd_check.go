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
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/osli/services/licenses/datatypes"
)

func runCheck(cmd *cobra.Command, args []string) {
	var resp datatypes.CompatibilityResponse
	err := callAPI("POST", "/v1/compatibility-check", datatypes.CompatibilityRequest{
		ProjectLicense:    args[0],
		DependencyLicense: args[1],
	}, &resp)
	if err != nil {
		log.Fatalf("Compatibility check failed: %v", err)
	}
	if jsonOutput {
		outputJSON(resp)
	} else if resp.Compatible {
		fmt.Printf("OK: %s may depend on %s\n  %s\n",
			resp.ProjectLicense, resp.DependencyLicense, resp.Reason)
	} else {
		fmt.Printf("INCOMPATIBLE: %s may not depend on %s\n  %s\n",
			resp.ProjectLicense, resp.DependencyLicense, resp.Reason)
	}

	// Scripting contract: exit 1 on an incompatible pair.
	if !resp.Compatible {
		os.Exit(1)
	}
}

func runConflict(cmd *cobra.Command, args []string) {
	var resp datatypes.ConflictResolutionResponse
	err := callAPI("POST", "/v1/resolve-conflicts", datatypes.ConflictResolutionRequest{
		LicenseA:       args[0],
		LicenseB:       args[1],
		SuggestOptions: suggestOptions,
	}, &resp)
	if err != nil {
		log.Fatalf("Conflict check failed: %v", err)
	}
	if jsonOutput {
		outputJSON(resp)
	} else if resp.HasConflict {
		fmt.Printf("CONFLICT: %s and %s cannot coexist\n  %s\n",
			resp.LicenseA, resp.LicenseB, resp.Reason)
		for _, s := range resp.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	} else {
		fmt.Printf("OK: %s and %s can coexist\n", resp.LicenseA, resp.LicenseB)
	}

	if resp.HasConflict {
		os.Exit(1)
	}
}
