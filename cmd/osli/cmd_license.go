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
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/osli/services/licenses/datatypes"
)

func runLicenseInfo(cmd *cobra.Command, args []string) {
	var resp datatypes.LicenseInfoResponse
	if err := callAPI("GET", "/v1/licenses/"+url.PathEscape(args[0]), nil, &resp); err != nil {
		log.Fatalf("License lookup failed: %v", err)
	}
	if jsonOutput {
		outputJSON(resp)
		return
	}

	fmt.Printf("%s — %s\n", resp.LicenseID, resp.Name)
	fmt.Printf("  Category:     %s\n", resp.Category)
	fmt.Printf("  OSI approved: %t\n", resp.IsOsiApproved)
	if resp.IsDeprecated {
		fmt.Println("  Deprecated:   yes (prefer the -only / -or-later form)")
	}
	for _, link := range resp.SeeAlso {
		fmt.Printf("  See also:     %s\n", link)
	}
}

func runLicenseAnalyze(cmd *cobra.Command, args []string) {
	var resp datatypes.AnalyzeResponse
	err := callAPI("POST", "/v1/analyze", datatypes.AnalyzeRequest{
		License: args[0],
		Context: analyzeContext,
	}, &resp)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
	if jsonOutput {
		outputJSON(resp)
		return
	}

	fmt.Printf("%s (%s)\n\n%s\n", resp.License, resp.Category, resp.Analysis)
}

func runLicenseHeader(cmd *cobra.Command, args []string) {
	var resp datatypes.HeaderResponse
	err := callAPI("POST", "/v1/generate-header", datatypes.HeaderRequest{
		License:  args[0],
		Year:     headerYear,
		Holder:   headerHolder,
		Language: headerLanguage,
	}, &resp)
	if err != nil {
		log.Fatalf("Header generation failed: %v", err)
	}
	if jsonOutput {
		outputJSON(resp)
		return
	}

	fmt.Println(resp.Header)
}

func runLicenseSearch(cmd *cobra.Command, args []string) {
	var resp datatypes.SearchResponse
	err := callAPI("POST", "/v1/search", datatypes.SearchRequest{
		Query: strings.Join(args, " "),
		Limit: searchLimit,
	}, &resp)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	if jsonOutput {
		outputJSON(resp)
		return
	}

	if len(resp.Results) == 0 {
		fmt.Println("No matching licenses found.")
		return
	}
	for _, r := range resp.Results {
		fmt.Printf("%-16s %-18s %s\n", r.LicenseID, r.Category, r.Rationale)
	}
}

func runLicenseAlternatives(cmd *cobra.Command, args []string) {
	var resp datatypes.AlternativesResponse
	err := callAPI("POST", "/v1/alternatives", datatypes.AlternativesRequest{
		License:  args[0],
		Category: altCategory,
		Limit:    searchLimit,
	}, &resp)
	if err != nil {
		log.Fatalf("Alternatives lookup failed: %v", err)
	}
	if jsonOutput {
		outputJSON(resp)
		return
	}

	if len(resp.Alternatives) == 0 {
		fmt.Println("No alternatives found.")
		return
	}
	for _, r := range resp.Alternatives {
		fmt.Printf("%-16s %-18s %s\n", r.LicenseID, r.Category, r.Rationale)
	}
}
