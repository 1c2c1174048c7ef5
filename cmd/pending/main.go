/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"topmart-admin/internal/common"
	"topmart-admin/internal/config"
	"topmart-admin/internal/models"

	"go.uber.org/zap"
)

func main() {
	statusFlag := flag.String("status", "pending", "Status filter: all, pending, approved, rejected")
	searchFlag := flag.String("search", "", "Match user name or email (case-insensitive)")
	idFlag := flag.String("id", "", "Show the full review detail for a single request")
	flag.Parse()

	status, ok := models.ParseStatusFilter(*statusFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "invalid --status %q: must be one of all, pending, approved, rejected\n", *statusFlag)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		_, _ = zap.NewProduction()
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	ctx := context.Background()

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	wf := services.Workflow
	if err := wf.FetchRequests(ctx); err != nil {
		zap.L().Error("Failed to fetch deposit requests", zap.Error(err))
		fmt.Fprintln(os.Stderr, common.ColorRed+wf.Err()+common.ColorReset)
		return
	}

	if *idFlag != "" {
		req, err := wf.OpenReview(*idFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s%s: %s%s\n", common.ColorRed, *idFlag, err, common.ColorReset)
			return
		}
		defer wf.CloseReview()

		common.PrintRequestDetail(os.Stdout, req, services.APIService.BaseURL())
		common.PrintFooter(os.Stdout, reviewHint(req), 80)
		return
	}

	requests := wf.Filter(status, *searchFlag)
	counts := wf.Counts()

	common.PrintHeader(os.Stdout, fmt.Sprintf("DEPOSIT REQUESTS (%s)", status), 80)
	fmt.Printf("Total: %d  Pending: %d  Approved: %d  Rejected: %d\n\n",
		counts.Total, counts.Pending, counts.Approved, counts.Rejected)

	if len(requests) == 0 {
		if *searchFlag != "" {
			fmt.Printf("No requests match %q\n", *searchFlag)
		} else {
			fmt.Println("No deposit requests")
		}
	} else {
		common.PrintRequestTable(os.Stdout, requests)
	}

	common.PrintFooter(os.Stdout, fmt.Sprintf("Showing %d of %d requests", len(requests), counts.Total), 80)

	zap.L().Info("Listed deposit requests",
		zap.String("status", string(status)),
		zap.String("search", *searchFlag),
		zap.Int("shown", len(requests)),
		zap.Int("total", counts.Total))
}

func reviewHint(req models.DepositRequest) string {
	switch {
	case req.CanApprove():
		return "approve: approve --id " + req.Id + "  |  reject: reject --id " + req.Id
	case req.CanReject():
		return "No payment proof: this request can only be rejected"
	default:
		return "Already " + string(req.Status) + submittedSuffix(req)
	}
}

func submittedSuffix(req models.DepositRequest) string {
	if req.SubmittedDate == "" {
		return ""
	}
	return " (submitted " + req.SubmittedDate + ")"
}
