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
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"topmart-admin/internal/common"
	"topmart-admin/internal/config"
	"topmart-admin/internal/topmart"
	"topmart-admin/internal/workflow"

	"go.uber.org/zap"
)

func main() {
	idFlag := flag.String("id", "", "Deposit request id to reject (required)")
	reasonFlag := flag.String("reason", "", "Optional reason sent to the API and recorded in the journal")
	retryFlag := flag.Bool("retry", false, "Retry once if the rejection fails")
	flag.Parse()

	id := strings.TrimSpace(*idFlag)
	if id == "" {
		fmt.Fprintln(os.Stderr, "--id is required")
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
		zap.L().Fatal("Failed to fetch deposit requests", zap.Error(err))
	}

	req, err := wf.OpenReview(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s%s: %s%s\n", common.ColorRed, id, err, common.ColorReset)
		return
	}

	common.PrintRequestDetail(os.Stdout, req, services.APIService.BaseURL())

	err = wf.Reject(ctx, id, strings.TrimSpace(*reasonFlag))
	if err != nil && *retryFlag && wf.PendingRetry() != nil {
		zap.L().Warn("Rejection failed, retrying", zap.String("request_id", id), zap.Error(err))
		err = wf.Retry(ctx)
	}

	if err != nil {
		msg := wf.Err()
		if errors.Is(err, workflow.ErrNotPending) || msg == "" {
			msg = topmart.UserMessage("reject deposit", err)
		}
		common.PrintFooter(os.Stdout, common.ColorRed+msg+common.ColorReset, 80)
		return
	}

	common.PrintFooter(os.Stdout, common.ColorGreen+"Deposit request "+id+" rejected"+common.ColorReset, 80)
}
