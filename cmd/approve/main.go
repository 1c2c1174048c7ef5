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
	"sync"

	"topmart-admin/internal/common"
	"topmart-admin/internal/config"
	"topmart-admin/internal/topmart"
	"topmart-admin/internal/workflow"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentApprovals = 4

type approvalResult struct {
	id  string
	err error
}

func parseIds(raw string) ([]string, error) {
	var ids []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("--id is required (comma-separated for several requests)")
	}
	return ids, nil
}

func approveAll(ctx context.Context, wf *workflow.Workflow, ids []string) []approvalResult {
	var (
		mu      sync.Mutex
		results = make([]approvalResult, 0, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentApprovals)
	for _, id := range ids {
		id := id // per-iteration copy; go directive is below 1.22
		g.Go(func() error {
			err := wf.Approve(gctx, id)
			mu.Lock()
			results = append(results, approvalResult{id: id, err: err})
			mu.Unlock()
			// one failed request must not cancel the others
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func main() {
	idFlag := flag.String("id", "", "Deposit request id(s) to approve, comma-separated (required)")
	flag.Parse()

	ids, err := parseIds(*idFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
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

	common.PrintHeader(os.Stdout, "APPROVE DEPOSITS", 80)

	failed := 0
	for i, res := range approveAll(ctx, wf, ids) {
		prefix := common.BoxPrefix(i == len(ids)-1)
		if res.err == nil {
			fmt.Printf("%s%s%s approved%s\n", prefix, common.ColorGreen, res.id, common.ColorReset)
			continue
		}
		failed++
		fmt.Printf("%s%s%s: %s%s\n", prefix, common.ColorRed, res.id, approvalMessage(res.err), common.ColorReset)
	}

	common.PrintFooter(os.Stdout, fmt.Sprintf("%d approved, %d failed", len(ids)-failed, failed), 80)

	if failed > 0 {
		zap.L().Warn("Some approvals failed", zap.Int("failed", failed), zap.Int("requested", len(ids)))
		services.Close()
		loggerCleanup()
		os.Exit(1)
	}
}

func approvalMessage(err error) string {
	switch {
	case errors.Is(err, workflow.ErrMissingProof):
		return "no payment proof, reject it instead"
	case errors.Is(err, workflow.ErrRequestNotFound), errors.Is(err, workflow.ErrNotPending):
		return err.Error()
	default:
		return topmart.UserMessage("approve deposit", err)
	}
}
