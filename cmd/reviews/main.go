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
	"time"

	"topmart-admin/internal/common"
	"topmart-admin/internal/config"
	"topmart-admin/internal/models"
	"topmart-admin/internal/store"

	"go.uber.org/zap"
)

func parseFlags() (store.ListReviewsParams, error) {
	requestFlag := flag.String("id", "", "Only show reviews of this deposit request")
	actionFlag := flag.String("action", "", "Only show approve or reject actions")
	outcomeFlag := flag.String("outcome", "", "Only show succeeded or rolled_back actions")
	sinceFlag := flag.Duration("since", 0, "Only show reviews newer than this (e.g. 24h)")
	limitFlag := flag.Int("limit", 50, "Maximum number of reviews to show")
	flag.Parse()

	params := store.ListReviewsParams{
		RequestId: *requestFlag,
		Limit:     *limitFlag,
	}

	switch a := models.ReviewAction(*actionFlag); a {
	case "", models.ActionApprove, models.ActionReject:
		params.Action = a
	default:
		return params, fmt.Errorf("invalid --action %q: must be approve or reject", *actionFlag)
	}

	switch o := models.ReviewOutcome(*outcomeFlag); o {
	case "", models.OutcomeSucceeded, models.OutcomeRolledBack:
		params.Outcome = o
	default:
		return params, fmt.Errorf("invalid --outcome %q: must be succeeded or rolled_back", *outcomeFlag)
	}

	if *sinceFlag < 0 {
		return params, fmt.Errorf("--since must not be negative")
	}
	if *sinceFlag > 0 {
		params.Since = time.Now().Add(-*sinceFlag)
	}
	return params, nil
}

func main() {
	params, err := parseFlags()
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

	journal, err := common.InitializeJournalOnly(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to open review journal", zap.Error(err))
	}
	defer journal.Close()

	reviews, err := journal.ListReviews(ctx, params)
	if err != nil {
		zap.L().Fatal("Failed to list reviews", zap.Error(err))
	}

	counts, err := journal.CountByOutcome(ctx, params.Since)
	if err != nil {
		zap.L().Fatal("Failed to count reviews", zap.Error(err))
	}

	common.PrintHeader(os.Stdout, "REVIEW JOURNAL", 100)
	if len(reviews) == 0 {
		fmt.Println("No reviews recorded")
	}

	for i, r := range reviews {
		isLast := i == len(reviews)-1
		color := common.ColorGreen
		if r.Outcome == models.OutcomeRolledBack {
			color = common.ColorRed
		}

		fmt.Printf("%s%s %s%-7s %-11s%s request %s by %s\n",
			common.BoxPrefix(isLast),
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			color, r.Action, r.Outcome, common.ColorReset,
			r.RequestId, r.Reviewer)

		detail := common.BoxDetailPrefix(isLast)
		fmt.Printf("%s  user: %s  amount: %s  trace: %s\n", detail, r.UserEmail, r.Amount.StringFixed(2), common.ShortId(r.TraceId))
		if r.Reason != "" {
			fmt.Printf("%s  reason: %s\n", detail, r.Reason)
		}
		if r.Error != "" {
			fmt.Printf("%s  %serror: %s%s\n", detail, common.ColorRed, r.Error, common.ColorReset)
		}
	}

	common.PrintFooter(os.Stdout, fmt.Sprintf("Showing %d reviews  |  succeeded: %d  rolled back: %d",
		len(reviews), counts[models.OutcomeSucceeded], counts[models.OutcomeRolledBack]), 100)
}
