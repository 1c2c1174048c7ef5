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
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"topmart-admin/internal/api"
	"topmart-admin/internal/common"
	"topmart-admin/internal/config"
	"topmart-admin/internal/models"
	"topmart-admin/internal/poller"

	"go.uber.org/zap"
)

func main() {
	addrFlag := flag.String("addr", "", "Address for the read-only HTTP view (default: HTTP_ADDR)")
	noServer := flag.Bool("no-server", false, "Only poll, do not serve the HTTP view")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = zap.NewProduction()
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	zap.L().Info("Starting Top Mart deposit watcher")

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	// nothing left to watch once the API rejects the session
	services.Session.OnEnd(cancel)

	p := poller.New(services.Workflow, cfg.Workflow.PollingInterval, os.Stdout)
	p.OnNewPending(func(reqs []models.DepositRequest) {
		for _, r := range reqs {
			zap.L().Info("New pending deposit request",
				zap.String("request_id", r.Id),
				zap.String("user_email", r.Email),
				zap.String("amount", r.Amount.String()),
				zap.Bool("has_proof", r.HasProof()))
		}
	})
	if err := p.Start(ctx); err != nil {
		zap.L().Fatal("Failed to start poller", zap.Error(err))
	}

	var srv *http.Server
	if !*noServer {
		view := api.NewReviewService(services.Workflow, services.Journal, services.APIService.BaseURL())
		srv = view.NewServer(cfg.Server.Addr)
		go func() {
			zap.L().Info("Serving review view", zap.String("addr", cfg.Server.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zap.L().Error("Review view stopped", zap.Error(err))
				cancel()
			}
		}()
	}

	zap.L().Info("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
		zap.L().Info("Shutdown signal received, stopping watcher...")
	case <-ctx.Done():
		zap.L().Warn("Watcher context ended, stopping")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("Review view did not shut down cleanly", zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
		zap.L().Info("Watcher stopped gracefully")
	case <-shutdownCtx.Done():
		zap.L().Warn("Forced shutdown after timeout")
	}
}
