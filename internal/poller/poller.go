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

package poller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"topmart-admin/internal/common"
	"topmart-admin/internal/models"

	"go.uber.org/zap"
)

// Source is the part of the review workflow the poller drives
type Source interface {
	FetchRequests(ctx context.Context) error
	Requests() []models.DepositRequest
	Err() string
}

// Poller refreshes the review list on a fixed interval and reports pending
// requests it has not seen before.
type Poller struct {
	source   Source
	interval time.Duration
	out      io.Writer

	mu       sync.Mutex
	seen     map[string]struct{}
	running  bool
	stopChan chan struct{}
	done     chan struct{}
	onNew    func([]models.DepositRequest)
}

func New(source Source, interval time.Duration, out io.Writer) *Poller {
	return &Poller{
		source:   source,
		interval: interval,
		out:      out,
		seen:     make(map[string]struct{}),
	}
}

// OnNewPending registers fn to receive newly seen pending requests
func (p *Poller) OnNewPending(fn func([]models.DepositRequest)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onNew = fn
}

// Start begins polling in the background. The first poll runs immediately.
func (p *Poller) Start(ctx context.Context) error {
	if p.interval <= 0 {
		return fmt.Errorf("polling interval must be positive, got %v", p.interval)
	}

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return errors.New("poller already running")
	}
	p.running = true
	p.stopChan = make(chan struct{})
	p.done = make(chan struct{})
	stop, done := p.stopChan, p.done
	p.mu.Unlock()

	go p.pollLoop(ctx, stop, done)

	zap.L().Info("Deposit poller started", zap.Duration("polling_interval", p.interval))
	return nil
}

// Stop gracefully stops the poller and waits for the loop to exit
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopChan)
	done := p.done
	p.mu.Unlock()

	<-done
	zap.L().Info("Deposit poller stopped")
}

func (p *Poller) pollLoop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Poll(ctx)

	for {
		select {
		case <-ticker.C:
			p.Poll(ctx)
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Poll runs a single refresh, prints a summary line and returns the pending
// requests seen for the first time.
func (p *Poller) Poll(ctx context.Context) []models.DepositRequest {
	now := time.Now().Format("15:04:05")

	if err := p.source.FetchRequests(ctx); err != nil {
		fmt.Fprintf(p.out, "%s[%s] ✗ %s%s\n", common.ColorRed, now, p.source.Err(), common.ColorReset)
		zap.L().Error("Poll failed", zap.Error(err))
		return nil
	}

	requests := p.source.Requests()
	var fresh []models.DepositRequest
	pending := 0

	p.mu.Lock()
	for _, r := range requests {
		if r.Status != models.StatusPending {
			continue
		}
		pending++
		if _, ok := p.seen[r.Id]; ok {
			continue
		}
		p.seen[r.Id] = struct{}{}
		fresh = append(fresh, r)
	}
	onNew := p.onNew
	p.mu.Unlock()

	fmt.Fprintf(p.out, "%s[%s] %d requests, %d pending, %d new%s\n",
		common.ColorCyan, now, len(requests), pending, len(fresh), common.ColorReset)

	for _, r := range fresh {
		marker := common.ColorGreen + "✓ proof" + common.ColorReset
		if !r.HasProof() {
			marker = common.ColorYellow + "~ no proof" + common.ColorReset
		}
		fmt.Fprintf(p.out, "  + %s %s <%s> %s %s | %s\n",
			common.ShortId(r.Id), r.UserName, r.Email, r.Amount.StringFixed(2), r.Plan, marker)
	}

	if len(fresh) > 0 && onNew != nil {
		onNew(fresh)
	}
	return fresh
}
