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

package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"topmart-admin/internal/metrics"
	"topmart-admin/internal/models"
	"topmart-admin/internal/session"
	"topmart-admin/internal/topmart"

	"go.uber.org/zap"
)

var (
	ErrRequestNotFound = errors.New("deposit request not found")
	ErrNotPending      = errors.New("deposit request is not pending")
	ErrMissingProof    = errors.New("deposit request has no payment proof")
	ErrNothingToRetry  = errors.New("no failed action to retry")
)

// DepositsAPI is the remote side of the review workflow
type DepositsAPI interface {
	ListPendingDeposits(ctx context.Context) ([]models.DepositRequest, error)
	ApproveDeposit(ctx context.Context, requestId string) error
	RejectDeposit(ctx context.Context, requestId, reason string) error
}

// Journal records review actions taken through the workflow
type Journal interface {
	RecordReview(ctx context.Context, record models.ReviewRecord) error
}

type Option func(*Workflow)

// WithJournal records every approve/reject attempt in j
func WithJournal(j Journal) Option {
	return func(w *Workflow) { w.journal = j }
}

// WithRefreshAfterMutation controls the background refetch that follows a
// successful approve or reject. Enabled by default.
func WithRefreshAfterMutation(enabled bool) Option {
	return func(w *Workflow) { w.refreshAfterMutation = enabled }
}

// Workflow is the in-memory deposit review list and the actions on it.
// Status changes are applied optimistically and reverted if the API call
// fails; only the most recently issued fetch may replace the list.
type Workflow struct {
	api                  DepositsAPI
	session              *session.Store
	journal              Journal
	refreshAfterMutation bool

	mu          sync.Mutex
	requests    []models.DepositRequest
	status      models.WorkflowStatus
	loading     bool
	errMsg      string
	selectedId  string
	modalOpen   bool
	retry       *models.PendingAction
	lastFetched time.Time

	// issued is the sequence number of the latest fetch started; generation
	// increments every time a fetch result replaces the list.
	issued     uint64
	generation uint64

	refreshes sync.WaitGroup
}

// New creates a workflow. sess may be nil when the API needs no session.
func New(api DepositsAPI, sess *session.Store, opts ...Option) *Workflow {
	w := &Workflow{
		api:                  api,
		session:              sess,
		refreshAfterMutation: true,
		status:               models.WorkflowIdle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) requireSession() error {
	if w.session != nil && !w.session.IsAuthenticated() {
		return session.ErrNotAuthenticated
	}
	return nil
}

// endSessionOnUnauthorized tears the session down when the API rejects it
func (w *Workflow) endSessionOnUnauthorized(err error) {
	if w.session != nil && topmart.IsUnauthorized(err) {
		zap.L().Warn("API rejected session - ending it", zap.Error(err))
		w.session.End()
	}
}

// FetchRequests reloads the list from the API. On failure the previous list
// is kept and a displayable error is set. A fetch that completes after a
// newer one was issued is discarded.
func (w *Workflow) FetchRequests(ctx context.Context) error {
	if err := w.requireSession(); err != nil {
		return err
	}

	w.mu.Lock()
	w.issued++
	seq := w.issued
	w.loading = true
	w.status = models.WorkflowLoading
	w.mu.Unlock()

	started := time.Now()
	requests, err := w.api.ListPendingDeposits(ctx)
	elapsed := time.Since(started)

	w.mu.Lock()
	if seq != w.issued {
		w.mu.Unlock()
		metrics.RecordStaleResponse()
		zap.L().Debug("Discarding stale deposit fetch",
			zap.Uint64("seq", seq),
			zap.Bool("failed", err != nil))
		return nil
	}

	w.loading = false
	if err != nil {
		w.errMsg = topmart.UserMessage("load deposit requests", err)
		w.status = models.WorkflowError
		kept := len(w.requests)
		w.mu.Unlock()

		metrics.RecordFetch("error", elapsed.Seconds())
		zap.L().Error("Failed to fetch deposit requests",
			zap.Int("kept_requests", kept),
			zap.Error(err))
		w.endSessionOnUnauthorized(err)
		return err
	}

	w.requests = requests
	w.generation++
	w.errMsg = ""
	w.status = models.WorkflowReady
	w.lastFetched = time.Now()
	if w.selectedId != "" && w.indexOfLocked(w.selectedId) < 0 {
		w.selectedId = ""
		w.modalOpen = false
	}
	counts := countRequests(w.requests)
	w.mu.Unlock()

	metrics.RecordFetch("success", elapsed.Seconds())
	metrics.SetRequestCounts(counts.Pending, counts.Approved, counts.Rejected)
	zap.L().Info("Deposit requests loaded",
		zap.Int("total", counts.Total),
		zap.Int("pending", counts.Pending),
		zap.Duration("elapsed", elapsed))
	return nil
}

// Wait blocks until background refetches scheduled by actions have finished
func (w *Workflow) Wait() {
	w.refreshes.Wait()
}

func (w *Workflow) scheduleRefresh(ctx context.Context) {
	w.refreshes.Add(1)
	go func() {
		defer w.refreshes.Done()
		if err := w.FetchRequests(context.WithoutCancel(ctx)); err != nil {
			zap.L().Warn("Refresh after review action failed", zap.Error(err))
		}
	}()
}

func (w *Workflow) indexOfLocked(id string) int {
	for i := range w.requests {
		if w.requests[i].Id == id {
			return i
		}
	}
	return -1
}

// OpenReview selects a request and opens its review modal
func (w *Workflow) OpenReview(id string) (models.DepositRequest, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.indexOfLocked(id)
	if i < 0 {
		return models.DepositRequest{}, ErrRequestNotFound
	}
	w.selectedId = id
	w.modalOpen = true
	return w.requests[i], nil
}

// CloseReview closes the modal and clears the selection
func (w *Workflow) CloseReview() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selectedId = ""
	w.modalOpen = false
}

// Selected returns the request under review, if any
func (w *Workflow) Selected() (models.DepositRequest, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selectedId == "" {
		return models.DepositRequest{}, false
	}
	i := w.indexOfLocked(w.selectedId)
	if i < 0 {
		return models.DepositRequest{}, false
	}
	return w.requests[i], true
}

// Request looks up a request by id
func (w *Workflow) Request(id string) (models.DepositRequest, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.indexOfLocked(id)
	if i < 0 {
		return models.DepositRequest{}, false
	}
	return w.requests[i], true
}

// Requests returns a copy of the canonical list
func (w *Workflow) Requests() []models.DepositRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.DepositRequest(nil), w.requests...)
}

// Filter returns the requests matching status and search, see Filter
func (w *Workflow) Filter(status models.StatusFilter, search string) []models.DepositRequest {
	return Filter(w.Requests(), status, search)
}

// Counts tallies the current list per status
func (w *Workflow) Counts() models.StatusCounts {
	w.mu.Lock()
	defer w.mu.Unlock()
	return countRequests(w.requests)
}

// Err returns the current displayable error, or ""
func (w *Workflow) Err() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}

// PendingRetry returns the last failed action, if one can be retried
func (w *Workflow) PendingRetry() *models.PendingAction {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.retry == nil {
		return nil
	}
	r := *w.retry
	return &r
}

func (w *Workflow) Snapshot() models.WorkflowSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := models.WorkflowSnapshot{
		Status:      w.status,
		Loading:     w.loading,
		Error:       w.errMsg,
		Requests:    append([]models.DepositRequest(nil), w.requests...),
		SelectedId:  w.selectedId,
		ModalOpen:   w.modalOpen,
		LastFetched: w.lastFetched,
		Counts:      countRequests(w.requests),
	}
	if w.retry != nil {
		r := *w.retry
		snap.Retry = &r
	}
	return snap
}

func countRequests(requests []models.DepositRequest) models.StatusCounts {
	c := models.StatusCounts{Total: len(requests)}
	for _, r := range requests {
		switch r.Status {
		case models.StatusPending:
			c.Pending++
		case models.StatusApproved:
			c.Approved++
		case models.StatusRejected:
			c.Rejected++
		}
	}
	return c
}
