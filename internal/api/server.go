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

// Package api serves a read-only JSON view of the review workflow.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"topmart-admin/internal/metrics"
	"topmart-admin/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ReviewView is the workflow state the server reads from
type ReviewView interface {
	Snapshot() models.WorkflowSnapshot
	Filter(status models.StatusFilter, search string) []models.DepositRequest
	Request(id string) (models.DepositRequest, bool)
}

// HealthChecker reports whether a dependency is usable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ReviewService serves the JSON view
type ReviewService struct {
	view    ReviewView
	journal HealthChecker
	baseURL string
}

// NewReviewService creates the view. journal may be nil.
func NewReviewService(view ReviewView, journal HealthChecker, apiBaseURL string) *ReviewService {
	return &ReviewService{
		view:    view,
		journal: journal,
		baseURL: apiBaseURL,
	}
}

func (s *ReviewService) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/healthz", s.healthz)
	r.Get("/deposits", s.listDeposits)
	r.Get("/deposits/{id}", s.getDeposit)
	r.Handle("/metrics", metrics.Handler())
	return r
}

// NewServer wraps the routes in an http.Server listening on addr
func (s *ReviewService) NewServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

type healthResponse struct {
	Status      models.WorkflowStatus `json:"status"`
	Error       string                `json:"error,omitempty"`
	LastFetched *time.Time            `json:"last_fetched,omitempty"`
	Journal     string                `json:"journal"`
	Counts      models.StatusCounts   `json:"counts"`
}

func (s *ReviewService) healthz(w http.ResponseWriter, r *http.Request) {
	snap := s.view.Snapshot()
	resp := healthResponse{
		Status:  snap.Status,
		Error:   snap.Error,
		Journal: "disabled",
		Counts:  snap.Counts,
	}
	if !snap.LastFetched.IsZero() {
		t := snap.LastFetched
		resp.LastFetched = &t
	}

	code := http.StatusOK
	if s.journal != nil {
		resp.Journal = "ok"
		if err := s.journal.HealthCheck(r.Context()); err != nil {
			resp.Journal = err.Error()
			code = http.StatusServiceUnavailable
		}
	}
	// a failed refresh with nothing loaded means the view has nothing to serve
	if snap.Status == models.WorkflowError && snap.LastFetched.IsZero() {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

type listResponse struct {
	Status   models.StatusFilter     `json:"status"`
	Search   string                  `json:"search,omitempty"`
	Requests []models.DepositRequest `json:"requests"`
	Counts   models.StatusCounts     `json:"counts"`
	Error    string                  `json:"error,omitempty"`
}

func (s *ReviewService) listDeposits(w http.ResponseWriter, r *http.Request) {
	status, ok := models.ParseStatusFilter(r.URL.Query().Get("status"))
	if !ok {
		writeError(w, http.StatusBadRequest, "status must be one of all, pending, approved, rejected")
		return
	}
	search := r.URL.Query().Get("q")

	snap := s.view.Snapshot()
	requests := s.view.Filter(status, search)
	if requests == nil {
		requests = []models.DepositRequest{}
	}

	writeJSON(w, http.StatusOK, listResponse{
		Status:   status,
		Search:   search,
		Requests: requests,
		Counts:   snap.Counts,
		Error:    snap.Error,
	})
}

type depositResponse struct {
	models.DepositRequest
	ProofURL   string           `json:"proofUrl,omitempty"`
	ProofKind  models.ProofKind `json:"proofKind"`
	CanApprove bool             `json:"canApprove"`
	CanReject  bool             `json:"canReject"`
}

func (s *ReviewService) getDeposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := s.view.Request(id)
	if !ok {
		writeError(w, http.StatusNotFound, "deposit request not found")
		return
	}

	writeJSON(w, http.StatusOK, depositResponse{
		DepositRequest: req,
		ProofURL:       req.ProofURL(s.baseURL),
		ProofKind:      req.ProofKind(),
		CanApprove:     req.CanApprove(),
		CanReject:      req.CanReject(),
	})
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("Failed to encode response", zap.Error(err))
	}
}
