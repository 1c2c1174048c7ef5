package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"topmart-admin/internal/models"
	"topmart-admin/internal/workflow"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeView struct {
	snap models.WorkflowSnapshot
}

func (f *fakeView) Snapshot() models.WorkflowSnapshot { return f.snap }

func (f *fakeView) Filter(status models.StatusFilter, search string) []models.DepositRequest {
	return workflow.Filter(f.snap.Requests, status, search)
}

func (f *fakeView) Request(id string) (models.DepositRequest, bool) {
	for _, r := range f.snap.Requests {
		if r.Id == id {
			return r, true
		}
	}
	return models.DepositRequest{}, false
}

type fakeJournal struct{ err error }

func (f fakeJournal) HealthCheck(ctx context.Context) error { return f.err }

func readyView() *fakeView {
	return &fakeView{snap: models.WorkflowSnapshot{
		Status:      models.WorkflowReady,
		LastFetched: time.Now(),
		Requests: []models.DepositRequest{
			{Id: "1", UserName: "Ada", Email: "ada@topmart.io", Amount: decimal.NewFromInt(2000), PaymentProof: "p1.png", Status: models.StatusPending},
			{Id: "2", UserName: "Bob", Email: "bob@example.com", Amount: decimal.NewFromInt(10), Status: models.StatusPending},
		},
		Counts: models.StatusCounts{Total: 2, Pending: 2},
	}}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestListDeposits(t *testing.T) {
	h := NewReviewService(readyView(), nil, "https://api.topmart.io/api").Routes()

	rec := get(t, h, "/deposits?status=pending&q=ada")
	require.Equal(t, http.StatusOK, rec.Code)

	var body listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Requests, 1)
	assert.Equal(t, "1", body.Requests[0].Id)
	assert.Equal(t, models.FilterPending, body.Status)
	assert.Equal(t, 2, body.Counts.Pending)

	rec = get(t, h, "/deposits?status=rejected")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"requests":[]`)

	rec = get(t, h, "/deposits?status=archived")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDeposit(t *testing.T) {
	h := NewReviewService(readyView(), nil, "https://api.topmart.io/api").Routes()

	rec := get(t, h, "/deposits/1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://api.topmart.io/uploads/p1.png", body["proofUrl"])
	assert.Equal(t, "image", body["proofKind"])
	assert.Equal(t, true, body["canApprove"])

	rec = get(t, h, "/deposits/2")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["canApprove"])
	assert.Equal(t, true, body["canReject"])

	rec = get(t, h, "/deposits/404")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	rec := get(t, NewReviewService(readyView(), fakeJournal{}, "").Routes(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"journal":"ok"`)

	rec = get(t, NewReviewService(readyView(), fakeJournal{err: errors.New("disk full")}, "").Routes(), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	failed := &fakeView{snap: models.WorkflowSnapshot{Status: models.WorkflowError, Error: "Failed to load deposit requests: boom"}}
	rec = get(t, NewReviewService(failed, nil, "").Routes(), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "boom")
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(t, NewReviewService(readyView(), nil, "").Routes(), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
