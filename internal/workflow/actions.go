package workflow

import (
	"context"
	"fmt"

	"topmart-admin/internal/metrics"
	"topmart-admin/internal/models"
	"topmart-admin/internal/topmart"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Approve approves a pending request that has payment proof.
func (w *Workflow) Approve(ctx context.Context, requestId string) error {
	return w.review(ctx, models.ActionApprove, requestId, "")
}

// Reject rejects a pending request. An empty reason is passed through.
func (w *Workflow) Reject(ctx context.Context, requestId, reason string) error {
	return w.review(ctx, models.ActionReject, requestId, reason)
}

// Retry re-runs the last action that failed and was rolled back
func (w *Workflow) Retry(ctx context.Context) error {
	w.mu.Lock()
	r := w.retry
	w.mu.Unlock()
	if r == nil {
		return ErrNothingToRetry
	}
	return w.review(ctx, r.Action, r.RequestId, r.Reason)
}

// review applies the action locally, closes the review modal, then calls the
// API. A failed call reverts the local status unless a fetch has replaced the
// list in the meantime, in which case the server's view stands.
func (w *Workflow) review(ctx context.Context, action models.ReviewAction, requestId, reason string) error {
	if err := w.requireSession(); err != nil {
		return err
	}

	w.mu.Lock()
	i := w.indexOfLocked(requestId)
	if i < 0 {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrRequestNotFound, requestId)
	}
	target := w.requests[i]
	if target.Status != models.StatusPending {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s is %s", ErrNotPending, requestId, target.Status)
	}
	if action == models.ActionApprove && !target.HasProof() {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrMissingProof, requestId)
	}

	previous := target.Status
	next := action.TargetStatus()
	w.requests[i].Status = next
	generation := w.generation
	w.selectedId = ""
	w.modalOpen = false
	if w.retry != nil && w.retry.RequestId == requestId {
		w.retry = nil
	}
	w.mu.Unlock()

	traceId := uuid.New().String()
	ctx = models.WithTraceId(ctx, traceId)

	zap.L().Info("Submitting review action",
		zap.String("action", string(action)),
		zap.String("request_id", requestId),
		zap.String("user_email", target.Email),
		zap.String("amount", target.Amount.String()),
		zap.String("trace_id", traceId))

	var err error
	switch action {
	case models.ActionApprove:
		err = w.api.ApproveDeposit(ctx, requestId)
	case models.ActionReject:
		err = w.api.RejectDeposit(ctx, requestId, reason)
	default:
		err = fmt.Errorf("unsupported review action %q", action)
	}

	if err != nil {
		w.rollback(action, requestId, reason, previous, next, generation, err)
		metrics.RecordMutation(string(action), "error")
		w.recordReview(ctx, target, action, reason, models.OutcomeRolledBack, err, traceId)
		w.endSessionOnUnauthorized(err)
		return err
	}

	w.mu.Lock()
	w.errMsg = ""
	counts := countRequests(w.requests)
	w.mu.Unlock()

	metrics.RecordMutation(string(action), "success")
	metrics.SetRequestCounts(counts.Pending, counts.Approved, counts.Rejected)
	w.recordReview(ctx, target, action, reason, models.OutcomeSucceeded, nil, traceId)

	if w.refreshAfterMutation {
		w.scheduleRefresh(ctx)
	}
	return nil
}

func (w *Workflow) rollback(action models.ReviewAction, requestId, reason string, previous, next models.DepositStatus, generation uint64, cause error) {
	verb := "approve deposit"
	if action == models.ActionReject {
		verb = "reject deposit"
	}

	w.mu.Lock()
	reverted := false
	if w.generation == generation {
		if i := w.indexOfLocked(requestId); i >= 0 && w.requests[i].Status == next {
			w.requests[i].Status = previous
			reverted = true
		}
	}
	w.errMsg = topmart.UserMessage(verb, cause)
	w.retry = &models.PendingAction{
		RequestId: requestId,
		Action:    action,
		Reason:    reason,
		Error:     w.errMsg,
	}
	w.mu.Unlock()

	if reverted {
		metrics.RecordRollback(string(action))
	}
	zap.L().Error("Review action failed",
		zap.String("action", string(action)),
		zap.String("request_id", requestId),
		zap.Bool("rolled_back", reverted),
		zap.Error(cause))
}

func (w *Workflow) recordReview(ctx context.Context, target models.DepositRequest, action models.ReviewAction, reason string, outcome models.ReviewOutcome, cause error, traceId string) {
	if w.journal == nil {
		return
	}

	record := models.ReviewRecord{
		RequestId: target.Id,
		Action:    action,
		Reason:    reason,
		UserEmail: target.Email,
		Amount:    target.Amount,
		Outcome:   outcome,
		TraceId:   traceId,
	}
	if w.session != nil {
		record.Reviewer = w.session.Reviewer()
	}
	if cause != nil {
		record.Error = cause.Error()
	}

	if err := w.journal.RecordReview(context.WithoutCancel(ctx), record); err != nil {
		zap.L().Warn("Failed to record review in journal",
			zap.String("request_id", target.Id),
			zap.Error(err))
	}
}
