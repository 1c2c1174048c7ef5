package topmart

import (
	"context"
	"fmt"
	"net/http"

	"topmart-admin/internal/models"
	"topmart-admin/internal/normalize"

	"go.uber.org/zap"
)

type rejectBody struct {
	Reason string `json:"reason"`
}

// ListPendingDeposits fetches deposit requests awaiting review
func (s *Service) ListPendingDeposits(ctx context.Context) ([]models.DepositRequest, error) {
	body, err := s.do(ctx, http.MethodGet, s.endpoints.Pending, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to list pending deposits: %w", err)
	}

	requests, err := normalize.Normalize(body)
	if err != nil {
		zap.L().Error("Unexpected pending deposits payload",
			zap.Int("bytes", len(body)),
			zap.Error(err))
		return nil, fmt.Errorf("unable to list pending deposits: %w", err)
	}

	zap.L().Debug("Pending deposits fetched", zap.Int("count", len(requests)))
	return requests, nil
}

// ApproveDeposit approves a deposit request. The endpoint takes no body.
func (s *Service) ApproveDeposit(ctx context.Context, requestId string) error {
	if requestId == "" {
		return fmt.Errorf("request id is required")
	}

	if _, err := s.do(ctx, http.MethodPatch, withId(s.endpoints.Approve, requestId), nil); err != nil {
		return fmt.Errorf("unable to approve deposit %s: %w", requestId, err)
	}

	zap.L().Info("Deposit approved", zap.String("request_id", requestId))
	return nil
}

// RejectDeposit rejects a deposit request. An empty reason is sent as-is.
func (s *Service) RejectDeposit(ctx context.Context, requestId, reason string) error {
	if requestId == "" {
		return fmt.Errorf("request id is required")
	}

	if _, err := s.do(ctx, http.MethodPatch, withId(s.endpoints.Reject, requestId), rejectBody{Reason: reason}); err != nil {
		return fmt.Errorf("unable to reject deposit %s: %w", requestId, err)
	}

	zap.L().Info("Deposit rejected",
		zap.String("request_id", requestId),
		zap.String("reason", reason))
	return nil
}
