package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"topmart-admin/internal/models"
	"topmart-admin/internal/store"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const defaultListLimit = 100

// RecordReview appends a review action to the journal. Id and CreatedAt are
// filled in when empty.
func (s *Service) RecordReview(ctx context.Context, record models.ReviewRecord) error {
	if record.RequestId == "" {
		return fmt.Errorf("%w: request id is required", store.ErrInvalidReview)
	}
	if record.Action != models.ActionApprove && record.Action != models.ActionReject {
		return fmt.Errorf("%w: unknown action %q", store.ErrInvalidReview, record.Action)
	}
	if record.Outcome != models.OutcomeSucceeded && record.Outcome != models.OutcomeRolledBack {
		return fmt.Errorf("%w: unknown outcome %q", store.ErrInvalidReview, record.Outcome)
	}

	if record.Id == "" {
		record.Id = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, queryInsertReview,
		record.Id,
		record.RequestId,
		string(record.Action),
		record.Reason,
		record.Reviewer,
		record.UserEmail,
		record.Amount.String(),
		string(record.Outcome),
		record.Error,
		record.TraceId,
		record.CreatedAt.UTC(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("%w: %s", store.ErrDuplicateReview, record.Id)
		}
		zap.L().Error("Failed to insert review record",
			zap.String("request_id", record.RequestId),
			zap.Error(err))
		return fmt.Errorf("unable to insert review record: %w", err)
	}

	zap.L().Debug("Review recorded",
		zap.String("id", record.Id),
		zap.String("request_id", record.RequestId),
		zap.String("action", string(record.Action)),
		zap.String("outcome", string(record.Outcome)))
	return nil
}

// ListReviews returns journal entries newest first
func (s *Service) ListReviews(ctx context.Context, params store.ListReviewsParams) ([]models.ReviewRecord, error) {
	var (
		where []string
		args  []any
	)
	if params.RequestId != "" {
		where = append(where, "request_id = ?")
		args = append(args, params.RequestId)
	}
	if params.Action != "" {
		where = append(where, "action = ?")
		args = append(args, string(params.Action))
	}
	if params.Outcome != "" {
		where = append(where, "outcome = ?")
		args = append(args, string(params.Outcome))
	}
	if !params.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, params.Since.UTC())
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	query := querySelectReviews
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		zap.L().Error("Failed to query reviews", zap.Error(err))
		return nil, fmt.Errorf("unable to query reviews: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var records []models.ReviewRecord
	for rows.Next() {
		var (
			r       models.ReviewRecord
			action  string
			outcome string
		)
		err := rows.Scan(&r.Id, &r.RequestId, &action, &r.Reason, &r.Reviewer, &r.UserEmail,
			&r.Amount, &outcome, &r.Error, &r.TraceId, &r.CreatedAt)
		if err != nil {
			zap.L().Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan review row: %w", err)
		}
		r.Action = models.ReviewAction(action)
		r.Outcome = models.ReviewOutcome(outcome)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during review row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}

	return records, nil
}

// CountByOutcome tallies journal entries created at or after since
func (s *Service) CountByOutcome(ctx context.Context, since time.Time) (map[models.ReviewOutcome]int, error) {
	rows, err := s.db.QueryContext(ctx, queryCountByOutcome, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("unable to count reviews: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	counts := make(map[models.ReviewOutcome]int)
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("unable to scan review count: %w", err)
		}
		counts[models.ReviewOutcome(outcome)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review counts: %w", err)
	}
	return counts, nil
}
