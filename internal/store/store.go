package store

import (
	"context"
	"errors"
	"time"

	"topmart-admin/internal/models"
)

// Sentinel errors shared across journal implementations.
var (
	ErrDuplicateReview = errors.New("duplicate review record")
	ErrInvalidReview   = errors.New("invalid review record")
)

// ListReviewsParams filters journal queries. Zero values mean no filter.
type ListReviewsParams struct {
	RequestId string
	Action    models.ReviewAction
	Outcome   models.ReviewOutcome
	Since     time.Time
	Limit     int
	Offset    int
}

// ReviewStore is the contract for the local review journal
type ReviewStore interface {
	RecordReview(ctx context.Context, record models.ReviewRecord) error
	ListReviews(ctx context.Context, params ListReviewsParams) ([]models.ReviewRecord, error)
	CountByOutcome(ctx context.Context, since time.Time) (map[models.ReviewOutcome]int, error)

	Close()
}
