package store

import (
	"errors"
	"testing"
)

// Compile-time checks that the interface is importable and usable.
func TestReviewStoreInterfaceExists(t *testing.T) {
	if errors.Is(ErrDuplicateReview, ErrInvalidReview) {
		t.Fatal("sentinel errors must be distinct")
	}
	_ = ListReviewsParams{}

	var _ ReviewStore
}
