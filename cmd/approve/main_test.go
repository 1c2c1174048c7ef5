package main

import (
	"errors"
	"testing"

	"topmart-admin/internal/topmart"
	"topmart-admin/internal/workflow"
)

func TestParseIds(t *testing.T) {
	ids, err := parseIds(" 12, 7,,12 ,abc")
	if err != nil {
		t.Fatalf("parseIds: %v", err)
	}
	want := []string{"12", "7", "abc"}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	if _, err := parseIds(" , "); err == nil {
		t.Error("expected error for empty id list")
	}
}

func TestApprovalMessage(t *testing.T) {
	if got := approvalMessage(workflow.ErrMissingProof); got != "no payment proof, reject it instead" {
		t.Errorf("missing proof message = %q", got)
	}
	got := approvalMessage(&topmart.APIError{StatusCode: 500, Message: "ledger locked"})
	if got != "Failed to approve deposit: ledger locked" {
		t.Errorf("api error message = %q", got)
	}
	if got := approvalMessage(errors.New("boom")); got != "Failed to approve deposit: boom" {
		t.Errorf("plain error message = %q", got)
	}
}
