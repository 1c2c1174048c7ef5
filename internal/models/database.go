package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReviewAction is an admin decision on a deposit request
type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

// TargetStatus is the status a successful action moves a request to
func (a ReviewAction) TargetStatus() DepositStatus {
	if a == ActionReject {
		return StatusRejected
	}
	return StatusApproved
}

// ReviewOutcome records how a review action against the remote API ended
type ReviewOutcome string

const (
	OutcomeSucceeded  ReviewOutcome = "succeeded"
	OutcomeRolledBack ReviewOutcome = "rolled_back"
)

// ReviewRecord is one journal entry for a review action taken from this console
type ReviewRecord struct {
	Id        string          `db:"id"`
	RequestId string          `db:"request_id"`
	Action    ReviewAction    `db:"action"`
	Reason    string          `db:"reason"`
	Reviewer  string          `db:"reviewer"`
	UserEmail string          `db:"user_email"`
	Amount    decimal.Decimal `db:"amount"`
	Outcome   ReviewOutcome   `db:"outcome"`
	Error     string          `db:"error"`
	TraceId   string          `db:"trace_id"`
	CreatedAt time.Time       `db:"created_at"`
}
