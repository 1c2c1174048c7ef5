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

package models

import (
	"net/url"
	"path"
	"strings"

	"github.com/shopspring/decimal"
)

// DepositStatus is the review lifecycle of a deposit request
type DepositStatus string

const (
	StatusPending  DepositStatus = "pending"
	StatusApproved DepositStatus = "approved"
	StatusRejected DepositStatus = "rejected"
)

// ParseDepositStatus maps a loosely-typed status value to a DepositStatus.
// Unknown and empty values are treated as pending.
func ParseDepositStatus(s string) DepositStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved", "approve", "verified", "completed", "success":
		return StatusApproved
	case "rejected", "reject", "declined", "failed":
		return StatusRejected
	default:
		return StatusPending
	}
}

// IsTerminal reports whether no further review transition is allowed
func (s DepositStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// StatusFilter selects requests by status; FilterAll matches every status
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterPending  StatusFilter = StatusFilter(StatusPending)
	FilterApproved StatusFilter = StatusFilter(StatusApproved)
	FilterRejected StatusFilter = StatusFilter(StatusRejected)
)

// ParseStatusFilter validates a filter value. An empty string means FilterAll.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, true
	case FilterAll, FilterPending, FilterApproved, FilterRejected:
		return f, true
	default:
		return FilterAll, false
	}
}

// Matches reports whether the filter admits the given status
func (f StatusFilter) Matches(s DepositStatus) bool {
	return f == FilterAll || f == "" || DepositStatus(f) == s
}

// DepositRequest is the canonical shape of a user deposit awaiting review
type DepositRequest struct {
	Id            string          `json:"id"`
	UserId        string          `json:"userId"`
	UserName      string          `json:"userName"`
	Email         string          `json:"email"`
	Plan          string          `json:"plan"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentProof  string          `json:"paymentProof"`
	Status        DepositStatus   `json:"status"`
	SubmittedDate string          `json:"submittedDate"`
}

// HasProof reports whether the user submitted payment evidence
func (d DepositRequest) HasProof() bool {
	return strings.TrimSpace(d.PaymentProof) != ""
}

// CanApprove reports whether the approve action is available for d
func (d DepositRequest) CanApprove() bool {
	return !d.Status.IsTerminal() && d.HasProof()
}

// CanReject reports whether the reject action is available for d
func (d DepositRequest) CanReject() bool {
	return !d.Status.IsTerminal()
}

// ProofKind classifies the payment proof reference for display
type ProofKind string

const (
	ProofNone  ProofKind = "none"
	ProofImage ProofKind = "image"
	ProofPDF   ProofKind = "pdf"
	ProofLink  ProofKind = "link"
	ProofFile  ProofKind = "file"
)

// ProofKind classifies PaymentProof by extension, falling back to link for
// URLs without a recognised extension and file for bare names.
func (d DepositRequest) ProofKind() ProofKind {
	p := strings.TrimSpace(d.PaymentProof)
	if p == "" {
		return ProofNone
	}

	name := p
	isURL := false
	if u, err := url.Parse(p); err == nil && u.Scheme != "" && u.Host != "" {
		name = u.Path
		isURL = true
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp":
		return ProofImage
	case ".pdf":
		return ProofPDF
	}
	if isURL {
		return ProofLink
	}
	return ProofFile
}

// ProofURL resolves PaymentProof against baseURL when it is a bare filename
// or a relative path. Absolute URLs are returned unchanged.
func (d DepositRequest) ProofURL(baseURL string) string {
	p := strings.TrimSpace(d.PaymentProof)
	if p == "" {
		return ""
	}
	if u, err := url.Parse(p); err == nil && u.IsAbs() {
		return p
	}
	base, err := url.Parse(baseURL)
	if err != nil || baseURL == "" {
		return p
	}
	ref := p
	if !strings.Contains(p, "/") {
		ref = "uploads/" + p
	}
	return base.ResolveReference(&url.URL{Path: "/" + strings.TrimPrefix(ref, "/")}).String()
}
