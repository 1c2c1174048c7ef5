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

// Package normalize maps the loosely-typed deposit payloads returned by the
// Top Mart API onto models.DepositRequest. Each canonical field is resolved
// from an ordered list of aliases; the first present, non-empty scalar wins.
package normalize

import (
	"errors"
	"strings"
	"time"

	"topmart-admin/internal/models"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// ErrMalformedResponse is returned when the payload is not JSON or carries
// no recognised list envelope.
var ErrMalformedResponse = errors.New("malformed deposit response")

const unknown = "Unknown"

// Field alias priority, highest first.
var (
	idPaths       = []string{"_id", "id", "proofId"}
	userIdPaths   = []string{"userId._id", "userId.id", "userId", "user._id", "user.id"}
	userNamePaths = []string{"userId.fullName", "userId.name", "user.fullName", "user.name", "fullName", "userName", "name"}
	emailPaths    = []string{"userId.email", "user.email", "email", "userEmail"}
	planPaths     = []string{"plan.name", "plan.title", "plan", "planName", "investmentPlan"}
	amountPaths   = []string{"amount", "investmentAmount", "proofAmount", "depositAmount"}
	proofPaths    = []string{"paymentProof", "proofImage", "proof", "proofUrl", "receipt", "screenshot"}
	statusPaths   = []string{"status"}
	datePaths     = []string{"createdAt", "submittedAt", "submittedDate", "date", "updatedAt"}
)

// envelopePaths lists where the request array may live, in priority order.
// The empty path is the bare-array form.
var envelopePaths = []string{"", "data", "proofs", "data.proofs"}

// DateLayout is the display format for SubmittedDate
const DateLayout = "Jan 2, 2006"

// Normalize decodes a pending-requests payload into canonical requests
func Normalize(raw []byte) ([]models.DepositRequest, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformedResponse
	}

	items, ok := locateItems(gjson.ParseBytes(raw))
	if !ok {
		return nil, ErrMalformedResponse
	}

	requests := make([]models.DepositRequest, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		requests = append(requests, NormalizeOne(item))
	}
	return requests, nil
}

func locateItems(root gjson.Result) ([]gjson.Result, bool) {
	for _, p := range envelopePaths {
		node := root
		if p != "" {
			if !root.IsObject() {
				continue
			}
			node = root.Get(p)
		}
		if node.IsArray() {
			return node.Array(), true
		}
	}
	return nil, false
}

// NormalizeOne maps a single raw request object
func NormalizeOne(obj gjson.Result) models.DepositRequest {
	return models.DepositRequest{
		Id:            firstString(obj, idPaths...),
		UserId:        firstString(obj, userIdPaths...),
		UserName:      orDefault(firstString(obj, userNamePaths...), unknown),
		Email:         firstString(obj, emailPaths...),
		Plan:          orDefault(firstString(obj, planPaths...), unknown),
		Amount:        ParseAmount(firstString(obj, amountPaths...)),
		PaymentProof:  firstString(obj, proofPaths...),
		Status:        models.ParseDepositStatus(firstString(obj, statusPaths...)),
		SubmittedDate: FormatDate(firstString(obj, datePaths...)),
	}
}

// firstString returns the first alias holding a non-empty string or number.
// Objects, arrays, booleans and nulls are skipped so that, for example, a
// nested user object under userId does not shadow userId._id.
func firstString(obj gjson.Result, paths ...string) string {
	for _, p := range paths {
		r := obj.Get(p)
		if r.Type != gjson.String && r.Type != gjson.Number {
			continue
		}
		var s string
		if r.Type == gjson.Number {
			s = r.Raw
		} else {
			s = strings.TrimSpace(r.String())
		}
		if s != "" {
			return s
		}
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// ParseAmount coerces a display or wire amount to a decimal. Thousands
// separators, whitespace and a leading currency sign are removed; anything
// still unparsable yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	s = strings.NewReplacer(",", "", " ", "", "_", "").Replace(s)
	s = strings.TrimLeft(s, "$€£₦₹")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate renders a timestamp as DateLayout. Values that match no known
// layout are returned unchanged.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	return s
}
