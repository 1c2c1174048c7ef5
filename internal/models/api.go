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

import "time"

// WorkflowStatus is the state of the review workflow as a whole
type WorkflowStatus string

const (
	WorkflowIdle    WorkflowStatus = "idle"
	WorkflowLoading WorkflowStatus = "loading"
	WorkflowReady   WorkflowStatus = "ready"
	WorkflowError   WorkflowStatus = "error"
)

// StatusCounts tallies requests per review status
type StatusCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// PendingAction describes a failed mutation that can be retried
type PendingAction struct {
	RequestId string       `json:"request_id"`
	Action    ReviewAction `json:"action"`
	Reason    string       `json:"reason,omitempty"`
	Error     string       `json:"error"`
}

// WorkflowSnapshot is a consistent copy of the workflow's view state
type WorkflowSnapshot struct {
	Status      WorkflowStatus   `json:"status"`
	Loading     bool             `json:"loading"`
	Error       string           `json:"error,omitempty"`
	Requests    []DepositRequest `json:"requests"`
	SelectedId  string           `json:"selected_id,omitempty"`
	ModalOpen   bool             `json:"modal_open"`
	Retry       *PendingAction   `json:"retry,omitempty"`
	LastFetched time.Time        `json:"last_fetched,omitempty"`
	Counts      StatusCounts     `json:"counts"`
}
