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

package database

const (
	schemaReviews = `
	CREATE TABLE IF NOT EXISTS reviews (
		id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL,
		action TEXT NOT NULL CHECK (action IN ('approve', 'reject')),
		reason TEXT NOT NULL DEFAULT '',
		reviewer TEXT NOT NULL DEFAULT '',
		user_email TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL DEFAULT '0',
		outcome TEXT NOT NULL CHECK (outcome IN ('succeeded', 'rolled_back')),
		error TEXT NOT NULL DEFAULT '',
		trace_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reviews_request ON reviews(request_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_reviews_created ON reviews(created_at);`

	queryInsertReview = `
		INSERT INTO reviews (id, request_id, action, reason, reviewer, user_email, amount, outcome, error, trace_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	querySelectReviews = `
		SELECT id, request_id, action, reason, reviewer, user_email, amount, outcome, error, trace_id, created_at
		FROM reviews`

	queryCountByOutcome = `
		SELECT outcome, COUNT(*)
		FROM reviews
		WHERE created_at >= ?
		GROUP BY outcome`
)
