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

import "context"

type traceContextKey struct{}

// WithTraceId attaches the id sent as X-Request-Id so the API client and the
// review journal record the same value for one action.
func WithTraceId(ctx context.Context, traceId string) context.Context {
	return context.WithValue(ctx, traceContextKey{}, traceId)
}

// GetTraceId retrieves the trace id from context, or "" if absent.
func GetTraceId(ctx context.Context) string {
	id, _ := ctx.Value(traceContextKey{}).(string)
	return id
}
