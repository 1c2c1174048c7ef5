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

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"topmart-admin/internal/models"
)

func Load() (*models.Config, error) {
	apiTimeout, err := getEnvDuration("TOPMART_API_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	rateLimit, err := getEnvFloat("TOPMART_RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}

	pollingInterval, err := getEnvDuration("WORKFLOW_POLLING_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	if pollingInterval <= 0 {
		return nil, fmt.Errorf("WORKFLOW_POLLING_INTERVAL must be positive, got %v", pollingInterval)
	}

	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	return &models.Config{
		API: models.APIConfig{
			BaseURL:           getEnvString("TOPMART_API_URL", "http://localhost:5000/api"),
			Timeout:           apiTimeout,
			RequestsPerSecond: rateLimit,
			Burst:             getEnvInt("TOPMART_RATE_BURST", 5),
			SessionCookieName: getEnvString("TOPMART_SESSION_COOKIE_NAME", "token"),
			SessionCookie:     os.Getenv("TOPMART_SESSION_COOKIE"),
			AdminEmail:        os.Getenv("TOPMART_ADMIN_EMAIL"),
			AdminPassword:     os.Getenv("TOPMART_ADMIN_PASSWORD"),
			EndpointsFile:     getEnvString("ENDPOINTS_FILE", "endpoints.yaml"),
		},
		Database: models.DatabaseConfig{
			Path:            getEnvString("JOURNAL_PATH", "reviews.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
		},
		Workflow: models.WorkflowConfig{
			PollingInterval:      pollingInterval,
			RefreshAfterMutation: getEnvBool("WORKFLOW_REFRESH_AFTER_MUTATION", true),
		},
		Server: models.ServerConfig{
			Addr: getEnvString("HTTP_ADDR", ":8090"),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	if value := os.Getenv(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number for %s: %q (%w)", key, value, err)
		}
		return f, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
