package models

import "time"

// Config represents the application configuration
type Config struct {
	API      APIConfig
	Database DatabaseConfig
	Workflow WorkflowConfig
	Server   ServerConfig
}

// APIConfig holds remote Top Mart API settings
type APIConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	SessionCookieName string
	SessionCookie     string
	AdminEmail        string
	AdminPassword     string
	EndpointsFile     string
}

// DatabaseConfig holds review journal connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// WorkflowConfig holds deposit review workflow settings
type WorkflowConfig struct {
	PollingInterval      time.Duration
	RefreshAfterMutation bool
}

// ServerConfig holds the read-only HTTP view settings
type ServerConfig struct {
	Addr string
}
