package common

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"topmart-admin/internal/database"
	"topmart-admin/internal/models"
	"topmart-admin/internal/session"
	"topmart-admin/internal/topmart"
	"topmart-admin/internal/workflow"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via shell export, docker, etc.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

const logoutTimeout = 10 * time.Second

type Services struct {
	APIService *topmart.Service
	Session    *session.Store
	Journal    *database.Service
	Workflow   *workflow.Workflow
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeServices signs in to the API, opens the review journal and wires
// the review workflow.
func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	endpoints, err := LoadEndpointConfig(cfg.API.EndpointsFile)
	if err != nil {
		return nil, err
	}

	apiService, err := topmart.NewService(cfg.API, endpoints)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Authenticating against Top Mart API", zap.String("base_url", apiService.BaseURL()))
	sess, err := authenticate(ctx, apiService, cfg.API)
	if err != nil {
		return nil, err
	}

	journal, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		sess.End()
		return nil, err
	}

	wf := workflow.New(apiService, sess,
		workflow.WithJournal(journal),
		workflow.WithRefreshAfterMutation(cfg.Workflow.RefreshAfterMutation))

	return &Services{
		APIService: apiService,
		Session:    sess,
		Journal:    journal,
		Workflow:   wf,
	}, nil
}

// InitializeJournalOnly opens just the review journal without the API
// Useful for read-only operations like listing past reviews
func InitializeJournalOnly(ctx context.Context, cfg *models.Config) (*database.Service, error) {
	return database.NewService(ctx, cfg.Database)
}

// Close waits for background refreshes, ends the session and closes the journal
func (cs *Services) Close() {
	if cs.Workflow != nil {
		cs.Workflow.Wait()
	}
	if cs.Session != nil {
		cs.Session.End()
	}
	if cs.Journal != nil {
		cs.Journal.Close()
	}
}

func authenticate(ctx context.Context, apiService *topmart.Service, cfg models.APIConfig) (*session.Store, error) {
	sess := session.NewStore()

	switch {
	case cfg.AdminEmail != "" && cfg.AdminPassword != "":
		user, err := apiService.Login(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.SessionCookieName)
		if err != nil {
			return nil, err
		}
		if !user.IsAdmin() && user.Role != "" {
			zap.L().Warn("Signed-in user does not report an admin role",
				zap.String("email", user.Email),
				zap.String("role", user.Role))
		}
		sess.Begin(*user)
		sess.OnEnd(func() {
			logoutCtx, cancel := context.WithTimeout(context.Background(), logoutTimeout)
			defer cancel()
			if err := apiService.Logout(logoutCtx); err != nil {
				zap.L().Warn("Failed to sign out", zap.Error(err))
			}
		})
	case cfg.SessionCookie != "":
		// the cookie was installed by NewService; identity is whatever the API attaches to it
		sess.Begin(models.User{Name: "session cookie", Email: cfg.AdminEmail})
	default:
		return nil, fmt.Errorf("missing Top Mart credentials: set TOPMART_ADMIN_EMAIL and TOPMART_ADMIN_PASSWORD, or TOPMART_SESSION_COOKIE")
	}

	return sess, nil
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
