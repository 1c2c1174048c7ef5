package topmart

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"topmart-admin/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewService(models.APIConfig{BaseURL: srv.URL + "/api"}, DefaultEndpoints())
	require.NoError(t, err)
	return svc
}

func TestNewService_RejectsBadBaseURL(t *testing.T) {
	_, err := NewService(models.APIConfig{}, DefaultEndpoints())
	assert.Error(t, err)

	_, err = NewService(models.APIConfig{BaseURL: "localhost/api"}, DefaultEndpoints())
	assert.Error(t, err)
}

func TestListPendingDeposits(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/pending-users", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"proofs":[{"_id":"p1","userId":{"_id":"u1","fullName":"Ada","email":"ada@x.io"},"proofAmount":"1,500","paymentProof":"p1.jpg"}]}`)
	})

	got, err := svc.ListPendingDeposits(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].Id)
	assert.Equal(t, "u1", got[0].UserId)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, models.StatusPending, got[0].Status)
}

func TestListPendingDeposits_ErrorKinds(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message":"database offline"}`)
	})
	_, err := svc.ListPendingDeposits(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHTTPStatus))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "database offline", apiErr.Message)

	svc = newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})
	_, err = svc.ListPendingDeposits(context.Background())
	assert.True(t, errors.Is(err, ErrMalformedResponse))

	srv := httptest.NewServer(http.NotFoundHandler())
	closed, err := NewService(models.APIConfig{BaseURL: srv.URL}, DefaultEndpoints())
	require.NoError(t, err)
	srv.Close()
	_, err = closed.ListPendingDeposits(context.Background())
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestApproveDeposit(t *testing.T) {
	var gotPath, gotMethod, gotTrace string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		gotTrace = r.Header.Get("X-Request-Id")
		w.WriteHeader(http.StatusOK)
	})

	ctx := models.WithTraceId(context.Background(), "trace-1")
	require.NoError(t, svc.ApproveDeposit(ctx, "abc 1"))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/approval/abc 1/approve", gotPath)
	assert.Equal(t, "trace-1", gotTrace)

	assert.Error(t, svc.ApproveDeposit(ctx, ""))
}

func TestRejectDeposit_SendsReason(t *testing.T) {
	var body string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/deposit/d1/reject", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		body = string(b)
	})

	require.NoError(t, svc.RejectDeposit(context.Background(), "d1", "blurry receipt"))
	assert.JSONEq(t, `{"reason":"blurry receipt"}`, body)

	require.NoError(t, svc.RejectDeposit(context.Background(), "d1", ""))
	assert.JSONEq(t, `{"reason":""}`, body)
}

func TestSessionCookieIsSent(t *testing.T) {
	var cookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("token"); err == nil {
			cookie = c.Value
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	svc, err := NewService(models.APIConfig{BaseURL: srv.URL, SessionCookie: "s3cret"}, DefaultEndpoints())
	require.NoError(t, err)
	assert.True(t, svc.HasSession())

	_, err = svc.ListPendingDeposits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cookie)
}

func TestLoginAndLogout(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "token", Value: "jwt", Path: "/"})
			_, _ = io.WriteString(w, `{"user":{"_id":"a1","fullName":"Admin","email":"admin@topmart.io","role":"admin"}}`)
		case "/api/auth/logout":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	user, err := svc.Login(context.Background(), "admin@topmart.io", "pw", "token")
	require.NoError(t, err)
	assert.Equal(t, "a1", user.Id)
	assert.Equal(t, "Admin", user.Name)
	assert.True(t, user.IsAdmin())
	assert.True(t, svc.HasSession())

	require.NoError(t, svc.Logout(context.Background()))
	assert.False(t, svc.HasSession())
}

func TestLogin_TokenInBody(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"token":"abc","data":{"email":"ops@topmart.io","role":"admin"}}`)
	})

	user, err := svc.Login(context.Background(), "ops@topmart.io", "pw", "session")
	require.NoError(t, err)
	assert.Equal(t, "ops@topmart.io", user.Email)
	assert.True(t, svc.HasSession())

	_, err = svc.Login(context.Background(), "", "", "session")
	assert.Error(t, err)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage("load", nil))
	assert.Equal(t, "Failed to load: server responded with status 502",
		UserMessage("load", &APIError{StatusCode: 502}))
	assert.Equal(t, "Failed to load: your session has expired, please sign in again",
		UserMessage("load", &APIError{StatusCode: 401, Message: "jwt expired"}))
	assert.Equal(t, "Failed to load: unable to reach the server, check your connection and try again",
		UserMessage("load", errors.Join(ErrTransport, errors.New("dial tcp"))))
	assert.Equal(t, "Failed to load: received an unexpected response from the server",
		UserMessage("load", ErrMalformedResponse))
}
