package topmart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"topmart-admin/internal/models"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 10 << 20

// Service is a client for the Top Mart REST API. The session travels as a
// cookie held in the client's jar.
type Service struct {
	baseURL    *url.URL
	endpoints  Endpoints
	httpClient *http.Client
	limiter    *rate.Limiter

	mu  sync.Mutex
	jar *cookiejar.Jar
}

func NewService(cfg models.APIConfig, endpoints Endpoints) (*Service, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api base url cannot be empty")
	}
	baseURL, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", cfg.BaseURL, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("api base url must be absolute, got %q", cfg.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create cookie jar: %w", err)
	}

	httpClient, err := createCustomHttpClient(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("unable to create custom http client: %w", err)
	}
	httpClient.Jar = jar

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	s := &Service{
		baseURL:    baseURL,
		endpoints:  endpoints.WithDefaults(),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		jar:        jar,
	}

	if cfg.SessionCookie != "" {
		s.SetSessionCookie(cfg.SessionCookieName, cfg.SessionCookie)
	}
	return s, nil
}

func createCustomHttpClient(timeout time.Duration) (*http.Client, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	tr := &http.Transport{
		ResponseHeaderTimeout: timeout,
		Proxy:                 http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			KeepAlive: 30 * time.Second,
			Timeout:   15 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConnsPerHost:   5,
		ExpectContinueTimeout: 5 * time.Second,
	}

	if err := http2.ConfigureTransport(tr); err != nil {
		return nil, err
	}

	return &http.Client{
		Transport: tr,
		Timeout:   2 * timeout,
	}, nil
}

// BaseURL returns the API root the client talks to
func (s *Service) BaseURL() string {
	return s.baseURL.String()
}

// SetSessionCookie installs an existing session cookie, e.g. one copied from
// a browser, so calls are made as that user.
func (s *Service) SetSessionCookie(name, value string) {
	if name == "" {
		name = "token"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jar.SetCookies(s.cookieURL(), []*http.Cookie{{Name: name, Value: value, Path: "/"}})
}

// HasSession reports whether the jar holds any cookie for the API host
func (s *Service) HasSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jar.Cookies(s.cookieURL())) > 0
}

func (s *Service) clearSession() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	client := *s.httpClient
	client.Jar = jar
	s.jar = jar
	s.httpClient = &client
	return nil
}

func (s *Service) cookieURL() *url.URL {
	return &url.URL{Scheme: s.baseURL.Scheme, Host: s.baseURL.Host, Path: "/"}
}

// do sends one request and returns the response body of a 2xx reply.
// Errors wrap ErrTransport or are *APIError.
func (s *Service) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("unable to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := s.baseURL.String() + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("unable to build request: %w", err)
	}

	traceId := models.GetTraceId(ctx)
	if traceId == "" {
		traceId = uuid.New().String()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", traceId)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	zap.L().Debug("Making Top Mart API request",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.String("trace_id", traceId))

	started := time.Now()
	s.mu.Lock()
	client := s.httpClient
	s.mu.Unlock()

	resp, err := client.Do(req)
	if err != nil {
		zap.L().Error("Top Mart API request failed",
			zap.String("method", method),
			zap.String("url", endpoint),
			zap.String("trace_id", traceId),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrTransport, err)
	}

	zap.L().Debug("Top Mart API response received",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// errorMessage extracts a human message from an error body, if any
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		msg := strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return msg
	}
	for _, p := range []string{"message", "error.message", "error", "msg"} {
		if r := gjson.GetBytes(body, p); r.Type == gjson.String && r.String() != "" {
			return r.String()
		}
	}
	return ""
}
