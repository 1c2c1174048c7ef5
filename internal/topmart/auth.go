package topmart

import (
	"context"
	"fmt"
	"net/http"

	"topmart-admin/internal/models"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login signs in against the API. The session cookie set by the server is
// kept in the jar; a token returned in the body is installed as a cookie
// named cookieName when the server did not set one.
func (s *Service) Login(ctx context.Context, email, password, cookieName string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	body, err := s.do(ctx, http.MethodPost, s.endpoints.Login, loginBody{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("unable to sign in: %w", err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("unable to sign in: %w", ErrMalformedResponse)
	}
	root := gjson.ParseBytes(body)

	if !s.HasSession() {
		if token := root.Get("token"); token.Type == gjson.String && token.String() != "" {
			s.SetSessionCookie(cookieName, token.String())
		}
	}

	user := parseUser(root)
	if user.Email == "" {
		user.Email = email
	}

	zap.L().Info("Signed in to Top Mart API",
		zap.String("email", user.Email),
		zap.String("role", user.Role))
	return user, nil
}

// Logout ends the server session and drops local cookies even when the
// server call fails.
func (s *Service) Logout(ctx context.Context) error {
	_, err := s.do(ctx, http.MethodPost, s.endpoints.Logout, nil)
	if clearErr := s.clearSession(); clearErr != nil {
		zap.L().Warn("Failed to reset cookie jar", zap.Error(clearErr))
	}
	if err != nil {
		return fmt.Errorf("unable to sign out: %w", err)
	}
	return nil
}

func parseUser(root gjson.Result) *models.User {
	node := root
	for _, p := range []string{"user", "data.user", "data"} {
		if r := root.Get(p); r.IsObject() {
			node = r
			break
		}
	}

	pick := func(paths ...string) string {
		for _, p := range paths {
			if r := node.Get(p); r.Type == gjson.String && r.String() != "" {
				return r.String()
			}
		}
		return ""
	}

	return &models.User{
		Id:    pick("_id", "id"),
		Name:  pick("fullName", "name"),
		Email: pick("email"),
		Role:  pick("role"),
	}
}
