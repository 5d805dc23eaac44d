package blogapi

import (
	"context"
	"fmt"

	"github.com/blogcraft/blogcraft/domain"
)

// accountService implements app.AccountService against the auth endpoints.
type accountService struct {
	client *Client
}

// NewAccountService creates an AccountService backed by the API client.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client}
}

// authResponse is the wire shape of login/register responses.
type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (s *accountService) CurrentUser(_ context.Context) (domain.User, error) {
	var user domain.User
	if err := s.client.Get("/api/auth/me", &user); err != nil {
		return domain.User{}, fmt.Errorf("fetching current user: %w", err)
	}
	return user, nil
}

func (s *accountService) Login(_ context.Context, email, password string) (domain.User, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp authResponse
	if err := s.client.Post("/api/auth/login", body, &resp); err != nil {
		return domain.User{}, fmt.Errorf("logging in: %w", err)
	}
	if err := s.client.Tokens().Save(resp.Token); err != nil {
		return domain.User{}, fmt.Errorf("storing token: %w", err)
	}
	return resp.User, nil
}

func (s *accountService) Register(_ context.Context, name, email, password string) (domain.User, error) {
	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Name: name, Email: email, Password: password}

	var resp authResponse
	if err := s.client.Post("/api/auth/register", body, &resp); err != nil {
		return domain.User{}, fmt.Errorf("registering: %w", err)
	}
	if err := s.client.Tokens().Save(resp.Token); err != nil {
		return domain.User{}, fmt.Errorf("storing token: %w", err)
	}
	return resp.User, nil
}

func (s *accountService) Logout(_ context.Context) error {
	if err := s.client.Tokens().Clear(); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

func (s *accountService) Authenticated() bool {
	return s.client.Tokens().HasToken()
}
