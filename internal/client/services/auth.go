// Package services contains application services for the resume analyzer
// client. This file defines the authentication service: login, register and
// housekeeping of the locally persisted bearer token.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/client"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
	"github.com/dmitrijs2005/resumeanalyzer/internal/common"
)

// AuthService defines authentication operations for the front ends.
//
// Contract:
//   - Authenticate: call the login or register endpoint for mode.
//   - LoadToken: read the persisted token ("" when none or expired).
//   - SaveToken / ForgetToken: write or delete the persisted token.
//   - Close: release underlying client resources.
//
// All methods must honor context cancellation.
type AuthService interface {
	Authenticate(ctx context.Context, mode models.AuthMode, creds models.Credentials) (*client.AuthResponse, error)
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ForgetToken(ctx context.Context) error
	Close(ctx context.Context) error
}

var ErrUnknownAuthMode = errors.New("unknown auth mode")

type authService struct {
	client client.Client
	tokens *TokenStore
}

// NewAuthService constructs an AuthService bound to the given API client and
// token store.
func NewAuthService(client client.Client, tokens *TokenStore) AuthService {
	return &authService{client: client, tokens: tokens}
}

func (a *authService) Authenticate(ctx context.Context, mode models.AuthMode, creds models.Credentials) (*client.AuthResponse, error) {
	var (
		resp *client.AuthResponse
		err  error
	)
	switch mode {
	case models.AuthLogin:
		resp, err = a.client.Login(ctx, creds)
	case models.AuthRegister:
		resp, err = a.client.Register(ctx, creds)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAuthMode, mode)
	}
	if err != nil {
		return nil, fmt.Errorf("%s error: %w", mode, err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%s error: %w: empty token", mode, client.ErrBadResponse)
	}
	return resp, nil
}

// LoadToken treats an expired token like a missing one.
func (a *authService) LoadToken(ctx context.Context) (string, error) {
	token, err := a.tokens.Load(ctx)
	if errors.Is(err, common.ErrTokenExpired) {
		return "", nil
	}
	return token, err
}

func (a *authService) SaveToken(ctx context.Context, token string) error {
	if err := a.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("token saving error: %w", err)
	}
	return nil
}

func (a *authService) ForgetToken(ctx context.Context) error {
	return a.tokens.Clear(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
