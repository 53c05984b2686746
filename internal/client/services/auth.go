// Package services contains application services for the melodeck client.
// This file defines the authentication service: login, register, logout and
// access to the current session.
package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/melodeck/internal/client/client"
	"github.com/dmitrijs2005/melodeck/internal/client/models"
	"github.com/dmitrijs2005/melodeck/internal/logging"
)

// SessionStore is the part of session.Store the service depends on.
type SessionStore interface {
	Current() (models.User, bool)
	Subscribe(fn func(models.User)) (unsubscribe func())
	Set(ctx context.Context, u models.User) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the presentation layer.
//
// Contract:
//   - Login: authenticate and make the returned user the current session.
//   - Register: create an account; the session is left untouched.
//   - Logout: end the current session.
//   - CurrentUser / Subscribe: read access to the session.
//   - Plans: list the plans offered on registration.
//   - Ping: check that the backend answers.
//
// Failed calls return the client's normalized error unchanged.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	Register(ctx context.Context, reg models.Registration) (models.User, error)
	Logout(ctx context.Context) error
	CurrentUser() (models.User, bool)
	Subscribe(fn func(models.User)) (unsubscribe func())
	Plans(ctx context.Context) ([]models.Plan, error)
	Ping(ctx context.Context) error
}

// authService serializes login and register calls so session updates are
// emitted in the order the calls complete.
type authService struct {
	client  client.Client
	session SessionStore
	logger  logging.Logger

	submitMu sync.Mutex
}

func NewAuthService(c client.Client, s SessionStore, logger logging.Logger) AuthService {
	return &authService{client: c, session: s, logger: logger.With("component", "auth")}
}

// Login authenticates and stores the user in the session. A failure to
// persist the session is logged; the login itself still succeeds.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	a.submitMu.Lock()
	defer a.submitMu.Unlock()

	user, err := a.client.Login(ctx, creds)
	if err != nil {
		a.logger.Info(ctx, "login failed", "email", creds.Email, "error", err)
		return nil, err
	}

	if err := a.session.Set(ctx, user); err != nil {
		a.logger.Warn(ctx, "session not persisted", "email", creds.Email, "error", err)
	}
	a.logger.Info(ctx, "login succeeded", "email", creds.Email)
	return user, nil
}

// Register creates the account. Registration needs an email confirmation
// before the user can log in, so the session is not touched.
func (a *authService) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	a.submitMu.Lock()
	defer a.submitMu.Unlock()

	user, err := a.client.Register(ctx, reg)
	if err != nil {
		a.logger.Info(ctx, "registration failed", "email", reg.Email, "error", err)
		return nil, err
	}
	a.logger.Info(ctx, "registration succeeded", "email", reg.Email, "plan_id", reg.PlanID)
	return user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) CurrentUser() (models.User, bool) {
	return a.session.Current()
}

func (a *authService) Subscribe(fn func(models.User)) func() {
	return a.session.Subscribe(fn)
}

func (a *authService) Plans(ctx context.Context) ([]models.Plan, error) {
	return a.client.Plans(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
