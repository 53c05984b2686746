// Package session keeps track of who is currently logged in.
//
// The Store is the single owner of the current user record. It mirrors the
// record into one durable metadata key so a session survives restarts, and
// broadcasts every change to subscribers with replay-latest semantics.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/dmitrijs2005/melodeck/internal/client/models"
	"github.com/dmitrijs2005/melodeck/internal/client/nav"
	"github.com/dmitrijs2005/melodeck/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/melodeck/internal/logging"
)

// StorageKey is the metadata key holding the serialized current user.
const StorageKey = "currentUser"

// ErrNoUser is returned by Set when called with a nil record.
var ErrNoUser = errors.New("no user record")

type Store struct {
	repo    metadata.Repository
	nav     nav.Navigator
	logger  logging.Logger
	subject *Subject[models.User]
}

// Open restores the persisted user, if any. A missing key, a read failure
// or a value that is not a JSON object all yield an empty session.
func Open(ctx context.Context, repo metadata.Repository, navigator nav.Navigator, logger logging.Logger) *Store {
	logger = logger.With("component", "session")
	return &Store{
		repo:    repo,
		nav:     navigator,
		logger:  logger,
		subject: NewSubject(restore(ctx, repo, logger)),
	}
}

func restore(ctx context.Context, repo metadata.Repository, logger logging.Logger) models.User {
	data, err := repo.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, metadata.ErrNotFound) {
			logger.Warn(ctx, "could not read persisted session", "error", err)
		}
		return nil
	}

	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		logger.Warn(ctx, "discarding malformed persisted session", "error", err)
		return nil
	}
	return u
}

// Current returns a copy of the current user and whether one is set.
func (s *Store) Current() (models.User, bool) {
	u := s.subject.Value()
	if u == nil {
		return nil, false
	}
	return maps.Clone(u), true
}

// Subscribe calls fn with the current user (nil when logged out) and then on
// every change, until the returned function is called.
func (s *Store) Subscribe(fn func(models.User)) (unsubscribe func()) {
	return s.subject.Subscribe(func(u models.User) {
		fn(maps.Clone(u))
	})
}

// Set makes u the current user, notifies subscribers and persists it.
// A failed durable write is returned; the in-memory session stays updated.
func (s *Store) Set(ctx context.Context, u models.User) error {
	if u == nil {
		return ErrNoUser
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.subject.Next(maps.Clone(u))

	if err := s.repo.Set(ctx, StorageKey, data); err != nil {
		s.logger.Error(ctx, "persist session failed", "error", err)
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear ends the session: subscribers see nil, the persisted key is removed
// and the navigator is sent to the root route.
func (s *Store) Clear(ctx context.Context) error {
	s.subject.Next(nil)

	err := s.repo.Delete(ctx, StorageKey)
	if err != nil {
		s.logger.Error(ctx, "remove persisted session failed", "error", err)
		err = fmt.Errorf("remove session: %w", err)
	}

	s.nav.Navigate(nav.RootRoute)
	return err
}
