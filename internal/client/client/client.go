package client

import (
	"context"

	"github.com/dmitrijs2005/melodeck/internal/client/models"
)

// Client is the backend API as seen by the client services.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	Register(ctx context.Context, reg models.Registration) (models.User, error)
	Plans(ctx context.Context) ([]models.Plan, error)
	Ping(ctx context.Context) error
}
