// Package store is the query gateway in front of the LightBnB database.
//
// Every method issues one round trip on the injected handle. Driver
// failures are logged and returned as *sqlerr.Error; a lookup that matches
// no row returns a nil record and a nil error.
package store

import (
	"context"

	"github.com/rs/zerolog"

	"lightbnb/internal/database"
	"lightbnb/internal/model"
	"lightbnb/internal/sqlerr"
)

// DefaultLimit caps list queries when the caller passes a limit <= 0.
const DefaultLimit = 10

// Querier is implemented by Gateway and by decorators around it.
type Querier interface {
	GetUserWithEmail(ctx context.Context, email string) (*model.User, error)
	GetUserWithID(ctx context.Context, id int) (*model.User, error)
	AddUser(ctx context.Context, u *model.User) (*model.User, error)
	GetAllReservations(ctx context.Context, guestID, limit int) ([]model.ReservationListing, error)
	GetAllProperties(ctx context.Context, opts model.PropertySearch, limit int) ([]model.PropertyListing, error)
	AddProperty(ctx context.Context, p *model.Property) (*model.Property, error)
}

type Gateway struct {
	db  database.DB
	log zerolog.Logger

	// DefaultLimit overrides the package DefaultLimit when positive.
	DefaultLimit int
}

var _ Querier = (*Gateway)(nil)

func New(db database.DB, log zerolog.Logger) *Gateway {
	return &Gateway{db: db, log: log}
}

func (g *Gateway) limit(n int) int {
	if n > 0 {
		return n
	}
	if g.DefaultLimit > 0 {
		return g.DefaultLimit
	}
	return DefaultLimit
}

func (g *Gateway) fail(op string, err error) error {
	wrapped := sqlerr.Wrap(op, err)
	g.log.Error().
		Err(err).
		Str("op", op).
		Stringer("kind", sqlerr.KindOf(wrapped)).
		Msg("query failed")
	return wrapped
}
