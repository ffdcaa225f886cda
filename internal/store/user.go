package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"lightbnb/internal/model"
)

const userColumns = `id, name, email, password`

// GetUserWithEmail looks a user up by exact email. Callers normalise case.
func (g *Gateway) GetUserWithEmail(ctx context.Context, email string) (*model.User, error) {
	row := g.db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE email = $1`,
		email,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, g.fail("GetUserWithEmail", err)
	}
	return u, nil
}

func (g *Gateway) GetUserWithID(ctx context.Context, id int) (*model.User, error) {
	row := g.db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE id = $1`,
		id,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, g.fail("GetUserWithID", err)
	}
	return u, nil
}

// AddUser inserts u and returns the stored row. A taken email surfaces as a
// constraint error from the database.
func (g *Gateway) AddUser(ctx context.Context, u *model.User) (*model.User, error) {
	row := g.db.QueryRow(ctx,
		`INSERT INTO users (name, email, password)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		u.Name,
		u.Email,
		u.Password,
	)
	created := &model.User{}
	if err := row.Scan(&created.ID, &created.Name, &created.Email, &created.Password); err != nil {
		return nil, g.fail("AddUser", err)
	}
	return created, nil
}

// scanUser returns nil, nil when the row is missing.
func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}
