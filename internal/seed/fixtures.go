// Package seed imports the LightBnB JSON fixtures into the database.
//
// Fixture files are JSON objects keyed by id:
//
//	{"1": {"id": 1, "name": "Devin Sanders", "email": "...", "password": "..."}}
package seed

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"lightbnb/internal/model"
)

// UserFixture is a fixture user. Password is stored verbatim, so fixtures
// carry bcrypt hashes.
type UserFixture struct {
	ID       int    `json:"id"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func LoadUsers(r io.Reader) ([]UserFixture, error) {
	users, err := decodeKeyed[UserFixture](r)
	if err != nil {
		return nil, fmt.Errorf("LoadUsers: %w", err)
	}
	slices.SortFunc(users, func(a, b UserFixture) int { return cmp.Compare(a.ID, b.ID) })
	return users, nil
}

// LoadProperties decodes a properties fixture. OwnerID refers to the
// fixture id of a user and cost_per_night is in cents.
func LoadProperties(r io.Reader) ([]model.Property, error) {
	props, err := decodeKeyed[model.Property](r)
	if err != nil {
		return nil, fmt.Errorf("LoadProperties: %w", err)
	}
	slices.SortFunc(props, func(a, b model.Property) int { return cmp.Compare(a.ID, b.ID) })
	return props, nil
}

func decodeKeyed[T any](r io.Reader) ([]T, error) {
	var byID map[string]T
	if err := json.NewDecoder(r).Decode(&byID); err != nil {
		return nil, err
	}
	return slices.Collect(maps.Values(byID)), nil
}
