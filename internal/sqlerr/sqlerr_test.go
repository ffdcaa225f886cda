package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, Other},
		{"unique violation", &pgconn.PgError{Code: "23505"}, Constraint},
		{"fk violation", &pgconn.PgError{Code: "23503"}, Constraint},
		{"connection failure", &pgconn.PgError{Code: "08006"}, Connection},
		{"too many connections", &pgconn.PgError{Code: "53300"}, Connection},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, Connection},
		{"invalid text", &pgconn.PgError{Code: "22P02"}, Malformed},
		{"syntax error", &pgconn.PgError{Code: "42601"}, Malformed},
		{"undefined column", &pgconn.PgError{Code: "42703"}, Malformed},
		{"serialization", &pgconn.PgError{Code: "40001"}, Other},
		{"wrapped pg error", fmt.Errorf("x: %w", &pgconn.PgError{Code: "23505"}), Constraint},
		{"deadline", context.DeadlineExceeded, Connection},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("refused")}, Connection},
		{"scan arg", pgx.ScanArgError{ColumnIndex: 1, Err: errors.New("bad")}, Malformed},
		{"plain", errors.New("boom"), Other},
		{"no rows", pgx.ErrNoRows, Other},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestWrap(t *testing.T) {
	require.NoError(t, Wrap("AddUser", nil))

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key", Message: "duplicate key"}
	err := Wrap("AddUser", pgErr)

	var sqlErr *Error
	require.ErrorAs(t, err, &sqlErr)
	require.Equal(t, "AddUser", sqlErr.Op)
	require.Equal(t, Constraint, sqlErr.Kind)
	require.Equal(t, "23505", sqlErr.Code)
	require.Equal(t, "users_email_key", sqlErr.Constraint)
	require.ErrorIs(t, err, pgErr)
	require.Contains(t, err.Error(), "AddUser: constraint (23505)")
	require.Equal(t, Constraint, KindOf(err))

	// already classified errors pass through untouched
	again := Wrap("Other", err)
	require.Same(t, err, again)

	plain := Wrap("GetUserWithID", errors.New("boom"))
	require.Equal(t, "GetUserWithID: other: boom", plain.Error())
	require.Equal(t, Other, KindOf(errors.New("raw")))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "other", Other.String())
	require.Equal(t, "constraint", Constraint.String())
	require.Equal(t, "connection", Connection.String())
	require.Equal(t, "malformed", Malformed.String())
}
