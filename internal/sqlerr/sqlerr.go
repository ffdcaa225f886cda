// Package sqlerr classifies failures coming out of the PostgreSQL driver so
// callers can tell a rejected write from an unreachable database.
package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	Other Kind = iota
	// Constraint covers integrity violations such as a duplicate email.
	Constraint
	// Connection covers an unreachable, overloaded or shutting down server.
	Connection
	// Malformed covers bad SQL, bad input values and scan mismatches.
	Malformed
)

func (k Kind) String() string {
	switch k {
	case Constraint:
		return "constraint"
	case Connection:
		return "connection"
	case Malformed:
		return "malformed"
	default:
		return "other"
	}
}

// Error is a driver failure annotated with the gateway operation that
// produced it.
type Error struct {
	Op         string
	Kind       Kind
	Code       string // SQLSTATE, empty when the server never answered
	Constraint string
	Err        error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s): %v", e.Op, e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap annotates err with op and its Kind. A nil err stays nil and an err
// that is already an *Error is returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return err
	}

	e := &Error{Op: op, Kind: Classify(err), Err: err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		e.Code = pgErr.Code
		e.Constraint = pgErr.ConstraintName
	}
	return e
}

// KindOf reports the Kind of an error produced by Wrap, or Other.
func KindOf(err error) Kind {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Kind
	}
	return Other
}

// Classify maps a raw driver error onto a Kind.
func Classify(err error) Kind {
	if err == nil {
		return Other
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyCode(pgErr.Code)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return Connection
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return Connection
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Connection
	}

	var scanErr pgx.ScanArgError
	if errors.As(err, &scanErr) {
		return Malformed
	}
	return Other
}

func classifyCode(code string) Kind {
	switch {
	case strings.HasPrefix(code, "23"):
		return Constraint
	case strings.HasPrefix(code, "08"),
		strings.HasPrefix(code, "53"),
		strings.HasPrefix(code, "57P0"):
		return Connection
	case strings.HasPrefix(code, "22"),
		strings.HasPrefix(code, "42"):
		return Malformed
	default:
		return Other
	}
}
