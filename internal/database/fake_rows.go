package database

import (
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// FakeRow is a pgx.Row that copies Values into the scan targets, or
// returns Err when set. A nil value leaves the target at its zero value.
type FakeRow struct {
	Values []any
	Err    error
}

func (r FakeRow) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	return assign(r.Values, dest)
}

// FakeRows is a pgx.Rows over an in-memory result set.
type FakeRows struct {
	Data    [][]any
	ScanErr error
	// IterErr is reported by Err once iteration is done.
	IterErr error

	pos    int
	closed bool
}

func (r *FakeRows) Close()     { r.closed = true }
func (r *FakeRows) Err() error { return r.IterErr }

// Closed reports whether Close has been called.
func (r *FakeRows) Closed() bool { return r.closed }

func (r *FakeRows) CommandTag() pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("SELECT %d", len(r.Data)))
}

func (r *FakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *FakeRows) Next() bool {
	if r.closed || r.pos >= len(r.Data) {
		r.closed = true
		return false
	}
	r.pos++
	return true
}

func (r *FakeRows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	if r.pos == 0 {
		return fmt.Errorf("Scan called before Next")
	}
	return assign(r.Data[r.pos-1], dest)
}

func (r *FakeRows) Values() ([]any, error) {
	if r.pos == 0 {
		return nil, fmt.Errorf("Values called before Next")
	}
	return r.Data[r.pos-1], nil
}

func (r *FakeRows) RawValues() [][]byte { return nil }
func (r *FakeRows) Conn() *pgx.Conn     { return nil }

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d targets", len(values), len(dest))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("scan: target %d is not a non-nil pointer", i)
		}
		elem := target.Elem()
		if values[i] == nil {
			elem.Set(reflect.Zero(elem.Type()))
			continue
		}
		v := reflect.ValueOf(values[i])
		if !v.Type().AssignableTo(elem.Type()) {
			return pgx.ScanArgError{ColumnIndex: i, Err: fmt.Errorf("cannot assign %s to %s", v.Type(), elem.Type())}
		}
		elem.Set(v)
	}
	return nil
}
