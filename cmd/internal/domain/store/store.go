package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrUnknownTable is returned by backends that keep a fixed table registry.
var ErrUnknownTable = errors.New("unknown table")

// ErrInvalidRecord marks a write rejected because a value does not fit the
// column type, e.g. a string sent for an integer rank.
var ErrInvalidRecord = errors.New("invalid record")

// Record is a single row as exchanged with the table store.
type Record map[string]any

// Store is the table-oriented accessor every backend implements.
//
// Insert and Update echo back the affected rows. An empty echo is not an
// error at this level, callers decide what it means.
type Store interface {
	Select(ctx context.Context, q *Query) ([]Record, error)
	Insert(ctx context.Context, table string, row Record) ([]Record, error)
	Update(ctx context.Context, q *Query, patch Record) ([]Record, error)
	Delete(ctx context.Context, q *Query) error
}

// Decode copies a record into a typed value through its json tags.
func Decode(rec Record, dst any) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// Encode turns a typed value back into a record. Numbers are kept as
// json.Number so large ids survive the round trip.
func Encode(src any) (Record, error) {
	b, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}

	var rec Record
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err = dec.Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}

type timeoutStore struct {
	next    Store
	timeout time.Duration
}

// WithTimeout bounds every call made through s. A zero or negative timeout
// returns s untouched.
func WithTimeout(s Store, timeout time.Duration) Store {
	if timeout <= 0 {
		return s
	}
	return &timeoutStore{next: s, timeout: timeout}
}

func (t *timeoutStore) Select(ctx context.Context, q *Query) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Select(ctx, q)
}

func (t *timeoutStore) Insert(ctx context.Context, table string, row Record) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Insert(ctx, table, row)
}

func (t *timeoutStore) Update(ctx context.Context, q *Query, patch Record) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Update(ctx, q, patch)
}

func (t *timeoutStore) Delete(ctx context.Context, q *Query) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Delete(ctx, q)
}
