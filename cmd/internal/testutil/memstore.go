package testutil

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"sync"

	"byteapi/cmd/internal/domain/store"
)

const (
	OpSelect = "select"
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// MemStore is an in-memory store.Store that counts calls and can be told
// to fail or to echo nothing back from writes.
type MemStore struct {
	mu     sync.Mutex
	tables map[string][]store.Record
	nextID int

	Calls   map[string]int
	Queries []*store.Query

	// FailOn makes the listed operations return Err.
	FailOn map[string]bool
	Err    error

	// EmptyEcho makes Insert and Update succeed without returning rows.
	EmptyEcho bool
}

func NewMemStore() *MemStore {
	return &MemStore{
		tables: make(map[string][]store.Record),
		Calls:  make(map[string]int),
		FailOn: make(map[string]bool),
		Err:    fmt.Errorf("store unavailable"),
	}
}

// Seed adds rows directly, bypassing call counters.
func (m *MemStore) Seed(table string, rows ...store.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.tables[table] = append(m.tables[table], clone(r))
	}
}

// Rows returns a snapshot of a table.
func (m *MemStore) Rows(table string) []store.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Record, 0, len(m.tables[table]))
	for _, r := range m.tables[table] {
		out = append(out, clone(r))
	}
	return out
}

func (m *MemStore) Count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[op]
}

// LastQuery returns the most recent query passed to Select, Update or Delete.
func (m *MemStore) LastQuery() *store.Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Queries) == 0 {
		return nil
	}
	return m.Queries[len(m.Queries)-1]
}

func (m *MemStore) Select(_ context.Context, q *store.Query) ([]store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpSelect, q); err != nil {
		return nil, err
	}

	var out []store.Record
	for _, r := range m.tables[q.Table] {
		if matches(r, q.Filters) {
			out = append(out, clone(r))
		}
	}

	if q.Order != nil {
		field, desc := q.Order.Field, q.Order.Desc
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(out[i][field], out[j][field])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *MemStore) Insert(_ context.Context, table string, row store.Record) ([]store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpInsert, store.From(table)); err != nil {
		return nil, err
	}

	r := clone(row)
	if _, ok := r["id"]; !ok && table != "users" {
		m.nextID++
		r["id"] = strconv.Itoa(m.nextID)
	}
	m.tables[table] = append(m.tables[table], r)

	if m.EmptyEcho {
		return nil, nil
	}
	return []store.Record{clone(r)}, nil
}

func (m *MemStore) Update(_ context.Context, q *store.Query, patch store.Record) ([]store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpUpdate, q); err != nil {
		return nil, err
	}

	var out []store.Record
	for _, r := range m.tables[q.Table] {
		if !matches(r, q.Filters) {
			continue
		}
		for k, v := range patch {
			r[k] = v
		}
		out = append(out, clone(r))
	}

	if m.EmptyEcho {
		return nil, nil
	}
	return out, nil
}

func (m *MemStore) Delete(_ context.Context, q *store.Query) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpDelete, q); err != nil {
		return err
	}

	m.tables[q.Table] = slices.DeleteFunc(m.tables[q.Table], func(r store.Record) bool {
		return matches(r, q.Filters)
	})
	return nil
}

func (m *MemStore) record(op string, q *store.Query) error {
	m.Calls[op]++
	m.Queries = append(m.Queries, q)
	if m.FailOn[op] {
		return m.Err
	}
	return nil
}

func matches(r store.Record, filters []store.Filter) bool {
	for _, f := range filters {
		switch f.Op {
		case store.OpEq:
			if fmt.Sprint(r[f.Field]) != fmt.Sprint(f.Value) {
				return false
			}
		case store.OpContains:
			arr, _ := r[f.Field].([]any)
			for _, want := range f.Values {
				if !slices.ContainsFunc(arr, func(v any) bool { return fmt.Sprint(v) == fmt.Sprint(want) }) {
					return false
				}
			}
		}
	}
	return true
}

func compare(a, b any) int {
	fa, aErr := strconv.ParseFloat(fmt.Sprint(a), 64)
	fb, bErr := strconv.ParseFloat(fmt.Sprint(b), 64)
	if aErr == nil && bErr == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}

	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

func clone(r store.Record) store.Record {
	out := make(store.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
