package sqlite

import (
	"context"
	"fmt"
	"reflect"

	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store serves the table store contract from a local SQLite file. Rows go
// through the typed entity models so hooks and serializers apply.
type Store struct {
	db     *gorm.DB
	models map[string]reflect.Type
}

func NewStore(db *gorm.DB) *Store {
	models := make(map[string]reflect.Type)
	for table, m := range entity.Models() {
		models[table] = reflect.TypeOf(m).Elem()
	}
	return &Store{db: db, models: models}
}

func (s *Store) Select(ctx context.Context, q *store.Query) ([]store.Record, error) {
	typ, err := s.model(q.Table)
	if err != nil {
		return nil, err
	}

	tx := s.scope(ctx, q)
	if q.Order != nil {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: q.Order.Field},
			Desc:   q.Order.Desc,
		})
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	rows, err := s.find(tx, typ)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Table, err)
	}
	return encodeAll(rows)
}

func (s *Store) Insert(ctx context.Context, table string, row store.Record) ([]store.Record, error) {
	typ, err := s.model(table)
	if err != nil {
		return nil, err
	}

	model := reflect.New(typ).Interface()
	if err = store.Decode(row, model); err != nil {
		return nil, fmt.Errorf("insert %s: %w: %w", table, store.ErrInvalidRecord, err)
	}

	if err = s.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	return encodeAll([]any{model})
}

// Update loads every matching row, merges the patch over it and saves the
// result, so columns missing from the patch keep their values.
func (s *Store) Update(ctx context.Context, q *store.Query, patch store.Record) ([]store.Record, error) {
	typ, err := s.model(q.Table)
	if err != nil {
		return nil, err
	}

	var out []store.Record
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.find(s.filter(tx, q), typ)
		if err != nil {
			return err
		}

		for _, row := range rows {
			rec, err := store.Encode(row)
			if err != nil {
				return err
			}

			for k, v := range patch {
				rec[k] = v
			}

			merged := reflect.New(typ).Interface()
			if err = store.Decode(rec, merged); err != nil {
				return fmt.Errorf("%w: %w", store.ErrInvalidRecord, err)
			}

			if err = tx.Save(merged).Error; err != nil {
				return err
			}

			saved, err := store.Encode(merged)
			if err != nil {
				return err
			}
			out = append(out, saved)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", q.Table, err)
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, q *store.Query) error {
	typ, err := s.model(q.Table)
	if err != nil {
		return err
	}

	if err = s.scope(ctx, q).Delete(reflect.New(typ).Interface()).Error; err != nil {
		return fmt.Errorf("delete %s: %w", q.Table, err)
	}
	return nil
}

func (s *Store) model(table string) (reflect.Type, error) {
	typ, ok := s.models[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrUnknownTable, table)
	}
	return typ, nil
}

func (s *Store) scope(ctx context.Context, q *store.Query) *gorm.DB {
	return s.filter(s.db.WithContext(ctx), q)
}

func (s *Store) filter(tx *gorm.DB, q *store.Query) *gorm.DB {
	for _, f := range q.Filters {
		col := clause.Column{Name: f.Field}
		switch f.Op {
		case store.OpEq:
			tx = tx.Where(clause.Eq{Column: col, Value: f.Value})
		case store.OpContains:
			for _, v := range f.Values {
				tx = tx.Where(clause.Expr{
					SQL:  "EXISTS (SELECT 1 FROM json_each(?) WHERE json_each.value = ?)",
					Vars: []any{col, v},
				})
			}
		}
	}
	return tx
}

func (s *Store) find(tx *gorm.DB, typ reflect.Type) ([]any, error) {
	slice := reflect.New(reflect.SliceOf(reflect.PointerTo(typ)))
	if err := tx.Find(slice.Interface()).Error; err != nil {
		return nil, err
	}

	elems := slice.Elem()
	rows := make([]any, elems.Len())
	for i := range rows {
		rows[i] = elems.Index(i).Interface()
	}
	return rows, nil
}

func encodeAll(rows []any) ([]store.Record, error) {
	out := make([]store.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := store.Encode(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
