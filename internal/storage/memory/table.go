// Package memory keeps every table in process memory. Data is lost when the
// process exits.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/terraincognita07/ruralhealth/internal/storage"
)

// Table stores rows keyed by id and remembers insertion order. Ids start at
// 1 and are never reused, even after a delete.
type Table[T any, P storage.Record[T]] struct {
	mu     sync.RWMutex
	lastID uint
	order  []uint
	rows   map[uint]T
	now    func() time.Time

	// conflicts reports whether two rows may not be stored side by side.
	conflicts func(stored, candidate T) bool
}

func NewTable[T any, P storage.Record[T]]() *Table[T, P] {
	return &Table[T, P]{
		rows: make(map[uint]T),
		now:  time.Now,
	}
}

func (table *Table[T, P]) Create(ctx context.Context, record *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	table.mu.Lock()
	defer table.mu.Unlock()

	if table.conflictsWith(0, *record) {
		return storage.ErrConflict
	}

	table.lastID++
	id := table.lastID
	P(record).AssignID(id)
	P(record).StampCreated(table.now().UTC())

	table.rows[id] = *record
	table.order = append(table.order, id)
	return nil
}

func (table *Table[T, P]) Get(ctx context.Context, id uint) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	table.mu.RLock()
	defer table.mu.RUnlock()

	row, ok := table.rows[id]
	if !ok {
		return zero, storage.ErrNotFound
	}
	return row, nil
}

func (table *Table[T, P]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table.mu.RLock()
	defer table.mu.RUnlock()

	return table.snapshot(), nil
}

func (table *Table[T, P]) Update(ctx context.Context, id uint, patch func(*T)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	table.mu.Lock()
	defer table.mu.Unlock()

	row, ok := table.rows[id]
	if !ok {
		return zero, storage.ErrNotFound
	}
	patch(&row)
	P(&row).AssignID(id)
	if table.conflictsWith(id, row) {
		return zero, storage.ErrConflict
	}
	table.rows[id] = row
	return row, nil
}

func (table *Table[T, P]) Delete(ctx context.Context, id uint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	table.mu.Lock()
	defer table.mu.Unlock()

	if _, ok := table.rows[id]; !ok {
		return false, nil
	}
	delete(table.rows, id)
	table.order = lo.Without(table.order, id)
	return true, nil
}

// Filter returns the rows matching keep, in insertion order.
func (table *Table[T, P]) Filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	rows, err := table.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(rows, func(row T, _ int) bool {
		return keep(row)
	}), nil
}

// First returns the earliest inserted row matching keep.
func (table *Table[T, P]) First(ctx context.Context, keep func(T) bool) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	table.mu.RLock()
	defer table.mu.RUnlock()

	for _, id := range table.order {
		if row := table.rows[id]; keep(row) {
			return row, nil
		}
	}
	return zero, storage.ErrNotFound
}

func (table *Table[T, P]) conflictsWith(skipID uint, candidate T) bool {
	if table.conflicts == nil {
		return false
	}
	for id, stored := range table.rows {
		if id != skipID && table.conflicts(stored, candidate) {
			return true
		}
	}
	return false
}

func (table *Table[T, P]) snapshot() []T {
	rows := make([]T, 0, len(table.order))
	for _, id := range table.order {
		rows = append(rows, table.rows[id])
	}
	return rows
}
