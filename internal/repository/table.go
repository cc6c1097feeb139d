package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/scholarhub-api/pkg/latency"
)

// ErrNotFound is returned when no record carries the requested id.
var ErrNotFound = errors.New("record not found")

// OperationObserver receives timing for every table operation.
type OperationObserver interface {
	ObserveStoreOperation(table, op string, duration time.Duration)
}

// Table is an in-memory collection of value records. Every read hands out copies, so T must not
// contain pointers, slices or maps.
type Table[T any] struct {
	name     string
	mu       sync.RWMutex
	rows     []T
	idOf     func(*T) *int
	latency  *latency.Simulator
	observer OperationObserver
}

// NewTable seeds a table with copies of rows. idOf returns the address of a record's id field.
func NewTable[T any](name string, rows []T, idOf func(*T) *int, sim *latency.Simulator, observer OperationObserver) *Table[T] {
	seeded := make([]T, len(rows))
	copy(seeded, rows)
	return &Table[T]{name: name, rows: seeded, idOf: idOf, latency: sim, observer: observer}
}

// Name returns the table name.
func (t *Table[T]) Name() string {
	return t.name
}

// All returns a copy of every record in insertion order.
func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	return t.Filter(ctx, nil)
}

// Filter returns copies of the records matching keep. A nil keep matches everything.
func (t *Table[T]) Filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	op := latency.OpList
	if keep != nil {
		op = latency.OpQuery
	}
	defer t.observe(op, time.Now())
	if err := t.latency.Wait(ctx, op); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out, nil
}

// Find returns a copy of the record with id.
func (t *Table[T]) Find(ctx context.Context, id int) (T, error) {
	defer t.observe(latency.OpGet, time.Now())
	var zero T
	if err := t.latency.Wait(ctx, latency.OpGet); err != nil {
		return zero, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	idx := t.indexOf(id)
	if idx < 0 {
		return zero, ErrNotFound
	}
	return t.rows[idx], nil
}

// Insert stores record under the next id (max existing id + 1, or 1 for an empty table).
func (t *Table[T]) Insert(ctx context.Context, record T) (T, error) {
	defer t.observe(latency.OpCreate, time.Now())
	if err := t.latency.Wait(ctx, latency.OpCreate); err != nil {
		var zero T
		return zero, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	*t.idOf(&record) = t.nextID()
	t.rows = append(t.rows, record)
	return record, nil
}

// Update applies mutate to the stored record under the write lock. When mutate fails the record
// is left untouched.
func (t *Table[T]) Update(ctx context.Context, id int, mutate func(*T) error) (T, error) {
	defer t.observe(latency.OpUpdate, time.Now())
	var zero T
	if err := t.latency.Wait(ctx, latency.OpUpdate); err != nil {
		return zero, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.indexOf(id)
	if idx < 0 {
		return zero, ErrNotFound
	}
	working := t.rows[idx]
	if err := mutate(&working); err != nil {
		return zero, err
	}
	*t.idOf(&working) = id
	t.rows[idx] = working
	return working, nil
}

// UpdateAll applies mutate to every record and returns copies of the result.
func (t *Table[T]) UpdateAll(ctx context.Context, mutate func(*T)) ([]T, error) {
	defer t.observe(latency.OpUpdate, time.Now())
	if err := t.latency.Wait(ctx, latency.OpUpdate); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]T, len(t.rows))
	for i := range t.rows {
		id := *t.idOf(&t.rows[i])
		mutate(&t.rows[i])
		*t.idOf(&t.rows[i]) = id
		out[i] = t.rows[i]
	}
	return out, nil
}

// Delete removes the record with id.
func (t *Table[T]) Delete(ctx context.Context, id int) error {
	defer t.observe(latency.OpDelete, time.Now())
	if err := t.latency.Wait(ctx, latency.OpDelete); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	t.rows = append(t.rows[:idx], t.rows[idx+1:]...)
	return nil
}

// Len reports the number of stored records without simulated latency.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// IDs returns the stored ids in ascending order without simulated latency.
func (t *Table[T]) IDs() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]int, 0, len(t.rows))
	for i := range t.rows {
		ids = append(ids, *t.idOf(&t.rows[i]))
	}
	sort.Ints(ids)
	return ids
}

func (t *Table[T]) indexOf(id int) int {
	for i := range t.rows {
		if *t.idOf(&t.rows[i]) == id {
			return i
		}
	}
	return -1
}

func (t *Table[T]) nextID() int {
	max := 0
	for i := range t.rows {
		if id := *t.idOf(&t.rows[i]); id > max {
			max = id
		}
	}
	return max + 1
}

func (t *Table[T]) observe(op latency.Op, start time.Time) {
	if t.observer == nil {
		return
	}
	t.observer.ObserveStoreOperation(t.name, string(op), time.Since(start))
}
