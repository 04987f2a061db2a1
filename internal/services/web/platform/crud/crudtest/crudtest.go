// Package crudtest provides an in-memory resource gateway for module tests.
package crudtest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/nominaweb/nominaweb/internal/platform/errors"
)

// Memory is a map-backed crud.Gateway. Records keep insertion order by id.
type Memory[T any] struct {
	mu     sync.Mutex
	items  map[int64]T
	nextID int64
	id     func(T) int64
	setID  func(*T, int64)

	// ListErr fails List calls when set.
	ListErr error
	// MutateErr fails Create, Update, and Delete calls when set.
	MutateErr error
	// Created and Updated record what the handlers sent.
	Created []T
	Updated []T
}

// NewMemory builds a gateway seeded with items. New records receive ids
// above the largest seeded id.
func NewMemory[T any](id func(T) int64, setID func(*T, int64), items ...T) *Memory[T] {
	m := &Memory[T]{items: map[int64]T{}, id: id, setID: setID}
	for _, item := range items {
		key := id(item)
		m.items[key] = item
		if key > m.nextID {
			m.nextID = key
		}
	}
	return m
}

// List returns every record ordered by id.
func (m *Memory[T]) List(context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	keys := make([]int64, 0, len(m.items))
	for key := range m.items {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]T, 0, len(keys))
	for _, key := range keys {
		out = append(out, m.items[key])
	}
	return out, nil
}

// Get returns one record or a not-found error.
func (m *Memory[T]) Get(_ context.Context, id int64) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		var zero T
		return zero, apperrors.EK(apperrors.KindNotFound, "core.error.not_found", fmt.Sprintf("record %d not found", id))
	}
	return item, nil
}

// Create stores item under the next id.
func (m *Memory[T]) Create(_ context.Context, item T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MutateErr != nil {
		var zero T
		return zero, m.MutateErr
	}
	m.nextID++
	m.setID(&item, m.nextID)
	m.items[m.nextID] = item
	m.Created = append(m.Created, item)
	return item, nil
}

// Update replaces the record with id.
func (m *Memory[T]) Update(_ context.Context, id int64, item T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MutateErr != nil {
		var zero T
		return zero, m.MutateErr
	}
	if _, ok := m.items[id]; !ok {
		var zero T
		return zero, apperrors.EK(apperrors.KindNotFound, "core.error.not_found", fmt.Sprintf("record %d not found", id))
	}
	m.setID(&item, id)
	m.items[id] = item
	m.Updated = append(m.Updated, item)
	return item, nil
}

// Delete removes the record with id.
func (m *Memory[T]) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MutateErr != nil {
		return m.MutateErr
	}
	if _, ok := m.items[id]; !ok {
		return apperrors.EK(apperrors.KindNotFound, "core.error.not_found", fmt.Sprintf("record %d not found", id))
	}
	delete(m.items, id)
	return nil
}

// Has reports whether a record with id is stored.
func (m *Memory[T]) Has(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[id]
	return ok
}
