package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores nodes of one kind. IDs are 1-based, so a zero ID of any
// node type means "absent".
type Arena[T any] struct {
	items []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{items: make([]T, 0, capHint)}
}

// Allocate appends value and returns its ID.
func (a *Arena[T]) Allocate(value T) uint32 {
	id, err := safecast.Conv[uint32](len(a.items) + 1)
	if err != nil {
		panic(fmt.Errorf("ast arena overflow: %w", err))
	}
	a.items = append(a.items, value)
	return id
}

// Get returns nil for 0 and for IDs past the end.
func (a *Arena[T]) Get(id uint32) *T {
	if id == 0 || int(id) > len(a.items) {
		return nil
	}
	return &a.items[id-1]
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.items)) //nolint:gosec // bounded by Allocate
}
