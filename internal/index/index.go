// Package index models list positions that are shown to users one-based and
// used internally zero-based.
package index

import (
	"errors"
	"fmt"
)

// ErrNegative is returned when a position lies before the first element.
var ErrNegative = errors.New("index: position before first element")

// Index is a validated, non-negative list position.
type Index struct {
	zeroBased int
}

// FromZeroBased builds an Index from a zero-based position.
func FromZeroBased(position int) (Index, error) {
	if position < 0 {
		return Index{}, fmt.Errorf("%w: zero-based %d", ErrNegative, position)
	}
	return Index{zeroBased: position}, nil
}

// FromOneBased builds an Index from a one-based position as typed by users.
func FromOneBased(position int) (Index, error) {
	if position < 1 {
		return Index{}, fmt.Errorf("%w: one-based %d", ErrNegative, position)
	}
	return Index{zeroBased: position - 1}, nil
}

// MustOneBased is FromOneBased for positions known to be valid, such as test
// fixtures and literals.
func MustOneBased(position int) Index {
	idx, err := FromOneBased(position)
	if err != nil {
		panic(err)
	}
	return idx
}

// ZeroBased returns the position for slice access.
func (i Index) ZeroBased() int {
	return i.zeroBased
}

// OneBased returns the position as displayed to users.
func (i Index) OneBased() int {
	return i.zeroBased + 1
}

// Within reports whether the index addresses an element of a list of the given size.
func (i Index) Within(size int) bool {
	return i.zeroBased < size
}

// String renders the user facing one-based position.
func (i Index) String() string {
	return fmt.Sprintf("%d", i.OneBased())
}
