// Package models mirrors the StonePay backend's JSON records. Every record
// that can be shown in a table exposes RowID and every record validates its
// own shape after decoding.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrShape is wrapped by every Validate failure.
var ErrShape = errors.New("unexpected payload shape")

func shapeErr(format string, v ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrShape, fmt.Sprintf(format, v...))
}

func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return shapeErr("%s without _id", kind)
	}
	return nil
}

// Validator is implemented by every payload decoded from the backend.
type Validator interface {
	Validate() error
}

// List is a decoded collection that validates each element.
type List[T Validator] []T

func (l List[T]) Validate() error {
	for i, item := range l {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// Count is a scalar aggregate such as /order/total_count.
type Count int64

func (c Count) Validate() error {
	if c < 0 {
		return shapeErr("negative count %d", c)
	}
	return nil
}
