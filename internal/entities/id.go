// Package entities contains core business entities.
package entities

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// ID is a store-side identifier carrying the entity type it belongs to, so a
// reminder id cannot be passed where a merge request id is expected.
type ID[T any] struct {
	value uuid.UUID
}

// NewID generates a random identifier.
func NewID[T any]() ID[T] {
	return ID[T]{value: uuid.New()}
}

// ParseID parses the canonical textual form produced by String.
func ParseID[T any](s string) (ID[T], error) {
	v, err := uuid.Parse(s)
	if err != nil {
		return ID[T]{}, fmt.Errorf("parse id: %w", err)
	}
	return ID[T]{value: v}, nil
}

// IsZero reports whether the id is unset.
func (id ID[T]) IsZero() bool {
	return id.value == uuid.Nil
}

func (id ID[T]) String() string {
	return id.value.String()
}

// Value implements driver.Valuer.
func (id ID[T]) Value() (driver.Value, error) {
	return id.value.String(), nil
}

// Scan implements sql.Scanner.
func (id *ID[T]) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			return fmt.Errorf("scan id: %w", err)
		}
		id.value = parsed
	case [16]byte:
		id.value = uuid.UUID(v)
	case []byte:
		parsed, err := uuid.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("scan id: %w", err)
		}
		id.value = parsed
	default:
		return fmt.Errorf("scan id: unsupported type %T", src)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (id ID[T]) MarshalText() ([]byte, error) {
	return []byte(id.value.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID[T]) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	if err != nil {
		return fmt.Errorf("unmarshal id: %w", err)
	}
	id.value = parsed
	return nil
}

// Shorthands for the identifiers used across the store.
type (
	UserID         = ID[User]
	ProjectID      = ID[Project]
	MergeRequestID = ID[MergeRequest]
	DependencyID   = ID[MergeRequestDependency]
	ReminderID     = ID[Reminder]
)
