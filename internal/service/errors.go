package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError lists every rejected field with its messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return strings.Join(parts, "; ")
}

// absorb copies the fields of err when it is a *ValidationError. Fields
// already present keep their earlier messages. It reports whether err was
// a validation error.
func (e *ValidationError) absorb(err error) bool {
	var other *ValidationError
	if !errors.As(err, &other) {
		return false
	}
	for field, msgs := range other.Fields {
		if e.Has(field) {
			continue
		}
		for _, msg := range msgs {
			e.Add(field, msg)
		}
	}
	return true
}

// orNil returns nil when no field was rejected.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("post %d not found", e.ID)
}

// DependencyError wraps a failure of a third-party lookup.
type DependencyError struct {
	Service string
	Err     error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
