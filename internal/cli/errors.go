package cli

import (
	"fmt"

	"dips-cli/internal/store"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func (e notFoundError) Unwrap() error {
	if e.kind == "dip" {
		return store.ErrDipNotFound
	}
	return nil
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type duplicateError struct {
	value string
	scope string
}

func (e duplicateError) Error() string {
	return fmt.Sprintf("%q already exists in %s", e.value, e.scope)
}

func (e duplicateError) Unwrap() error { return store.ErrDuplicateDip }

func errDuplicate(value, scope string) error {
	return duplicateError{value: value, scope: scope}
}
