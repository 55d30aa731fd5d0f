package conf

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// Entry is either a reference to a named include or a concrete value.
// Exactly one of Include and Concrete is set.
type Entry[T any] struct {
	Include  string
	Concrete *T
}

// Ref returns an Entry referring to the named include.
func Ref[T any](name string) Entry[T] { return Entry[T]{Include: name} }

// Of returns an Entry holding v.
func Of[T any](v *T) Entry[T] { return Entry[T]{Concrete: v} }

// IsRef reports whether e refers to an include.
func (e Entry[T]) IsRef() bool { return e.Concrete == nil }

type entryRef struct {
	Include *string `json:"include"`
}

// MarshalJSON encodes a reference as {"include": name} and a concrete value
// as the value itself.
func (e Entry[T]) MarshalJSON() ([]byte, error) {
	if e.IsRef() {
		return json.Marshal(entryRef{Include: &e.Include})
	}

	return json.Marshal(e.Concrete)
}

// UnmarshalJSON decodes either form written by [Entry.MarshalJSON].
func (e *Entry[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return ErrJSON.With(slog.String("reason", "null entry"))
	}

	var ref entryRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return ErrJSON.Wrap(err)
	}

	if ref.Include != nil {
		*e = Entry[T]{Include: *ref.Include}

		return nil
	}

	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return ErrJSON.Wrap(err)
	}

	*e = Entry[T]{Concrete: v}

	return nil
}
