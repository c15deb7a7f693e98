package transfer

import "time"

// Payload is the raw create/update body exactly as the client sent it.
type Payload map[string]any

// Optional distinguishes a key that was absent from one explicitly set to null.
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Present: true, Null: true}
}

// Set reports whether the key carried a non-null value.
func (o Optional[T]) Set() bool {
	return o.Present && !o.Null
}

// PostInput is a normalized payload, typed but not yet validated.
type PostInput struct {
	Title           Optional[string]
	Content         Optional[string]
	Platform        Optional[string]
	Status          Optional[string]
	ScheduledTime   Optional[time.Time]
	EngagementScore Optional[int64]
	ImageURL        Optional[string]
}

type PostFilter struct {
	Search   string
	Platform string
	Status   string
}
