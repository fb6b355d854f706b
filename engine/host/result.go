package host

// Result is the outcome of validating a single field: either a valid,
// canonical value or Invalid.
type Result[T any] struct {
	value T
	valid bool
}

// Valid wraps an accepted value.
func Valid[T any](v T) Result[T] {
	return Result[T]{value: v, valid: true}
}

// Invalid returns the rejected outcome.
func Invalid[T any]() Result[T] {
	return Result[T]{}
}

// Get returns the value and whether it is valid.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.valid
}

func (r Result[T]) IsValid() bool {
	return r.valid
}
