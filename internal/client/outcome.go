package client

// Outcome is the result of a call that never fails loudly. Value always
// holds something usable: the decoded result on success, an empty slice or
// false on failure. Err is nil on success.
type Outcome[T any] struct {
	Value T
	Err   error
}

// OK reports whether the request succeeded
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// Unwrap returns the value and error as a pair
func (o Outcome[T]) Unwrap() (T, error) {
	return o.Value, o.Err
}

func succeeded[T any](value T) Outcome[T] {
	return Outcome[T]{Value: value}
}

func failed[T any](fallback T, err error) Outcome[T] {
	return Outcome[T]{Value: fallback, Err: err}
}
