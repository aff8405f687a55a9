package access

import "fmt"

// FetchError wraps a failure to retrieve an input object from storage. It
// lets callers distinguish an unreachable backend from a broken export.
type FetchError struct {
	Key string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch object %s: %v", e.Key, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
