package kv

import "fmt"

// CorruptError reports a stored value that does not decode
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt value under key %s: %v", e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// CorruptSuffix is appended to a key when its undecodable value is set aside
const CorruptSuffix = ".corrupt"
