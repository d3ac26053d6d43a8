package storage

import "fmt"

const (
	codeInvalid  = "invalid"
	codeNotFound = "not_found"
)

// StorageError carries a code the HTTP layer maps to a status.
type StorageError struct {
	Code    string
	Message string
}

func (e *StorageError) Error() string { return e.Message }

func (e *StorageError) ErrorCode() string { return e.Code }

func ErrFileNotFound(key string) error {
	return &StorageError{Code: codeNotFound, Message: fmt.Sprintf("file not found: %s", key)}
}

// ErrInvalidKey rejects keys that would escape the storage root.
func ErrInvalidKey(key string) error {
	return &StorageError{Code: codeInvalid, Message: fmt.Sprintf("invalid storage key: %q", key)}
}
