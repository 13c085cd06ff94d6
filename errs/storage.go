package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Upload pipeline sentinels
var (
	ErrNoFileProvided     = errors.New("no file provided")
	ErrFileTooLarge       = errors.New("file too large")
	ErrStorageUnavailable = errors.New("storage backend unavailable")
	ErrBackendRejected    = errors.New("storage backend rejected upload")
)

func NewNoFileProvidedError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrNoFileProvided,
		Field:      "file",
	}
}

func NewFileTooLargeError(sizeBytes, maxBytes int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestEntityTooLarge,
		err:        ErrFileTooLarge,
		Details:    fmt.Sprintf("File size %d bytes exceeds the maximum of %d bytes", sizeBytes, maxBytes),
		Field:      "file",
	}
}

func NewStorageUnavailableError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrStorageUnavailable,
		Cause:      cause,
	}
}

func NewBackendRejectedError(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrBackendRejected,
		Details:    message,
		Cause:      cause,
	}
}

// Upload pipeline error type checkers
func IsNoFileProvidedError(err error) bool {
	return errors.Is(err, ErrNoFileProvided)
}

func IsFileTooLargeError(err error) bool {
	return errors.Is(err, ErrFileTooLarge)
}

func IsStorageUnavailableError(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

func IsBackendRejectedError(err error) bool {
	return errors.Is(err, ErrBackendRejected)
}
