package service

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies the expected, user-facing failures of the core.
// Everything except KindInternal is a normal business outcome carried as
// data; KindInternal is the only one that means something broke below the
// business layer.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindDuplicate      ErrorKind = "DUPLICATE_FOR_TODAY"
	KindDeviceConflict ErrorKind = "DEVICE_BOUND_TO_OTHER"
	KindValidation     ErrorKind = "VALIDATION"
	KindInternal       ErrorKind = "INTERNAL"
)

type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

func notFoundError(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func duplicateError(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

func deviceConflictError(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindDeviceConflict, Message: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func internalError(err error) *DomainError {
	return &DomainError{Kind: KindInternal, Message: err.Error()}
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Kind == kind
}

// HTTPStatus maps an error to the status the request layer should answer
// with. Internal details never leak: callers send a generic body for 500s.
func HTTPStatus(err error) int {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case KindValidation:
			return http.StatusBadRequest
		case KindNotFound:
			return http.StatusNotFound
		case KindDuplicate, KindDeviceConflict:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}
