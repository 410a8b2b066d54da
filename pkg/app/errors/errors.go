// Package errors contains helper functions and types to work with errors
package errors

import (
	"errors"
	"net/http"
)

// Category defines error category
type Category int

const (
	// CategoryNoError is used when the service returned no error
	CategoryNoError Category = iota
	// CategoryDataError The client sends some invalid data in the request,
	// for example, missing or incorrect content in the payload or parameters.
	CategoryDataError
	// CategoryLocked The requested work is already being done by another caller
	CategoryLocked
	// CategoryTooLarge The request body exceeds the accepted size
	CategoryTooLarge
	// CategoryDependencyFailure A dependent service is throwing errors
	CategoryDependencyFailure
	// CategoryGeneralError The service failed in an unexpected way
	CategoryGeneralError
)

func (c Category) String() string {
	switch c {
	case CategoryNoError:
		return "CategoryNoError"
	case CategoryDataError:
		return "CategoryDataError"
	case CategoryLocked:
		return "CategoryLocked"
	case CategoryTooLarge:
		return "CategoryTooLarge"
	case CategoryDependencyFailure:
		return "CategoryDependencyFailure"
	default:
		return "CategoryGeneralError"
	}
}

// ServiceError represents service specific type that
// is used all over the services.
type ServiceError struct {
	Category Category
	Message  string
	// Details lists individual problems, e.g. one entry per invalid field
	Details []string
	Err     error
}

// Error method to comply with error interface
func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

// Unwrap returns the underlying error
func (err ServiceError) Unwrap() error {
	return err.Err
}

// Is checks that provided error is a ServiceError with desired Category
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Category == cat {
		return true
	}
	return false
}

// IsInternalError checks that provided error is an internal system error
func IsInternalError(err error) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && (svcErr.Category < CategoryDependencyFailure) {
		return false
	}
	return true
}

// GeneralError returns a general service error.
// The error passed is logged and its text is surfaced by handlers that expose it.
func GeneralError(err error) error {
	if err == nil {
		err = errors.New("internal server error")
	}
	return &ServiceError{
		Category: CategoryGeneralError,
		Message:  "Internal Server Error",
		Err:      err,
	}
}

// BadRequestError returns an error with category DataError
// the error message provided is returned to the user
// the error object provided is logged in logger
func BadRequestError(err error, message string) error {
	if err == nil {
		err = errors.New("bad request:" + message)
	}
	return &ServiceError{
		Category: CategoryDataError,
		Message:  message,
		Err:      err,
	}
}

// ValidationError returns a DataError carrying one detail per failed field
func ValidationError(message string, details []string) error {
	return &ServiceError{
		Category: CategoryDataError,
		Message:  message,
		Details:  details,
	}
}

// LockedError returns an error with category CategoryLocked
func LockedError(err error, message string) error {
	if err == nil {
		err = errors.New("locked")
	}
	return &ServiceError{
		Category: CategoryLocked,
		Message:  message,
		Err:      err,
	}
}

// PayloadTooLargeError returns an error with category CategoryTooLarge
func PayloadTooLargeError(err error, message string) error {
	if err == nil {
		err = errors.New("payload too large")
	}
	return &ServiceError{
		Category: CategoryTooLarge,
		Message:  message,
		Err:      err,
	}
}

// DependencyError returns an error with category CategoryDependencyFailure
func DependencyError(err error, message string) error {
	if err == nil {
		err = errors.New("dependency failure")
	}
	return &ServiceError{
		Category: CategoryDependencyFailure,
		Message:  message,
		Err:      err,
	}
}

// StatusCode returns the HTTP status code for the error category
func (err ServiceError) StatusCode() int {
	switch err.Category {
	case CategoryDataError:
		return http.StatusBadRequest
	case CategoryLocked:
		return http.StatusLocked
	case CategoryTooLarge:
		return http.StatusRequestEntityTooLarge
	case CategoryDependencyFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
