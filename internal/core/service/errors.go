package service

import "net/http"

// ServiceError is a caller-facing failure carrying the HTTP status it maps to.
type ServiceError struct {
	Code    int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewServiceError(code int, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

const (
	MsgUnauthorized  = "`Unauthorized`: Invalid credentials."
	MsgNotFound      = "Result not found"
	MsgUnknownOwner  = "User with the specified identifier does not exist"
	MsgMissingData   = "Missing data: The result field, time field, or user field are not passed"
	MsgPrecondition  = "Precondition Failed: the result was modified since it was read"
	msgForbiddenVerb = "`Forbidden`: you dont have permission to %s this result"
)

var (
	ErrResultNotFound     = NewServiceError(http.StatusNotFound, MsgNotFound)
	ErrUnknownOwner       = NewServiceError(http.StatusBadRequest, MsgUnknownOwner)
	ErrPreconditionFailed = NewServiceError(http.StatusPreconditionFailed, MsgPrecondition)
	ErrInvalidCredentials = NewServiceError(http.StatusUnauthorized, MsgUnauthorized)
)
