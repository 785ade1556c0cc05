package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/accounts/internal/domain/account"
	apperrors "github.com/yanqian/accounts/pkg/errors"
)

const internalMessage = "something went wrong"

// statusByCode maps account error codes to HTTP statuses; anything else is a 500.
var statusByCode = map[string]int{
	account.CodeInvalidInput:       http.StatusBadRequest,
	account.CodeEmailExists:        http.StatusConflict,
	account.CodeUserNotFound:       http.StatusNotFound,
	account.CodeInvalidCredentials: http.StatusUnauthorized,
}

// HTTPError is a transport failure with its response status and code.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError builds an HTTPError for failures raised by the transport itself.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// asHTTPError translates transport and account errors. Messages of 5xx
// responses never carry the cause.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status, ok := statusByCode[appErr.Code]
		if !ok {
			return &HTTPError{Status: http.StatusInternalServerError, Code: appErr.Code, Message: internalMessage, Err: err}
		}
		return &HTTPError{Status: status, Code: appErr.Code, Message: appErr.Message, Err: err}
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: internalMessage,
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
