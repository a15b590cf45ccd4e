package serviceerrors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/logger"
)

// AppError is the shared error shape of the client core. Code carries the
// HTTP status for backend rejections and 0 for transport failures.
type AppError struct {
	Msg         string
	Code        int
	Base        error  `json:"-"`
	Description string `json:"description,omitempty"`
}

func NewValidation() *AppError {
	return &AppError{"validation failed", http.StatusBadRequest, nil, ""}
}

func NewBadRequest() *AppError {
	return &AppError{"bad request", http.StatusBadRequest, nil, ""}
}

func NewUnauthorized() *AppError {
	return &AppError{"unauthorized", http.StatusUnauthorized, nil, ""}
}

func NewNotFound() *AppError {
	return &AppError{"not found", http.StatusNotFound, nil, ""}
}

func NewConflict() *AppError {
	return &AppError{"conflict", http.StatusConflict, nil, ""}
}

func NewInvalidCode() *AppError {
	return &AppError{"invalid verification code", http.StatusUnprocessableEntity, nil, ""}
}

func NewAlreadyInProgress() *AppError {
	return &AppError{"already in progress", http.StatusConflict, nil, ""}
}

// NewNetwork no response was received at all, so there is no status code.
func NewNetwork() *AppError {
	return &AppError{"network error", 0, nil, ""}
}

func NewHTTPError(code int) *AppError {
	return &AppError{http.StatusText(code), code, nil, ""}
}

func NewAppError(err error) *AppError {
	return &AppError{"internal error", http.StatusInternalServerError, err, ""}
}

func AppErrorFromError(inputError error) *AppError {
	var appErr *AppError
	ok := errors.As(inputError, &appErr)
	if !ok {
		return NewAppError(inputError)
	}
	return appErr
}

func (err *AppError) IsInternalError() bool {
	return err.Code/100 == 5
}

// IsNetworkError true when no response was received.
func (err *AppError) IsNetworkError() bool {
	return err.Code == 0
}

func (err *AppError) Wrap(baseErr error, desc string) *AppError {
	err.Base = baseErr
	err.Description = desc
	return err
}

func (err *AppError) Is(target error) bool {
	targetAppErr := new(AppError)
	ok := errors.As(target, &targetAppErr)
	if !ok {
		return target == err.Base
	}
	return targetAppErr.Code == err.Code && targetAppErr.Msg == err.Msg
}

func (err *AppError) Unwrap() error {
	return err.Base
}

// LogError logs failures the caller cannot act on: server-side errors and
// transport failures.
func (err *AppError) LogError(ctx context.Context) *AppError {
	if err.IsInternalError() || err.IsNetworkError() {
		logger.FromContext(ctx).
			Errorf("[%d] %s %v", err.Code, err.Description, err.Base)
	}

	return err
}

func (err *AppError) Error() string {
	return err.Msg
}

func (err *AppError) String() string {
	errBuffer, er := json.Marshal(err)
	if er != nil {
		panic(er)
	}
	return string(errBuffer)
}
