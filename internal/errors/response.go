package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogcraft/blogcraft/domain"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// SuccessResponse is the uniform success envelope.
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

var errorStatusMap = map[ErrorCode]int{
	ErrInternal: http.StatusInternalServerError,
	ErrDatabase: http.StatusInternalServerError,
	ErrTimeout:  http.StatusRequestTimeout,

	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,

	ErrBadRequest:       http.StatusBadRequest,
	ErrValidation:       http.StatusBadRequest,
	ErrResourceNotFound: http.StatusNotFound,
	ErrResourceExists:   http.StatusConflict,
}

// HandleError writes the uniform error response for err. Domain sentinels
// from the service layer are mapped onto the matching application codes.
func HandleError(c *gin.Context, err error) {
	appErr := asAppError(err)

	status := errorStatusMap[appErr.Code]
	if status == 0 {
		status = http.StatusInternalServerError
	}

	resp := ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Fields:  appErr.Fields,
	}
	if appErr.Err != nil {
		resp.Error = appErr.Err.Error()
	}

	c.JSON(status, resp)
}

func asAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	switch {
	case stderrors.Is(err, domain.ErrNotFound):
		return Wrap(ErrResourceNotFound, "resource not found", err)
	case stderrors.Is(err, domain.ErrForbidden):
		return Wrap(ErrForbidden, "not authorized for this resource", err)
	case stderrors.Is(err, domain.ErrUnauthorized):
		return Wrap(ErrUnauthorized, "authentication required", err)
	default:
		return Wrap(ErrInternal, "internal server error", err)
	}
}

// HandleSuccess writes the uniform success response.
func HandleSuccess(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, SuccessResponse{
		Code:    status,
		Message: message,
		Data:    data,
	})
}
