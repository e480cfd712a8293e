// Package response writes the JSON envelope shared by every endpoint:
// {"data": ..., "meta": {...}} on success and {"error": ..., "meta": {...}} on failure.
package response

import (
	"net/http"

	deliverycontext "accounts/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo carries a machine-readable code such as "VALIDATION_FAILED".
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// MetaInfo always has the request ID; the paging fields are set for lists only.
type MetaInfo struct {
	RequestID string `json:"request_id"`
	Total     *int64 `json:"total,omitempty"`
	Limit     *int   `json:"limit,omitempty"`
	Offset    *int   `json:"offset,omitempty"`
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}

func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{Data: data, Meta: meta(c)})
}

// Page writes one page of a collection along with the collection size.
func Page(c echo.Context, data any, total int64, limit, offset int) error {
	m := meta(c)
	m.Total, m.Limit, m.Offset = &total, &limit, &offset

	return c.JSON(http.StatusOK, SuccessResponse{Data: data, Meta: m})
}

// Error drops details on 401, 403 and 5xx responses so they never leak
// account state or internals.
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{Code: errorCode, Message: message, Details: details},
		Meta:  meta(c),
	})
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
