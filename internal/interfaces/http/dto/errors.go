package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Validation failures map to 400, state and business rule violations to 422.
var domainCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_ORDER":          http.StatusBadRequest,
	"INVALID_ORDER_NUMBER":   http.StatusBadRequest,
	"INVALID_CLIENT":         http.StatusBadRequest,
	"INVALID_CLIENT_NAME":    http.StatusBadRequest,
	"INVALID_PRODUCT":        http.StatusBadRequest,
	"INVALID_PRODUCT_NAME":   http.StatusBadRequest,
	"INVALID_QUANTITY":       http.StatusBadRequest,
	"INVALID_PRICE":          http.StatusBadRequest,
	"INVALID_COST":           http.StatusBadRequest,
	"INVALID_REASON":         http.StatusBadRequest,
	"INVALID_RECEIPT_NUMBER": http.StatusBadRequest,
	"INVALID_STATUS":         http.StatusBadRequest,
	"INVALID_KIND":           http.StatusBadRequest,
	"INVALID_BUYER":          http.StatusBadRequest,

	"INVALID_STATE":     http.StatusUnprocessableEntity,
	"OVER_COMMITMENT":   http.StatusUnprocessableEntity,
	"NOT_DELIVERED":     http.StatusUnprocessableEntity,
	"ALREADY_REFUNDED":  http.StatusUnprocessableEntity,
	"QUANTITY_EXCEEDED": http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown codes are treated as business rule violations rather than
// internal errors, since they originate from domain validation.
func GetHTTPStatus(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
