/*
Copyright © 2026 The tdl Authors
*/
package types

import (
	"errors"
	"fmt"
)

// Error codes returned by the task and history stores.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidSelector = "INVALID_SELECTOR"
	CodeEmptyPatch      = "EMPTY_PATCH"
	CodeInvalidPatch    = "INVALID_PATCH"
	CodeCategoryTooDeep = "CATEGORY_TOO_DEEP"
	CodeInvalidFilter   = "INVALID_FILTER"
	CodeIndexOutOfRange = "INDEX_OUT_OF_RANGE"
)

// StoreError provides structured error information for store operations.
// The Details map carries the invalid input and, where applicable, the valid
// range or format, so callers can render actionable messages.
type StoreError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewStoreError creates a new structured store error.
func NewStoreError(code string, message string, details map[string]interface{}) *StoreError {
	return &StoreError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// ErrorCode extracts the store error code from err, or "" if err is not a
// StoreError.
func ErrorCode(err error) string {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// NotFoundError reports an id that did not resolve in the targeted collection.
func NotFoundError(id string) *StoreError {
	return NewStoreError(CodeNotFound, fmt.Sprintf("no task with id %q", id), map[string]interface{}{
		"id": id,
	})
}

// IndexOutOfRangeError reports a 1-based display index outside the current
// filtered view.
func IndexOutOfRangeError(index, max int) *StoreError {
	return NewStoreError(CodeIndexOutOfRange,
		fmt.Sprintf("index %d invalid, valid range 1-%d", index, max),
		map[string]interface{}{
			"index": index,
			"min":   1,
			"max":   max,
		})
}
