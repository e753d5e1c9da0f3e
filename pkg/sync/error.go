// pkg/sync/error.go
package sync

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCategory classifies failures during a sync run
type ErrorCategory int

const (
	// Error categories with increasing severity
	ErrorCategoryNone ErrorCategory = iota
	// ErrorCategoryIdentity covers SKUs that yield no usable identity
	ErrorCategoryIdentity
	// ErrorCategoryProjection covers groups missing required fields
	ErrorCategoryProjection
	// ErrorCategoryMedia covers image upload failures (degraded, not fatal)
	ErrorCategoryMedia
	// ErrorCategoryAPI covers store API failures on one item
	ErrorCategoryAPI
	// ErrorCategoryConfig covers configuration problems that abort the run
	ErrorCategoryConfig
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryNone:
		return "None"
	case ErrorCategoryIdentity:
		return "Identity"
	case ErrorCategoryProjection:
		return "Projection"
	case ErrorCategoryMedia:
		return "Media"
	case ErrorCategoryAPI:
		return "API"
	case ErrorCategoryConfig:
		return "Config"
	default:
		return fmt.Sprintf("Unknown(%d)", ec)
	}
}

// ItemError records a single failure, tied to the offending identity.
// Item-level categories never abort the run; only Config does.
type ItemError struct {
	Category  ErrorCategory
	SKU       string
	Stage     string // e.g. "create_product", "upload_image"
	Error     error
	Message   string // derived from Error but stored for serialization
	Timestamp time.Time
}

// NewItemError creates a new item error with the current timestamp
func NewItemError(err error, category ErrorCategory) ItemError {
	record := ItemError{
		Category:  category,
		Error:     err,
		Timestamp: time.Now(),
	}
	if err != nil {
		record.Message = err.Error()
	}
	return record
}

// WithSKU adds the offending identity to the error record
func (e ItemError) WithSKU(skuCode string) ItemError {
	e.SKU = skuCode
	return e
}

// WithStage adds the pipeline stage to the error record
func (e ItemError) WithStage(stage string) ItemError {
	e.Stage = stage
	return e
}

// Fatal reports whether the error should abort the whole run
func (e ItemError) Fatal() bool {
	return e.Category >= ErrorCategoryConfig
}

// String returns a formatted error message
func (e ItemError) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] ", e.Category))

	if e.SKU != "" {
		sb.WriteString(fmt.Sprintf("SKU: %s ", e.SKU))
	}
	if e.Stage != "" {
		sb.WriteString(fmt.Sprintf("Stage: %s ", e.Stage))
	}
	if e.Error != nil {
		sb.WriteString(fmt.Sprintf("Error: %s", e.Error.Error()))
	} else if e.Message != "" {
		sb.WriteString(fmt.Sprintf("Error: %s", e.Message))
	}

	return sb.String()
}
