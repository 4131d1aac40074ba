// Package errors provides a lightweight structured error type (BlogForgeError)
// for category-based classification in the build pipeline and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a BlogForge error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Content and rendering errors
	CategoryContent ErrorCategory = "content"
	CategoryRender  ErrorCategory = "render"
	CategorySitemap ErrorCategory = "sitemap"

	// Build and processing errors
	CategoryBuild      ErrorCategory = "build"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryDaemon   ErrorCategory = "daemon"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// BlogForgeError is a structured error with category, severity, and context
type BlogForgeError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BlogForgeError
type ContextFields map[string]any

// Error implements the error interface
func (e *BlogForgeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *BlogForgeError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *BlogForgeError) WithContext(key string, value any) *BlogForgeError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new BlogForgeError
func New(category ErrorCategory, severity ErrorSeverity, message string) *BlogForgeError {
	return &BlogForgeError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BlogForgeError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BlogForgeError {
	return &BlogForgeError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if bfe, ok := err.(*BlogForgeError); ok {
		return bfe.Category == category
	}
	return false
}

// GetCategory returns the category of an error, or empty if unclassified
func GetCategory(err error) ErrorCategory {
	if bfe, ok := err.(*BlogForgeError); ok {
		return bfe.Category
	}
	return ""
}
