package errors

// Convenience constructors for the common categories. Keeping these tiny
// wrappers in one place avoids restating severity at every call site.

// NewConfigError creates a fatal configuration error.
func NewConfigError(message string, cause error) *BlogForgeError {
	if cause != nil {
		return Wrap(cause, CategoryConfig, SeverityFatal, message)
	}
	return New(CategoryConfig, SeverityFatal, message)
}

// NewValidationError creates a fatal validation error.
func NewValidationError(message string, cause error) *BlogForgeError {
	if cause != nil {
		return Wrap(cause, CategoryValidation, SeverityFatal, message)
	}
	return New(CategoryValidation, SeverityFatal, message)
}

// NewContentError creates a fatal content error (malformed frontmatter, unreadable file).
func NewContentError(message string, cause error) *BlogForgeError {
	if cause != nil {
		return Wrap(cause, CategoryContent, SeverityFatal, message)
	}
	return New(CategoryContent, SeverityFatal, message)
}

// NewRenderError creates a fatal rendering error.
func NewRenderError(message string, cause error) *BlogForgeError {
	if cause != nil {
		return Wrap(cause, CategoryRender, SeverityFatal, message)
	}
	return New(CategoryRender, SeverityFatal, message)
}

// NewSitemapError creates a fatal sitemap generation error.
func NewSitemapError(message string, cause error) *BlogForgeError {
	if cause != nil {
		return Wrap(cause, CategorySitemap, SeverityFatal, message)
	}
	return New(CategorySitemap, SeverityFatal, message)
}

// NewFileSystemError creates a fatal filesystem error.
func NewFileSystemError(message string, cause error) *BlogForgeError {
	if cause != nil {
		return Wrap(cause, CategoryFileSystem, SeverityFatal, message)
	}
	return New(CategoryFileSystem, SeverityFatal, message)
}

// NewDaemonError creates a daemon runtime error.
func NewDaemonError(message string, cause error) *BlogForgeError {
	if cause != nil {
		return Wrap(cause, CategoryDaemon, SeverityError, message)
	}
	return New(CategoryDaemon, SeverityError, message)
}

// NewInternalError creates an internal error (a bug, not operator input).
func NewInternalError(message string, cause error) *BlogForgeError {
	if cause != nil {
		return Wrap(cause, CategoryInternal, SeverityFatal, message)
	}
	return New(CategoryInternal, SeverityFatal, message)
}
