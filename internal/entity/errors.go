package entity

import "errors"

// Domain errors
var (
	// Source data errors
	ErrMissingColumn        = errors.New("required column is missing")
	ErrMalformedTable       = errors.New("malformed table")
	ErrUnsupportedFile      = errors.New("unsupported file type")
	ErrUnknownCategory      = errors.New("unknown category")
	ErrUnknownCategoryValue = errors.New("value has no reference description")

	// Selection errors
	ErrTooManyDomains     = errors.New("too many domains selected")
	ErrTimelineOutOfRange = errors.New("timeline out of range")
	ErrUnknownOption      = errors.New("value is not an available option")

	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotGenerated     = errors.New("questions have not been generated")
	ErrRowOutOfRange    = errors.New("row number out of range")
	ErrPersonalExcluded = errors.New("personal questions are not included")

	// Export errors
	ErrUnknownExport = errors.New("unknown export")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
