package models

import "time"

// FieldError is one validation problem reported for a field
type FieldError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// FieldErrors maps field names to their ordered errors
type FieldErrors map[string][]FieldError

// Add appends an error for the named field
func (e FieldErrors) Add(name, message, code string) {
	e[name] = append(e[name], FieldError{Message: message, Code: code})
}

// CleanedData maps field names to typed, validated values
type CleanedData map[string]any

// ValidationResult is either valid cleaned data or a set of field errors
type ValidationResult struct {
	Cleaned CleanedData
	Errors  FieldErrors
}

// Valid reports whether the result carries no errors
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Submission is a persisted, accepted form submission
type Submission struct {
	ID          string      `json:"id"`
	PageID      string      `json:"page_id"`
	Data        CleanedData `json:"data"`
	Digest      string      `json:"digest"`
	SubmittedAt time.Time   `json:"submitted_at"`
}
