// Package render turns a structured resume into the HTML used for both
// on-screen preview and headless PDF export.
package render

import "fmt"

// ErrUnknownTemplate indicates a template id outside the fixed set.
type ErrUnknownTemplate struct {
	TemplateID string
}

func (e *ErrUnknownTemplate) Error() string {
	return fmt.Sprintf("unknown template: %s", e.TemplateID)
}

// RenderError represents a failure building or executing a template.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
