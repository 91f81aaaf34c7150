package dto

import "fmt"

// FieldError names one invalid request field.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors keeps the order fields were checked in.
type FieldErrors []FieldError

func (f *FieldErrors) add(field, message string) {
	*f = append(*f, FieldError{Field: field, Message: message})
}

func (f *FieldErrors) requireMin(field, value string, minLen int) {
	if value == "" {
		f.add(field, field+" is required")
		return
	}
	if len(value) < minLen {
		f.add(field, fmt.Sprintf("%s minimum %d characters", field, minLen))
	}
}

func (f *FieldErrors) require(field, value string) {
	if value == "" {
		f.add(field, field+" is required")
	}
}

// First returns the message reported to the client as the headline.
func (f FieldErrors) First() string {
	if len(f) == 0 {
		return ""
	}
	return f[0].Message
}

// Details maps every invalid field to its message.
func (f FieldErrors) Details() map[string]any {
	details := make(map[string]any, len(f))
	for _, e := range f {
		if _, exists := details[e.Field]; !exists {
			details[e.Field] = e.Message
		}
	}
	return details
}
