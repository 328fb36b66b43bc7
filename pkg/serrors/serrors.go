package serrors

import "fmt"

// Base is a coded error that can be surfaced to API clients without leaking
// internal detail. The code is stable, the message is human readable.
type Base struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *Base) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message, details string) *Base {
	return &Base{Code: code, Message: message, Details: details}
}

func WithDetails(base *Base, details string) *Base {
	return &Base{Code: base.Code, Message: base.Message, Details: details}
}
