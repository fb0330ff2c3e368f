package gtex

import "fmt"

// APIError reports a failed interaction with the GTEx portal: a transport
// failure, a non-success HTTP status, a body that is not valid JSON, or a
// JSON body missing the endpoint's expected top-level key.
type APIError struct {
	Endpoint   string `json:"endpoint"`
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gtex: %s: %s (status %d)", e.Endpoint, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("gtex: %s: %s", e.Endpoint, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(endpoint, message string, statusCode int, err error) *APIError {
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// ConfigurationError reports invalid caller input detected before any network
// call is made: a mismatched annotation version / genome build pair, an empty
// gene or tissue list, or an unrecognized selector.
type ConfigurationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("gtex: invalid %s: %s", e.Field, e.Message)
}

func newConfigurationError(field, message string, value interface{}) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}
