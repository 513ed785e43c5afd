package tuning

import "fmt"

// ConfigurationError reports a tuning parameter that is missing or invalid.
// It is fatal at session start: no gameplay proceeds on an invalid catalog.
type ConfigurationError struct {
	// Key is the dotted path of the offending parameter, e.g. "price_multipliers.vico".
	Key string
	// Reason describes the violation.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tuning: %s: %s", e.Key, e.Reason)
}

func missing(key string) *ConfigurationError {
	return &ConfigurationError{Key: key, Reason: "missing"}
}

func invalid(key, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Key: key, Reason: fmt.Sprintf(format, args...)}
}
