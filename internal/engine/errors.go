package engine

import "fmt"

// ConfigError reports a calculator config that is missing or inconsistent for an
// observed input value. It is never recovered silently: proceeding with a default
// would corrupt every downstream sum.
type ConfigError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("calculator config error: %s[%s]: %s", e.Key, e.Value, e.Reason)
	}
	return fmt.Sprintf("calculator config error: %s: %s", e.Key, e.Reason)
}

func newConfigError(key, value, reason string) *ConfigError {
	return &ConfigError{Key: key, Value: value, Reason: reason}
}

// ValidationError reports a structurally invalid roster entry. The engine
// computes nothing for a batch containing invalid entries, so partial results
// can never be mistaken for complete ones.
type ValidationError struct {
	PlayerID string
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.PlayerID != "" {
		return fmt.Sprintf("invalid roster entry %s: %s: %s", e.PlayerID, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid roster entry: %s: %s", e.Field, e.Reason)
}

func newValidationError(playerID, field, reason string) *ValidationError {
	return &ValidationError{PlayerID: playerID, Field: field, Reason: reason}
}
