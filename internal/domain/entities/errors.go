package entities

import "fmt"

// ConfigError reports an invalid configuration value. It is fatal and is
// surfaced before any repository processing begins.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// HostingAPIError reports a failed hosting API call: a transport failure,
// a non-retryable HTTP error, or rate-limit retry exhaustion.
type HostingAPIError struct {
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *HostingAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("hosting API: %s: HTTP %d: %s", e.Operation, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("hosting API: %s: %v", e.Operation, e.Err)
}

func (e *HostingAPIError) Unwrap() error { return e.Err }

// GitOperationError reports a failed git subprocess: a non-zero exit or a
// timeout. Stderr carries the captured output so failures can be diagnosed
// without re-running.
type GitOperationError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *GitOperationError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git operation failed: %s: %v: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("git operation failed: %s: %v", e.Command, e.Err)
}

func (e *GitOperationError) Unwrap() error { return e.Err }

// PathValidationError reports a local path that escaped the base directory
// or contained characters unsafe for filesystem or subprocess use.
type PathValidationError struct {
	Path   string
	Reason string
}

func (e *PathValidationError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}
