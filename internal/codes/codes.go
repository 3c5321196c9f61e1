package codes

import (
	"errors"
	"os/exec"
)

// Exit statuses reported by cbt itself. Anything else is an external tool's
// status passed through unchanged.
const (
	Success     = 0
	ConfigError = 1
)

// Descriptions for the statuses cbt distinguishes locally
var descriptions = map[int]string{
	Success:     "Success",
	ConfigError: "Configuration error",
}

// IsSuccess returns true if the exit code indicates success
func IsSuccess(code int) bool {
	return code == Success
}

// Describe returns the description for a locally produced exit code, or a
// generic message for an external tool's status
func Describe(code int) string {
	if msg, ok := descriptions[code]; ok {
		return msg
	}

	return "External tool failure"
}

// ExitStatus maps an error to the process exit status: nil is success, an
// *exec.ExitError propagates the external tool's status unchanged, and
// everything else is a local configuration or filesystem error.
func ExitStatus(err error) int {
	if err == nil {
		return Success
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return ConfigError
}
