package history

import "time"

// Entry records the outcome of one third-party-library install attempt
type Entry struct {
	// Spec is the normalized compiler spec (e.g. "%gcc@4.9.3")
	Spec string `json:"spec"`

	// BuildsDir is the output directory the install targeted
	BuildsDir string `json:"builds_dir"`

	// Success indicates if the install succeeded
	Success bool `json:"success"`

	// Error holds the failure message when Success is false
	Error string `json:"error,omitempty"`

	// Timestamp when this entry was recorded
	Timestamp time.Time `json:"timestamp"`
}
