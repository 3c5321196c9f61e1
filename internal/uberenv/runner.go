// Package uberenv drives the third-party-library installer across an
// ordered list of compiler specs. A failing spec is recorded and the run
// moves on to the next one; the aggregate of all failures is reported at
// the end.
package uberenv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

// Result is the outcome of one spec's install attempt
type Result struct {
	Spec string
	Err  error
}

// Success reports whether the install for this spec succeeded
func (r Result) Success() bool {
	return r.Err == nil
}

// Runner invokes the uberenv installer once per compiler spec
type Runner struct {
	execCommand func(dir, name string, args ...string) Commander

	// UberenvPath is the installer script, normally
	// <source-dir>/scripts/uberenv/uberenv.py
	UberenvPath string

	// SourceDir is the working directory for installer invocations
	SourceDir string
}

// NewRunner creates a runner for the given source directory
func NewRunner(sourceDir string) *Runner {
	return &Runner{
		execCommand: func(dir, name string, args ...string) Commander {
			cmd := exec.Command(name, args...)
			cmd.Dir = dir
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			return cmd
		},
		UberenvPath: filepath.Join(sourceDir, "scripts", "uberenv", "uberenv.py"),
		SourceDir:   sourceDir,
	}
}

// InstallAll runs the installer for each spec in order. Every spec is
// attempted regardless of earlier failures; the returned error aggregates
// the failures and is nil only when all specs succeeded.
func (r *Runner) InstallAll(buildsDir string, specs []string) ([]Result, error) {
	results := make([]Result, 0, len(specs))

	var errs *multierror.Error

	for _, spec := range specs {
		fmt.Printf("[Installing TPLs for spec %s into %s]\n", spec, buildsDir)

		err := r.install(buildsDir, spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[Spec %s failed: %v]\n", spec, err)
			errs = multierror.Append(errs, fmt.Errorf("spec %s: %w", spec, err))
		} else {
			fmt.Printf("[Spec %s succeeded]\n", spec)
		}

		results = append(results, Result{Spec: spec, Err: err})
	}

	return results, errs.ErrorOrNil()
}

func (r *Runner) install(buildsDir, spec string) error {
	args := []string{"--prefix", buildsDir, "--spec", spec}

	return r.execCommand(r.SourceDir, r.UberenvPath, args...).Run()
}
