package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calder-lab/cbt/internal/config"
	"github.com/calder-lab/cbt/internal/history"
	"github.com/calder-lab/cbt/internal/uberenv"
	"github.com/calder-lab/cbt/internal/utils"
)

var tplCmd = &cobra.Command{
	Use:   "tpl",
	Short: "Install third-party libraries for a fleet of compilers",
	Long: `Runs the uberenv installer once per compiler spec. A failing spec does not
stop the remaining specs; the exit status is non-zero if any spec failed.

Known sites: ` + siteNames() + `.`,
	RunE:         runTPL,
	SilenceUsage: true,
}

func init() {
	tplCmd.Flags().String("site", "", "Named fleet site providing the builds directory and compiler specs")
	tplCmd.Flags().String("builds-dir", "", "Output directory for third-party-library builds (overrides the site's)")
	tplCmd.Flags().StringSlice("spec", nil, "Compiler spec of the form %<compiler>@<version> (repeatable, overrides the site's)")
	tplCmd.Flags().StringP("directory", "d", "", "Directory of source to run the installer from (defaults to the repository root; UBERENV_PREFIX overrides)")
	tplCmd.Flags().StringP("archive", "a", "", "Archive build logs under the given job name after installing")
	tplCmd.Flags().String("archive-root", "", "Root directory for archived logs (defaults to archived_logs next to the builds directory)")
	tplCmd.Flags().Bool("show-history", false, "Print recorded install results for the builds directory and exit")
}

func runTPL(cmd *cobra.Command, args []string) error {
	config.NewLoader().LoadForTPL()

	siteName, _ := cmd.Flags().GetString("site")
	buildsDir, _ := cmd.Flags().GetString("builds-dir")
	specs, _ := cmd.Flags().GetStringSlice("spec")
	showHistory, _ := cmd.Flags().GetBool("show-history")

	explicitSpecs := len(specs) > 0

	if siteName != "" {
		site, err := uberenv.LookupSite(siteName)
		if err != nil {
			return err
		}

		if buildsDir == "" {
			buildsDir = site.BuildsDir
		}

		if len(specs) == 0 {
			specs = site.Specs
		}
	}

	if showHistory {
		if buildsDir == "" {
			return fmt.Errorf("--show-history requires --site or --builds-dir")
		}

		buildsDir, err := filepath.Abs(buildsDir)
		if err != nil {
			return fmt.Errorf("invalid builds directory: %v", err)
		}

		// Only an explicit --spec narrows the listing; a site's spec list
		// is the install plan, not a history filter
		var filter []string
		if explicitSpecs {
			filter, err = utils.ParseSpecs(specs)
			if err != nil {
				return err
			}
		}

		return showTPLHistory(buildsDir, filter)
	}

	if buildsDir == "" || len(specs) == 0 {
		return fmt.Errorf("either --site or both --builds-dir and --spec are required")
	}

	buildsDir, err := filepath.Abs(buildsDir)
	if err != nil {
		return fmt.Errorf("invalid builds directory: %v", err)
	}

	specs, err = utils.ParseSpecs(specs)
	if err != nil {
		return err
	}

	srcDir, err := resolveSourceDir(cmd)
	if err != nil {
		return err
	}

	runner := newTPLRunner(srcDir)
	results, aggErr := runner.InstallAll(buildsDir, specs)

	recordResults(buildsDir, results)

	if cmd.Flags().Changed("archive") {
		jobName, _ := cmd.Flags().GetString("archive")
		if jobName == "" {
			jobName = uberenv.DefaultJobName()
		}

		archiveRoot := resolveArchiveRoot(cmd, buildsDir)

		if err := uberenv.ArchiveLogs(srcDir, archiveRoot, jobName, uberenv.Timestamp()); err != nil {
			return archiveFailure(aggErr, err)
		}
	}

	return aggErr
}

// newTPLRunner builds the installer runner, honoring the optional
// uberenv_path config setting
func newTPLRunner(srcDir string) *uberenv.Runner {
	runner := uberenv.NewRunner(srcDir)

	if path := viper.GetString("uberenv_path"); path != "" {
		runner.UberenvPath = path
	}

	return runner
}

// resolveArchiveRoot picks the archive destination: the --archive-root flag,
// then the archive_root config setting, then archived_logs next to the
// builds directory
func resolveArchiveRoot(cmd *cobra.Command, buildsDir string) string {
	root, _ := cmd.Flags().GetString("archive-root")

	if root == "" {
		root = viper.GetString("archive_root")
	}

	if root == "" {
		root = filepath.Join(filepath.Dir(buildsDir), "archived_logs")
	}

	return root
}

// archiveFailure folds an archive error into the run's aggregate status so
// neither is lost
func archiveFailure(aggErr, archiveErr error) error {
	return multierror.Append(aggErr, fmt.Errorf("archive: %w", archiveErr)).ErrorOrNil()
}

// resolveSourceDir picks the source tree the installer runs from: the
// --directory flag, then the UBERENV_PREFIX environment variable, then the
// repository root relative to the executable
func resolveSourceDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("directory")

	if dir == "" {
		dir = os.Getenv("UBERENV_PREFIX")
	}

	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate executable: %w", err)
		}

		dir = filepath.Join(filepath.Dir(exe), "..", "..")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid source directory: %v", err)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("source directory %q is not a valid directory", abs)
	}

	return abs, nil
}

// recordResults writes install outcomes to the history ledger. Failures
// here only warn; they never change the run's exit status.
func recordResults(buildsDir string, results []uberenv.Result) {
	h, err := history.Open(buildsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open history ledger: %v\n", err)
		return
	}
	defer h.Close()

	for _, res := range results {
		entry := history.Entry{
			Spec:      res.Spec,
			BuildsDir: buildsDir,
			Success:   res.Success(),
		}

		if res.Err != nil {
			entry.Error = res.Err.Error()
		}

		if err := h.Record(entry); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to record result for %s: %v\n", res.Spec, err)
		}
	}
}

// showTPLHistory prints the ledger for a builds directory, narrowed to the
// given specs when any were supplied
func showTPLHistory(buildsDir string, specs []string) error {
	h, err := history.Open(buildsDir)
	if err != nil {
		return err
	}
	defer h.Close()

	if len(specs) > 0 {
		for _, spec := range specs {
			entry, err := h.Get(buildsDir, spec)
			if err != nil {
				return err
			}

			if entry == nil {
				fmt.Printf("%-24s no record\n", spec)
				continue
			}

			printHistoryEntry(*entry)
		}

		return nil
	}

	entries, err := h.List()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No install results recorded.")
		return nil
	}

	for _, entry := range entries {
		printHistoryEntry(entry)
	}

	return nil
}

func printHistoryEntry(entry history.Entry) {
	status := "ok"
	if !entry.Success {
		status = "FAILED"
	}

	fmt.Printf("%-24s %-8s %s\n", entry.Spec, status, entry.Timestamp.Format(time.RFC3339))
}

func siteNames() string {
	var names []string
	for _, site := range uberenv.Sites() {
		names = append(names, site.Name)
	}

	return strings.Join(names, ", ")
}
