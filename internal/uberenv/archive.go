package uberenv

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"
)

// TimestampFormat names archive directories; underscores keep the names
// shell and filesystem friendly
const TimestampFormat = "2006_01_02_15_04_05"

// Timestamp returns the current time in archive directory form
func Timestamp() string {
	return time.Now().Format(TimestampFormat)
}

// DefaultJobName builds the archive job name from the current username
func DefaultJobName() string {
	name := "unknown"

	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	} else if env := os.Getenv("USER"); env != "" {
		name = env
	}

	return name + "/cbt-tpl"
}

// ArchiveLogs copies build and test logs found under srcDir into
// <archiveRoot>/<jobName>/<timestamp>, preserving their relative paths
func ArchiveLogs(srcDir, archiveRoot, jobName, timestamp string) error {
	destDir := filepath.Join(archiveRoot, jobName, timestamp)

	fmt.Printf("[Archiving logs from %s to %s]\n", srcDir, destDir)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !isLogFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		if err := copyFile(path, filepath.Join(destDir, rel)); err != nil {
			return fmt.Errorf("failed to archive %s: %w", rel, err)
		}

		return nil
	})
}

// isLogFile matches installer and test logs (output.log, output.log.error,
// Test.xml style files)
func isLogFile(name string) bool {
	if strings.HasSuffix(name, ".log") || strings.Contains(name, ".log.") {
		return true
	}

	return name == "Test.xml"
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer srcFile.Close()

	// Create parent directory if needed
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	// Preserve file permissions
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.Chmod(dst, srcInfo.Mode())
}
