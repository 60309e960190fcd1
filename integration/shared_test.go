//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedWefarmPath holds the path to a shared wefarm binary built once for all tests.
	sharedWefarmPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getWefarmBinary returns the path to the wefarm binary, building it once if needed.
func getWefarmBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "wefarm-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		wefarmPath := filepath.Join(tempDir, "wefarm")
		buildCmd := exec.Command("go", "build", "-o", wefarmPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build wefarm: %v", err))
		}

		sharedWefarmPath = wefarmPath
	})

	return sharedWefarmPath
}

// runWefarmCommand runs the shared binary from dir and logs output on failure.
func runWefarmCommand(t *testing.T, dir string, args ...string) error {
	wefarmPath := getWefarmBinary()
	cmd := exec.Command(wefarmPath, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
