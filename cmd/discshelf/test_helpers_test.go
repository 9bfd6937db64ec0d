package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir      string
	configPath   string
	workbookPath string
	journalPath  string
	logDir       string
}

// setupCLITestEnv isolates HOME and writes a config pointing every path into
// a temp directory. An empty workbook name leaves workbook.path unset.
func setupCLITestEnv(t *testing.T, workbookName string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("DISCSHELF_WORKBOOK", "")

	env := &cliTestEnv{
		baseDir:     base,
		configPath:  filepath.Join(base, "discshelf.toml"),
		journalPath: filepath.Join(base, "state", "journal.db"),
		logDir:      filepath.Join(base, "logs"),
	}
	if workbookName != "" {
		env.workbookPath = filepath.Join(base, workbookName)
	}
	writeTestConfig(t, env)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	content := fmt.Sprintf(
		"[workbook]\npath = %q\nbackup_count = 2\nlock_timeout_seconds = 1\nsave_timeout_seconds = 5\n\n"+
			"[journal]\nenabled = true\npath = %q\n\n[logging]\nlevel = \"debug\"\ndir = %q\n",
		env.workbookPath,
		env.journalPath,
		env.logDir,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRunCLI(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out, _, err := runCLI(t, args, env.configPath)
	if err != nil {
		t.Fatalf("discshelf %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
