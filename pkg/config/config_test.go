package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `ynab:
  token: test-token
  budget_id: budget-1
  account_id: acc-1
memo:
  separator: " // "
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Build(path, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if cfg.YNAB.Token != "test-token" || cfg.YNAB.BudgetID != "budget-1" || cfg.YNAB.AccountID != "acc-1" {
		t.Errorf("YNAB config mismatch: %+v", cfg.YNAB)
	}
	if cfg.Memo.Separator != " // " {
		t.Errorf("Expected custom separator, got %q", cfg.Memo.Separator)
	}
}

// chdir changes the working directory for the duration of the test; it is a
// stand-in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("Chdir back failed: %v", err)
		}
	})
}

func TestBuildDefaultsWithoutConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Build("", nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.Memo.Separator != " | " {
		t.Errorf("Expected default separator, got %q", cfg.Memo.Separator)
	}
}

func TestBuildRejectsMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	broken := "ynab: [unclosed"

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(broken), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// Explicit file.
	if _, err := Build(path, nil); err == nil {
		t.Errorf("Expected error for malformed explicit config file")
	}

	// Found via the search path.
	chdir(t, dir)
	if _, err := Build("", nil); err == nil {
		t.Errorf("Expected error for malformed config.yaml in the search path")
	}
}

func TestBuildMissingExplicitFile(t *testing.T) {
	if _, err := Build(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Errorf("Expected error for missing explicit config file")
	}
}
