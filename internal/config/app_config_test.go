package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/repokit/internal/utils"
)

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func prepareHome(t *testing.T, globalContent string) string {
	t.Helper()
	homeDir := t.TempDir()
	if globalContent != "" {
		configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatalf("create config dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(configDir, utils.GlobalConfigFileName), []byte(globalContent), 0o600); err != nil {
			t.Fatalf("write global config: %v", err)
		}
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	return homeDir
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	prepareHome(t, "toc:\n  format: json\n  summary: Contents\ntree:\n  ignore: [vendor]\n  summary: true\n")
	workingDir := t.TempDir()
	localContent := "toc:\n  format: html\n  parser: markdown\ntree:\n  use_default_ignore: false\n  ignore_file: .layoutignore\n  clipboard: true\n"
	if err := os.WriteFile(filepath.Join(workingDir, utils.ConfigFileName), []byte(localContent), 0o600); err != nil {
		t.Fatalf("write local config: %v", err)
	}

	loaded, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}

	if loaded.TOC.Format != "html" || loaded.TOC.Parser != "markdown" || loaded.TOC.Summary != "Contents" {
		t.Fatalf("unexpected toc configuration: %+v", loaded.TOC)
	}
	if !reflect.DeepEqual(loaded.Tree.Ignore, []string{"vendor"}) {
		t.Fatalf("expected global ignore list to survive, got %v", loaded.Tree.Ignore)
	}
	if loaded.Tree.UseDefaultIgnore == nil || *loaded.Tree.UseDefaultIgnore {
		t.Fatalf("expected use_default_ignore=false, got %v", loaded.Tree.UseDefaultIgnore)
	}
	if loaded.Tree.Summary == nil || !*loaded.Tree.Summary {
		t.Fatalf("expected summary from global configuration")
	}
	if loaded.Tree.Clipboard == nil || !*loaded.Tree.Clipboard {
		t.Fatalf("expected clipboard from local configuration")
	}
	if expected := filepath.Join(workingDir, ".layoutignore"); loaded.Tree.IgnoreFile != expected {
		t.Fatalf("expected ignore file %s, got %s", expected, loaded.Tree.IgnoreFile)
	}
}

func TestLoadApplicationConfigurationExplicitPath(t *testing.T) {
	prepareHome(t, "")
	workingDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workingDir, "custom.yaml"), []byte("toc:\n  file: docs/INDEX.md\n"), 0o600); err != nil {
		t.Fatalf("write explicit config: %v", err)
	}

	loaded, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir, ExplicitFilePath: "custom.yaml"})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	if loaded.TOC.File != "docs/INDEX.md" {
		t.Fatalf("unexpected toc file %q", loaded.TOC.File)
	}

	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir, ExplicitFilePath: "absent.yaml"}); err == nil {
		t.Fatalf("expected error for missing explicit configuration")
	}
}

func TestLoadApplicationConfigurationWithoutFiles(t *testing.T) {
	prepareHome(t, "")
	loaded, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	if !reflect.DeepEqual(loaded.TOC, TOCConfiguration{}) || loaded.Tree.Format != "" || loaded.Tree.UseDefaultIgnore != nil {
		t.Fatalf("expected empty configuration, got %+v", loaded)
	}
}

func TestMergeKeepsUnsetFields(t *testing.T) {
	base := ApplicationConfiguration{Tree: TreeConfiguration{Format: "json", Summary: boolPointer(true)}}
	merged := base.Merge(ApplicationConfiguration{Tree: TreeConfiguration{Summary: boolPointer(false)}})
	if merged.Tree.Format != "json" || merged.Tree.Summary == nil || *merged.Tree.Summary {
		t.Fatalf("unexpected merge result: %+v", merged.Tree)
	}
	if *base.Tree.Summary != true {
		t.Fatalf("merge mutated the receiver")
	}
}
