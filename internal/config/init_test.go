package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/repokit/internal/utils"
)

func TestInitializeConfigurationLocalRoundTrip(t *testing.T) {
	prepareHome(t, "")
	workingDir := t.TempDir()

	path, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDir})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	if path != filepath.Join(workingDir, utils.ConfigFileName) {
		t.Fatalf("unexpected path %s", path)
	}

	loaded, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir})
	if err != nil {
		t.Fatalf("loading written configuration: %v", err)
	}
	if loaded.TOC.File != utils.DefaultReadmeFileName || loaded.TOC.Format != "html" || loaded.Tree.Format != "raw" {
		t.Fatalf("unexpected defaults: %+v", loaded)
	}
	if loaded.Tree.UseDefaultIgnore == nil || !*loaded.Tree.UseDefaultIgnore {
		t.Fatalf("expected default ignore list enabled")
	}

	if _, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected error when configuration exists")
	}
	if _, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDir, Force: true}); err != nil {
		t.Fatalf("expected force to overwrite: %v", err)
	}
}

func TestInitializeConfigurationGlobal(t *testing.T) {
	homeDir := prepareHome(t, "")
	path, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expected := filepath.Join(homeDir, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
	if path != expected {
		t.Fatalf("expected %s, got %s", expected, path)
	}
	if _, statErr := os.Stat(expected); statErr != nil {
		t.Fatalf("global configuration not written: %v", statErr)
	}
}

func TestInitializeConfigurationRejectsUnknownTarget(t *testing.T) {
	if _, err := InitializeConfiguration(InitOptions{Target: "remote"}); err == nil {
		t.Fatalf("expected error for unknown target")
	}
}
