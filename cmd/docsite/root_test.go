package main

import (
	"context"
	"log/slog"
	"testing"
)

func resetSettings(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		cfgFile, logJSON, verbose, quiet = "", false, false, false
		logger = nil
	})
}

func TestInitializeSettingsDefaults(t *testing.T) {
	resetSettings(t)
	if err := initializeSettings(rootCmd, nil); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger to be installed")
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug logging off by default")
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info logging by default")
	}
}

func TestInitializeSettingsEnv(t *testing.T) {
	resetSettings(t)
	t.Setenv("DOCSITE_VERBOSE", "true")
	t.Setenv("DOCSITE_CONFIG_FILE", "alt.yml")

	if err := initializeSettings(rootCmd, nil); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !verbose {
		t.Error("expected DOCSITE_VERBOSE to enable verbose logging")
	}
	if cfgFile != "alt.yml" {
		t.Errorf("expected config file from environment, got %q", cfgFile)
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug logging when verbose")
	}
}

func TestInitializeSettingsQuiet(t *testing.T) {
	resetSettings(t)
	t.Setenv("DOCSITE_QUIET", "1")

	if err := initializeSettings(rootCmd, nil); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info logging suppressed when quiet")
	}
	if !logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("expected warnings kept when quiet")
	}
}
