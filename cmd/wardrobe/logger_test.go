package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelRouting(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, cleanup, err := newLogger(&stdout, &stderr, "")
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	defer cleanup()

	logger.Debug("hidden")
	logger.Info("item placed", "zone", "torso")
	logger.Warn("sign in failed")
	logger.With("planner", "p1").Error("failed to place item")

	if strings.Contains(stdout.String(), "hidden") {
		t.Error("debug records should be dropped")
	}
	if !strings.Contains(stdout.String(), "zone=torso") || !strings.Contains(stdout.String(), "sign in failed") {
		t.Errorf("expected info and warn on stdout, got %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "failed to place item") {
		t.Error("error records should not go to stdout")
	}
	if !strings.Contains(stderr.String(), "planner=p1") {
		t.Errorf("expected error with attrs on stderr, got %q", stderr.String())
	}
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wardrobe.log")
	var stdout, stderr bytes.Buffer

	logger, cleanup, err := newLogger(&stdout, &stderr, path)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("server started")
	logger.Error("server error")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "server started") || !strings.Contains(string(data), "server error") {
		t.Errorf("expected both levels in log file, got %q", data)
	}
}
