package logging

import (
	"path/filepath"
	"testing"
)

func TestNewDefaultOptions(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("smoke")
	_ = logger.Sync()
}

func TestNewWithFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linguava.log")
	logger, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("file sink smoke")
	_ = logger.Sync()
}

func TestNewRejectsInvalidLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}
