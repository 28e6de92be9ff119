// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fichas.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  url: https://os.assistec.example
log:
  level: debug
ui:
  split_percent: 60
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Server.URL != "https://os.assistec.example" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.UI.SplitPercent != 60 {
		t.Errorf("UI.SplitPercent = %d, want 60", cfg.UI.SplitPercent)
	}
	if cfg.UI.Mouse == nil || !*cfg.UI.Mouse {
		t.Error("UI.Mouse default lost on merge")
	}
}

func TestLoadFileExpandsVariables(t *testing.T) {
	t.Setenv("FICHAS_TEST_HOME", "/home/oficina")
	path := writeConfig(t, `
session:
  file: ${FICHAS_TEST_HOME}/.config/fichas/session.json
log:
  file: ${FICHAS_TEST_MISSING:-/tmp/fichas.log}
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Session.File != "/home/oficina/.config/fichas/session.json" {
		t.Errorf("Session.File = %q", cfg.Session.File)
	}
	if cfg.Log.File != "/tmp/fichas.log" {
		t.Errorf("Log.File = %q, want the :- default", cfg.Log.File)
	}
}

func TestLoadFileRejectsBadValues(t *testing.T) {
	if _, err := LoadFile(writeConfig(t, "log:\n  level: loud\n")); err == nil {
		t.Error("bad log level accepted")
	}
	if _, err := LoadFile(writeConfig(t, "ui:\n  split_percent: 95\n")); err == nil {
		t.Error("out-of-range split accepted")
	}
}

func TestLoadRequiresEnvironment(t *testing.T) {
	t.Setenv("FICHAS_CONFIG", "")
	if _, err := Load(); err == nil {
		t.Error("Load without FICHAS_CONFIG: want error")
	}
}
