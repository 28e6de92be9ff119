// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/assistec/fichas/lib/api"
)

func TestSaveAndLoadSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	session := &OperatorSession{
		Usuario:   "admin",
		Token:     "tok-123",
		ServerURL: "https://os.assistec.example",
	}
	if err := SaveSessionTo(session, path); err != nil {
		t.Fatalf("SaveSessionTo: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if got := info.Mode().Perm(); got != 0o600 {
			t.Errorf("session file mode = %o, want 600", got)
		}
	}

	loaded, err := LoadSessionFrom(path)
	if err != nil {
		t.Fatalf("LoadSessionFrom: %v", err)
	}
	if *loaded != *session {
		t.Errorf("loaded = %+v, want %+v", loaded, session)
	}
}

func TestLoadSessionMissingFile(t *testing.T) {
	_, err := LoadSessionFrom(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestLoadSessionRejectsIncomplete(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing usuario", `{"token": "t", "server_url": "https://x"}`},
		{"missing token", `{"usuario": "admin", "server_url": "https://x"}`},
		{"missing server", `{"usuario": "admin", "token": "t"}`},
		{"not json", `token=t`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session.json")
			if err := os.WriteFile(path, []byte(test.content), 0o600); err != nil {
				t.Fatalf("writing: %v", err)
			}
			if _, err := LoadSessionFrom(path); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}

func TestClearSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatalf("writing: %v", err)
	}
	if err := ClearSession(path); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("session file still present: %v", err)
	}

	// Clearing an absent session is not an error.
	if err := ClearSession(path); err != nil {
		t.Errorf("ClearSession on missing file: %v", err)
	}
}

func TestSessionFilePathEnvOverride(t *testing.T) {
	t.Setenv("FICHAS_SESSION_FILE", "/tmp/fichas-session.json")
	path, err := SessionFilePath()
	if err != nil {
		t.Fatalf("SessionFilePath: %v", err)
	}
	if path != "/tmp/fichas-session.json" {
		t.Errorf("path = %q", path)
	}

	t.Setenv("FICHAS_SESSION_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", "/home/oficina/.config")
	path, err = SessionFilePath()
	if err != nil {
		t.Fatalf("SessionFilePath: %v", err)
	}
	if path != "/home/oficina/.config/fichas/session.json" {
		t.Errorf("path = %q", path)
	}
}

func TestCategorize(t *testing.T) {
	wrap := func(status int) error {
		return fmt.Errorf("get ficha detail: %w", &api.APIError{StatusCode: status})
	}
	tests := []struct {
		err  error
		want ErrorCategory
	}{
		{errors.New("dial tcp: connection refused"), CategoryTransient},
		{wrap(http.StatusUnprocessableEntity), CategoryValidation},
		{wrap(http.StatusNotFound), CategoryNotFound},
		{wrap(http.StatusUnauthorized), CategoryForbidden},
		{wrap(http.StatusConflict), CategoryConflict},
		{wrap(http.StatusBadGateway), CategoryTransient},
	}
	for _, test := range tests {
		if got := Categorize(test.err).Category; got != test.want {
			t.Errorf("Categorize(%v) = %s, want %s", test.err, got, test.want)
		}
	}
}
