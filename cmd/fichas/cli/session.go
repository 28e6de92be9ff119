// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// OperatorSession is the persisted login state. It lives in a file
// with 0600 permissions under the operator's config directory.
type OperatorSession struct {
	// Usuario is the operator's login name.
	Usuario string `json:"usuario"`

	// Token is the bearer token from the last login.
	Token string `json:"token"`

	// ServerURL is the service the token belongs to. A session is
	// only valid against the server that issued it.
	ServerURL string `json:"server_url"`
}

// SessionFilePath returns the session file location:
// FICHAS_SESSION_FILE when set, otherwise
// $XDG_CONFIG_HOME/fichas/session.json, otherwise
// ~/.config/fichas/session.json.
func SessionFilePath() (string, error) {
	if path := os.Getenv("FICHAS_SESSION_FILE"); path != "" {
		return path, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "fichas", "session.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "fichas", "session.json"), nil
}

// ErrNoSession reports that no session file exists. Callers turn this
// into a login prompt, not an error message.
var ErrNoSession = errors.New("no saved session")

// LoadSessionFrom reads and validates a session file.
func LoadSessionFrom(path string) (*OperatorSession, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var session OperatorSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	if session.Usuario == "" {
		return nil, fmt.Errorf("session file %s: missing usuario", path)
	}
	if session.Token == "" {
		return nil, fmt.Errorf("session file %s: missing token", path)
	}
	if session.ServerURL == "" {
		return nil, fmt.Errorf("session file %s: missing server_url", path)
	}
	return &session, nil
}

// SaveSessionTo writes the session with owner-only permissions,
// creating the parent directory as needed.
func SaveSessionTo(session *OperatorSession, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// ClearSession removes the session file. Missing files are fine; the
// goal state is "no session".
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
