// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadDocumentOverLimit(t *testing.T) {
	t.Parallel()
	oversized := bytes.NewReader(make([]byte, int(MaxDocumentSize)+1))
	if _, err := ReadDocument(oversized); err == nil {
		t.Fatal("ReadDocument over limit: want error, got nil")
	}
}

func TestReadDocumentAtLimit(t *testing.T) {
	t.Parallel()
	payload := make([]byte, 4096)
	data, err := ReadDocument(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if len(data) != len(payload) {
		t.Errorf("len = %d, want %d", len(data), len(payload))
	}
}

func TestErrorBody(t *testing.T) {
	t.Parallel()
	if got := ErrorBody(strings.NewReader("ficha não encontrada")); got != "ficha não encontrada" {
		t.Errorf("ErrorBody = %q", got)
	}
}
