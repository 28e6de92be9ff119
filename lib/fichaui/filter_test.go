// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package fichaui

import (
	"testing"

	"github.com/assistec/fichas/lib/api"
)

func TestParseFichaQuery(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  api.FichaFilter
	}{
		{
			name:  "empty",
			input: "",
			want:  api.FichaFilter{},
		},
		{
			name:  "free text only",
			input: "notebook dell",
			want:  api.FichaFilter{Query: "notebook dell"},
		},
		{
			name:  "date range",
			input: "de:2026-01-01 ate:2026-01-31",
			want:  api.FichaFilter{DataIni: "2026-01-01", DataFim: "2026-01-31"},
		},
		{
			name:  "mixed text and dates",
			input: "tela de:2026-02-10 quebrada",
			want:  api.FichaFilter{Query: "tela quebrada", DataIni: "2026-02-10"},
		},
		{
			name:  "malformed date passes through",
			input: "de:2026-1-1",
			want:  api.FichaFilter{Query: "de:2026-1-1"},
		},
		{
			name:  "non numeric date passes through",
			input: "ate:aaaa-bb-cc",
			want:  api.FichaFilter{Query: "ate:aaaa-bb-cc"},
		},
		{
			name:  "bare prefix passes through",
			input: "de: ate:",
			want:  api.FichaFilter{Query: "de: ate:"},
		},
		{
			name:  "later token wins",
			input: "de:2026-01-01 de:2026-02-01",
			want:  api.FichaFilter{DataIni: "2026-02-01"},
		},
		{
			name:  "extra whitespace collapses",
			input: "  tela   quebrada  ",
			want:  api.FichaFilter{Query: "tela quebrada"},
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			got := ParseFichaQuery(testCase.input)
			if got != testCase.want {
				t.Errorf("ParseFichaQuery(%q) = %+v, want %+v",
					testCase.input, got, testCase.want)
			}
		})
	}
}

func TestFilterModelEditing(t *testing.T) {
	var filter FilterModel
	filter.Active = true

	for _, r := range "telão" {
		filter.HandleRune(r)
	}
	if filter.Input != "telão" {
		t.Fatalf("input = %q, want telão", filter.Input)
	}

	// Backspace is rune-wise, not byte-wise.
	if !filter.HandleBackspace() {
		t.Fatal("backspace on non-empty input reported no change")
	}
	if filter.Input != "telã" {
		t.Errorf("after backspace: input = %q, want telã", filter.Input)
	}

	filter.Clear()
	if filter.Input != "" || filter.Active {
		t.Errorf("after clear: input = %q active = %v", filter.Input, filter.Active)
	}
	if filter.HandleBackspace() {
		t.Error("backspace on empty input reported a change")
	}
}
