// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package validate

import "testing"

func TestFormatTelefone(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  string
	}{
		{"11987654321", "(11) 98765-4321"},
		{"1133224455", "(11) 3322-4455"},
		{"(11) 98765-4321", "(11) 98765-4321"},
		{"123", "123"},
		{"", "-"},
		{"   ", "-"},
	}
	for _, test := range tests {
		if got := FormatTelefone(test.input); got != test.want {
			t.Errorf("FormatTelefone(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestTelefone(t *testing.T) {
	t.Parallel()
	if msg := Telefone("(11) 3322-4455"); msg != "" {
		t.Errorf("Telefone with mask: got %q, want valid", msg)
	}
	if msg := Telefone("123456789"); msg == "" {
		t.Error("Telefone with 9 digits: want error, got valid")
	}
	if msg := Telefone(""); msg == "" {
		t.Error("Telefone empty: want error, got valid")
	}
}

func TestNome(t *testing.T) {
	t.Parallel()
	if msg := Nome("José da Silva"); msg != "" {
		t.Errorf("accented name: got %q, want valid", msg)
	}
	if msg := Nome("R2D2"); msg == "" {
		t.Error("name with digits: want error, got valid")
	}
	if msg := Nome("  "); msg == "" {
		t.Error("blank name: want error, got valid")
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()
	if msg := Email("ana@example.com"); msg != "" {
		t.Errorf("valid email: got %q", msg)
	}
	if msg := Email("not-an-email"); msg == "" {
		t.Error("bogus email: want error, got valid")
	}
	if msg := Email(""); msg != "" {
		t.Errorf("empty email is optional: got %q", msg)
	}
}

func TestEndereco(t *testing.T) {
	t.Parallel()
	for _, ok := range []string{"Rua das Flores, 10 - casa 2/B", "Av. 9 de Julho nº 150", ""} {
		if msg := Endereco(ok); msg != "" {
			t.Errorf("Endereco(%q): got %q, want valid", ok, msg)
		}
	}
	if msg := Endereco("Rua <script>"); msg == "" {
		t.Error("address with angle brackets: want error, got valid")
	}
}

func TestNumero(t *testing.T) {
	t.Parallel()
	if msg := Numero("1024"); msg != "" {
		t.Errorf("Numero(1024): got %q", msg)
	}
	if msg := Numero("12b"); msg == "" {
		t.Error("Numero(12b): want error, got valid")
	}
}

func TestFormatValor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  string
	}{
		{"250", "R$ 250,00"},
		{"310.5", "R$ 310,50"},
		{"99,90", "R$ 99,90"},
		{"", "-"},
		{"abc", "-"},
	}
	for _, test := range tests {
		if got := FormatValor(test.input); got != test.want {
			t.Errorf("FormatValor(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestFormatData(t *testing.T) {
	t.Parallel()
	if got := FormatData("2026-08-15T10:30:00Z"); got != "15/08/2026" {
		t.Errorf("FormatData = %q, want 15/08/2026", got)
	}
	if got := FormatData("2026-08-15"); got != "15/08/2026" {
		t.Errorf("FormatData bare date = %q, want 15/08/2026", got)
	}
	if got := FormatData(""); got != "-" {
		t.Errorf("FormatData empty = %q, want -", got)
	}
}
