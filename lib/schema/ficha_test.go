// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "testing"

func TestStatusValid(t *testing.T) {
	t.Parallel()
	for _, status := range AllStatuses {
		if !status.Valid() {
			t.Errorf("status %q: Valid() = false, want true", status)
		}
	}
	for _, bogus := range []Status{"", "aberta", "PERDIDA"} {
		if bogus.Valid() {
			t.Errorf("status %q: Valid() = true, want false", bogus)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	t.Parallel()
	terminal := map[Status]bool{
		StatusEntregue:  true,
		StatusCancelada: true,
	}
	for _, status := range AllStatuses {
		if got, want := status.Terminal(), terminal[status]; got != want {
			t.Errorf("status %q: Terminal() = %v, want %v", status, got, want)
		}
	}
}

func TestFichaMergeKeepsUnpatchedFields(t *testing.T) {
	t.Parallel()
	existing := Ficha{
		ID:          7,
		Codigo:      "AB12CD",
		ClienteID:   3,
		ClienteNome: "Marta Reis",
		Equipamento: "Notebook",
		Defeito:     "Não liga",
		Status:      StatusAberta,
		Valor:       "250.00",
		CriadoEm:    "2026-08-01T10:00:00Z",
	}
	incoming := Ficha{
		ID:           7,
		Status:       StatusEmReparo,
		Valor:        "310.00",
		AtualizadoEm: "2026-08-02T09:30:00Z",
	}
	merged := existing.Merge(incoming)

	if merged.Status != StatusEmReparo {
		t.Errorf("Status = %q, want %q", merged.Status, StatusEmReparo)
	}
	if merged.Valor != "310.00" {
		t.Errorf("Valor = %q, want %q", merged.Valor, "310.00")
	}
	if merged.ClienteNome != "Marta Reis" {
		t.Errorf("ClienteNome = %q, want %q (must survive partial response)", merged.ClienteNome, "Marta Reis")
	}
	if merged.Defeito != "Não liga" {
		t.Errorf("Defeito = %q, want retained", merged.Defeito)
	}
	if merged.Codigo != "AB12CD" {
		t.Errorf("Codigo = %q, want retained", merged.Codigo)
	}
	if merged.CriadoEm != existing.CriadoEm {
		t.Errorf("CriadoEm = %q, want retained", merged.CriadoEm)
	}
}

func TestFichaMergeIgnoresInvalidStatus(t *testing.T) {
	t.Parallel()
	existing := Ficha{ID: 1, Status: StatusEmAnalise}
	merged := existing.Merge(Ficha{ID: 1})
	if merged.Status != StatusEmAnalise {
		t.Errorf("Status = %q, want %q", merged.Status, StatusEmAnalise)
	}
}

func TestFichaPatchEmpty(t *testing.T) {
	t.Parallel()
	var patch FichaPatch
	if !patch.Empty() {
		t.Error("zero patch: Empty() = false, want true")
	}
	status := StatusFinalizada
	patch.Status = &status
	if patch.Empty() {
		t.Error("patch with status: Empty() = true, want false")
	}
}

func TestClienteMerge(t *testing.T) {
	t.Parallel()
	existing := Cliente{ID: 4, Nome: "João Prado", Telefone: "11987654321", Cidade: "Campinas"}
	merged := existing.Merge(Cliente{ID: 4, Telefone: "1133224455"})
	if merged.Telefone != "1133224455" {
		t.Errorf("Telefone = %q, want updated", merged.Telefone)
	}
	if merged.Nome != "João Prado" || merged.Cidade != "Campinas" {
		t.Errorf("unpatched fields changed: %+v", merged)
	}
}
