// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// LogEntry is one row of the service's activity log: who did what,
// to which record, and when.
type LogEntry struct {
	ID       int64  `json:"id"`
	Usuario  string `json:"usuario"`
	Acao     string `json:"acao"`
	Detalhe  string `json:"detalhe,omitempty"`
	CriadoEm string `json:"criado_em"`
}

// MonthlyStat is one bucket of the dashboard statistics: the number
// of fichas opened in a calendar month. Key is "YYYY-MM"; Mes is the
// display label the service precomputes ("Jan/2026").
type MonthlyStat struct {
	Mes   string `json:"mes"`
	Key   string `json:"key"`
	Total int    `json:"total"`
}

// Usuario is the authenticated operator's profile.
type Usuario struct {
	ID         int64  `json:"id"`
	Usuario    string `json:"usuario"`
	Nome       string `json:"nome,omitempty"`
	FotoPerfil string `json:"foto_perfil,omitempty"`
}
