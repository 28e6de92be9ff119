// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "strings"

// Status is the lifecycle state of a ficha. Wire values are the
// service's uppercase Portuguese identifiers.
type Status string

const (
	StatusAberta         Status = "ABERTA"
	StatusEmAnalise      Status = "EM_ANALISE"
	StatusAguardandoPeca Status = "AGUARDANDO_PECA"
	StatusEmReparo       Status = "EM_REPARO"
	StatusFinalizada     Status = "FINALIZADA"
	StatusEntregue       Status = "ENTREGUE"
	StatusCancelada      Status = "CANCELADA"
)

// AllStatuses lists every status in lifecycle order. The order is
// what the dropdown and the filter cycle present.
var AllStatuses = []Status{
	StatusAberta,
	StatusEmAnalise,
	StatusAguardandoPeca,
	StatusEmReparo,
	StatusFinalizada,
	StatusEntregue,
	StatusCancelada,
}

// Valid reports whether s is one of the known wire values.
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable form shown in lists and dropdowns.
func (s Status) Label() string {
	switch s {
	case StatusAberta:
		return "Aberta"
	case StatusEmAnalise:
		return "Em análise"
	case StatusAguardandoPeca:
		return "Aguardando peça"
	case StatusEmReparo:
		return "Em reparo"
	case StatusFinalizada:
		return "Finalizada"
	case StatusEntregue:
		return "Entregue"
	case StatusCancelada:
		return "Cancelada"
	default:
		return string(s)
	}
}

// Terminal reports whether the status ends the repair lifecycle.
// Terminal fichas are excluded from the dashboard's open count.
func (s Status) Terminal() bool {
	return s == StatusEntregue || s == StatusCancelada
}

// Ficha is a repair ticket. Codigo is the public tracking code a
// customer can look up without authentication.
type Ficha struct {
	ID                int64  `json:"id"`
	Codigo            string `json:"codigo"`
	ClienteID         int64  `json:"cliente_id"`
	ClienteNome       string `json:"cliente_nome,omitempty"`
	Equipamento       string `json:"equipamento"`
	Marca             string `json:"marca,omitempty"`
	Modelo            string `json:"modelo,omitempty"`
	NumeroSerie       string `json:"numero_serie,omitempty"`
	Defeito           string `json:"defeito"`
	Acessorios        string `json:"acessorios,omitempty"`
	ObservacaoPublica string `json:"observacao_publica,omitempty"`
	ObservacaoPrivada string `json:"observacao_privada,omitempty"`
	Status            Status `json:"status"`
	Valor             string `json:"valor,omitempty"`
	PrevisaoEntrega   string `json:"previsao_entrega,omitempty"`
	FotoEntrada       string `json:"foto_entrada,omitempty"`
	CriadoEm          string `json:"criado_em"`
	AtualizadoEm      string `json:"atualizado_em,omitempty"`
}

// FichaInput is the request body for creating a ficha. The client is
// addressed by the URL path, not the body.
type FichaInput struct {
	Equipamento       string `json:"equipamento"`
	Marca             string `json:"marca,omitempty"`
	Modelo            string `json:"modelo,omitempty"`
	NumeroSerie       string `json:"numero_serie,omitempty"`
	Defeito           string `json:"defeito"`
	Acessorios        string `json:"acessorios,omitempty"`
	ObservacaoPublica string `json:"observacao_publica,omitempty"`
	ObservacaoPrivada string `json:"observacao_privada,omitempty"`
	Valor             string `json:"valor,omitempty"`
	PrevisaoEntrega   string `json:"previsao_entrega,omitempty"`
	FotoEntrada       string `json:"foto_entrada,omitempty"`
}

// FichaPatch is a partial update. Only the fields the service accepts
// for edits are present; nil pointers are omitted from the request so
// untouched fields keep their server-side values.
type FichaPatch struct {
	Status            *Status `json:"status,omitempty"`
	PrevisaoEntrega   *string `json:"previsao_entrega,omitempty"`
	Valor             *string `json:"valor,omitempty"`
	ObservacaoPublica *string `json:"observacao_publica,omitempty"`
	ObservacaoPrivada *string `json:"observacao_privada,omitempty"`
	Defeito           *string `json:"defeito,omitempty"`
	Acessorios        *string `json:"acessorios,omitempty"`
}

// Empty reports whether the patch carries no fields at all. Empty
// patches are not sent.
func (p FichaPatch) Empty() bool {
	return p.Status == nil && p.PrevisaoEntrega == nil && p.Valor == nil &&
		p.ObservacaoPublica == nil && p.ObservacaoPrivada == nil &&
		p.Defeito == nil && p.Acessorios == nil
}

// FichaDetail is the response envelope for a single-ficha read: the
// ficha, its client, and the activity log entries that touched it.
type FichaDetail struct {
	Ficha   Ficha      `json:"ficha"`
	Cliente Cliente    `json:"cliente"`
	Logs    []LogEntry `json:"logs"`
}

// Merge returns a copy of f with every non-empty field of incoming
// applied over it, field by field. The zero Status and empty strings
// in incoming leave the existing values untouched.
func (f Ficha) Merge(incoming Ficha) Ficha {
	merged := f
	if incoming.ID != 0 {
		merged.ID = incoming.ID
	}
	if incoming.ClienteID != 0 {
		merged.ClienteID = incoming.ClienteID
	}
	if incoming.Status.Valid() {
		merged.Status = incoming.Status
	}
	for _, field := range []struct {
		dst *string
		src string
	}{
		{&merged.Codigo, incoming.Codigo},
		{&merged.ClienteNome, incoming.ClienteNome},
		{&merged.Equipamento, incoming.Equipamento},
		{&merged.Marca, incoming.Marca},
		{&merged.Modelo, incoming.Modelo},
		{&merged.NumeroSerie, incoming.NumeroSerie},
		{&merged.Defeito, incoming.Defeito},
		{&merged.Acessorios, incoming.Acessorios},
		{&merged.ObservacaoPublica, incoming.ObservacaoPublica},
		{&merged.ObservacaoPrivada, incoming.ObservacaoPrivada},
		{&merged.Valor, incoming.Valor},
		{&merged.PrevisaoEntrega, incoming.PrevisaoEntrega},
		{&merged.FotoEntrada, incoming.FotoEntrada},
		{&merged.CriadoEm, incoming.CriadoEm},
		{&merged.AtualizadoEm, incoming.AtualizadoEm},
	} {
		if strings.TrimSpace(field.src) != "" {
			*field.dst = field.src
		}
	}
	return merged
}

// TrackingInfo is the public, unauthenticated view of a ficha
// returned by the tracking endpoint. Private observations and values
// are never present.
type TrackingInfo struct {
	Codigo            string `json:"codigo"`
	Equipamento       string `json:"equipamento"`
	Status            Status `json:"status"`
	ObservacaoPublica string `json:"observacao_publica,omitempty"`
	PrevisaoEntrega   string `json:"previsao_entrega,omitempty"`
	AtualizadoEm      string `json:"atualizado_em,omitempty"`
}
