// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "strings"

// Cliente is a registered customer of the shop.
type Cliente struct {
	ID       int64  `json:"id"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
	Endereco string `json:"endereco"`
	Numero   string `json:"numero"`
	Bairro   string `json:"bairro"`
	Cidade   string `json:"cidade"`
	CriadoEm string `json:"criado_em"`
}

// ClienteInput is the request body for creating or updating a client.
// All fields are sent; validation happens before the request is built.
type ClienteInput struct {
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Email    string `json:"email,omitempty"`
	Endereco string `json:"endereco,omitempty"`
	Numero   string `json:"numero,omitempty"`
	Bairro   string `json:"bairro,omitempty"`
	Cidade   string `json:"cidade,omitempty"`
}

// ClienteDetail is the response envelope for a single-client read:
// the client record plus every ficha registered to it.
type ClienteDetail struct {
	Cliente Cliente `json:"cliente"`
	Fichas  []Ficha `json:"fichas"`
}

// Merge returns a copy of c with every non-empty field of incoming
// applied over it. Empty incoming fields keep the existing value, so
// a partial server response cannot blank out locally known data.
func (c Cliente) Merge(incoming Cliente) Cliente {
	merged := c
	if incoming.ID != 0 {
		merged.ID = incoming.ID
	}
	for _, field := range []struct {
		dst *string
		src string
	}{
		{&merged.Nome, incoming.Nome},
		{&merged.Telefone, incoming.Telefone},
		{&merged.Email, incoming.Email},
		{&merged.Endereco, incoming.Endereco},
		{&merged.Numero, incoming.Numero},
		{&merged.Bairro, incoming.Bairro},
		{&merged.Cidade, incoming.Cidade},
		{&merged.CriadoEm, incoming.CriadoEm},
	} {
		if strings.TrimSpace(field.src) != "" {
			*field.dst = field.src
		}
	}
	return merged
}
