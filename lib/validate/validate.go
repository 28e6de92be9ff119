// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// Package validate holds the field validators and display formatters
// for client and ficha forms. Validators return a Portuguese message
// suitable for inline display, or "" when the value is acceptable.
package validate

import (
	"regexp"
	"strings"
)

var (
	nomePattern     = regexp.MustCompile(`^[\p{L}\p{M} ]+$`)
	emailPattern    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	enderecoPattern = regexp.MustCompile(`^[\p{L}\p{M}\p{N} .,'\-/#ºª°]+$`)
	numeroPattern   = regexp.MustCompile(`^\d+$`)
	digitPattern    = regexp.MustCompile(`\D`)
)

// Digits strips every non-digit rune from s.
func Digits(s string) string {
	return digitPattern.ReplaceAllString(s, "")
}

// Nome validates a person name: required, letters and spaces only.
func Nome(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "nome é obrigatório"
	}
	if !nomePattern.MatchString(trimmed) {
		return "nome deve conter apenas letras"
	}
	return ""
}

// Telefone validates a phone number: required, at least 10 digits
// after stripping formatting.
func Telefone(s string) string {
	digits := Digits(s)
	if digits == "" {
		return "telefone é obrigatório"
	}
	if len(digits) < 10 {
		return "telefone deve ter ao menos 10 dígitos"
	}
	return ""
}

// Email validates an email address. Empty is acceptable; the field is
// optional.
func Email(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if !emailPattern.MatchString(trimmed) {
		return "email inválido"
	}
	return ""
}

// Endereco validates a street address. Empty is acceptable.
func Endereco(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if !enderecoPattern.MatchString(trimmed) {
		return "endereço contém caracteres inválidos"
	}
	return ""
}

// Numero validates a street number: digits only. Empty is acceptable.
func Numero(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if !numeroPattern.MatchString(trimmed) {
		return "número deve conter apenas dígitos"
	}
	return ""
}

// Bairro validates a neighborhood name: letters and spaces. Empty is
// acceptable.
func Bairro(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if !nomePattern.MatchString(trimmed) {
		return "bairro deve conter apenas letras"
	}
	return ""
}

// Required validates that a free-text field is non-blank. Used for
// equipamento and defeito on the ficha form.
func Required(label, s string) string {
	if strings.TrimSpace(s) == "" {
		return label + " é obrigatório"
	}
	return ""
}
