// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatTelefone renders a stored phone number for display. Eleven
// digits get the mobile mask, ten the landline mask. Anything else is
// shown as stored; empty becomes a dash.
func FormatTelefone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	digits := Digits(s)
	switch len(digits) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", digits[0:2], digits[2:7], digits[7:11])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", digits[0:2], digits[2:6], digits[6:10])
	default:
		return s
	}
}

// FormatData renders a service timestamp as dd/mm/yyyy. The service
// emits RFC 3339 or a bare date; unparseable input is shown as
// stored, empty becomes a dash.
func FormatData(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "-"
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("02/01/2006")
		}
	}
	return trimmed
}

// FormatDataHora renders a service timestamp as dd/mm/yyyy hh:mm.
// Falls back like FormatData.
func FormatDataHora(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "-"
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("02/01/2006 15:04")
		}
	}
	return FormatData(trimmed)
}

// FormatValor renders a stored decimal value as Brazilian currency.
// The service stores values with a dot decimal separator; display
// uses a comma. Empty or unparseable values become a dash.
func FormatValor(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "-"
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", "."), 64)
	if err != nil {
		return "-"
	}
	return "R$ " + strings.ReplaceAll(fmt.Sprintf("%.2f", value), ".", ",")
}
