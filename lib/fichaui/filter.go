// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package fichaui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/assistec/fichas/lib/api"
	"github.com/assistec/fichas/lib/tui"
)

// FilterModel is the filter input on the record tabs. Unlike a
// client-side narrowing filter, the text here describes a server-side
// query: edits are debounced and each fire round-trips to the
// service through the tab's pager.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus
	// (the user pressed / to start typing).
	Active bool
}

// HandleRune processes a character typed while the filter is active.
// Returns true if the input changed.
func (filter *FilterModel) HandleRune(character rune) bool {
	filter.Input += string(character)
	return true
}

// HandleBackspace removes the last character from the filter input.
// Returns true if the input changed.
func (filter *FilterModel) HandleBackspace() bool {
	if len(filter.Input) == 0 {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter input and deactivates it.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar. When active, shows the input with a
// cursor. When inactive with text, shows the filter text dimmed.
// When inactive with no text, returns empty string (hidden).
func (filter *FilterModel) View(theme tui.Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(width)

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return style.Render(" / " + filter.Input + cursor)
	}

	dimStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width)
	return dimStyle.Render(" filtro: " + filter.Input)
}

// ParseFichaQuery splits a fichas filter string into free text and
// structured fields. The tokens "de:YYYY-MM-DD" and "ate:YYYY-MM-DD"
// become the date range; everything else rejoins as the free-text
// query. Malformed date tokens pass through as free text so the
// operator sees the service match nothing rather than a hidden
// filter.
func ParseFichaQuery(input string) api.FichaFilter {
	var filter api.FichaFilter
	var free []string
	for _, token := range strings.Fields(input) {
		switch {
		case strings.HasPrefix(token, "de:") && isISODate(token[len("de:"):]):
			filter.DataIni = token[len("de:"):]
		case strings.HasPrefix(token, "ate:") && isISODate(token[len("ate:"):]):
			filter.DataFim = token[len("ate:"):]
		default:
			free = append(free, token)
		}
	}
	filter.Query = strings.Join(free, " ")
	return filter
}

func isISODate(s string) bool {
	if len(s) != len("2026-01-31") {
		return false
	}
	for i, character := range s {
		if i == 4 || i == 7 {
			if character != '-' {
				return false
			}
			continue
		}
		if character < '0' || character > '9' {
			return false
		}
	}
	return true
}
