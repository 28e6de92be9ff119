// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/assistec/fichas/lib/schema"
)

// Theme defines the color palette for the fichas terminal UI. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Lifecycle colors, one per ficha status.
	StatusAberta         lipgloss.Color
	StatusEmAnalise      lipgloss.Color
	StatusAguardandoPeca lipgloss.Color
	StatusEmReparo       lipgloss.Color
	StatusFinalizada     lipgloss.Color
	StatusEntregue       lipgloss.Color
	StatusCancelada      lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorText        lipgloss.Color
	NoticeText       lipgloss.Color

	// Animation accents: background tint for recently-changed rows.
	HotAccent lipgloss.Color

	// Modal and dropdown boxes.
	TooltipForeground lipgloss.Color
	TooltipBackground lipgloss.Color
}

// StatusColor returns the color for a ficha status. Unknown values
// get FaintText.
func (theme Theme) StatusColor(status schema.Status) lipgloss.Color {
	switch status {
	case schema.StatusAberta:
		return theme.StatusAberta
	case schema.StatusEmAnalise:
		return theme.StatusEmAnalise
	case schema.StatusAguardandoPeca:
		return theme.StatusAguardandoPeca
	case schema.StatusEmReparo:
		return theme.StatusEmReparo
	case schema.StatusFinalizada:
		return theme.StatusFinalizada
	case schema.StatusEntregue:
		return theme.StatusEntregue
	case schema.StatusCancelada:
		return theme.StatusCancelada
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusAberta:         lipgloss.Color("114"), // green
	StatusEmAnalise:      lipgloss.Color("220"), // amber
	StatusAguardandoPeca: lipgloss.Color("208"), // orange
	StatusEmReparo:       lipgloss.Color("75"),  // blue
	StatusFinalizada:     lipgloss.Color("141"), // light purple
	StatusEntregue:       lipgloss.Color("245"), // gray
	StatusCancelada:      lipgloss.Color("196"), // red

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	ErrorText:        lipgloss.Color("196"),
	NoticeText:       lipgloss.Color("114"),

	HotAccent: lipgloss.Color("58"), // dark amber background tint

	TooltipForeground: lipgloss.Color("252"),
	TooltipBackground: lipgloss.Color("237"),
}
