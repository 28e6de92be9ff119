// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the shared terminal UI components for the
// fichas client: theme, dropdown overlays, the multi-line editor
// modal, overlay splicing, scrollbars, and change-heat animation.
// Built on bubbletea and lipgloss.
//
// The application model in lib/fichaui owns layout and domain
// rendering; this package only knows colors and widget mechanics.
package tui
