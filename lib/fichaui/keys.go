// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package fichaui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the fichas TUI.
type KeyMap struct {
	// Navigation (context-sensitive: list movement or detail
	// scrolling depending on current focus).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Page-mode lists (fichas, logs): explicit page navigation.
	PagePrevious key.Binding
	PageNext     key.Binding

	// Focus switching.
	FocusToggle key.Binding

	// Splitter resize.
	SplitGrow   key.Binding // Grow list pane (push detail right).
	SplitShrink key.Binding // Shrink list pane (push detail left).

	// Tab switching.
	TabDashboard key.Binding
	TabFichas    key.Binding
	TabClientes  key.Binding
	TabLogs      key.Binding

	// Filter.
	FilterActivate key.Binding // Enter filter mode.
	FilterClear    key.Binding // Clear filter and exit filter mode.

	// Fichas tab: cycle the status facet of the active filter.
	CycleStatus key.Binding

	// Mutations.
	New                key.Binding // New cliente / new ficha, per tab.
	Edit               key.Binding // Edit the selected record.
	Status             key.Binding // Open the status dropdown.
	ObservationPublic  key.Binding // Edit the public observation.
	ObservationPrivate key.Binding // Edit the private observation.

	// Detail actions.
	Download key.Binding // Save the ficha PDF to the working directory.

	Reload key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	PagePrevious: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev page"),
	),
	PageNext: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next page"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	SplitGrow: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "grow list"),
	),
	SplitShrink: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "shrink list"),
	),
	TabDashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "painel"),
	),
	TabFichas: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "fichas"),
	),
	TabClientes: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "clientes"),
	),
	TabLogs: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "atividade"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filtrar"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "limpar filtro"),
	),
	CycleStatus: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "status filter"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "novo"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "editar"),
	),
	Status: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status"),
	),
	ObservationPublic: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "obs. pública"),
	),
	ObservationPrivate: key.NewBinding(
		key.WithKeys("O"),
		key.WithHelp("O", "obs. privada"),
	),
	Download: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "PDF"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "recarregar"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "sair"),
	),
}
