// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package fichaui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/assistec/fichas/lib/tui"
)

// tabDefs drives both the header rendering and the mouse hit ranges.
var tabDefs = []struct {
	tab   Tab
	label string
}{
	{TabDashboard, "1:Painel"},
	{TabFichas, "2:Fichas"},
	{TabClientes, "3:Clientes"},
	{TabLogs, "4:Atividade"},
}

// contentStartY returns the Y coordinate where the content area
// begins. The top chrome line is always exactly one row: the tab bar,
// or the filter bar when the filter is active.
func (model Model) contentStartY() int {
	return 1
}

// listWidth is the list pane's column count. Tabs without a detail
// pane take the full width.
func (model Model) listWidth() int {
	if model.activeTab == TabFichas || model.activeTab == TabClientes {
		return model.width * model.splitPercent / 100
	}
	return model.width
}

func (model Model) detailWidth() int {
	return model.width - model.listWidth() - 1
}

// listVisibleRows is the number of data rows the list shows: total
// height minus the chrome line, the column header, the separator, and
// the help bar.
func (model Model) listVisibleRows() int {
	rows := model.height - 4
	if rows < 1 {
		return 1
	}
	return rows
}

func (model *Model) computeTabHitRanges() {
	model.tabHitRanges = model.tabHitRanges[:0]
	cursor := 3 // Leading "───"

	for index, tabDef := range tabDefs {
		cursor++ // Space before label.
		labelStart := cursor
		cursor += lipgloss.Width(tabDef.label)

		model.tabHitRanges = append(model.tabHitRanges, tabHitRange{
			startX: labelStart,
			endX:   cursor,
			tab:    tabDef.tab,
		})

		cursor++ // Space after label.

		// Separator between tabs (3 chars) and after last tab (1 char).
		if index == len(tabDefs)-1 {
			cursor++
		} else {
			cursor += 3
		}
	}
}

// renderHeader renders the combined tab bar + separator as a single
// line in the btop style: tab labels embedded in a horizontal rule
// with the operator on the right.
//
// Example: ─── 1:Painel ─── 2:Fichas ─── 3:Clientes ─── maria ─
func (model Model) renderHeader() string {
	separatorStyle := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor)
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)
	operatorStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)

	sep := separatorStyle.Render("─")

	leftParts := sep + sep + sep // Leading "───"
	cursor := 3

	for index, tabDef := range tabDefs {
		leftParts += " "
		cursor++

		if model.activeTab == tabDef.tab {
			leftParts += activeStyle.Render(tabDef.label)
		} else {
			leftParts += inactiveStyle.Render(tabDef.label)
		}
		cursor += lipgloss.Width(tabDef.label)

		leftParts += " "
		cursor++

		sepCount := 3
		if index == len(tabDefs)-1 {
			sepCount = 1
		}
		for range sepCount {
			leftParts += sep
			cursor++
		}
	}

	operator := model.operator.Nome
	if operator == "" {
		operator = model.operator.Usuario
	}
	operatorRendered := operatorStyle.Render(operator)
	operatorWidth := lipgloss.Width(operator)

	rightPortion := " " + operatorRendered + " " + sep
	rightWidth := 1 + operatorWidth + 1 + 1

	fillCount := model.width - cursor - rightWidth
	if fillCount < 1 {
		fillCount = 1
	}
	fill := ""
	for range fillCount {
		fill += sep
	}

	return leftParts + fill + rightPortion
}

// renderDivider renders the vertical divider between the list and
// detail panes.
func (model Model) renderDivider() string {
	visible := model.listVisibleRows() + 1
	dividerStyle := lipgloss.NewStyle().Foreground(model.theme.BorderColor)

	lines := make([]string, visible)
	for index := range lines {
		lines[index] = "│"
	}
	return dividerStyle.Width(1).Height(visible).Render(strings.Join(lines, "\n"))
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Carregando..."
	}

	var sections []string

	// Top chrome line: the filter bar replaces the tab bar while
	// active so the layout doesn't shift.
	filterView := ""
	if filter := model.activeFilter(); filter != nil {
		filterView = filter.View(model.theme, model.width)
	}
	if filterView != "" {
		sections = append(sections, filterView)
	} else {
		sections = append(sections, model.renderHeader())
	}

	// Content area.
	switch model.activeTab {
	case TabDashboard:
		sections = append(sections, model.renderDashboard(model.width, model.listVisibleRows()+1))
	case TabLogs:
		sections = append(sections, model.renderListPane())
	default:
		listView := model.renderListPane()
		divider := model.renderDivider()
		detailView := model.renderDetailPane()
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, listView, divider, detailView))
	}

	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
	sections = append(sections, separator)

	sections = append(sections, model.renderHelp())

	output := strings.Join(sections, "\n")

	if model.activeDropdown != nil {
		dropdownLines := model.activeDropdown.Render(model.theme)
		output = tui.SpliceOverlay(output, dropdownLines,
			model.activeDropdown.AnchorX, model.activeDropdown.AnchorY)
	}
	if model.editor != nil {
		modalLines, anchorX, anchorY := model.editor.Render(model.width, model.height)
		output = tui.SpliceOverlay(output, modalLines, anchorX, anchorY)
	}
	if model.form != nil {
		formLines, anchorX, anchorY := model.form.render(model.theme, model.width, model.height)
		output = tui.SpliceOverlay(output, formLines, anchorX, anchorY)
	}

	return output
}

// renderHelp draws the bottom bar: an error or notice when present,
// otherwise the key hints for the active tab, with the paging
// indicator on the right.
func (model Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
	noticeStyle := lipgloss.NewStyle().Foreground(model.theme.NoticeText)

	var left string
	switch {
	case model.errorNotice != "":
		left = errorStyle.Render(truncateRow(model.errorNotice, model.width-20))
	case model.notice != "":
		left = noticeStyle.Render(truncateRow(model.notice, model.width-20))
	default:
		left = helpStyle.Render(model.helpText())
	}

	right := model.statusRight()
	rightRendered := helpStyle.Render(right)

	gap := model.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + rightRendered
}

func (model Model) helpText() string {
	switch model.focusRegion {
	case FocusFilter:
		return "digite para filtrar  Enter confirmar  Esc limpar"
	case FocusDropdown:
		return "↑/↓ escolher  Enter aplicar  Esc cancelar"
	case FocusEditor:
		return "Ctrl+S salvar  Esc cancelar"
	case FocusForm:
		return "Tab campo  Ctrl+S salvar  Esc cancelar"
	}
	switch model.activeTab {
	case TabDashboard:
		return "1-4 abas  r recarregar  q sair"
	case TabFichas:
		return "j/k mover  h/l página  / filtrar  f status  n nova  e editar  s status  o/O obs  d PDF"
	case TabClientes:
		return "j/k mover  / buscar  n novo  e editar  Tab painel"
	case TabLogs:
		return "j/k mover  h/l página  r recarregar"
	}
	return ""
}

// statusRight is the right side of the status bar: the status facet
// on the fichas tab, paging, and a loading marker.
func (model Model) statusRight() string {
	var parts []string
	if model.activeTab == TabFichas && model.statusFacet != "" {
		parts = append(parts, "status: "+model.statusFacet.Label())
	}
	if model.activeTab == TabClientes && model.clienteDetail != nil {
		open, total := statusSummary(model.clienteDetail.Fichas)
		if total > 0 {
			parts = append(parts, plural(open, "ficha aberta", "fichas abertas"))
		}
	}
	if indicator := model.pageIndicator(); indicator != "" {
		parts = append(parts, indicator)
	}
	if model.loading() {
		parts = append(parts, "...")
	}
	return strings.Join(parts, " · ")
}

func (model Model) loading() bool {
	switch model.activeTab {
	case TabFichas:
		return model.fichas.Loading()
	case TabClientes:
		return model.clientes.Loading()
	case TabLogs:
		return model.logs.Loading()
	}
	return false
}

func plural(count int, singular, pluralForm string) string {
	if count == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(count) + " " + pluralForm
}
