// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package fichaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/assistec/fichas/lib/schema"
	"github.com/assistec/fichas/lib/tui"
	"github.com/assistec/fichas/lib/validate"
)

// Fixed column widths. The last column of every row fills the
// remaining width.
const (
	columnWidthCodigo   = 8
	columnWidthStatus   = 16
	columnWidthTelefone = 16
	columnWidthDataHora = 17
	columnWidthUsuario  = 12
)

func truncateRow(row string, width int) string {
	if lipgloss.Width(row) <= width {
		return row
	}
	return ansi.Truncate(row, width-1, "…")
}

func padColumn(content string, width int) string {
	gap := width - lipgloss.Width(content)
	if gap < 1 {
		return ansi.Truncate(content, width-1, "…") + " "
	}
	return content + strings.Repeat(" ", gap)
}

// renderListPane draws the current tab's list: a column header row,
// the visible window of rows, empty padding, and the scrollbar.
func (model Model) renderListPane() string {
	listWidth := model.listWidth()
	rowWidth := listWidth - 1 // Scrollbar column.
	visible := model.listVisibleRows()
	focused := model.focusRegion == FocusList

	state, count := model.activeList()
	if state == nil {
		return ""
	}
	now := model.clk.Now()

	rows := []string{model.renderColumnHeader(rowWidth)}
	for index := state.scroll; index < state.scroll+visible && index < count; index++ {
		selected := index == state.cursor
		var row string
		var rowID int64
		switch model.activeTab {
		case TabFichas:
			ficha := model.fichas.Items()[index]
			row = model.renderFichaRow(ficha, rowWidth, selected)
			rowID = ficha.ID
		case TabClientes:
			cliente := model.clientes.Items()[index]
			row = model.renderClienteRow(cliente, rowWidth, selected)
			rowID = cliente.ID
		case TabLogs:
			entry := model.logs.Items()[index]
			row = model.renderLogRow(entry, rowWidth, selected)
			rowID = entry.ID
		}
		// Heat tint for recently-changed rows; selection styling
		// takes priority.
		if !selected && model.heatTracker.Heat(rowID, now) > 0 {
			row = lipgloss.NewStyle().
				Background(model.theme.HotAccent).
				Width(rowWidth).
				MaxWidth(rowWidth).
				Render(ansi.Strip(row))
		}
		rows = append(rows, row)
	}

	for len(rows) < visible+1 {
		rows = append(rows, strings.Repeat(" ", rowWidth))
	}

	scrollbar := tui.RenderScrollbar(model.theme, visible+1, count, visible, state.scroll, focused)

	content := lipgloss.NewStyle().
		Width(rowWidth).
		MaxWidth(rowWidth).
		Render(strings.Join(rows, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, content, scrollbar)
}

func (model Model) renderColumnHeader(width int) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Bold(true)

	var header string
	switch model.activeTab {
	case TabFichas:
		header = padColumn("CÓDIGO", columnWidthCodigo+1) +
			padColumn("STATUS", columnWidthStatus) +
			"EQUIPAMENTO / CLIENTE"
	case TabClientes:
		header = padColumn("NOME", width-columnWidthTelefone-columnWidthStatus) +
			padColumn("TELEFONE", columnWidthTelefone) +
			"CIDADE"
	case TabLogs:
		header = padColumn("QUANDO", columnWidthDataHora) +
			padColumn("USUÁRIO", columnWidthUsuario) +
			"AÇÃO"
	}
	return headerStyle.Render(truncateRow(padColumn(header, width), width))
}

// renderFichaRow lays out one repair ticket: tracking code, colored
// status, then equipment and client filling the rest.
func (model Model) renderFichaRow(ficha schema.Ficha, width int, selected bool) string {
	statusStyle := lipgloss.NewStyle().Foreground(model.theme.StatusColor(ficha.Status))

	code := padColumn(ficha.Codigo, columnWidthCodigo+1)
	status := statusStyle.Render(padColumn("● "+ficha.Status.Label(), columnWidthStatus))

	rest := ficha.Equipamento
	if ficha.ClienteNome != "" {
		rest += " — " + ficha.ClienteNome
	}
	restWidth := width - columnWidthCodigo - 1 - columnWidthStatus
	rest = truncateRow(rest, restWidth)

	row := code + status + rest
	if selected {
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Width(width).
			MaxWidth(width).
			Render(ansi.Strip(row))
	}
	return truncateRow(row, width)
}

func (model Model) renderClienteRow(cliente schema.Cliente, width int, selected bool) string {
	nameWidth := width - columnWidthTelefone - columnWidthStatus
	row := padColumn(truncateRow(cliente.Nome, nameWidth), nameWidth) +
		padColumn(validate.FormatTelefone(cliente.Telefone), columnWidthTelefone) +
		truncateRow(cliente.Cidade, columnWidthStatus)

	if selected {
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Width(width).
			MaxWidth(width).
			Render(ansi.Strip(row))
	}
	return truncateRow(row, width)
}

func (model Model) renderLogRow(entry schema.LogEntry, width int, selected bool) string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	action := entry.Acao
	if entry.Detalhe != "" {
		action += "  " + entry.Detalhe
	}
	actionWidth := width - columnWidthDataHora - columnWidthUsuario

	row := faint.Render(padColumn(validate.FormatDataHora(entry.CriadoEm), columnWidthDataHora)) +
		padColumn(entry.Usuario, columnWidthUsuario) +
		truncateRow(action, actionWidth)

	if selected {
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Width(width).
			MaxWidth(width).
			Render(ansi.Strip(row))
	}
	return truncateRow(row, width)
}

// pageIndicator summarizes the paging state of the current tab for
// the status bar: page position for page-mode lists, loaded count for
// the accumulating clientes list.
func (model Model) pageIndicator() string {
	switch model.activeTab {
	case TabFichas:
		total := model.fichas.Total()
		if total < 0 {
			return fmt.Sprintf("pág. %d", model.fichas.PageNumber())
		}
		pages := (total + schema.FichaPageSize - 1) / schema.FichaPageSize
		if pages < 1 {
			pages = 1
		}
		return fmt.Sprintf("pág. %d/%d · %d fichas", model.fichas.PageNumber(), pages, total)
	case TabClientes:
		loaded := len(model.clientes.Items())
		total := model.clientes.Total()
		if total < 0 {
			return fmt.Sprintf("%d carregados", loaded)
		}
		return fmt.Sprintf("%d de %d clientes", loaded, total)
	case TabLogs:
		total := model.logs.Total()
		if total < 0 {
			return fmt.Sprintf("pág. %d", model.logs.PageNumber())
		}
		pages := (total + schema.LogPageSize - 1) / schema.LogPageSize
		if pages < 1 {
			pages = 1
		}
		return fmt.Sprintf("pág. %d/%d · %d registros", model.logs.PageNumber(), pages, total)
	}
	return ""
}
