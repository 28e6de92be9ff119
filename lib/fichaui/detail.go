// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package fichaui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/assistec/fichas/lib/schema"
	"github.com/assistec/fichas/lib/tui"
	"github.com/assistec/fichas/lib/validate"
)

// renderDetailPane draws the right pane of the fichas and clientes
// tabs: the full record under the cursor, scrolled by detailScroll.
func (model Model) renderDetailPane() string {
	width := model.detailWidth()
	height := model.listVisibleRows() + 1

	var lines []string
	switch model.activeTab {
	case TabFichas:
		lines = model.fichaDetailLines(width - 2)
	case TabClientes:
		lines = model.clienteDetailLines(width - 2)
	}

	// Clamp the scroll to the rendered content.
	scroll := model.detailScroll
	if scroll > len(lines)-height {
		scroll = len(lines) - height
	}
	if scroll < 0 {
		scroll = 0
	}
	window := lines[scroll:]
	if len(window) > height {
		window = window[:height]
	}

	focused := model.focusRegion == FocusDetail
	scrollbar := tui.RenderScrollbar(model.theme, height, len(lines), height, scroll, focused)

	body := lipgloss.NewStyle().
		Width(width-1).
		MaxWidth(width-1).
		Height(height).
		MaxHeight(height).
		PaddingLeft(1).
		Render(strings.Join(window, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, body, scrollbar)
}

func (model Model) detailField(label, value string) string {
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	return labelStyle.Render(label+": ") + value
}

// fichaDetailLines renders the selected ficha: identification, the
// client block, the money and date fields, both observations through
// the markdown renderer, and the ficha's own activity trail.
func (model Model) fichaDetailLines(width int) []string {
	if model.fichaDetailErr != nil {
		return []string{lipgloss.NewStyle().Foreground(model.theme.ErrorText).Render("erro: " + model.fichaDetailErr.Error())}
	}
	if model.fichaDetail == nil {
		if len(model.fichas.Items()) == 0 {
			return []string{lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("nenhuma ficha selecionada")}
		}
		return []string{lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("carregando...")}
	}

	detail := *model.fichaDetail
	ficha := detail.Ficha

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	statusStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.StatusColor(ficha.Status))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.NormalText)

	lines := []string{
		titleStyle.Render(ficha.Codigo+" — "+ficha.Equipamento) + "  " + statusStyle.Render(ficha.Status.Label()),
		"",
		model.detailField("Marca", ficha.Marca),
		model.detailField("Modelo", ficha.Modelo),
		model.detailField("Nº de série", ficha.NumeroSerie),
		model.detailField("Acessórios", ficha.Acessorios),
		model.detailField("Defeito", ficha.Defeito),
		"",
		model.detailField("Valor", validate.FormatValor(ficha.Valor)),
		model.detailField("Previsão", validate.FormatData(ficha.PrevisaoEntrega)),
		model.detailField("Entrada", validate.FormatDataHora(ficha.CriadoEm)),
		model.detailField("Atualizada", validate.FormatDataHora(ficha.AtualizadoEm)),
	}
	if ficha.FotoEntrada != "" {
		lines = append(lines, model.detailField("Foto", ficha.FotoEntrada))
	}

	lines = append(lines, "", sectionStyle.Render("Cliente"))
	cliente := detail.Cliente
	lines = append(lines,
		model.detailField("Nome", cliente.Nome),
		model.detailField("Telefone", validate.FormatTelefone(cliente.Telefone)),
		model.detailField("Email", cliente.Email),
	)

	if ficha.ObservacaoPublica != "" {
		lines = append(lines, "", sectionStyle.Render("Observação pública"))
		rendered := renderTerminalMarkdown(ficha.ObservacaoPublica, model.theme, width)
		lines = append(lines, strings.Split(rendered, "\n")...)
	}
	if ficha.ObservacaoPrivada != "" {
		lines = append(lines, "", sectionStyle.Render("Observação privada"))
		rendered := renderTerminalMarkdown(ficha.ObservacaoPrivada, model.theme, width)
		lines = append(lines, strings.Split(rendered, "\n")...)
	}

	if len(detail.Logs) > 0 {
		lines = append(lines, "", sectionStyle.Render("Histórico"))
		faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		for _, entry := range detail.Logs {
			line := faint.Render(validate.FormatDataHora(entry.CriadoEm)) + "  " + entry.Usuario + " " + entry.Acao
			lines = append(lines, truncateRow(line, width))
			for _, excerptLine := range tui.ExtractExcerpt(entry.Detalhe, width-4, 2) {
				lines = append(lines, "    "+faint.Render(excerptLine))
			}
		}
	}
	return lines
}

// clienteDetailLines renders the selected client and every ficha
// registered to them.
func (model Model) clienteDetailLines(width int) []string {
	if model.clienteDetailErr != nil {
		return []string{lipgloss.NewStyle().Foreground(model.theme.ErrorText).Render("erro: " + model.clienteDetailErr.Error())}
	}
	if model.clienteDetail == nil {
		if len(model.clientes.Items()) == 0 {
			return []string{lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("nenhum cliente selecionado")}
		}
		return []string{lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("carregando...")}
	}

	detail := *model.clienteDetail
	cliente := detail.Cliente

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.NormalText)

	endereco := cliente.Endereco
	if cliente.Numero != "" {
		endereco += ", " + cliente.Numero
	}

	lines := []string{
		titleStyle.Render(cliente.Nome),
		"",
		model.detailField("Telefone", validate.FormatTelefone(cliente.Telefone)),
		model.detailField("Email", cliente.Email),
		model.detailField("Endereço", endereco),
		model.detailField("Bairro", cliente.Bairro),
		model.detailField("Cidade", cliente.Cidade),
		model.detailField("Cadastro", validate.FormatData(cliente.CriadoEm)),
	}

	lines = append(lines, "", sectionStyle.Render("Fichas"))
	if len(detail.Fichas) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("nenhuma ficha"))
		return lines
	}
	for _, ficha := range detail.Fichas {
		status := lipgloss.NewStyle().
			Foreground(model.theme.StatusColor(ficha.Status)).
			Render("● " + ficha.Status.Label())
		line := ficha.Codigo + "  " + status + "  " + ficha.Equipamento
		lines = append(lines, truncateRow(line, width))
	}
	return lines
}

// statusSummary counts the selected client's fichas still in an open
// state. Shown in the clientes status bar.
func statusSummary(fichas []schema.Ficha) (open, total int) {
	for _, ficha := range fichas {
		if !ficha.Status.Terminal() {
			open++
		}
	}
	return open, len(fichas)
}
