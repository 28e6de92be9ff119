// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package fichaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/assistec/fichas/lib/schema"
	"github.com/assistec/fichas/lib/validate"
)

// dashboardState holds the three independent dashboard reads. Each
// panel renders from its own result; a failed read leaves its panel
// in the empty state, so a failing statistics endpoint does not
// blank the recent lists.
type dashboardState struct {
	stats       []schema.MonthlyStat
	statsLoaded bool

	recent       []schema.Ficha
	recentLoaded bool

	clientes       []schema.Cliente
	clientesLoaded bool
}

// barChartWidth is the maximum bar length of the monthly chart.
const barChartWidth = 40

// renderDashboard draws the dashboard tab: the monthly chart on top,
// recent fichas and recent clients side by side below it.
func (model Model) renderDashboard(width, height int) string {
	var sections []string

	sections = append(sections, model.renderMonthlyChart(width))
	sections = append(sections, "")

	half := (width - 3) / 2
	left := model.renderRecentFichas(half)
	right := model.renderRecentClientes(width - half - 3)
	divider := lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render(" │ ")
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, left, divider, right))

	content := strings.Join(sections, "\n")
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
}

func (model Model) panelTitle(text string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground).
		Render(text)
}

func (model Model) panelEmpty(text string) string {
	return lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Render(text)
}

func (model Model) panelLoading() string {
	return model.panelEmpty("carregando...")
}

// renderMonthlyChart draws one horizontal bar per month, scaled to
// the busiest month.
func (model Model) renderMonthlyChart(width int) string {
	lines := []string{model.panelTitle("Fichas por mês")}

	dashboard := model.dashboard
	switch {
	case !dashboard.statsLoaded:
		lines = append(lines, model.panelLoading())
	case len(dashboard.stats) == 0:
		lines = append(lines, model.panelEmpty("sem dados"))
	default:
		peak := 0
		for _, stat := range dashboard.stats {
			if stat.Total > peak {
				peak = stat.Total
			}
		}
		barStyle := lipgloss.NewStyle().Foreground(model.theme.StatusEmReparo)
		labelStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		maxBar := barChartWidth
		if maxBar > width-20 {
			maxBar = width - 20
		}
		if maxBar < 5 {
			maxBar = 5
		}
		for _, stat := range dashboard.stats {
			length := 0
			if peak > 0 {
				length = stat.Total * maxBar / peak
			}
			if stat.Total > 0 && length == 0 {
				length = 1
			}
			bar := barStyle.Render(strings.Repeat("█", length))
			lines = append(lines, fmt.Sprintf("%s %s %d",
				labelStyle.Render(fmt.Sprintf("%-9s", stat.Mes)), bar, stat.Total))
		}
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderRecentFichas(width int) string {
	lines := []string{model.panelTitle("Fichas recentes")}

	dashboard := model.dashboard
	switch {
	case !dashboard.recentLoaded:
		lines = append(lines, model.panelLoading())
	case len(dashboard.recent) == 0:
		lines = append(lines, model.panelEmpty("nenhuma ficha"))
	default:
		for _, ficha := range dashboard.recent {
			status := lipgloss.NewStyle().
				Foreground(model.theme.StatusColor(ficha.Status)).
				Render("●")
			row := fmt.Sprintf("%s %s  %s — %s", status, ficha.Codigo, ficha.ClienteNome, ficha.Equipamento)
			lines = append(lines, truncateRow(row, width))
		}
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (model Model) renderRecentClientes(width int) string {
	lines := []string{model.panelTitle("Clientes recentes")}

	dashboard := model.dashboard
	switch {
	case !dashboard.clientesLoaded:
		lines = append(lines, model.panelLoading())
	case len(dashboard.clientes) == 0:
		lines = append(lines, model.panelEmpty("nenhum cliente"))
	default:
		faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		for _, cliente := range dashboard.clientes {
			row := fmt.Sprintf("%s  %s", cliente.Nome,
				faint.Render(validate.FormatTelefone(cliente.Telefone)))
			lines = append(lines, truncateRow(row, width))
		}
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
