// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package fichaui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/assistec/fichas/lib/api"
	"github.com/assistec/fichas/lib/pager"
	"github.com/assistec/fichas/lib/refresh"
	"github.com/assistec/fichas/lib/schema"
	"github.com/assistec/fichas/lib/tui"
)

// fetchFichas runs one pager-issued fichas read. The structured
// filter fields travel in the request's Extra map so a stale fetch
// carries the filter it was issued under, not the current one.
func fetchFichas(client *api.Client, request pager.Request) tea.Cmd {
	return func() tea.Msg {
		filter := api.FichaFilter{
			Query:   request.Query.Text,
			Status:  schema.Status(request.Query.Extra["status"]),
			DataIni: request.Query.Extra["data_ini"],
			DataFim: request.Query.Extra["data_fim"],
		}
		page, err := client.ListFichas(context.Background(), filter, request.Query.Page, request.Query.PageSize)
		return fichasPageMsg{request: request, page: page, err: err}
	}
}

// fetchClientes uses the search endpoint when the pager carries
// filter text and the plain list otherwise.
func fetchClientes(client *api.Client, request pager.Request) tea.Cmd {
	return func() tea.Msg {
		var page schema.Page[schema.Cliente]
		var err error
		if request.Query.Text != "" {
			page, err = client.SearchClientes(context.Background(), request.Query.Text, request.Query.Page, request.Query.PageSize)
		} else {
			page, err = client.ListClientes(context.Background(), request.Query.Page, request.Query.PageSize)
		}
		return clientesPageMsg{request: request, page: page, err: err}
	}
}

func fetchLogs(client *api.Client, request pager.Request) tea.Cmd {
	return func() tea.Msg {
		page, err := client.ListLogs(context.Background(), request.Query.Page, request.Query.PageSize)
		return logsPageMsg{request: request, page: page, err: err}
	}
}

func fetchFichaDetail(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		detail, err := client.GetFichaDetail(context.Background(), id)
		return fichaDetailMsg{id: id, detail: detail, err: err}
	}
}

func fetchClienteDetail(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		detail, err := client.GetCliente(context.Background(), id)
		return clienteDetailMsg{id: id, detail: detail, err: err}
	}
}

func fetchStatistics(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		stats, err := client.Statistics(context.Background(), dashboardMonths)
		return statisticsMsg{stats: stats, err: err}
	}
}

func fetchRecentFichas(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		page, err := client.ListFichas(context.Background(), api.FichaFilter{}, 1, dashboardRecentCount)
		return recentFichasMsg{fichas: page.Items, err: err}
	}
}

func fetchRecentClientes(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		page, err := client.ListClientes(context.Background(), 1, dashboardRecentCount)
		return recentClientesMsg{clientes: page.Items, err: err}
	}
}

// searchPickerClientes backs the debounced client picker inside the
// ficha creation form. The first page is enough; the picker shows a
// handful of candidates.
func searchPickerClientes(client *api.Client, query string) tea.Cmd {
	return func() tea.Msg {
		page, err := client.SearchClientes(context.Background(), query, 1, schema.ClientePageSize)
		return pickerResultsMsg{query: query, clientes: page.Items, err: err}
	}
}

func updateFicha(client *api.Client, id int64, patch schema.FichaPatch) tea.Cmd {
	return func() tea.Msg {
		ficha, err := client.UpdateFicha(context.Background(), id, patch)
		return fichaSavedMsg{ficha: ficha, err: err}
	}
}

// createFicha uploads the entry photo first when a path was given,
// then creates the ficha referencing the stored file.
func createFicha(client *api.Client, clienteID int64, input schema.FichaInput, fotoPath string) tea.Cmd {
	return func() tea.Msg {
		if fotoPath != "" {
			content, err := os.ReadFile(fotoPath)
			if err != nil {
				return fichaSavedMsg{created: true, err: fmt.Errorf("ler foto: %w", err)}
			}
			stored, err := client.UploadFoto(context.Background(), filepath.Base(fotoPath), content)
			if err != nil {
				return fichaSavedMsg{created: true, err: err}
			}
			input.FotoEntrada = stored
		}
		ficha, err := client.CreateFicha(context.Background(), clienteID, input)
		return fichaSavedMsg{ficha: ficha, created: true, err: err}
	}
}

func createCliente(client *api.Client, input schema.ClienteInput) tea.Cmd {
	return func() tea.Msg {
		cliente, err := client.CreateCliente(context.Background(), input)
		return clienteSavedMsg{cliente: cliente, created: true, err: err}
	}
}

func updateCliente(client *api.Client, id int64, input schema.ClienteInput) tea.Cmd {
	return func() tea.Msg {
		cliente, err := client.UpdateCliente(context.Background(), id, input)
		return clienteSavedMsg{cliente: cliente, err: err}
	}
}

// downloadPDF writes the service-rendered ficha document next to the
// working directory as ficha-<codigo>.pdf.
func downloadPDF(client *api.Client, id int64, codigo string) tea.Cmd {
	return func() tea.Msg {
		document, err := client.FichaPDF(context.Background(), id)
		if err != nil {
			return pdfSavedMsg{err: err}
		}
		name := fmt.Sprintf("ficha-%s.pdf", strings.ToLower(codigo))
		if err := os.WriteFile(name, document, 0o644); err != nil {
			return pdfSavedMsg{err: fmt.Errorf("gravar %s: %w", name, err)}
		}
		return pdfSavedMsg{path: name}
	}
}

// listenRefresh blocks on the bus subscription and resubmits itself
// after every delivery. A canceled subscription ends the loop.
func listenRefresh(subscription *refresh.Subscription) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-subscription.C
		if !ok {
			return nil
		}
		return refreshMsg{event: event}
	}
}

// listenDebounce drains the debounce fire channel.
func listenDebounce(fires <-chan debounceFiredMsg) tea.Cmd {
	return func() tea.Msg {
		fire, ok := <-fires
		if !ok {
			return nil
		}
		return fire
	}
}

// heatTick schedules the next highlight-decay frame. Only issued
// while some row is still hot.
func heatTick() tea.Cmd {
	return tea.Tick(tui.HeatTickInterval, func(time.Time) tea.Msg {
		return heatTickMsg{}
	})
}
