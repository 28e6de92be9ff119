// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package fichaui

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/assistec/fichas/lib/api"
	"github.com/assistec/fichas/lib/clock"
	"github.com/assistec/fichas/lib/refresh"
	"github.com/assistec/fichas/lib/schema"
	"github.com/assistec/fichas/lib/testutil"
)

var testStart = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// errorTransport fails every request immediately. Tests that execute
// a fetch command only inspect the pager token on the message, never
// the response.
type errorTransport struct{}

func (errorTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("no transport in tests")
}

// newTestModel builds a sized model on a fake clock. Tests feed page
// messages directly through Update instead of running fetches.
func newTestModel(t *testing.T) (Model, *clock.FakeClock) {
	t.Helper()
	fakeClock := clock.Fake(testStart)
	model := NewModel(Options{
		Client:   api.NewForTesting(errorTransport{}),
		Clock:    fakeClock,
		Operator: schema.Usuario{Usuario: "maria"},
	})
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 140, Height: 36})
	return updated.(Model), fakeClock
}

func testFichas(count int) []schema.Ficha {
	fichas := make([]schema.Ficha, count)
	for i := range fichas {
		fichas[i] = schema.Ficha{
			ID:          int64(i + 1),
			Codigo:      "AB12C" + string(rune('0'+i)),
			ClienteID:   int64(100 + i),
			ClienteNome: "Cliente Teste",
			Equipamento: "Notebook",
			Defeito:     "não liga",
			Status:      schema.StatusAberta,
			CriadoEm:    "2026-03-01T10:00:00Z",
		}
	}
	return fichas
}

// loadFichas commits a page straight into the model's ficha pager,
// the way a finished fetch command would.
func loadFichas(t *testing.T, model Model, fichas []schema.Ficha, total int) Model {
	t.Helper()
	request := model.fichas.Reload()
	updated, _ := model.Update(fichasPageMsg{
		request: request,
		page: schema.Page[schema.Ficha]{
			Items:    fichas,
			Total:    &total,
			Page:     request.Query.Page,
			PageSize: request.Query.PageSize,
		},
	})
	return updated.(Model)
}

func loadClientes(t *testing.T, model Model, clientes []schema.Cliente, total int) Model {
	t.Helper()
	request := model.clientes.Reload()
	updated, _ := model.Update(clientesPageMsg{
		request: request,
		page: schema.Page[schema.Cliente]{
			Items:    clientes,
			Total:    &total,
			Page:     request.Query.Page,
			PageSize: request.Query.PageSize,
		},
	})
	return updated.(Model)
}

func pressKey(model Model, r rune) Model {
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return updated.(Model)
}

func TestTabSwitching(t *testing.T) {
	model, _ := newTestModel(t)

	if model.activeTab != TabDashboard {
		t.Fatalf("initial tab = %d, want TabDashboard", model.activeTab)
	}

	model = pressKey(model, '2')
	if model.activeTab != TabFichas {
		t.Errorf("after 2: tab = %d, want TabFichas", model.activeTab)
	}
	model = pressKey(model, '3')
	if model.activeTab != TabClientes {
		t.Errorf("after 3: tab = %d, want TabClientes", model.activeTab)
	}
	model = pressKey(model, '4')
	if model.activeTab != TabLogs {
		t.Errorf("after 4: tab = %d, want TabLogs", model.activeTab)
	}
	model = pressKey(model, '1')
	if model.activeTab != TabDashboard {
		t.Errorf("after 1: tab = %d, want TabDashboard", model.activeTab)
	}
}

func TestListNavigation(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '2')
	model = loadFichas(t, model, testFichas(5), 5)

	if model.fichaList.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", model.fichaList.cursor)
	}
	model = pressKey(model, 'j')
	model = pressKey(model, 'j')
	if model.fichaList.cursor != 2 {
		t.Errorf("after jj: cursor = %d, want 2", model.fichaList.cursor)
	}
	model = pressKey(model, 'k')
	if model.fichaList.cursor != 1 {
		t.Errorf("after k: cursor = %d, want 1", model.fichaList.cursor)
	}
	model = pressKey(model, 'G')
	if model.fichaList.cursor != 4 {
		t.Errorf("after G: cursor = %d, want 4", model.fichaList.cursor)
	}
	model = pressKey(model, 'g')
	if model.fichaList.cursor != 0 {
		t.Errorf("after g: cursor = %d, want 0", model.fichaList.cursor)
	}
}

func TestCursorMovesDetailFetchTarget(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '2')
	model = loadFichas(t, model, testFichas(3), 3)

	if model.fichaDetailID != 1 {
		t.Fatalf("detail target = %d, want 1", model.fichaDetailID)
	}
	model = pressKey(model, 'j')
	if model.fichaDetailID != 2 {
		t.Errorf("after j: detail target = %d, want 2", model.fichaDetailID)
	}

	// The response for the abandoned row must not land.
	updated, _ := model.Update(fichaDetailMsg{
		id:     1,
		detail: schema.FichaDetail{Ficha: testFichas(1)[0]},
	})
	model = updated.(Model)
	if model.fichaDetail != nil {
		t.Error("stale detail response was applied")
	}

	updated, _ = model.Update(fichaDetailMsg{
		id:     2,
		detail: schema.FichaDetail{Ficha: testFichas(3)[1]},
	})
	model = updated.(Model)
	if model.fichaDetail == nil || model.fichaDetail.Ficha.ID != 2 {
		t.Error("current detail response was not applied")
	}
}

func TestStatusFacetCycling(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '2')
	model = loadFichas(t, model, testFichas(3), 3)

	if model.statusFacet != "" {
		t.Fatalf("initial facet = %q, want empty", model.statusFacet)
	}
	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	model = updated.(Model)
	if model.statusFacet != schema.StatusAberta {
		t.Errorf("after f: facet = %q, want %q", model.statusFacet, schema.StatusAberta)
	}
	if command == nil {
		t.Error("facet change issued no fetch")
	}

	// A full cycle returns to "all".
	for range len(schema.AllStatuses) {
		model = pressKey(model, 'f')
	}
	if model.statusFacet != "" {
		t.Errorf("after full cycle: facet = %q, want empty", model.statusFacet)
	}
}

func TestFilterDebounce(t *testing.T) {
	model, fakeClock := newTestModel(t)
	model = pressKey(model, '2')
	model = loadFichas(t, model, testFichas(3), 3)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	model = updated.(Model)
	if model.focusRegion != FocusFilter {
		t.Fatalf("focus = %d, want FocusFilter", model.focusRegion)
	}

	for _, r := range "tela" {
		model = pressKey(model, r)
	}
	if model.fichaFilter.Input != "tela" {
		t.Fatalf("filter input = %q, want tela", model.fichaFilter.Input)
	}

	// Nothing fires until the pause elapses.
	testutil.RequireNoReceive(t, model.fires, 50*time.Millisecond, "fired before the debounce delay")

	fakeClock.Advance(350 * time.Millisecond)
	fire := testutil.RequireReceive(t, model.fires, time.Second, "debounce fire")
	if fire.tab != TabFichas || fire.text != "tela" {
		t.Fatalf("fire = %+v, want fichas/tela", fire)
	}

	updated, command := model.Update(fire)
	model = updated.(Model)
	if command == nil {
		t.Fatal("debounce fire issued no fetch")
	}
	if model.fichas.Text() != "tela" {
		t.Errorf("pager text = %q, want tela", model.fichas.Text())
	}
}

func TestFilterClearRefetchesImmediately(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '3')
	model = loadClientes(t, model, []schema.Cliente{{ID: 1, Nome: "Ana"}}, 1)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	model = updated.(Model)
	model = pressKey(model, 'a')
	model = pressKey(model, 'n')

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	model = updated.(Model)
	if model.clienteFilter.Input != "" {
		t.Errorf("filter input = %q, want empty", model.clienteFilter.Input)
	}
	if command == nil {
		t.Error("clearing the filter issued no refetch")
	}
	if model.focusRegion != FocusList {
		t.Errorf("focus = %d, want FocusList", model.focusRegion)
	}
}

func TestStatusDropdown(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '2')
	model = loadFichas(t, model, testFichas(2), 2)

	model = pressKey(model, 's')
	if model.focusRegion != FocusDropdown {
		t.Fatalf("focus = %d, want FocusDropdown", model.focusRegion)
	}
	if model.activeDropdown == nil {
		t.Fatal("no dropdown after s")
	}
	if len(model.activeDropdown.Options) != len(schema.AllStatuses) {
		t.Fatalf("dropdown options = %d, want %d",
			len(model.activeDropdown.Options), len(schema.AllStatuses))
	}
	if model.activeDropdown.ItemID != 1 {
		t.Errorf("dropdown target = %d, want 1", model.activeDropdown.ItemID)
	}

	// Enter applies the selection and closes the overlay.
	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	if command == nil {
		t.Error("selection issued no update")
	}
	if model.activeDropdown != nil || model.focusRegion == FocusDropdown {
		t.Error("dropdown still open after selection")
	}
}

func TestDropdownEscapeDismisses(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '2')
	model = loadFichas(t, model, testFichas(1), 1)
	model = pressKey(model, 's')

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	model = updated.(Model)
	if command != nil {
		t.Error("escape issued a mutation")
	}
	if model.activeDropdown != nil {
		t.Error("dropdown still open after escape")
	}
	if model.focusRegion != FocusList {
		t.Errorf("focus = %d, want FocusList", model.focusRegion)
	}
}

func TestObservationEditor(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '2')
	model = loadFichas(t, model, testFichas(1), 1)

	model = pressKey(model, 'o')
	if model.focusRegion != FocusEditor || model.editor == nil {
		t.Fatal("editor not open after o")
	}
	if model.editorPrivate {
		t.Error("o opened the private observation")
	}

	for _, r := range "pronto" {
		updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		model = updated.(Model)
	}
	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	model = updated.(Model)
	if command == nil {
		t.Error("ctrl+s issued no update")
	}
	if model.editor != nil || model.focusRegion == FocusEditor {
		t.Error("editor still open after save")
	}
}

func TestFichaSavedPatchesListAndPublishes(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '2')
	model = loadFichas(t, model, testFichas(2), 2)

	// Drain the startup state of the bus subscription.
	observer := model.bus.Subscribe()

	status := schema.StatusEmReparo
	updated, _ := model.Update(fichaSavedMsg{
		ficha: schema.Ficha{ID: 2, Codigo: "AB12C1", Status: status},
	})
	model = updated.(Model)

	items := model.fichas.Items()
	if items[1].Status != status {
		t.Errorf("list status = %q, want %q", items[1].Status, status)
	}
	// Merge keeps fields the save response omitted.
	if items[1].Equipamento != "Notebook" {
		t.Errorf("equipamento = %q, want Notebook", items[1].Equipamento)
	}
	if model.notice == "" {
		t.Error("no notice after save")
	}

	event := testutil.RequireReceive(t, observer.C, time.Second, "refresh event")
	if event.Scope != refresh.ScopeFichas || event.ID != 2 {
		t.Errorf("event = %+v, want fichas/2", event)
	}
}

func TestFichaSaveErrorSurfacesMessage(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '2')
	model = loadFichas(t, model, testFichas(2), 2)

	updated, _ := model.Update(fichaSavedMsg{
		err: &api.APIError{StatusCode: 422, Message: "status inválido"},
	})
	model = updated.(Model)

	if !strings.Contains(model.errorNotice, "status inválido") {
		t.Errorf("errorNotice = %q, want the service message", model.errorNotice)
	}
	if model.SessionExpired() {
		t.Error("validation error flagged the session as expired")
	}
	// The list is untouched by the failed save.
	if model.fichas.Items()[1].Status != schema.StatusAberta {
		t.Errorf("status = %q, want unchanged", model.fichas.Items()[1].Status)
	}
}

func TestSessionExpiredQuits(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '2')

	request := model.fichas.Reload()
	updated, command := model.Update(fichasPageMsg{
		request: request,
		err:     &api.APIError{StatusCode: 401, Message: "token expirado"},
	})
	model = updated.(Model)

	if !model.SessionExpired() {
		t.Fatal("model did not flag the expired session")
	}
	if command == nil {
		t.Fatal("no quit command issued")
	}
	if message := command(); message != tea.Quit() {
		t.Errorf("command = %v, want tea.Quit", message)
	}
}

func TestClientesLoadMoreAtBottom(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '3')

	clientes := make([]schema.Cliente, schema.ClientePageSize)
	for i := range clientes {
		clientes[i] = schema.Cliente{ID: int64(i + 1), Nome: "Cliente"}
	}
	model = loadClientes(t, model, clientes, 30)

	model = pressKey(model, 'G')
	if model.clienteList.cursor != schema.ClientePageSize-1 {
		t.Fatalf("cursor = %d, want %d", model.clienteList.cursor, schema.ClientePageSize-1)
	}

	// One more down past the end requests the next page.
	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	model = updated.(Model)
	if command == nil {
		t.Fatal("bottom scroll issued no fetch")
	}
	if !model.clientes.Loading() {
		t.Error("pager not marked loading")
	}

	// Repeated presses collapse into the outstanding fetch.
	_, command = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if command != nil {
		t.Error("second bottom scroll issued another fetch")
	}
}

func TestPageNavigation(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '2')
	model = loadFichas(t, model, testFichas(schema.FichaPageSize), 30)

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	model = updated.(Model)
	if command == nil {
		t.Fatal("page next issued no fetch")
	}

	message := command().(fichasPageMsg)
	if message.request.Query.Page != 2 {
		t.Fatalf("requested page = %d, want 2", message.request.Query.Page)
	}
}

func TestMouseTabClick(t *testing.T) {
	model, _ := newTestModel(t)

	// The hit range for the second tab comes from the computed
	// header layout.
	var fichasRange tabHitRange
	for _, hit := range model.tabHitRanges {
		if hit.tab == TabFichas {
			fichasRange = hit
		}
	}
	if fichasRange.endX == 0 {
		t.Fatal("no hit range for the fichas tab")
	}

	updated, _ := model.Update(tea.MouseMsg{
		X:      fichasRange.startX,
		Y:      0,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	model = updated.(Model)
	if model.activeTab != TabFichas {
		t.Errorf("tab = %d, want TabFichas", model.activeTab)
	}
}

func TestMouseRowClick(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '2')
	model = loadFichas(t, model, testFichas(5), 5)

	// Row 0 renders just below the chrome line and the column header.
	updated, _ := model.Update(tea.MouseMsg{
		X:      2,
		Y:      model.contentStartY() + 1 + 3,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	model = updated.(Model)
	if model.fichaList.cursor != 3 {
		t.Errorf("cursor = %d, want 3", model.fichaList.cursor)
	}
}

func TestViewRendersTabsAndRows(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '2')
	model = loadFichas(t, model, testFichas(2), 2)

	view := model.View()
	for _, want := range []string{"2:Fichas", "AB12C0", "Notebook"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestShortClienteQueryHidesRows(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '3')
	model = loadClientes(t, model, []schema.Cliente{{ID: 1, Nome: "Ana Souza"}}, 1)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	model = updated.(Model)
	model = pressKey(model, 'a')

	// One rune is below the search minimum: no rows until the query
	// grows or clears, even though the previous window is still held.
	if _, count := model.activeList(); count != 0 {
		t.Fatalf("row count with short query = %d, want 0", count)
	}
	if strings.Contains(model.View(), "Ana Souza") {
		t.Error("short query still renders client rows")
	}

	model = pressKey(model, 'n')
	if _, count := model.activeList(); count != 1 {
		t.Errorf("row count at minimum length = %d, want 1", count)
	}
	if !strings.Contains(model.View(), "Ana Souza") {
		t.Error("held window not rendered once the query reaches the minimum")
	}
}

func TestDashboardPanelFailureShowsEmptyState(t *testing.T) {
	model, _ := newTestModel(t)

	fetchErr := errors.New("boom")
	for _, message := range []tea.Msg{
		statisticsMsg{err: fetchErr},
		recentFichasMsg{err: fetchErr},
		recentClientesMsg{err: fetchErr},
	} {
		updated, _ := model.Update(message)
		model = updated.(Model)
	}

	view := model.View()
	for _, want := range []string{"sem dados", "nenhuma ficha", "nenhum cliente"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing empty state %q", want)
		}
	}
	if strings.Contains(view, "carregando") {
		t.Error("panels still show the loading state after results arrived")
	}
}

func TestDashboardRendersRecentClientes(t *testing.T) {
	model, _ := newTestModel(t)

	updated, _ := model.Update(recentClientesMsg{clientes: []schema.Cliente{
		{ID: 1, Nome: "Ana Souza", Telefone: "11999990000"},
	}})
	model = updated.(Model)

	view := model.View()
	for _, want := range []string{"Clientes recentes", "Ana Souza"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRefreshDropsHiddenTabWindow(t *testing.T) {
	model, _ := newTestModel(t)
	model = pressKey(model, '3')
	model = loadClientes(t, model, []schema.Cliente{{ID: 1, Nome: "Ana"}}, 1)
	model = pressKey(model, '2')

	updated, _ := model.Update(refreshMsg{event: refresh.Event{Scope: refresh.ScopeClientes}})
	model = updated.(Model)

	if got := len(model.clientes.Items()); got != 0 {
		t.Errorf("hidden clientes window holds %d items, want 0", got)
	}
	if model.clienteList.cursor != 0 {
		t.Errorf("cursor = %d, want 0", model.clienteList.cursor)
	}
}
