// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package fichaui

import (
	"net/http"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/assistec/fichas/lib/api"
	"github.com/assistec/fichas/lib/clock"
	"github.com/assistec/fichas/lib/debounce"
	"github.com/assistec/fichas/lib/pager"
	"github.com/assistec/fichas/lib/refresh"
	"github.com/assistec/fichas/lib/schema"
	"github.com/assistec/fichas/lib/tui"
)

// Tab identifies which data view is active.
type Tab int

const (
	// TabDashboard shows the aggregate panels: monthly statistics,
	// recent fichas, and recent activity.
	TabDashboard Tab = iota
	// TabFichas shows the repair ticket list with the detail pane.
	TabFichas
	// TabClientes shows the client registry with the detail pane.
	TabClientes
	// TabLogs shows the activity log.
	TabLogs
)

// pickerFire tags debounce fires from the client picker inside the
// ficha form, which is not a tab of its own.
const pickerFire Tab = -1

// FocusRegion identifies where keyboard input routes.
type FocusRegion int

const (
	// FocusList means navigation keys move the list cursor.
	FocusList FocusRegion = iota
	// FocusDetail means navigation keys scroll the detail pane.
	FocusDetail
	// FocusFilter means keystrokes go to the filter input.
	FocusFilter
	// FocusDropdown means the status dropdown captures all input.
	FocusDropdown
	// FocusForm means a create/edit form captures all input.
	FocusForm
	// FocusEditor means the observation editor modal captures all
	// input. Ctrl+S submits, Escape cancels.
	FocusEditor
)

// Split percentage bounds and step size, in columns of a hundred.
const (
	splitPercentMin  = 20
	splitPercentMax  = 80
	splitPercentStep = 5
)

// Dashboard read sizes.
const (
	dashboardMonths      = 6
	dashboardRecentCount = 5
)

// noticeFadeDelay is how long a save/download notice stays visible.
const noticeFadeDelay = 4 * time.Second

// noticeFadeMsg clears the status bar notice.
type noticeFadeMsg struct{}

// listState is the cursor and scroll window of one list tab. Each tab
// keeps its own so switching tabs does not lose position.
type listState struct {
	cursor int
	scroll int
}

// clamp keeps the cursor inside the item count and the scroll window
// around it.
func (state *listState) clamp(count, visible int) {
	if state.cursor >= count {
		state.cursor = count - 1
	}
	if state.cursor < 0 {
		state.cursor = 0
	}
	if visible < 1 {
		visible = 1
	}
	if state.cursor < state.scroll {
		state.scroll = state.cursor
	}
	if state.cursor >= state.scroll+visible {
		state.scroll = state.cursor - visible + 1
	}
	if state.scroll < 0 {
		state.scroll = 0
	}
}

func (state *listState) move(delta, count, visible int) {
	state.cursor += delta
	state.clamp(count, visible)
}

func (state *listState) reset() {
	state.cursor = 0
	state.scroll = 0
}

// tabHitRange maps a horizontal span in the header to a tab.
type tabHitRange struct {
	startX int // Inclusive.
	endX   int // Exclusive.
	tab    Tab
}

// Options configures a Model.
type Options struct {
	// Client is the authenticated service client. Required.
	Client *api.Client

	// Clock drives the debounce timers. Defaults to the real clock.
	Clock clock.Clock

	// Bus receives a refresh event after every successful mutation
	// and feeds reloads back into the visible tab. Defaults to a
	// private bus.
	Bus *refresh.Bus

	// Operator is the logged-in user, shown in the header.
	Operator schema.Usuario

	// SplitPercent is the list pane's share of the width, 20 to 80.
	// Zero means the default of 55.
	SplitPercent int
}

// Model is the top-level bubbletea model for the fichas TUI.
type Model struct {
	client *api.Client
	clk    clock.Clock
	theme  tui.Theme
	keys   KeyMap
	bus    *refresh.Bus

	subscription *refresh.Subscription
	operator     schema.Usuario

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	activeTab   Tab
	focusRegion FocusRegion
	priorFocus  FocusRegion // Saved focus when entering filter mode.

	splitPercent int

	// One pager and list position per record tab.
	fichas   *pager.Pager[schema.Ficha]
	clientes *pager.Pager[schema.Cliente]
	logs     *pager.Pager[schema.LogEntry]

	fichaList   listState
	clienteList listState
	logList     listState

	// Server-side filters. statusFacet is the fichas status filter
	// cycled with f; it composes with the text filter.
	fichaFilter   FilterModel
	clienteFilter FilterModel
	statusFacet   schema.Status

	fires           chan debounceFiredMsg
	fichaDebounce   *debounce.Debouncer
	clienteDebounce *debounce.Debouncer
	pickerDebounce  *debounce.Debouncer

	// Detail pane state. The id fields pin which record the loaded
	// detail belongs to; a cursor move before the response lands
	// makes the stale response drop on arrival.
	fichaDetail      *schema.FichaDetail
	fichaDetailID    int64
	fichaDetailErr   error
	clienteDetail    *schema.ClienteDetail
	clienteDetailID  int64
	clienteDetailErr error
	detailScroll     int

	dashboard dashboardState

	// Overlays. At most one is active at a time; focusRegion says
	// which.
	activeDropdown *tui.DropdownOverlay
	editor         *tui.EditorModal
	editorPrivate  bool // Which observation field the editor edits.
	editorFichaID  int64
	form           *formModel

	// Live update animation.
	heatTracker *tui.HeatTracker
	tickRunning bool

	// Status bar content.
	errorNotice string
	notice      string

	tabHitRanges []tabHitRange

	sessionExpired bool
}

// NewModel creates a Model. The first fetches are issued by Init.
func NewModel(options Options) Model {
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}
	bus := options.Bus
	if bus == nil {
		bus = refresh.NewBus()
	}
	split := options.SplitPercent
	if split == 0 {
		split = 55
	}

	model := Model{
		client:       options.Client,
		clk:          clk,
		theme:        tui.DefaultTheme,
		keys:         DefaultKeyMap,
		bus:          bus,
		subscription: bus.Subscribe(),
		operator:     options.Operator,
		activeTab:    TabDashboard,
		splitPercent: split,
		fichas: pager.New(pager.Config[schema.Ficha]{
			PageSize: schema.FichaPageSize,
			ID:       func(f schema.Ficha) int64 { return f.ID },
		}),
		clientes: pager.New(pager.Config[schema.Cliente]{
			PageSize:   schema.ClientePageSize,
			MinQuery:   schema.MinClienteQuery,
			Accumulate: true,
			ID:         func(c schema.Cliente) int64 { return c.ID },
		}),
		logs: pager.New(pager.Config[schema.LogEntry]{
			PageSize: schema.LogPageSize,
			ID:       func(entry schema.LogEntry) int64 { return entry.ID },
		}),
		fires:       make(chan debounceFiredMsg, 8),
		heatTracker: tui.NewHeatTracker(),
	}

	fires := model.fires
	model.fichaDebounce = debounce.New(clk, debounce.Delay, 0, func(text string) {
		fires <- debounceFiredMsg{tab: TabFichas, text: text}
	})
	model.clienteDebounce = debounce.New(clk, debounce.Delay, schema.MinClienteQuery, func(text string) {
		fires <- debounceFiredMsg{tab: TabClientes, text: text}
	})
	model.pickerDebounce = debounce.New(clk, debounce.Delay, schema.MinClienteQuery, func(text string) {
		fires <- debounceFiredMsg{tab: pickerFire, text: text}
	})

	return model
}

// SessionExpired reports whether the model quit because the service
// rejected the token. The caller re-authenticates and restarts.
func (model Model) SessionExpired() bool {
	return model.sessionExpired
}

// Init implements tea.Model. Loads the dashboard and the first page
// of every record tab, and starts the channel listeners.
func (model Model) Init() tea.Cmd {
	commands := []tea.Cmd{
		fetchStatistics(model.client),
		fetchRecentFichas(model.client),
		fetchRecentClientes(model.client),
		listenRefresh(model.subscription),
		listenDebounce(model.fires),
	}
	if request, issued := model.fichas.SetFilter("", nil); issued {
		commands = append(commands, fetchFichas(model.client, request))
	}
	if request, issued := model.clientes.SetFilter("", nil); issued {
		commands = append(commands, fetchClientes(model.client, request))
	}
	if request, issued := model.logs.SetFilter("", nil); issued {
		commands = append(commands, fetchLogs(model.client, request))
	}
	return tea.Batch(commands...)
}

// Update implements tea.Model. Routes keyboard events based on the
// current focus region and applies fetch results.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch model.focusRegion {
		case FocusFilter:
			return model.handleFilterKeys(message)
		case FocusDropdown:
			return model.handleDropdownKeys(message)
		case FocusEditor:
			return model.handleEditorKeys(message)
		case FocusForm:
			return model.handleFormKeys(message)
		}
		return model.handleGlobalKeys(message)

	case tea.MouseMsg:
		return model.handleMouse(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.computeTabHitRanges()

	case fichasPageMsg:
		if model.fichas.Commit(message.request, pager.Result[schema.Ficha]{
			Items: message.page.Items,
			Total: message.page.Total,
		}, message.err) == pager.Applied {
			model.fichaList.clamp(len(model.fichas.Items()), model.listVisibleRows())
			return model, model.selectFichaCmd()
		}
		return model.checkFetchError(message.err)

	case clientesPageMsg:
		if model.clientes.Commit(message.request, pager.Result[schema.Cliente]{
			Items: message.page.Items,
			Total: message.page.Total,
		}, message.err) == pager.Applied {
			model.clienteList.clamp(len(model.clientes.Items()), model.listVisibleRows())
			return model, model.selectClienteCmd()
		}
		return model.checkFetchError(message.err)

	case logsPageMsg:
		if model.logs.Commit(message.request, pager.Result[schema.LogEntry]{
			Items: message.page.Items,
			Total: message.page.Total,
		}, message.err) == pager.Applied {
			model.logList.clamp(len(model.logs.Items()), model.listVisibleRows())
		}
		return model.checkFetchError(message.err)

	case fichaDetailMsg:
		if message.id != model.fichaDetailID {
			return model, nil
		}
		if message.err != nil {
			model.fichaDetail = nil
			model.fichaDetailErr = message.err
			return model.checkFetchError(message.err)
		}
		detail := message.detail
		model.fichaDetail = &detail
		model.fichaDetailErr = nil
		return model, nil

	case clienteDetailMsg:
		if message.id != model.clienteDetailID {
			return model, nil
		}
		if message.err != nil {
			model.clienteDetail = nil
			model.clienteDetailErr = message.err
			return model.checkFetchError(message.err)
		}
		detail := message.detail
		model.clienteDetail = &detail
		model.clienteDetailErr = nil
		return model, nil

	case fichaSavedMsg:
		return model.handleFichaSaved(message)

	case clienteSavedMsg:
		return model.handleClienteSaved(message)

	case pickerResultsMsg:
		if model.form != nil {
			model.form.applyPickerResults(message)
		}
		return model.checkFetchError(message.err)

	case pdfSavedMsg:
		if message.err != nil {
			return model.reportError(message.err)
		}
		return model, model.setNotice("PDF salvo em " + message.path)

	case statisticsMsg:
		model.dashboard.stats = message.stats
		model.dashboard.statsLoaded = true
		return model.checkFetchError(message.err)

	case recentFichasMsg:
		model.dashboard.recent = message.fichas
		model.dashboard.recentLoaded = true
		return model.checkFetchError(message.err)

	case recentClientesMsg:
		model.dashboard.clientes = message.clientes
		model.dashboard.clientesLoaded = true
		return model.checkFetchError(message.err)

	case refreshMsg:
		return model.handleRefresh(message.event)

	case debounceFiredMsg:
		return model.handleDebounceFired(message)

	case heatTickMsg:
		if model.heatTracker.HasHot(model.clk.Now()) {
			return model, heatTick()
		}
		model.tickRunning = false
		return model, nil

	case noticeFadeMsg:
		model.notice = ""
		return model, nil
	}
	return model, nil
}

// checkFetchError records a fetch error in the status bar, quitting
// first when the token was rejected.
func (model Model) checkFetchError(err error) (tea.Model, tea.Cmd) {
	if err == nil {
		return model, nil
	}
	return model.reportError(err)
}

func (model Model) reportError(err error) (tea.Model, tea.Cmd) {
	if api.ErrStatus(err, http.StatusUnauthorized) {
		model.sessionExpired = true
		return model, tea.Quit
	}
	model.errorNotice = err.Error()
	return model, nil
}

// setNotice installs a transient status bar notice and returns the
// command that fades it.
func (model *Model) setNotice(text string) tea.Cmd {
	model.notice = text
	model.errorNotice = ""
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{}
	})
}

// igniteAndTick marks a row hot and makes sure the decay tick is
// running.
func (model *Model) igniteAndTick(id int64) tea.Cmd {
	model.heatTracker.Ignite(id, model.clk.Now())
	if model.tickRunning {
		return nil
	}
	model.tickRunning = true
	return heatTick()
}

func (model Model) handleFichaSaved(message fichaSavedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		if model.form != nil {
			model.form.submitting = false
		}
		return model.reportError(message.err)
	}
	saved := message.ficha
	var commands []tea.Cmd
	if message.created {
		model.closeForm()
		model.fichas.Prepend(saved)
		model.fichaList.reset()
		model.activeTab = TabFichas
		commands = append(commands, model.selectFichaCmd())
	} else {
		model.fichas.PatchLocal(saved.ID, func(existing schema.Ficha) schema.Ficha {
			return existing.Merge(saved)
		})
		if model.fichaDetail != nil && model.fichaDetailID == saved.ID {
			merged := *model.fichaDetail
			merged.Ficha = merged.Ficha.Merge(saved)
			model.fichaDetail = &merged
		}
		model.closeForm()
	}
	commands = append(commands, model.igniteAndTick(saved.ID))
	model.bus.Publish(refresh.Event{Scope: refresh.ScopeFichas, ID: saved.ID})
	model.bus.Publish(refresh.Event{Scope: refresh.ScopeLogs})
	commands = append(commands, model.setNotice("Ficha "+saved.Codigo+" salva"))
	return model, tea.Batch(commands...)
}

func (model Model) handleClienteSaved(message clienteSavedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		if model.form != nil {
			model.form.submitting = false
		}
		return model.reportError(message.err)
	}
	saved := message.cliente
	model.closeForm()
	var commands []tea.Cmd
	if message.created {
		model.clientes.Prepend(saved)
		model.clienteList.reset()
		model.activeTab = TabClientes
		commands = append(commands, model.selectClienteCmd())
	} else {
		model.clientes.PatchLocal(saved.ID, func(existing schema.Cliente) schema.Cliente {
			return existing.Merge(saved)
		})
		if model.clienteDetail != nil && model.clienteDetailID == saved.ID {
			merged := *model.clienteDetail
			merged.Cliente = merged.Cliente.Merge(saved)
			model.clienteDetail = &merged
		}
	}
	commands = append(commands, model.igniteAndTick(saved.ID))
	model.bus.Publish(refresh.Event{Scope: refresh.ScopeClientes, ID: saved.ID})
	model.bus.Publish(refresh.Event{Scope: refresh.ScopeLogs})
	commands = append(commands, model.setNotice("Cliente "+saved.Nome+" salvo"))
	return model, tea.Batch(commands...)
}

// handleRefresh reloads the tabs a bus event invalidates. The
// visible tab refetches eagerly; a hidden tab's window is dropped so
// the switch back shows a fresh load instead of stale rows.
func (model Model) handleRefresh(event refresh.Event) (tea.Model, tea.Cmd) {
	commands := []tea.Cmd{listenRefresh(model.subscription)}
	switch event.Scope {
	case refresh.ScopeFichas:
		if model.activeTab == TabFichas {
			commands = append(commands, fetchFichas(model.client, model.fichas.Reload()))
		} else {
			model.fichas.ClearLocal()
			model.fichaList.reset()
		}
		if model.activeTab == TabDashboard {
			commands = append(commands, fetchStatistics(model.client), fetchRecentFichas(model.client))
		}
	case refresh.ScopeClientes:
		if model.activeTab == TabClientes {
			commands = append(commands, fetchClientes(model.client, model.clientes.Reload()))
		} else {
			model.clientes.ClearLocal()
			model.clienteList.reset()
		}
		if model.activeTab == TabDashboard {
			commands = append(commands, fetchRecentClientes(model.client))
		}
	case refresh.ScopeLogs:
		if model.activeTab == TabLogs {
			commands = append(commands, fetchLogs(model.client, model.logs.Reload()))
		} else {
			model.logs.ClearLocal()
			model.logList.reset()
		}
	}
	return model, tea.Batch(commands...)
}

// handleDebounceFired applies a settled filter text to its pager.
func (model Model) handleDebounceFired(message debounceFiredMsg) (tea.Model, tea.Cmd) {
	commands := []tea.Cmd{listenDebounce(model.fires)}
	switch message.tab {
	case TabFichas:
		// The fired text may trail the input when the operator kept
		// typing; the newer fire supersedes through the pager's
		// generation anyway.
		filter := ParseFichaQuery(message.text)
		if request, issued := model.fichas.SetFilter(filter.Query, model.fichaExtra(filter)); issued {
			model.fichaList.reset()
			commands = append(commands, fetchFichas(model.client, request))
		}
	case TabClientes:
		if request, issued := model.clientes.SetFilter(message.text, nil); issued {
			model.clienteList.reset()
			commands = append(commands, fetchClientes(model.client, request))
		}
	case pickerFire:
		if model.form != nil && model.form.kind == formFichaCreate {
			commands = append(commands, searchPickerClientes(model.client, message.text))
		}
	}
	return model, tea.Batch(commands...)
}

// fichaExtra folds the structured filter fields and the status facet
// into the pager's extra map.
func (model Model) fichaExtra(filter api.FichaFilter) map[string]string {
	extra := map[string]string{}
	if model.statusFacet != "" {
		extra["status"] = string(model.statusFacet)
	}
	if filter.DataIni != "" {
		extra["data_ini"] = filter.DataIni
	}
	if filter.DataFim != "" {
		extra["data_fim"] = filter.DataFim
	}
	return extra
}

// selectFichaCmd fetches the detail of the ficha under the cursor.
// Stale responses are dropped by id on arrival.
func (model *Model) selectFichaCmd() tea.Cmd {
	items := model.fichas.Items()
	if len(items) == 0 {
		model.fichaDetail = nil
		model.fichaDetailID = 0
		return nil
	}
	selected := items[model.fichaList.cursor]
	if selected.ID == model.fichaDetailID && model.fichaDetail != nil {
		return nil
	}
	model.fichaDetailID = selected.ID
	model.detailScroll = 0
	return fetchFichaDetail(model.client, selected.ID)
}

func (model *Model) selectClienteCmd() tea.Cmd {
	items := model.clientes.Items()
	if len(items) == 0 {
		model.clienteDetail = nil
		model.clienteDetailID = 0
		return nil
	}
	selected := items[model.clienteList.cursor]
	if selected.ID == model.clienteDetailID && model.clienteDetail != nil {
		return nil
	}
	model.clienteDetailID = selected.ID
	model.detailScroll = 0
	return fetchClienteDetail(model.client, selected.ID)
}

// switchTab changes the active view. A tab whose pager has seen no
// successful load yet (for example after a failed startup fetch)
// refetches on entry.
func (model *Model) switchTab(tab Tab) tea.Cmd {
	if model.activeTab == tab {
		return nil
	}
	model.activeTab = tab
	model.focusRegion = FocusList
	model.detailScroll = 0
	switch tab {
	case TabDashboard:
		return tea.Batch(
			fetchStatistics(model.client),
			fetchRecentFichas(model.client),
			fetchRecentClientes(model.client),
		)
	case TabFichas:
		return tea.Batch(fetchFichas(model.client, model.fichas.Reload()), model.selectFichaCmd())
	case TabClientes:
		return tea.Batch(fetchClientes(model.client, model.clientes.Reload()), model.selectClienteCmd())
	case TabLogs:
		return fetchLogs(model.client, model.logs.Reload())
	}
	return nil
}

// activePager returns the pager and list state of the current tab.
// nil on the dashboard.
func (model *Model) activeList() (*listState, int) {
	switch model.activeTab {
	case TabFichas:
		return &model.fichaList, len(model.fichas.Items())
	case TabClientes:
		if model.clienteQueryTooShort() {
			return &model.clienteList, 0
		}
		return &model.clienteList, len(model.clientes.Items())
	case TabLogs:
		return &model.logList, len(model.logs.Items())
	}
	return nil, 0
}

// clienteQueryTooShort reports whether the clientes filter holds a
// non-empty query below the search minimum. A short query issues no
// fetch and shows no rows; the previous window returns when the query
// grows or clears.
func (model *Model) clienteQueryTooShort() bool {
	length := len([]rune(model.clienteFilter.Input))
	return length > 0 && length < schema.MinClienteQuery
}

func (model *Model) activeFilter() *FilterModel {
	switch model.activeTab {
	case TabFichas:
		return &model.fichaFilter
	case TabClientes:
		return &model.clienteFilter
	}
	return nil
}

func (model *Model) activeDebouncer() *debounce.Debouncer {
	switch model.activeTab {
	case TabFichas:
		return model.fichaDebounce
	case TabClientes:
		return model.clienteDebounce
	}
	return nil
}

// selectedFicha returns the ficha under the cursor, false when the
// list is empty.
func (model *Model) selectedFicha() (schema.Ficha, bool) {
	items := model.fichas.Items()
	if len(items) == 0 || model.fichaList.cursor >= len(items) {
		return schema.Ficha{}, false
	}
	return items[model.fichaList.cursor], true
}

func (model *Model) selectedCliente() (schema.Cliente, bool) {
	items := model.clientes.Items()
	if len(items) == 0 || model.clienteList.cursor >= len(items) {
		return schema.Cliente{}, false
	}
	return items[model.clienteList.cursor], true
}

func (model *Model) closeForm() {
	model.form = nil
	if model.focusRegion == FocusForm {
		model.focusRegion = FocusList
	}
	model.pickerDebounce.Cancel()
}

// handleGlobalKeys is the default key route: tab switching, list
// navigation, and the per-tab actions.
func (model Model) handleGlobalKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.TabDashboard):
		return model, model.switchTab(TabDashboard)
	case key.Matches(message, model.keys.TabFichas):
		return model, model.switchTab(TabFichas)
	case key.Matches(message, model.keys.TabClientes):
		return model, model.switchTab(TabClientes)
	case key.Matches(message, model.keys.TabLogs):
		return model, model.switchTab(TabLogs)

	case key.Matches(message, model.keys.FocusToggle):
		if model.activeTab == TabFichas || model.activeTab == TabClientes {
			if model.focusRegion == FocusList {
				model.focusRegion = FocusDetail
			} else {
				model.focusRegion = FocusList
			}
		}
		return model, nil

	case key.Matches(message, model.keys.SplitGrow):
		model.splitPercent += splitPercentStep
		if model.splitPercent > splitPercentMax {
			model.splitPercent = splitPercentMax
		}
		return model, nil

	case key.Matches(message, model.keys.SplitShrink):
		model.splitPercent -= splitPercentStep
		if model.splitPercent < splitPercentMin {
			model.splitPercent = splitPercentMin
		}
		return model, nil

	case key.Matches(message, model.keys.FilterActivate):
		if filter := model.activeFilter(); filter != nil {
			model.priorFocus = model.focusRegion
			model.focusRegion = FocusFilter
			filter.Active = true
		}
		return model, nil

	case key.Matches(message, model.keys.FilterClear):
		return model.clearFilter()

	case key.Matches(message, model.keys.CycleStatus):
		if model.activeTab == TabFichas {
			return model.cycleStatusFacet()
		}
		return model, nil

	case key.Matches(message, model.keys.Reload):
		return model.reloadActive()

	case key.Matches(message, model.keys.New):
		return model.openCreateForm()

	case key.Matches(message, model.keys.Edit):
		return model.openEditForm()

	case key.Matches(message, model.keys.Status):
		return model.openStatusDropdown()

	case key.Matches(message, model.keys.ObservationPublic):
		return model.openObservationEditor(false)

	case key.Matches(message, model.keys.ObservationPrivate):
		return model.openObservationEditor(true)

	case key.Matches(message, model.keys.Download):
		if model.activeTab == TabFichas {
			if ficha, ok := model.selectedFicha(); ok {
				return model, downloadPDF(model.client, ficha.ID, ficha.Codigo)
			}
		}
		return model, nil

	case key.Matches(message, model.keys.PagePrevious):
		return model.pageStep(-1)
	case key.Matches(message, model.keys.PageNext):
		return model.pageStep(1)
	}

	if model.focusRegion == FocusDetail {
		return model.handleDetailScrollKeys(message)
	}
	return model.handleListKeys(message)
}

func (model Model) clearFilter() (tea.Model, tea.Cmd) {
	filter := model.activeFilter()
	if filter == nil || filter.Input == "" {
		return model, nil
	}
	filter.Clear()
	if debouncer := model.activeDebouncer(); debouncer != nil {
		debouncer.Cancel()
	}
	switch model.activeTab {
	case TabFichas:
		if request, issued := model.fichas.SetFilter("", model.fichaExtra(api.FichaFilter{})); issued {
			model.fichaList.reset()
			return model, fetchFichas(model.client, request)
		}
	case TabClientes:
		if request, issued := model.clientes.SetFilter("", nil); issued {
			model.clienteList.reset()
			return model, fetchClientes(model.client, request)
		}
	}
	return model, nil
}

// cycleStatusFacet steps the fichas status filter through all
// statuses and back to "all".
func (model Model) cycleStatusFacet() (tea.Model, tea.Cmd) {
	statuses := schema.AllStatuses
	if model.statusFacet == "" {
		model.statusFacet = statuses[0]
	} else {
		next := 0
		for i, status := range statuses {
			if status == model.statusFacet {
				next = i + 1
				break
			}
		}
		if next >= len(statuses) {
			model.statusFacet = ""
		} else {
			model.statusFacet = statuses[next]
		}
	}
	filter := ParseFichaQuery(model.fichaFilter.Input)
	if request, issued := model.fichas.SetFilter(filter.Query, model.fichaExtra(filter)); issued {
		model.fichaList.reset()
		return model, fetchFichas(model.client, request)
	}
	return model, nil
}

func (model Model) reloadActive() (tea.Model, tea.Cmd) {
	switch model.activeTab {
	case TabDashboard:
		return model, tea.Batch(
			fetchStatistics(model.client),
			fetchRecentFichas(model.client),
			fetchRecentClientes(model.client),
		)
	case TabFichas:
		return model, fetchFichas(model.client, model.fichas.Reload())
	case TabClientes:
		return model, fetchClientes(model.client, model.clientes.Reload())
	case TabLogs:
		return model, fetchLogs(model.client, model.logs.Reload())
	}
	return model, nil
}

// pageStep navigates page-mode lists (fichas, logs) one page in
// either direction. The clientes tab accumulates instead and ignores
// these keys.
func (model Model) pageStep(direction int) (tea.Model, tea.Cmd) {
	switch model.activeTab {
	case TabFichas:
		target := model.fichas.PageNumber() + direction
		if direction > 0 && !model.fichas.HasMore() {
			return model, nil
		}
		if request, issued := model.fichas.GoToPage(target); issued {
			model.fichaList.reset()
			return model, fetchFichas(model.client, request)
		}
	case TabLogs:
		target := model.logs.PageNumber() + direction
		if direction > 0 && !model.logs.HasMore() {
			return model, nil
		}
		if request, issued := model.logs.GoToPage(target); issued {
			model.logList.reset()
			return model, fetchLogs(model.client, request)
		}
	}
	return model, nil
}

// handleListKeys moves the list cursor. On the clientes tab, reaching
// the bottom of a fully scrolled list requests the next page.
func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	state, count := model.activeList()
	if state == nil {
		return model, nil
	}
	visible := model.listVisibleRows()

	switch {
	case key.Matches(message, model.keys.Up):
		state.move(-1, count, visible)
	case key.Matches(message, model.keys.Down):
		if state.cursor == count-1 && model.activeTab == TabClientes {
			if request, issued := model.clientes.LoadMore(); issued {
				return model, fetchClientes(model.client, request)
			}
			return model, nil
		}
		state.move(1, count, visible)
	case key.Matches(message, model.keys.PageUp):
		state.move(-visible, count, visible)
	case key.Matches(message, model.keys.PageDown):
		state.move(visible, count, visible)
	case key.Matches(message, model.keys.Home):
		state.cursor = 0
		state.clamp(count, visible)
	case key.Matches(message, model.keys.End):
		state.cursor = count - 1
		state.clamp(count, visible)
	default:
		return model, nil
	}

	switch model.activeTab {
	case TabFichas:
		return model, model.selectFichaCmd()
	case TabClientes:
		return model, model.selectClienteCmd()
	}
	return model, nil
}

func (model Model) handleDetailScrollKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := model.listVisibleRows()
	switch {
	case key.Matches(message, model.keys.Up):
		model.detailScroll--
	case key.Matches(message, model.keys.Down):
		model.detailScroll++
	case key.Matches(message, model.keys.PageUp):
		model.detailScroll -= visible
	case key.Matches(message, model.keys.PageDown):
		model.detailScroll += visible
	case key.Matches(message, model.keys.Home):
		model.detailScroll = 0
	}
	if model.detailScroll < 0 {
		model.detailScroll = 0
	}
	return model, nil
}

// handleFilterKeys routes keystrokes into the active filter input.
// Every edit feeds the debouncer; the fetch happens when it settles.
func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	filter := model.activeFilter()
	if filter == nil {
		model.focusRegion = model.priorFocus
		return model, nil
	}

	switch message.Type {
	case tea.KeyEscape:
		filter.Active = false
		model.focusRegion = model.priorFocus
		return model.clearFilter()

	case tea.KeyEnter:
		filter.Active = false
		model.focusRegion = model.priorFocus
		return model, nil

	case tea.KeyBackspace:
		if filter.HandleBackspace() {
			return model.filterChanged(filter.Input)
		}
		return model, nil

	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			filter.HandleRune(character)
		}
		return model.filterChanged(filter.Input)
	}
	return model, nil
}

// filterChanged feeds an edited filter text to the debouncer. Text
// cleared to empty refetches immediately; the clientes gate would
// otherwise swallow it and strand the filtered list.
func (model Model) filterChanged(text string) (tea.Model, tea.Cmd) {
	debouncer := model.activeDebouncer()
	if debouncer == nil {
		return model, nil
	}
	if text == "" {
		debouncer.Cancel()
		switch model.activeTab {
		case TabFichas:
			if request, issued := model.fichas.SetFilter("", model.fichaExtra(api.FichaFilter{})); issued {
				model.fichaList.reset()
				return model, fetchFichas(model.client, request)
			}
		case TabClientes:
			if request, issued := model.clientes.SetFilter("", nil); issued {
				model.clienteList.reset()
				return model, fetchClientes(model.client, request)
			}
		}
		return model, nil
	}
	debouncer.Input(text)
	return model, nil
}

// openStatusDropdown opens the status overlay for the selected ficha,
// anchored next to the list cursor.
func (model Model) openStatusDropdown() (tea.Model, tea.Cmd) {
	if model.activeTab != TabFichas {
		return model, nil
	}
	ficha, ok := model.selectedFicha()
	if !ok {
		return model, nil
	}
	options := make([]tui.DropdownOption, 0, len(schema.AllStatuses))
	for _, status := range schema.AllStatuses {
		options = append(options, tui.DropdownOption{
			Label: status.Label(),
			Value: string(status),
		})
	}
	cursor := 0
	for i, status := range schema.AllStatuses {
		if status == ficha.Status {
			cursor = i
		}
	}
	anchorY := model.contentStartY() + model.fichaList.cursor - model.fichaList.scroll + 1
	model.activeDropdown = &tui.DropdownOverlay{
		Options: options,
		Cursor:  cursor,
		AnchorX: 4,
		AnchorY: anchorY,
		ItemID:  ficha.ID,
	}
	model.priorFocus = model.focusRegion
	model.focusRegion = FocusDropdown
	return model, nil
}

func (model Model) handleDropdownKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	dropdown := model.activeDropdown
	if dropdown == nil {
		model.focusRegion = model.priorFocus
		return model, nil
	}
	switch {
	case key.Matches(message, model.keys.Up):
		dropdown.MoveUp()
	case key.Matches(message, model.keys.Down):
		dropdown.MoveDown()
	case message.Type == tea.KeyEnter:
		selected := dropdown.Selected()
		id := dropdown.ItemID
		model.dismissDropdown()
		status := schema.Status(selected.Value)
		return model, updateFicha(model.client, id, schema.FichaPatch{Status: &status})
	case message.Type == tea.KeyEscape:
		model.dismissDropdown()
	}
	return model, nil
}

func (model *Model) dismissDropdown() {
	model.activeDropdown = nil
	model.focusRegion = model.priorFocus
}

// openObservationEditor opens the modal editor over the selected
// ficha's public or private observation.
func (model Model) openObservationEditor(private bool) (tea.Model, tea.Cmd) {
	if model.activeTab != TabFichas {
		return model, nil
	}
	ficha, ok := model.selectedFicha()
	if !ok {
		return model, nil
	}
	title := "Observação pública — " + ficha.Codigo
	initial := ficha.ObservacaoPublica
	if private {
		title = "Observação privada — " + ficha.Codigo
		initial = ficha.ObservacaoPrivada
	}
	if model.fichaDetail != nil && model.fichaDetailID == ficha.ID {
		if private {
			initial = model.fichaDetail.Ficha.ObservacaoPrivada
		} else {
			initial = model.fichaDetail.Ficha.ObservacaoPublica
		}
	}
	editor := tui.NewEditorModal(title, initial, model.theme)
	model.editor = &editor
	model.editorPrivate = private
	model.editorFichaID = ficha.ID
	model.priorFocus = model.focusRegion
	model.focusRegion = FocusEditor
	return model, nil
}

func (model Model) handleEditorKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.editor == nil {
		model.focusRegion = model.priorFocus
		return model, nil
	}
	switch message.Type {
	case tea.KeyEscape:
		model.editor = nil
		model.focusRegion = model.priorFocus
		return model, nil
	case tea.KeyCtrlS:
		value := model.editor.Value()
		id := model.editorFichaID
		private := model.editorPrivate
		model.editor = nil
		model.focusRegion = model.priorFocus
		patch := schema.FichaPatch{}
		if private {
			patch.ObservacaoPrivada = &value
		} else {
			patch.ObservacaoPublica = &value
		}
		return model, updateFicha(model.client, id, patch)
	}
	model.editor.Update(message)
	return model, nil
}

// openCreateForm opens the creation form for the current tab: a new
// cliente on the clientes tab, a new ficha (with client picker) on
// the fichas tab.
func (model Model) openCreateForm() (tea.Model, tea.Cmd) {
	switch model.activeTab {
	case TabClientes:
		form := newClienteForm(schema.Cliente{}, false)
		model.form = &form
	case TabFichas:
		form := newFichaForm()
		model.form = &form
	default:
		return model, nil
	}
	model.priorFocus = model.focusRegion
	model.focusRegion = FocusForm
	return model, nil
}

// openEditForm opens the edit form for the selected record. Fichas
// edit through the patch allow-list; clientes edit every field.
func (model Model) openEditForm() (tea.Model, tea.Cmd) {
	switch model.activeTab {
	case TabClientes:
		cliente, ok := model.selectedCliente()
		if !ok {
			return model, nil
		}
		if model.clienteDetail != nil && model.clienteDetailID == cliente.ID {
			cliente = model.clienteDetail.Cliente
		}
		form := newClienteForm(cliente, true)
		model.form = &form
	case TabFichas:
		ficha, ok := model.selectedFicha()
		if !ok {
			return model, nil
		}
		if model.fichaDetail != nil && model.fichaDetailID == ficha.ID {
			ficha = model.fichaDetail.Ficha
		}
		form := newFichaEditForm(ficha)
		model.form = &form
	default:
		return model, nil
	}
	model.priorFocus = model.focusRegion
	model.focusRegion = FocusForm
	return model, nil
}

func (model Model) handleFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.form == nil {
		model.focusRegion = model.priorFocus
		return model, nil
	}
	if message.Type == tea.KeyEscape && !model.form.pickerOpen() {
		model.closeForm()
		return model, nil
	}
	command := model.form.handleKey(message, &model)
	if model.form != nil && model.form.dismissed {
		model.closeForm()
	}
	return model, command
}

// handleMouse routes wheel and click events. The tab bar on Y=0
// switches tabs; clicks in the list select rows; the wheel scrolls
// whichever pane the cursor is over.
func (model Model) handleMouse(message tea.MouseMsg) (tea.Model, tea.Cmd) {
	if model.focusRegion == FocusForm || model.focusRegion == FocusEditor {
		return model, nil
	}

	if model.focusRegion == FocusDropdown && model.activeDropdown != nil {
		if message.Action == tea.MouseActionPress && message.Button == tea.MouseButtonLeft {
			dropdown := model.activeDropdown
			if dropdown.Contains(message.X, message.Y) {
				if index := dropdown.OptionAtY(message.Y); index >= 0 {
					dropdown.Cursor = index
					return model.handleDropdownKeys(tea.KeyMsg{Type: tea.KeyEnter})
				}
				return model, nil
			}
			model.dismissDropdown()
		}
		return model, nil
	}

	switch {
	case message.Button == tea.MouseButtonWheelUp:
		return model.wheelScroll(message, -3)
	case message.Button == tea.MouseButtonWheelDown:
		return model.wheelScroll(message, 3)
	}

	if message.Action != tea.MouseActionPress || message.Button != tea.MouseButtonLeft {
		return model, nil
	}

	// Tab bar click.
	if message.Y == 0 {
		for _, hit := range model.tabHitRanges {
			if message.X >= hit.startX && message.X < hit.endX {
				return model, model.switchTab(hit.tab)
			}
		}
		return model, nil
	}

	// List row click.
	state, count := model.activeList()
	if state == nil {
		return model, nil
	}
	if message.X < model.listWidth() {
		row := message.Y - model.contentStartY() - 1 // Below the column header.
		index := state.scroll + row
		if row >= 0 && index < count {
			state.cursor = index
			model.focusRegion = FocusList
			switch model.activeTab {
			case TabFichas:
				return model, model.selectFichaCmd()
			case TabClientes:
				return model, model.selectClienteCmd()
			}
		}
		return model, nil
	}
	model.focusRegion = FocusDetail
	return model, nil
}

func (model Model) wheelScroll(message tea.MouseMsg, delta int) (tea.Model, tea.Cmd) {
	if message.X >= model.listWidth() && (model.activeTab == TabFichas || model.activeTab == TabClientes) {
		model.detailScroll += delta
		if model.detailScroll < 0 {
			model.detailScroll = 0
		}
		return model, nil
	}
	state, count := model.activeList()
	if state == nil {
		return model, nil
	}
	state.move(delta, count, model.listVisibleRows())
	switch model.activeTab {
	case TabFichas:
		return model, model.selectFichaCmd()
	case TabClientes:
		return model, model.selectClienteCmd()
	}
	return model, nil
}
