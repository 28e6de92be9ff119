// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package fichaui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/assistec/fichas/lib/schema"
	"github.com/assistec/fichas/lib/tui"
	"github.com/assistec/fichas/lib/validate"
)

type formKind int

const (
	formClienteCreate formKind = iota
	formClienteEdit
	formFichaCreate
	formFichaEdit
)

// formField is one single-line input of a form. validate returns a
// Portuguese message or "" when acceptable; it runs on blur and again
// on submit.
type formField struct {
	label     string
	value     []rune
	errorText string
	validate  func(string) string
}

func (field *formField) text() string {
	return string(field.value)
}

func (field *formField) check() bool {
	if field.validate == nil {
		field.errorText = ""
		return true
	}
	field.errorText = field.validate(field.text())
	return field.errorText == ""
}

// formModel is a modal create/edit form. The ficha creation form
// leads with a debounced client picker; every other field is a plain
// single-line input. Tab and enter advance, Ctrl+S submits from
// anywhere.
type formModel struct {
	kind   formKind
	title  string
	fields []formField

	focusIndex int
	submitting bool
	dismissed  bool

	// Edit targets.
	clienteID     int64
	fichaID       int64
	originalFicha schema.Ficha

	// Client picker state (formFichaCreate only). The picker is the
	// pseudo-field before fields[0]; pickerDone flips once a client
	// is chosen.
	pickerQuery   []rune
	pickerResults []schema.Cliente
	pickerCursor  int
	pickerDone    bool
	pickerLabel   string
}

// Field order of the cliente form.
const (
	clienteFieldNome = iota
	clienteFieldTelefone
	clienteFieldEmail
	clienteFieldEndereco
	clienteFieldNumero
	clienteFieldBairro
	clienteFieldCidade
)

func newClienteForm(cliente schema.Cliente, editing bool) formModel {
	form := formModel{
		kind:      formClienteCreate,
		title:     "Novo cliente",
		clienteID: cliente.ID,
		fields: []formField{
			{label: "Nome", value: []rune(cliente.Nome), validate: validate.Nome},
			{label: "Telefone", value: []rune(cliente.Telefone), validate: validate.Telefone},
			{label: "Email", value: []rune(cliente.Email), validate: validate.Email},
			{label: "Endereço", value: []rune(cliente.Endereco), validate: validate.Endereco},
			{label: "Número", value: []rune(cliente.Numero), validate: validate.Numero},
			{label: "Bairro", value: []rune(cliente.Bairro), validate: validate.Bairro},
			{label: "Cidade", value: []rune(cliente.Cidade)},
		},
	}
	if editing {
		form.kind = formClienteEdit
		form.title = "Editar cliente — " + cliente.Nome
	}
	return form
}

// Field order of the ficha creation form, after the client picker.
const (
	fichaFieldEquipamento = iota
	fichaFieldMarca
	fichaFieldModelo
	fichaFieldNumeroSerie
	fichaFieldDefeito
	fichaFieldAcessorios
	fichaFieldValor
	fichaFieldPrevisao
	fichaFieldFoto
)

func newFichaForm() formModel {
	return formModel{
		kind:  formFichaCreate,
		title: "Nova ficha",
		fields: []formField{
			{label: "Equipamento", validate: func(s string) string { return validate.Required("equipamento", s) }},
			{label: "Marca"},
			{label: "Modelo"},
			{label: "Nº de série"},
			{label: "Defeito", validate: func(s string) string { return validate.Required("defeito", s) }},
			{label: "Acessórios"},
			{label: "Valor"},
			{label: "Previsão (AAAA-MM-DD)", validate: validateOptionalDate},
			{label: "Foto (caminho)"},
		},
	}
}

// Field order of the ficha edit form. Status changes go through the
// dropdown and observations through the modal editor; this form
// carries the remaining editable fields.
const (
	fichaEditFieldPrevisao = iota
	fichaEditFieldValor
	fichaEditFieldDefeito
	fichaEditFieldAcessorios
)

func newFichaEditForm(ficha schema.Ficha) formModel {
	return formModel{
		kind:          formFichaEdit,
		title:         "Editar ficha — " + ficha.Codigo,
		fichaID:       ficha.ID,
		originalFicha: ficha,
		pickerDone:    true,
		fields: []formField{
			{label: "Previsão (AAAA-MM-DD)", value: []rune(ficha.PrevisaoEntrega), validate: validateOptionalDate},
			{label: "Valor", value: []rune(ficha.Valor)},
			{label: "Defeito", value: []rune(ficha.Defeito), validate: func(s string) string { return validate.Required("defeito", s) }},
			{label: "Acessórios", value: []rune(ficha.Acessorios)},
		},
	}
}

func validateOptionalDate(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if !isISODate(trimmed) {
		return "data deve ser AAAA-MM-DD"
	}
	return ""
}

// pickerOpen reports whether the client picker is capturing input.
func (form *formModel) pickerOpen() bool {
	return form.kind == formFichaCreate && !form.pickerDone
}

// applyPickerResults installs a debounced search response. Responses
// for text the operator has since edited away are dropped.
func (form *formModel) applyPickerResults(message pickerResultsMsg) {
	if !form.pickerOpen() || message.err != nil {
		return
	}
	if message.query != string(form.pickerQuery) {
		return
	}
	form.pickerResults = message.clientes
	if form.pickerCursor >= len(form.pickerResults) {
		form.pickerCursor = 0
	}
}

// handleKey processes one keystroke. The model is only touched for
// its client and debouncers; all form state lives here.
func (form *formModel) handleKey(message tea.KeyMsg, model *Model) tea.Cmd {
	if form.submitting {
		return nil
	}
	if form.pickerOpen() {
		return form.handlePickerKey(message, model)
	}

	switch message.Type {
	case tea.KeyEscape:
		form.dismissed = true
		return nil

	case tea.KeyCtrlS:
		return form.submit(model)

	case tea.KeyTab, tea.KeyDown:
		form.blurCurrent()
		form.focusIndex++
		if form.focusIndex >= len(form.fields) {
			form.focusIndex = 0
		}
		return nil

	case tea.KeyShiftTab, tea.KeyUp:
		form.blurCurrent()
		form.focusIndex--
		if form.focusIndex < 0 {
			form.focusIndex = len(form.fields) - 1
		}
		return nil

	case tea.KeyEnter:
		form.blurCurrent()
		if form.focusIndex == len(form.fields)-1 {
			return form.submit(model)
		}
		form.focusIndex++
		return nil

	case tea.KeyBackspace:
		field := &form.fields[form.focusIndex]
		if len(field.value) > 0 {
			field.value = field.value[:len(field.value)-1]
		}
		return nil

	case tea.KeyRunes, tea.KeySpace:
		field := &form.fields[form.focusIndex]
		field.value = append(field.value, message.Runes...)
		return nil
	}
	return nil
}

// handlePickerKey drives the client picker: type to search, up/down
// to choose among candidates, enter to lock the client in.
func (form *formModel) handlePickerKey(message tea.KeyMsg, model *Model) tea.Cmd {
	switch message.Type {
	case tea.KeyEscape:
		form.dismissed = true
		return nil

	case tea.KeyUp:
		if form.pickerCursor > 0 {
			form.pickerCursor--
		}
		return nil

	case tea.KeyDown:
		if form.pickerCursor < len(form.pickerResults)-1 {
			form.pickerCursor++
		}
		return nil

	case tea.KeyEnter:
		if len(form.pickerResults) == 0 {
			return nil
		}
		chosen := form.pickerResults[form.pickerCursor]
		form.clienteID = chosen.ID
		form.pickerLabel = chosen.Nome + "  " + validate.FormatTelefone(chosen.Telefone)
		form.pickerDone = true
		model.pickerDebounce.Cancel()
		return nil

	case tea.KeyBackspace:
		if len(form.pickerQuery) > 0 {
			form.pickerQuery = form.pickerQuery[:len(form.pickerQuery)-1]
			model.pickerDebounce.Input(string(form.pickerQuery))
			if len(form.pickerQuery) == 0 {
				form.pickerResults = nil
			}
		}
		return nil

	case tea.KeyRunes, tea.KeySpace:
		form.pickerQuery = append(form.pickerQuery, message.Runes...)
		model.pickerDebounce.Input(string(form.pickerQuery))
		return nil
	}
	return nil
}

func (form *formModel) blurCurrent() {
	form.fields[form.focusIndex].check()
}

// submit validates every field and, when clean, returns the mutation
// command for the form's kind. A ficha edit with nothing changed
// dismisses without a round trip.
func (form *formModel) submit(model *Model) tea.Cmd {
	clean := true
	for i := range form.fields {
		if !form.fields[i].check() && clean {
			clean = false
			form.focusIndex = i
		}
	}
	if !clean {
		return nil
	}

	switch form.kind {
	case formClienteCreate, formClienteEdit:
		input := schema.ClienteInput{
			Nome:     strings.TrimSpace(form.fields[clienteFieldNome].text()),
			Telefone: validate.Digits(form.fields[clienteFieldTelefone].text()),
			Email:    strings.TrimSpace(form.fields[clienteFieldEmail].text()),
			Endereco: strings.TrimSpace(form.fields[clienteFieldEndereco].text()),
			Numero:   strings.TrimSpace(form.fields[clienteFieldNumero].text()),
			Bairro:   strings.TrimSpace(form.fields[clienteFieldBairro].text()),
			Cidade:   strings.TrimSpace(form.fields[clienteFieldCidade].text()),
		}
		form.submitting = true
		if form.kind == formClienteEdit {
			return updateCliente(model.client, form.clienteID, input)
		}
		return createCliente(model.client, input)

	case formFichaCreate:
		input := schema.FichaInput{
			Equipamento: strings.TrimSpace(form.fields[fichaFieldEquipamento].text()),
			Marca:       strings.TrimSpace(form.fields[fichaFieldMarca].text()),
			Modelo:      strings.TrimSpace(form.fields[fichaFieldModelo].text()),
			NumeroSerie: strings.TrimSpace(form.fields[fichaFieldNumeroSerie].text()),
			Defeito:     strings.TrimSpace(form.fields[fichaFieldDefeito].text()),
			Acessorios:  strings.TrimSpace(form.fields[fichaFieldAcessorios].text()),
			Valor:       strings.TrimSpace(form.fields[fichaFieldValor].text()),
			PrevisaoEntrega: strings.TrimSpace(
				form.fields[fichaFieldPrevisao].text()),
		}
		fotoPath := strings.TrimSpace(form.fields[fichaFieldFoto].text())
		form.submitting = true
		return createFicha(model.client, form.clienteID, input, fotoPath)

	case formFichaEdit:
		patch := form.diffPatch()
		if patch.Empty() {
			form.dismissed = true
			return nil
		}
		form.submitting = true
		return updateFicha(model.client, form.fichaID, patch)
	}
	return nil
}

// diffPatch builds a partial update from the edit form: only fields
// whose text differs from the loaded ficha are sent.
func (form *formModel) diffPatch() schema.FichaPatch {
	var patch schema.FichaPatch
	set := func(target **string, fieldIndex int, original string) {
		value := strings.TrimSpace(form.fields[fieldIndex].text())
		if value != original {
			*target = &value
		}
	}
	set(&patch.PrevisaoEntrega, fichaEditFieldPrevisao, form.originalFicha.PrevisaoEntrega)
	set(&patch.Valor, fichaEditFieldValor, form.originalFicha.Valor)
	set(&patch.Defeito, fichaEditFieldDefeito, form.originalFicha.Defeito)
	set(&patch.Acessorios, fichaEditFieldAcessorios, form.originalFicha.Acessorios)
	return patch
}

// render draws the form as a centered modal. Returns the overlay
// lines plus the anchor for SpliceOverlay.
func (form *formModel) render(theme tui.Theme, screenWidth, screenHeight int) ([]string, int, int) {
	innerWidth := 56
	if innerWidth > screenWidth-6 {
		innerWidth = screenWidth - 6
	}

	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	valueStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	focusStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(theme.ErrorText)
	background := lipgloss.NewStyle().Background(theme.TooltipBackground)

	var content []string
	if form.kind == formFichaCreate {
		content = append(content, form.renderPicker(theme, innerWidth)...)
	}
	for i := range form.fields {
		field := &form.fields[i]
		label := labelStyle.Render(field.label + ": ")
		value := valueStyle.Render(field.text())
		if i == form.focusIndex && !form.pickerOpen() {
			cursor := focusStyle.Render("▎")
			value = valueStyle.Render(field.text()) + cursor
			label = focusStyle.Render(field.label + ": ")
		}
		content = append(content, label+value)
		if field.errorText != "" {
			content = append(content, errorStyle.Render("  "+field.errorText))
		}
	}

	footer := "Ctrl+S salvar  Tab campo  Esc cancelar"
	if form.submitting {
		footer = "salvando..."
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Background(theme.TooltipBackground).
		Padding(0, 1)

	title := focusStyle.Render(form.title)
	lines := []string{title, ""}
	for _, line := range content {
		lines = append(lines, tui.PadOverlayLine(line, innerWidth, background))
	}
	lines = append(lines, "", labelStyle.Render(footer))

	box := boxStyle.Render(strings.Join(lines, "\n"))
	overlayLines := strings.Split(box, "\n")

	boxHeight := len(overlayLines)
	anchorX := (screenWidth - innerWidth - 4) / 2
	anchorY := (screenHeight - boxHeight) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	if anchorY < 0 {
		anchorY = 0
	}
	return overlayLines, anchorX, anchorY
}

// renderPicker draws the client picker block at the top of the ficha
// creation form.
func (form *formModel) renderPicker(theme tui.Theme, innerWidth int) []string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	focusStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	if form.pickerDone {
		return []string{labelStyle.Render("Cliente: ") + form.pickerLabel, ""}
	}

	lines := []string{
		focusStyle.Render("Cliente: ") + string(form.pickerQuery) + focusStyle.Render("▎"),
	}
	if len(form.pickerQuery) < schema.MinClienteQuery {
		lines = append(lines, labelStyle.Render("  digite ao menos 2 letras para buscar"))
		return append(lines, "")
	}
	if len(form.pickerResults) == 0 {
		lines = append(lines, labelStyle.Render("  nenhum cliente encontrado"))
		return append(lines, "")
	}
	for i, cliente := range form.pickerResults {
		row := "  " + cliente.Nome + "  " + validate.FormatTelefone(cliente.Telefone)
		if runes := []rune(row); len(runes) > innerWidth {
			row = string(runes[:innerWidth])
		}
		if i == form.pickerCursor {
			row = selectedStyle.Render(row)
		}
		lines = append(lines, row)
	}
	return append(lines, "")
}
