// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// EditorModal is a centered modal overlay with a small multi-line
// text editor. The ficha views use it for the observation fields,
// which regularly run to several lines.
type EditorModal struct {
	// Title is shown in the modal header, e.g. "Observação pública —
	// AB12CD".
	Title string

	lines   [][]rune
	cursorY int
	cursorX int
	theme   Theme
}

// NewEditorModal creates an EditorModal seeded with initial text. The
// cursor starts at the end.
func NewEditorModal(title, initial string, theme Theme) EditorModal {
	modal := EditorModal{
		Title: title,
		theme: theme,
	}
	for _, line := range strings.Split(initial, "\n") {
		modal.lines = append(modal.lines, []rune(line))
	}
	if len(modal.lines) == 0 {
		modal.lines = [][]rune{{}}
	}
	modal.cursorY = len(modal.lines) - 1
	modal.cursorX = len(modal.lines[modal.cursorY])
	return modal
}

// Value returns the current text content.
func (modal EditorModal) Value() string {
	parts := make([]string, len(modal.lines))
	for i, line := range modal.lines {
		parts[i] = string(line)
	}
	return strings.Join(parts, "\n")
}

// Update processes a key message for the editor.
func (modal *EditorModal) Update(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			modal.insertRune(character)
		}

	case tea.KeyEnter:
		// Split the current line at the cursor.
		line := modal.lines[modal.cursorY]
		before := make([]rune, modal.cursorX)
		copy(before, line[:modal.cursorX])
		after := make([]rune, len(line)-modal.cursorX)
		copy(after, line[modal.cursorX:])

		modal.lines[modal.cursorY] = before
		newLines := make([][]rune, len(modal.lines)+1)
		copy(newLines, modal.lines[:modal.cursorY+1])
		newLines[modal.cursorY+1] = after
		copy(newLines[modal.cursorY+2:], modal.lines[modal.cursorY+1:])
		modal.lines = newLines
		modal.cursorY++
		modal.cursorX = 0

	case tea.KeyBackspace:
		if modal.cursorX > 0 {
			line := modal.lines[modal.cursorY]
			modal.lines[modal.cursorY] = append(line[:modal.cursorX-1], line[modal.cursorX:]...)
			modal.cursorX--
		} else if modal.cursorY > 0 {
			// Merge with the previous line.
			previousLine := modal.lines[modal.cursorY-1]
			currentLine := modal.lines[modal.cursorY]
			modal.cursorX = len(previousLine)
			modal.lines[modal.cursorY-1] = append(previousLine, currentLine...)
			modal.lines = append(modal.lines[:modal.cursorY], modal.lines[modal.cursorY+1:]...)
			modal.cursorY--
		}

	case tea.KeyDelete:
		line := modal.lines[modal.cursorY]
		if modal.cursorX < len(line) {
			modal.lines[modal.cursorY] = append(line[:modal.cursorX], line[modal.cursorX+1:]...)
		} else if modal.cursorY < len(modal.lines)-1 {
			// Merge with the next line.
			nextLine := modal.lines[modal.cursorY+1]
			modal.lines[modal.cursorY] = append(line, nextLine...)
			modal.lines = append(modal.lines[:modal.cursorY+1], modal.lines[modal.cursorY+2:]...)
		}

	case tea.KeyLeft:
		if modal.cursorX > 0 {
			modal.cursorX--
		} else if modal.cursorY > 0 {
			modal.cursorY--
			modal.cursorX = len(modal.lines[modal.cursorY])
		}

	case tea.KeyRight:
		line := modal.lines[modal.cursorY]
		if modal.cursorX < len(line) {
			modal.cursorX++
		} else if modal.cursorY < len(modal.lines)-1 {
			modal.cursorY++
			modal.cursorX = 0
		}

	case tea.KeyUp:
		if modal.cursorY > 0 {
			modal.cursorY--
			if modal.cursorX > len(modal.lines[modal.cursorY]) {
				modal.cursorX = len(modal.lines[modal.cursorY])
			}
		}

	case tea.KeyDown:
		if modal.cursorY < len(modal.lines)-1 {
			modal.cursorY++
			if modal.cursorX > len(modal.lines[modal.cursorY]) {
				modal.cursorX = len(modal.lines[modal.cursorY])
			}
		}

	case tea.KeyHome, tea.KeyCtrlA:
		modal.cursorX = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		modal.cursorX = len(modal.lines[modal.cursorY])
	}
}

func (modal *EditorModal) insertRune(character rune) {
	line := modal.lines[modal.cursorY]
	newLine := make([]rune, len(line)+1)
	copy(newLine, line[:modal.cursorX])
	newLine[modal.cursorX] = character
	copy(newLine[modal.cursorX+1:], line[modal.cursorX:])
	modal.lines[modal.cursorY] = newLine
	modal.cursorX++
}

// Modal chrome overhead: 2 columns border + 2 columns padding
// horizontal; 2 lines border + 1 title + 1 footer vertical.
const (
	editorChromeWidth  = 4
	editorChromeHeight = 4
	// Minimum inner text area. Below this the editor is too cramped.
	editorMinInnerWidth  = 30
	editorMinInnerHeight = 5
	// Margin between the modal edge and the screen edge; collapses to
	// zero on very small screens.
	editorMargin = 2
)

// Render produces the modal overlay lines and the anchor position for
// splicing onto the view.
func (modal EditorModal) Render(screenWidth, screenHeight int) ([]string, int, int) {
	modalWidth := screenWidth - editorMargin*2
	modalHeight := screenHeight - editorMargin*2

	minWidth := editorMinInnerWidth + editorChromeWidth
	minHeight := editorMinInnerHeight + editorChromeHeight
	if modalWidth < minWidth {
		modalWidth = minWidth
	}
	if modalHeight < minHeight {
		modalHeight = minHeight
	}
	if modalWidth > screenWidth {
		modalWidth = screenWidth
	}
	if modalHeight > screenHeight {
		modalHeight = screenHeight
	}

	innerWidth := modalWidth - editorChromeWidth
	innerHeight := modalHeight - editorChromeHeight

	bgStyle := lipgloss.NewStyle().
		Background(modal.theme.TooltipBackground)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.theme.HeaderForeground).
		Background(modal.theme.TooltipBackground)
	footerStyle := lipgloss.NewStyle().
		Foreground(modal.theme.FaintText).
		Background(modal.theme.TooltipBackground)
	cursorStyle := lipgloss.NewStyle().
		Reverse(true)
	textStyle := lipgloss.NewStyle().
		Foreground(modal.theme.NormalText).
		Background(modal.theme.TooltipBackground)

	title := titleStyle.Render(modal.Title)
	if short := innerWidth - ansi.StringWidth(title); short > 0 {
		title += bgStyle.Render(strings.Repeat(" ", short))
	}

	footer := footerStyle.Render("Ctrl+S salvar  Esc cancelar")
	if short := innerWidth - ansi.StringWidth(footer); short > 0 {
		footer += bgStyle.Render(strings.Repeat(" ", short))
	}

	// Scroll the text area when the cursor is past the visible rows.
	scrollOffset := 0
	if modal.cursorY >= innerHeight {
		scrollOffset = modal.cursorY - innerHeight + 1
	}

	var textLines []string
	for lineIndex := scrollOffset; lineIndex < scrollOffset+innerHeight; lineIndex++ {
		var renderedLine string
		if lineIndex < len(modal.lines) {
			line := modal.lines[lineIndex]
			if lineIndex == modal.cursorY {
				if modal.cursorX >= len(line) {
					renderedLine = textStyle.Render(string(line)) + cursorStyle.Render(" ")
				} else {
					before := textStyle.Render(string(line[:modal.cursorX]))
					atCursor := cursorStyle.Render(string(line[modal.cursorX : modal.cursorX+1]))
					after := textStyle.Render(string(line[modal.cursorX+1:]))
					renderedLine = before + atCursor + after
				}
			} else {
				renderedLine = textStyle.Render(string(line))
			}
		}
		if short := innerWidth - ansi.StringWidth(renderedLine); short > 0 {
			renderedLine += bgStyle.Render(strings.Repeat(" ", short))
		}
		textLines = append(textLines, renderedLine)
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.theme.BorderColor).
		Background(modal.theme.TooltipBackground)

	inner := title + "\n" + strings.Join(textLines, "\n") + "\n" + footer
	resultLines := strings.Split(borderStyle.Render(inner), "\n")

	renderedWidth := 0
	if len(resultLines) > 0 {
		renderedWidth = ansi.StringWidth(resultLines[0])
	}
	anchorX := (screenWidth - renderedWidth) / 2
	anchorY := (screenHeight - len(resultLines)) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	if anchorY < 0 {
		anchorY = 0
	}
	return resultLines, anchorX, anchorY
}
