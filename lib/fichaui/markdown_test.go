// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package fichaui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/assistec/fichas/lib/tui"
)

func renderPlain(t *testing.T, input string, width int) string {
	t.Helper()
	return ansi.Strip(renderTerminalMarkdown(input, tui.DefaultTheme, width))
}

func TestMarkdownSoftBreaksReflow(t *testing.T) {
	// Hard-wrapped source lines inside one paragraph rejoin and
	// rewrap to the render width.
	input := "uma linha\nquebrada no fonte"
	output := renderPlain(t, input, 80)
	if !strings.Contains(output, "uma linha quebrada no fonte") {
		t.Errorf("soft break did not become a space:\n%s", output)
	}
}

func TestMarkdownWrapsToWidth(t *testing.T) {
	input := "palavra " + strings.Repeat("longa ", 20)
	output := renderPlain(t, input, 30)
	for _, line := range strings.Split(output, "\n") {
		if len([]rune(line)) > 30 {
			t.Errorf("line exceeds width 30: %q", line)
		}
	}
}

func TestMarkdownBulletList(t *testing.T) {
	output := renderPlain(t, "- primeiro\n- segundo\n- terceiro", 40)
	for _, item := range []string{"primeiro", "segundo", "terceiro"} {
		if !strings.Contains(output, "- "+item) {
			t.Errorf("missing bullet for %q:\n%s", item, output)
		}
	}
}

func TestMarkdownOrderedList(t *testing.T) {
	output := renderPlain(t, "1. abrir\n2. limpar\n3. fechar", 40)
	if !strings.Contains(output, "1. abrir") || !strings.Contains(output, "3. fechar") {
		t.Errorf("ordered list lost its numbering:\n%s", output)
	}
}

func TestMarkdownHeading(t *testing.T) {
	output := renderPlain(t, "# Diagnóstico\n\ncorpo", 40)
	if !strings.Contains(output, "Diagnóstico") {
		t.Errorf("heading text missing:\n%s", output)
	}
	if !strings.Contains(output, "corpo") {
		t.Errorf("body text missing:\n%s", output)
	}
}

func TestMarkdownCodeSpanAndFence(t *testing.T) {
	input := "troque `fonte` por outra\n\n```\nsudo reboot\n```"
	output := renderPlain(t, input, 60)
	if !strings.Contains(output, "fonte") {
		t.Errorf("code span text missing:\n%s", output)
	}
	if !strings.Contains(output, "sudo reboot") {
		t.Errorf("fenced code text missing:\n%s", output)
	}
}

func TestMarkdownBlockquote(t *testing.T) {
	output := renderPlain(t, "> cliente autorizou o orçamento", 60)
	if !strings.Contains(output, "│ cliente autorizou o orçamento") {
		t.Errorf("blockquote prefix missing:\n%s", output)
	}
}

func TestMarkdownLink(t *testing.T) {
	output := renderPlain(t, "[manual](https://example.com/m.pdf)", 80)
	if !strings.Contains(output, "manual") {
		t.Errorf("link label missing:\n%s", output)
	}
	if !strings.Contains(output, "https://example.com/m.pdf") {
		t.Errorf("link target missing:\n%s", output)
	}
}

func TestMarkdownPlainTextPassthrough(t *testing.T) {
	output := renderPlain(t, "sem marcação nenhuma", 40)
	if !strings.Contains(output, "sem marcação nenhuma") {
		t.Errorf("plain text mangled:\n%s", output)
	}
}

func TestMarkdownEmptyInput(t *testing.T) {
	if output := renderPlain(t, "", 40); strings.TrimSpace(output) != "" {
		t.Errorf("empty input rendered %q", output)
	}
}
