// Package ui provides color support for the sequence output.
// It maps each fibbuzz rule to a lipgloss style and renders through a
// renderer bound to the output writer, so styling is dropped automatically
// when the output is not a color-capable terminal.
package ui
