// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package terminal

import "github.com/charmbracelet/lipgloss"

const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorPeach    lipgloss.Color = "#fab387"
	colorRed      lipgloss.Color = "#f38ba8"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	pathStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	dirStyle      = lipgloss.NewStyle().Foreground(colorBlue)
	fileStyle     = lipgloss.NewStyle().Foreground(colorText)
	disabledStyle = lipgloss.NewStyle().Foreground(colorSurface2)
	markStyle     = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	helpStyle     = lipgloss.NewStyle().Foreground(colorOverlay1)
)
