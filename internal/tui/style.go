package tui

import "github.com/charmbracelet/lipgloss"

const appName = "zcrowd"

var accent = lipgloss.Color("#5FB3B3")
