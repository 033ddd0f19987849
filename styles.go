package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rehiy/web-radio/service"
	"github.com/rehiy/web-radio/transport"
)

type outputStyles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
}

var styles = outputStyles{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}),
	Label: lipgloss.NewStyle().
		Width(22).
		Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"}),
	Value: lipgloss.NewStyle().
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5F87")),
	Success: lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}),
}

func renderPorts(ports []string) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Serial ports") + "\n")
	if len(ports) == 0 {
		b.WriteString(styles.Muted.Render("  (none)") + "\n")
		return b.String()
	}
	for _, p := range ports {
		b.WriteString("  " + p + "\n")
	}
	return b.String()
}

func renderPortDetails(details []transport.PortDetail) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Serial ports") + "\n")
	if len(details) == 0 {
		b.WriteString(styles.Muted.Render("  (none)") + "\n")
		return b.String()
	}
	for _, d := range details {
		line := "  " + styles.Label.Render(d.Name)
		if d.IsUSB {
			line += fmt.Sprintf("USB %s:%s", d.VID, d.PID)
			if d.Product != "" {
				line += " " + styles.Muted.Render(d.Product)
			}
			if d.SerialNumber != "" {
				line += " " + styles.Muted.Render("sn="+d.SerialNumber)
			}
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func renderSnapshot(snap service.Snapshot) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Device status") + " " + styles.Muted.Render(snap.Port) + "\n")

	keys := make([]string, 0, len(snap.Fields))
	for k := range snap.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  " + styles.Label.Render(k) + styles.Value.Render(fmt.Sprint(snap.Fields[k])) + "\n")
	}

	for _, e := range snap.Errors {
		b.WriteString("  " + styles.Error.Render("! "+e.Error()) + "\n")
	}
	return b.String()
}
