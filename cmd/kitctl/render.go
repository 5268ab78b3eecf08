package main

import (
	"fmt"
	"strings"

	"kit-allocator/internal/allocation"
	"kit-allocator/internal/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB300"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

func outcomeStyle(o models.Outcome) lipgloss.Style {
	switch o {
	case models.OutcomeAssigned:
		return okStyle
	case models.OutcomePartiallyAssigned, models.OutcomeAlreadyAssigned, models.OutcomeNoKitConfigured:
		return warnStyle
	}
	return errorStyle
}

func renderResult(employeeID string, res models.AllocationResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Starter kit for "+employeeID) + "\n")
	if res.KitLabel != "" {
		b.WriteString(mutedStyle.Render(res.KitLabel) + "\n")
	}
	b.WriteString(fmt.Sprintf("outcome: %s\n", outcomeStyle(res.Outcome).Render(string(res.Outcome))))
	b.WriteString(fmt.Sprintf("assigned: %d\n", res.AssignedCount))

	for _, a := range res.Assigned {
		label := a.AssetType
		if label == "" {
			label = a.Category
		}
		b.WriteString(fmt.Sprintf("  + %s (%s, %s)\n", a.AssetID, label, a.Priority))
	}
	for _, m := range res.MissingAssets {
		b.WriteString(warnStyle.Render("  - missing "+m) + "\n")
	}
	if len(res.ExistingAssets) > 0 {
		b.WriteString(fmt.Sprintf("already holds: %s\n", strings.Join(res.ExistingAssets, ", ")))
	}
	if res.MaintenanceWarning != "" {
		b.WriteString(warnStyle.Render("maintenance: "+res.MaintenanceWarning) + "\n")
	}
	if res.Error != "" {
		b.WriteString(errorStyle.Render("error: "+res.Error) + "\n")
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderHoldings(employeeID string, held []models.Asset) string {
	if len(held) == 0 {
		return mutedStyle.Render(employeeID + " holds no assets")
	}
	lines := []string{titleStyle.Render(fmt.Sprintf("%s holds %d asset(s)", employeeID, len(held)))}
	for _, a := range held {
		lines = append(lines, fmt.Sprintf("  %s  %s/%s  %s", a.ID, a.AssetType, a.Category, a.Status))
	}
	return strings.Join(lines, "\n")
}

func renderPlan(plan allocation.Plan) string {
	lines := []string{titleStyle.Render("Plan: " + plan.Kit.Label())}
	for _, l := range plan.Lines {
		ids := make([]string, 0, l.Item.Quantity)
		for _, a := range l.Selected() {
			ids = append(ids, a.ID)
		}
		line := fmt.Sprintf("  %s x%d: %s", l.Item.Label(), l.Item.Quantity, strings.Join(ids, ", "))
		if spares := len(l.Candidates) - len(ids); spares > 0 {
			line += mutedStyle.Render(fmt.Sprintf(" (+%d spare)", spares))
		}
		lines = append(lines, line)
	}
	for _, m := range plan.MissingAssets() {
		lines = append(lines, warnStyle.Render("  missing "+m))
	}
	if w := plan.MaintenanceWarning(); w != "" {
		lines = append(lines, warnStyle.Render("  maintenance: "+w))
	}
	return strings.Join(lines, "\n")
}

func renderKits(kits []models.StarterKit) string {
	if len(kits) == 0 {
		return mutedStyle.Render("no kits configured")
	}
	lines := make([]string, 0, len(kits))
	for _, k := range kits {
		state := okStyle.Render("active")
		if !k.IsActive {
			state = mutedStyle.Render("inactive")
		}
		lines = append(lines, fmt.Sprintf("%s [%s] %d line(s)", titleStyle.Render(k.Label()), state, len(k.Assets)))
	}
	return strings.Join(lines, "\n")
}
