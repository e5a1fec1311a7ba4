package consumer

import (
	"fmt"
	"sort"
	"strings"

	"gastobot/internal/model"
)

// renderSummary lists lifetime totals alphabetically so repeated
// invocations over the same ledger produce identical text.
func renderSummary(totals map[string]float64) string {
	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString("📊 *Resumen de gastos por categoría:*\n")
	for _, category := range categories {
		sb.WriteString(fmt.Sprintf("• %s: $%.2f\n", category, totals[category]))
	}
	return sb.String()
}

func renderPeriodReport(lines []model.PeriodLine) string {
	var sb strings.Builder
	sb.WriteString("📊 *Reporte Semanal/Mensual:*\n")
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("• %s (%s): $%.2f / $%.2f\n", line.Category, periodMark(line.Period), line.Remaining, line.Limit))
	}
	return sb.String()
}

func renderAnnualReport(lines []model.AnnualLine) string {
	var sb strings.Builder
	sb.WriteString("📅 *Reporte Anual:*\n")
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("• %s: $%.2f / $%.2f\n", line.Category, line.Remaining, line.Limit))
	}
	return sb.String()
}

func renderHistory(from, to string, entries []model.Entry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🧾 *Historial de gastos del %s al %s:*\n", from, to))
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%s - $%.2f - %s (%s) - *%s*\n",
			e.RecordedAt.UTC().Format(dateLayout), e.Amount, e.Category, e.Description, e.Actor))
	}
	return sb.String()
}

func periodMark(kind model.PeriodKind) string {
	if kind == model.Weekly {
		return "S"
	}
	return "M"
}
