package notifier

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"IDXScreener/internal/model"
)

// maxReportRows caps the Telegram table; the recorder keeps the full set.
const maxReportRows = 25

// FormatScreenReport renders a screening run as a Telegram-ready message.
// The table is sorted by last close descending for presentation; the report's
// own record order stays untouched.
func FormatScreenReport(report *model.Report, mode string, detectors []string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Screening Report</b> | %s\n", report.EndDate.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Mode: %s | Detectors: %s\n", mode, strings.Join(detectors, ", ")))
	b.WriteString(fmt.Sprintf("Evaluated %d | Matched %d | Skipped %d (insufficient data)\n\n",
		report.Evaluated, report.Matched, report.Skipped))

	if len(report.Records) == 0 {
		b.WriteString("❌ No symbols matched the selected indicators.\n")
		return b.String()
	}

	records := make([]model.ResultRecord, len(report.Records))
	copy(records, report.Records)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].LastClose > records[j].LastClose
	})

	b.WriteString("✅ <b>Matches:</b>\n")
	for i, rec := range records {
		if i == maxReportRows {
			b.WriteString(fmt.Sprintf("… and %d more\n", len(records)-maxReportRows))
			break
		}
		b.WriteString(fmt.Sprintf("  <b>%s</b>  close=%.2f", rec.Symbol, rec.LastClose))
		if v := rec.Indicators.RSI; !math.IsNaN(v) {
			b.WriteString(fmt.Sprintf("  RSI=%.1f", v))
		}
		if v := rec.Indicators.MFI; !math.IsNaN(v) {
			b.WriteString(fmt.Sprintf("  MFI=%.1f", v))
		}
		b.WriteString(fmt.Sprintf("\n      %s\n", strings.Join(rec.Matched, ", ")))
	}
	return b.String()
}

// FormatRunStatus summarizes the most recent run for the /status command.
func FormatRunStatus(last *model.Report) string {
	if last == nil {
		return "No screening run has completed yet."
	}
	return fmt.Sprintf(
		"Last run %s: evaluated %d, matched %d, skipped %d in %s.",
		last.StartedAt.Format("2006-01-02 15:04"),
		last.Evaluated, last.Matched, last.Skipped,
		last.Elapsed.Round(10*time.Millisecond),
	)
}
