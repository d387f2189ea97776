package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focusdo/internal/domain"
	"github.com/alexanderramin/focusdo/internal/repository"
)

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatFocusStats renders the daily/weekly focus aggregates.
func FormatFocusStats(stats repository.FocusStats, plain bool) string {
	var b strings.Builder

	header := "Focus"
	if !plain {
		header = StyleHeader.Render(header)
	}
	b.WriteString(header + "\n")
	b.WriteString(fmt.Sprintf("  today:    %s\n", formatDuration(stats.TodaySec)))
	b.WriteString(fmt.Sprintf("  sessions: %d completed\n", stats.TotalSessions))

	b.WriteString("  week:    ")
	for i, sec := range stats.Week {
		b.WriteString(fmt.Sprintf(" %s %s", weekdayLabels[i], formatDuration(sec)))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatActiveSession renders the running session's remaining time, or a
// placeholder when none is active.
func FormatActiveSession(s *domain.FocusSession, now time.Time, plain bool) string {
	if s == nil {
		return "No active focus session.\n"
	}
	remaining := s.EndTime.Sub(now).Round(time.Second)
	line := fmt.Sprintf("Focusing: %s remaining (until %s)", remaining, s.EndTime.Format("15:04"))
	if !plain {
		line = StyleGreen.Render(line)
	}
	return line + "\n"
}

func formatDuration(sec int) string {
	if sec == 0 {
		return "0m"
	}
	d := time.Duration(sec) * time.Second
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}
