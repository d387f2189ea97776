package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focusdo/internal/domain"
)

// FormatTodoList renders a task list, one line per task, in repository sort
// order. Plain mode drops all styling for non-interactive output.
func FormatTodoList(views []domain.TodoView, now time.Time, plain bool) string {
	if len(views) == 0 {
		return "No tasks.\n"
	}

	var b strings.Builder
	for _, v := range views {
		marker := "[ ]"
		if v.IsCompleted {
			marker = "[x]"
		}

		due := v.DueDate.Format("Jan 2 15:04")
		line := fmt.Sprintf("%s %s  p%d  due %s", marker, v.Title, v.Priority, due)
		if v.Category != nil {
			line += "  #" + v.Category.Name
		}
		if v.IsOverdue {
			line += "  (overdue)"
		}

		if !plain {
			switch {
			case v.IsCompleted:
				line = StyleDim.Render(line)
			case v.IsOverdue:
				line = StyleRed.Render(line)
			case v.DueDate.Sub(now) < 24*time.Hour:
				line = StyleYellow.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatTodoDetail renders one task with its identifiers, for `todo show`
// style output and post-create confirmation.
func FormatTodoDetail(v domain.TodoView, plain bool) string {
	var b strings.Builder
	title := v.Title
	if !plain {
		title = StyleHeader.Render(title)
	}
	b.WriteString(title + "\n")
	b.WriteString("  id:       " + v.ID + "\n")
	b.WriteString(fmt.Sprintf("  priority: %d\n", v.Priority))
	b.WriteString("  status:   " + string(v.Status) + "\n")
	b.WriteString("  due:      " + v.DueDate.Format(time.RFC3339) + "\n")
	if v.Category != nil {
		b.WriteString("  category: " + v.Category.Name + "\n")
	}
	if v.NotificationID != "" {
		b.WriteString("  reminder: scheduled\n")
	}
	return b.String()
}
