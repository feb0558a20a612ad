package main

import (
	"strings"

	"github.com/myslennya/taskpanel/internal/model"
)

// parseQuickAdd builds a task from the inline quick-add syntax: "proj:x"
// sets the project, "+label" adds a tag, "due:2006-01-02" sets the
// deadline, and everything else joins into the title.
func parseQuickAdd(input string) model.Task {
	task := model.NewTask("")

	var title []string
	for _, tok := range strings.Fields(input) {
		switch {
		case strings.HasPrefix(tok, "proj:") && len(tok) > len("proj:"):
			task.Project = strings.TrimPrefix(tok, "proj:")
		case strings.HasPrefix(tok, "+") && len(tok) > 1:
			task.Tags = append(task.Tags, tok[1:])
		case strings.HasPrefix(tok, "due:") && len(tok) > len("due:"):
			task.Due = strings.TrimPrefix(tok, "due:")
		default:
			title = append(title, tok)
		}
	}

	task.Title = strings.Join(title, " ")
	return task
}
