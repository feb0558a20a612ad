package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/myslennya/taskpanel/internal/model"
)

// promptTask collects a new task interactively.
func promptTask(cfg *model.AppConfig, projects []string) (model.Task, error) {
	task := model.NewTask("")
	task.RemindBeforeMin = cfg.RemindBeforeMin

	var (
		title     string
		project   string
		due       string
		tagsRaw   string
		remindRaw = strconv.Itoa(cfg.RemindBeforeMin)
	)

	projectOpts := []huh.Option[string]{huh.NewOption("(no project)", "")}
	for _, p := range projects {
		projectOpts = append(projectOpts, huh.NewOption(p, p))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Project").
				Options(projectOpts...).
				Value(&project),
			huh.NewInput().
				Title("Due (2006-01-02 or 2006-01-02T15:04, empty for none)").
				Value(&due).
				Validate(validateDue),
			huh.NewInput().
				Title("Tags (space separated)").
				Value(&tagsRaw),
			huh.NewInput().
				Title("Remind before (minutes, 0 disables)").
				Value(&remindRaw).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("must be a number")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return model.Task{}, err
	}

	task.Title = strings.TrimSpace(title)
	task.Project = project
	task.Due = strings.TrimSpace(due)
	if fields := strings.Fields(tagsRaw); len(fields) > 0 {
		task.Tags = fields
	}
	if raw := strings.TrimSpace(remindRaw); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			task.RemindBeforeMin = n
		}
	}

	return task, nil
}

// validateDue accepts an empty value or anything shaped like a date; full
// parsing stays lenient since a malformed deadline only means no reminders.
func validateDue(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if len(s) < len("2006-01-02") {
		return fmt.Errorf("use 2006-01-02 or 2006-01-02T15:04")
	}
	return nil
}
