package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/myslennya/taskpanel/internal/model"
	"github.com/myslennya/taskpanel/internal/reminder"
	"github.com/myslennya/taskpanel/internal/theme"
)

// runAdd appends a new task to the collection.
func runAdd(cfg *model.AppConfig, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	due := fs.String("due", "", "Due date (2006-01-02 or 2006-01-02T15:04)")
	remind := fs.Int("remind", cfg.RemindBeforeMin, "Lead reminder minutes (0 disables)")
	project := fs.String("project", "", "Project label")
	interactive := fs.Bool("i", false, "Open an interactive form")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	var task model.Task
	if *interactive {
		projects, err := st.GetProjects(ctx)
		if err != nil {
			return err
		}
		task, err = promptTask(cfg, projects)
		if err != nil {
			return err
		}
	} else {
		if fs.NArg() == 0 {
			return fmt.Errorf("add: task title required")
		}
		task = parseQuickAdd(strings.Join(fs.Args(), " "))
		task.RemindBeforeMin = *remind
		if *due != "" {
			task.Due = *due
		}
		if *project != "" && task.Project == "" {
			task.Project = *project
		}
	}

	if task.Title == "" {
		return fmt.Errorf("add: task title required")
	}

	tasks, err := st.ReadAllTasks(ctx)
	if err != nil {
		return err
	}
	tasks = append(tasks, task)
	if err := st.WriteAllTasks(ctx, tasks); err != nil {
		return err
	}

	fmt.Printf("Added %s (%s)\n", task.Title, shortID(task.ID))
	return nil
}

// runList prints the task collection, filtered and sorted the way the
// panel orders it: open before done, then by deadline, then by creation.
func runList(cfg *model.AppConfig, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	filter := fs.String("filter", "all", "Quick filter: all, today, overdue, next")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	tasks, err := st.ReadAllTasks(context.Background())
	if err != nil {
		return err
	}

	ev := reminder.Evaluator{TickPeriod: time.Duration(cfg.TickIntervalSec) * time.Second}
	now := time.Now()
	query := fs.Args()

	var visible []model.Task
	for _, t := range tasks {
		if !matchesQuick(t, *filter, ev, now) {
			continue
		}
		if !matchesQuery(t, query, ev, now) {
			continue
		}
		visible = append(visible, t)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if a.Done != b.Done {
			return !a.Done
		}
		da, db := dueSortKey(a, ev), dueSortKey(b, ev)
		if da != db {
			return da < db
		}
		return a.Created.Before(b.Created)
	})

	if len(visible) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	for _, t := range visible {
		fmt.Println(renderTaskLine(t, ev, now))
	}
	return nil
}

// runDone marks a task complete, clearing any snooze like the acknowledge
// notification action does.
func runDone(cfg *model.AppConfig, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("done: task id required")
	}
	return mutateTask(cfg, args[0], func(t *model.Task) {
		t.Done = true
		t.SnoozedUntil = nil
	})
}

// runSnooze sets or clears a task's snooze target.
func runSnooze(cfg *model.AppConfig, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("snooze: usage: snooze <id> <minutes>")
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("snooze: invalid minutes %q", args[1])
	}

	return mutateTask(cfg, args[0], func(t *model.Task) {
		if minutes <= 0 {
			t.SnoozedUntil = nil
			return
		}
		until := time.Now().Add(time.Duration(minutes) * time.Minute)
		t.SnoozedUntil = &until
	})
}

// runRemove deletes a task by id prefix.
func runRemove(cfg *model.AppConfig, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("rm: task id required")
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	tasks, err := st.ReadAllTasks(ctx)
	if err != nil {
		return err
	}

	idx, err := findTask(tasks, args[0])
	if err != nil {
		return err
	}

	removed := tasks[idx]
	tasks = append(tasks[:idx], tasks[idx+1:]...)
	if err := st.WriteAllTasks(ctx, tasks); err != nil {
		return err
	}

	fmt.Printf("Removed %s (%s)\n", removed.Title, shortID(removed.ID))
	return nil
}

// runProjects lists or edits the project labels. Names are deduplicated
// case-insensitively.
func runProjects(cfg *model.AppConfig, args []string) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	projects, err := st.GetProjects(ctx)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if len(projects) == 0 {
			fmt.Println("No projects.")
			return nil
		}
		for _, p := range projects {
			fmt.Println(p)
		}
		return nil
	}

	if len(args) < 2 {
		return fmt.Errorf("projects: usage: projects [add|rm <name>]")
	}

	name := strings.TrimSpace(args[1])
	if name == "" {
		return fmt.Errorf("projects: name required")
	}

	switch args[0] {
	case "add":
		for _, p := range projects {
			if strings.EqualFold(p, name) {
				return nil
			}
		}
		projects = append(projects, name)
	case "rm":
		next := projects[:0]
		for _, p := range projects {
			if !strings.EqualFold(p, name) {
				next = append(next, p)
			}
		}
		projects = next
	default:
		return fmt.Errorf("projects: unknown subcommand %q", args[0])
	}

	return st.SetProjects(ctx, projects)
}

// mutateTask applies fn to the task matching the id prefix via a full
// read-all / write-all round trip.
func mutateTask(cfg *model.AppConfig, idPrefix string, fn func(*model.Task)) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	tasks, err := st.ReadAllTasks(ctx)
	if err != nil {
		return err
	}

	idx, err := findTask(tasks, idPrefix)
	if err != nil {
		return err
	}

	fn(&tasks[idx])
	if err := st.WriteAllTasks(ctx, tasks); err != nil {
		return err
	}

	fmt.Printf("Updated %s (%s)\n", tasks[idx].Title, shortID(tasks[idx].ID))
	return nil
}

// findTask locates the single task whose id starts with prefix.
func findTask(tasks []model.Task, prefix string) (int, error) {
	matches := -1
	count := 0
	for i := range tasks {
		if strings.HasPrefix(tasks[i].ID, prefix) {
			matches = i
			count++
		}
	}
	if count == 0 {
		return -1, fmt.Errorf("no task with id %q", prefix)
	}
	if count > 1 {
		return -1, fmt.Errorf("id %q is ambiguous (%d matches)", prefix, count)
	}
	return matches, nil
}

// matchesQuick applies the panel's quick filters.
func matchesQuick(t model.Task, filter string, ev reminder.Evaluator, now time.Time) bool {
	due, hasDue := ev.ParseDue(t.Due)
	overdue := hasDue && due.Before(now)

	switch filter {
	case "today":
		return hasDue && sameDay(due, now)
	case "overdue":
		return overdue && !t.Done
	case "next":
		return !t.Done && !overdue
	default:
		return true
	}
}

// matchesQuery applies quick-add style query tokens: "proj:x" matches the
// project, "+tag" matches a tag, "due:today" or "due:<raw>" matches the
// deadline, anything else substring-matches the title.
func matchesQuery(t model.Task, tokens []string, ev reminder.Evaluator, now time.Time) bool {
	for _, tok := range tokens {
		switch {
		case strings.HasPrefix(tok, "proj:"):
			if t.Project != strings.TrimPrefix(tok, "proj:") {
				return false
			}
		case strings.HasPrefix(tok, "+") && len(tok) > 1:
			if !t.HasTag(tok[1:]) {
				return false
			}
		case strings.HasPrefix(tok, "due:"):
			v := strings.TrimPrefix(tok, "due:")
			if v == "today" {
				due, hasDue := ev.ParseDue(t.Due)
				if !hasDue || !sameDay(due, now) {
					return false
				}
			} else if t.Due != v {
				return false
			}
		default:
			if !strings.Contains(strings.ToLower(t.Title), strings.ToLower(tok)) {
				return false
			}
		}
	}
	return true
}

// renderTaskLine formats one task row with its badges.
func renderTaskLine(t model.Task, ev reminder.Evaluator, now time.Time) string {
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}

	title := t.Title
	if t.Done {
		title = theme.DoneStyle.Render(title)
	}

	parts := []string{box, theme.BadgeStyle.Render(shortID(t.ID)), title}

	if t.Project != "" {
		parts = append(parts, theme.BadgeStyle.Render("proj:"+t.Project))
	}
	for _, tag := range t.Tags {
		parts = append(parts, theme.BadgeStyle.Render("+"+tag))
	}

	if due, hasDue := ev.ParseDue(t.Due); hasDue {
		badge := "due:" + due.Format("2006-01-02 15:04")
		if due.Before(now) && !t.Done {
			parts = append(parts, theme.OverdueBadgeStyle.Render(badge))
		} else {
			parts = append(parts, theme.DueBadgeStyle.Render(badge))
		}
	}

	if t.RemindBeforeMin > 0 {
		parts = append(parts, theme.BadgeStyle.Render(fmt.Sprintf("rem:%dm", t.RemindBeforeMin)))
	}

	if t.Snoozed(now) {
		parts = append(parts, theme.SnoozedBadgeStyle.Render(
			"snoozed until "+t.SnoozedUntil.Format("15:04"),
		))
	}

	return strings.Join(parts, " ")
}

// dueSortKey orders tasks by deadline; tasks without one sort last.
func dueSortKey(t model.Task, ev reminder.Evaluator) int64 {
	due, hasDue := ev.ParseDue(t.Due)
	if !hasDue {
		return math.MaxInt64
	}
	return due.UnixNano()
}

// sameDay reports whether two instants fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// shortID returns the first eight characters of an id for display.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
