// Package transfer implements JSON import and export of the task collection.
package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/myslennya/taskpanel/internal/model"
)

// Result reports the outcome of an import.
type Result struct {
	Imported int
	Skipped  int
}

// rawTask mirrors model.Task with optional fields kept as pointers so a
// missing remindBeforeMin can be told apart from an explicit zero.
type rawTask struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Project         string     `json:"project"`
	Tags            []string   `json:"tags"`
	Done            bool       `json:"done"`
	Due             string     `json:"due"`
	RemindBeforeMin *int       `json:"remindBeforeMin"`
	SnoozedUntil    *time.Time `json:"snoozedUntil"`
	Created         *time.Time `json:"created"`
}

// Export writes the task collection as indented JSON.
func Export(w io.Writer, tasks []model.Task) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	return nil
}

// Import decodes a task collection from r and merges it against the
// existing collection. Tasks with a missing id, or an id colliding with an
// existing task, receive a freshly generated one before insertion. Tasks
// that are still duplicates after reassignment — same title, project, and
// due as an existing or already-imported task — are skipped, as are entries
// with an empty title. The returned slice holds only the accepted tasks.
func Import(r io.Reader, existing []model.Task) ([]model.Task, Result, error) {
	var raw []rawTask
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, Result{}, fmt.Errorf("decoding tasks: %w", err)
	}

	ids := make(map[string]bool, len(existing))
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		ids[t.ID] = true
		seen[contentKey(t.Title, t.Project, t.Due)] = true
	}

	var (
		added  []model.Task
		result Result
	)

	for _, rt := range raw {
		title := strings.TrimSpace(rt.Title)
		if title == "" {
			result.Skipped++
			continue
		}

		key := contentKey(title, rt.Project, rt.Due)
		if seen[key] {
			result.Skipped++
			continue
		}

		t := model.Task{
			ID:           rt.ID,
			Title:        title,
			Project:      rt.Project,
			Tags:         rt.Tags,
			Done:         rt.Done,
			Due:          rt.Due,
			SnoozedUntil: rt.SnoozedUntil,
		}
		if t.ID == "" || ids[t.ID] {
			t.ID = uuid.New().String()
		}
		if rt.RemindBeforeMin != nil {
			t.RemindBeforeMin = *rt.RemindBeforeMin
		} else {
			t.RemindBeforeMin = model.DefaultRemindBeforeMin
		}
		if rt.Created != nil {
			t.Created = *rt.Created
		} else {
			t.Created = time.Now()
		}

		ids[t.ID] = true
		seen[key] = true
		added = append(added, t)
		result.Imported++
	}

	return added, result, nil
}

// contentKey identifies a task by its user-visible identity for dedup.
func contentKey(title, project, due string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "\x00" + project + "\x00" + due
}
