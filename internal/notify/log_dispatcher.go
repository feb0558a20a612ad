package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/myslennya/taskpanel/internal/model"
	"github.com/myslennya/taskpanel/internal/reminder"
	"github.com/myslennya/taskpanel/internal/theme"
)

// LogDispatcher writes rendered notifications to an io.Writer. It is the
// non-interactive sink used by headless runs and the one-shot tick command;
// it never produces responses, so dedup timestamps stay unset and tasks
// remain eligible to refire on later ticks.
type LogDispatcher struct {
	mu        sync.Mutex
	out       io.Writer
	evaluator reminder.Evaluator
	respCh    chan reminder.Response
}

// NewLogDispatcher creates a dispatcher writing to out.
func NewLogDispatcher(out io.Writer, evaluator reminder.Evaluator) *LogDispatcher {
	return &LogDispatcher{
		out:       out,
		evaluator: evaluator,
		respCh:    make(chan reminder.Response),
	}
}

// Show renders the notification block to the writer.
func (d *LogDispatcher) Show(task model.Task, mode model.Mode) {
	due, hasDue := d.evaluator.ParseDue(task.Due)

	header := theme.ModeStyle(mode).Render(Title(mode))
	body := Body(task, due, hasDue)
	block := theme.NotificationStyle.Render(header + "\n" + body)

	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, "%s  %s\n%s\n", time.Now().Format("15:04:05"), string(mode), block)
}

// Responses returns a channel that never delivers.
func (d *LogDispatcher) Responses() <-chan reminder.Response {
	return d.respCh
}
