package notify

import (
	"time"

	"github.com/myslennya/taskpanel/internal/model"
	"github.com/myslennya/taskpanel/internal/reminder"
)

// InboxDispatcher bridges fired (task, mode) pairs into an interactive
// notification inbox and carries user reactions back to the engine. Both
// channels are buffered and sends are non-blocking so a stalled UI can
// never wedge the tick loop.
type InboxDispatcher struct {
	firesCh chan Fired
	respCh  chan reminder.Response
}

// NewInboxDispatcher creates a dispatcher with buffered channels.
func NewInboxDispatcher() *InboxDispatcher {
	return &InboxDispatcher{
		firesCh: make(chan Fired, 64),
		respCh:  make(chan reminder.Response, 64),
	}
}

// Show queues the fired pair for the inbox. Dropped if the queue is full.
func (d *InboxDispatcher) Show(task model.Task, mode model.Mode) {
	select {
	case d.firesCh <- Fired{Task: task, Mode: mode, At: time.Now()}:
	default:
		// Queue full; the next tick will refire since no dismissal
		// timestamp has been recorded.
	}
}

// Fires delivers fired pairs to the inbox UI.
func (d *InboxDispatcher) Fires() <-chan Fired {
	return d.firesCh
}

// Respond reports a user reaction. Dropped if the engine is not consuming.
func (d *InboxDispatcher) Respond(resp reminder.Response) {
	select {
	case d.respCh <- resp:
	default:
	}
}

// Responses delivers user reactions to the engine.
func (d *InboxDispatcher) Responses() <-chan reminder.Response {
	return d.respCh
}
