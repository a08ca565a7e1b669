package cart

import "github.com/yishak-cs/marmitas/internal/models"

// Notification is a single-slot toast. A new message replaces any message
// that was not consumed yet; reading it clears the slot.
type Notification struct {
	message string
	pending bool
}

// Notify implements Notifier
func (n *Notification) Notify(message string) {
	n.message = message
	n.pending = true
}

// Consume returns the pending message and clears it
func (n *Notification) Consume() (models.Notification, bool) {
	if !n.pending {
		return models.Notification{}, false
	}
	msg := models.Notification{Message: n.message}
	n.message = ""
	n.pending = false
	return msg, true
}

// Pending reports whether a message is waiting to be shown
func (n *Notification) Pending() bool {
	return n.pending
}
