package app

// Severity classifies a notification for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
)

// Notification is a transient message for the user.
// Milestone is the completed count that triggered it, or 0.
type Notification struct {
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
	Milestone int      `json:"milestone,omitempty"`
}

// Notifier receives notifications from a Session.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Recorder is a Notifier that keeps every notification in order.
type Recorder struct {
	Notifications []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.Notifications = append(r.Notifications, n)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	if len(r.Notifications) == 0 {
		return Notification{}, false
	}
	return r.Notifications[len(r.Notifications)-1], true
}

// Messages returns the message texts in order.
func (r *Recorder) Messages() []string {
	out := make([]string, len(r.Notifications))
	for i, n := range r.Notifications {
		out[i] = n.Message
	}
	return out
}

// Reset drops recorded notifications.
func (r *Recorder) Reset() {
	r.Notifications = nil
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}
