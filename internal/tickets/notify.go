package tickets

import "github.com/rs/zerolog"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a fire-and-forget outcome report. The web client
// renders these as toasts; the server also logs them.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Notifier observes every notification a Controller emits.
type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier mirrors session notifications into the server log.
func LogNotifier(log zerolog.Logger) Notifier {
	return NotifierFunc(func(n Notification) {
		ev := log.Info()
		if n.Severity == SeverityError {
			ev = log.Warn()
		}
		ev.Str("title", n.Title).Str("severity", string(n.Severity)).Msg(n.Description)
	})
}
