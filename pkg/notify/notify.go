// Package notify holds the state contract of the transient notification shown
// after a submission attempt. Rendering the notification is left to the host;
// this package only decides what it says.
package notify

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// State is the notification snapshot. The zero value is closed and empty.
type State struct {
	IsOpen   bool     `json:"isOpen"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity,omitempty"`
	Title    string   `json:"title"`
}

// Success opens a success notification.
func Success(title, message string) State {
	return State{IsOpen: true, Severity: SeveritySuccess, Title: title, Message: message}
}

// Error opens an error notification.
func Error(title, message string) State {
	return State{IsOpen: true, Severity: SeverityError, Title: title, Message: message}
}

// Dismiss closes the notification, keeping its last content.
func (s State) Dismiss() State {
	s.IsOpen = false
	return s
}
