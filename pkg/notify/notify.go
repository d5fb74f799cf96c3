// Package notify provides fire-and-forget notification sinks for fetch
// progress messages.
package notify

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "postfeed_notifications_total",
	Help: "Notifications emitted by channel",
}, []string{"channel"})

// Message is one delivered notification.
type Message struct {
	ChannelID string
	Text      string
}

// LogNotifier writes notifications to a zerolog logger.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a notifier logging at info level.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements pagination.Notifier.
func (n *LogNotifier) Notify(channelID, message string) {
	notificationsTotal.WithLabelValues(channelID).Inc()
	n.logger.Info().
		Str("channel_id", channelID).
		Str("message", message).
		Msg("Notification")
}

// Recorder keeps every notification in memory. The zero value is ready to use.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Notify implements pagination.Notifier.
func (r *Recorder) Notify(channelID, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{ChannelID: channelID, Text: message})
}

// Messages returns a copy of the recorded notifications.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}

// Func adapts a function to a notifier.
type Func func(channelID, message string)

// Notify implements pagination.Notifier.
func (f Func) Notify(channelID, message string) {
	f(channelID, message)
}

// Sink is anything that accepts notifications.
type Sink interface {
	Notify(channelID, message string)
}

// Multi fans a notification out to every sink in order.
type Multi []Sink

// Notify implements pagination.Notifier.
func (m Multi) Notify(channelID, message string) {
	for _, s := range m {
		if s != nil {
			s.Notify(channelID, message)
		}
	}
}
