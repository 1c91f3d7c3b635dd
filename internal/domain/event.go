package domain

// Event actions published after a successful mutation.
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionReordered = "reordered"
)

// Event is the payload of a change notification. It tells subscribed clients
// that a collection changed and they should re-fetch; it carries no record
// data beyond the affected ids.
type Event struct {
	Action    string `json:"action"`
	EntityID  uint   `json:"entity_id,omitempty"`
	EntityIDs []uint `json:"entity_ids,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Notifier delivers change events to interested live clients. Delivery is
// fire-and-forget: implementations must never block the caller or surface
// delivery failures to it.
type Notifier interface {
	Publish(topic string, event Event)
}

// NopNotifier discards all events. Wired when the realtime channel is
// disabled by configuration.
type NopNotifier struct{}

// Publish implements Notifier.
func (NopNotifier) Publish(string, Event) {}
