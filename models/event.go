package models

// EventKind classifies an inbound platform event.
type EventKind string

const (
	EventText     EventKind = "text"
	EventPostback EventKind = "postback"
	// EventUnsupported covers follows, stickers, images and anything else
	// the dialogue does not react to.
	EventUnsupported EventKind = "unsupported"
)

// Event is a decoded webhook event, independent of the platform SDK.
type Event struct {
	Kind       EventKind
	Type       string // platform event type, for logging
	UserID     string
	ReplyToken string
	Text       string
	Data       string            // postback data
	Params     map[string]string // date/time picker selection
}

// EventResult is the per-event acknowledgement returned by the webhook.
type EventResult struct {
	Index  int    `json:"index"`
	Type   string `json:"type"`
	UserID string `json:"userId,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	EventStatusOK      = "ok"
	EventStatusIgnored = "ignored"
	EventStatusError   = "error"
)

// ReminderPayload is the body of a booking reminder task.
type ReminderPayload struct {
	UserID    string `json:"userId"`
	BookingID string `json:"bookingId"`
	Room      string `json:"room"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Topic     string `json:"topic"`
}
