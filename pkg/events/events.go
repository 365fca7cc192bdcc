package events

import "time"

type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

func NewEnvelope(eventType string, data any) Envelope {
	return Envelope{Type: eventType, OccurredAt: time.Now().UTC(), Data: data}
}
