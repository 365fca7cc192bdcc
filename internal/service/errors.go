package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/shoe_store/internal/repo"
	"github.com/Skotchmaster/shoe_store/pkg/events"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
)

var (
	ErrValidation   = errors.New("validation")   // 400
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrNotFound     = errors.New("not found")    // 404
	ErrConflict     = errors.New("conflict")     // 409
)

// PublicMessage returns the client-facing part of a wrapped sentinel error.
func PublicMessage(err error) string {
	msg := err.Error()
	for _, s := range []error{ErrValidation, ErrUnauthorized, ErrNotFound, ErrConflict} {
		if errors.Is(err, s) {
			if i := strings.Index(msg, s.Error()+": "); i >= 0 {
				return msg[i+len(s.Error())+2:]
			}
			return s.Error()
		}
	}
	return msg
}

// parseID treats malformed identifiers as missing records.
func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s not found", ErrNotFound, what)
	}
	return id, nil
}

func notFoundOr(err error, what string) error {
	if repo.IsNotFound(err) {
		return fmt.Errorf("%w: %s not found", ErrNotFound, what)
	}
	return err
}

// publish is fire-and-forget: a broker outage never fails the request.
func publish(ctx context.Context, pub events.Publisher, topic, key, eventType string, data any) {
	if pub == nil {
		return
	}
	if err := pub.PublishEvent(ctx, topic, key, events.NewEnvelope(eventType, data)); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "topic", topic, "type", eventType, "error", err)
	}
}
