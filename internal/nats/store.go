package nats

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	streamName    = "txcompanion_models"
	subjectPrefix = "txcompanion"

	// Event types
	EventTypeModel  = "model"
	EventTypeSDCard = "sdcard"
)

// RadioToken turns a board id into a subject token. "+" is spelled out so
// that "x9d" and "x9d+" stay distinct.
func RadioToken(radio string) string {
	token := slug.Make(strings.ReplaceAll(radio, "+", "plus"))
	if token == "" {
		return "unknown"
	}
	return token
}

// SubjectForRadio returns the wildcard subject for every event of a radio.
// Example: "txcompanion.x9dplus.>"
func SubjectForRadio(radio string) string {
	return fmt.Sprintf("%s.%s.>", subjectPrefix, RadioToken(radio))
}

// SubjectForEvent returns the subject of one event type for a radio.
// Example: "txcompanion.x9dplus.model"
func SubjectForEvent(radio, eventType string) string {
	return fmt.Sprintf("%s.%s.%s", subjectPrefix, RadioToken(radio), eventType)
}

// SetupStream creates or updates the stream holding the library events.
// Models are kept until deleted, so the stream has no age limit.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{subjectPrefix + ".>"},
		Storage:  jetstream.FileStorage,
	})
}
