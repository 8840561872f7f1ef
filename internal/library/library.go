// Package library is the model library: every saved model configuration
// and every SD card install, stored as an append-only event log in
// JetStream and reduced into the current state on load.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/txcompanion/internal/logger"
	"github.com/mark3labs/txcompanion/internal/model"
	"github.com/mark3labs/txcompanion/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
)

var log = logger.Named("library")

// ErrNotFound is returned when no model matches a reference.
var ErrNotFound = errors.New("model not found")

// minPrefix is the shortest id prefix accepted as a model reference.
const minPrefix = 8

// Event is one entry of the library log.
type Event struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Radio     string          `json:"radio"`
	Type      string          `json:"type"`   // model, sdcard
	Action    string          `json:"action"` // save, delete, install
	Meta      json.RawMessage `json:"meta,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Store publishes library events and loads state from them.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

// NewStore creates a Store on an existing stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{js: js, stream: stream}
}

// PublishEvent appends an event to the log.
func (s *Store) PublishEvent(ctx context.Context, event Event) (*jetstream.PubAck, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := nats.SubjectForEvent(event.Radio, event.Type)
	ack, err := s.js.Publish(ctx, subject, data)
	if err != nil {
		log.Error("publish to %s failed: %v", subject, err)
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}
	log.Debug("published %s/%s seq=%d", event.Type, event.Action, ack.Sequence)
	return ack, nil
}

// Entry is a stored model and its bookkeeping.
type Entry struct {
	Model     *model.Configuration `json:"model"`
	Revision  int                  `json:"revision"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Install records one SD card image installed for a radio.
type Install struct {
	Family      string    `json:"family"`
	Version     string    `json:"version"`
	Path        string    `json:"path"`
	InstalledAt time.Time `json:"installed_at"`
}

// State is the library of one radio, reconstructed from events.
type State struct {
	Radio    string            `json:"radio"`
	Models   map[string]*Entry `json:"models"`
	Installs []*Install        `json:"installs"`
}

func newState(radio string) *State {
	return &State{Radio: radio, Models: make(map[string]*Entry)}
}

// Apply folds one event into the state.
func (st *State) Apply(event Event) {
	switch event.Type {
	case nats.EventTypeModel:
		st.applyModelEvent(event)
	case nats.EventTypeSDCard:
		st.applySDCardEvent(event)
	}
}

func (st *State) applyModelEvent(event Event) {
	switch event.Action {
	case "save":
		var cfg model.Configuration
		if err := json.Unmarshal(event.Data, &cfg); err != nil || cfg.ID == "" {
			log.Warn("skipping unreadable save event %s", event.ID)
			return
		}
		e, ok := st.Models[cfg.ID]
		if !ok {
			e = &Entry{}
			st.Models[cfg.ID] = e
		}
		e.Model = &cfg
		e.Revision++
		e.UpdatedAt = event.Timestamp

	case "delete":
		var meta struct {
			ModelID string `json:"model_id"`
		}
		if err := json.Unmarshal(event.Meta, &meta); err != nil || meta.ModelID == "" {
			log.Warn("skipping unreadable delete event %s", event.ID)
			return
		}
		delete(st.Models, meta.ModelID)
	}
}

func (st *State) applySDCardEvent(event Event) {
	if event.Action != "install" {
		return
	}
	var in Install
	if err := json.Unmarshal(event.Meta, &in); err != nil {
		log.Warn("skipping unreadable install event %s", event.ID)
		return
	}
	if in.InstalledAt.IsZero() {
		in.InstalledAt = event.Timestamp
	}
	st.Installs = append(st.Installs, &in)
}

// List returns the models ordered by category, slot and name.
func (st *State) List() []*model.Configuration {
	out := make([]*model.Configuration, 0, len(st.Models))
	for _, e := range st.Models {
		out = append(out, e.Model)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Slot != b.Slot {
			return a.Slot < b.Slot
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out
}

// Resolve finds a model by full id, id prefix (8+ characters) or exact
// name, ignoring case for names.
func (st *State) Resolve(ref string) (*Entry, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("model reference is required")
	}
	if e, ok := st.Models[ref]; ok {
		return e, nil
	}

	var matches []*Entry
	if len(ref) >= minPrefix {
		for id, e := range st.Models {
			if strings.HasPrefix(id, ref) {
				matches = append(matches, e)
			}
		}
	}
	if len(matches) == 0 {
		for _, e := range st.Models {
			if strings.EqualFold(e.Model.Name, ref) {
				matches = append(matches, e)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous model reference %q (matches %d models)", ref, len(matches))
	}
}

// ByName returns the model named name, compared case-insensitively, or nil
// when there is none.
func (st *State) ByName(name string) (*Entry, error) {
	name = strings.TrimSpace(name)
	var matches []*Entry
	for _, e := range st.Models {
		if strings.EqualFold(e.Model.Name, name) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous model name %q (matches %d models)", name, len(matches))
	}
}

// LoadState reads every event of radio and reduces it into a State.
func (s *Store) LoadState(ctx context.Context, radio string) (*State, error) {
	consumer, err := s.stream.OrderedConsumer(ctx, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{nats.SubjectForRadio(radio)},
		DeliverPolicy:  jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	state := newState(radio)

	const batchSize = 500
	total, malformed := 0, 0
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}
		n := 0
		for msg := range msgs.Messages() {
			n++
			total++
			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				malformed++
				continue
			}
			if event.ID == "" {
				if meta, err := msg.Metadata(); err == nil {
					event.ID = fmt.Sprintf("%d", meta.Sequence.Stream)
				}
			}
			state.Apply(event)
		}
		if n < batchSize {
			break
		}
	}

	if malformed > 0 {
		log.Warn("skipped %d malformed events for %s", malformed, radio)
		fmt.Fprintf(os.Stderr, "Warning: skipped %d malformed library events\n", malformed)
	}
	log.Debug("loaded %s: %d events, %d models, %d installs", radio, total, len(state.Models), len(state.Installs))
	return state, nil
}

// Save stores cfg. A model without an id gets a new one; saving an
// existing id replaces that model. The stored record is returned.
func (s *Store) Save(ctx context.Context, cfg *model.Configuration) (*model.Configuration, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, fmt.Errorf("model name is required")
	}
	if cfg.Radio == "" {
		return nil, fmt.Errorf("model radio is required")
	}

	saved := *cfg
	saved.Mixes = append([]model.Mix(nil), cfg.Mixes...)
	saved.Timers = append([]model.Timer(nil), cfg.Timers...)
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(&saved)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal model: %w", err)
	}
	_, err = s.PublishEvent(ctx, Event{
		ID:     uuid.NewString(),
		Radio:  saved.Radio,
		Type:   nats.EventTypeModel,
		Action: "save",
		Data:   data,
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Adopt gives a model without an id the identity of the stored model of
// the same name, so saving it rebuilds that model in place. Category and
// slot are carried over when cfg leaves them unset. The stored model is
// returned, or nil when cfg is new.
func (s *Store) Adopt(ctx context.Context, cfg *model.Configuration) (*model.Configuration, error) {
	if cfg.ID != "" {
		return nil, nil
	}
	state, err := s.LoadState(ctx, cfg.Radio)
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	e, err := state.ByName(cfg.Name)
	if err != nil || e == nil {
		return nil, err
	}

	cfg.ID = e.Model.ID
	cfg.CreatedAt = e.Model.CreatedAt
	if cfg.Category == "" {
		cfg.Category = e.Model.Category
	}
	if cfg.Slot == 0 {
		cfg.Slot = e.Model.Slot
	}
	log.Debug("rebuilding %q (%s) in place", cfg.Name, cfg.ID)
	return e.Model, nil
}

// Upsert adopts a same-name model, see Adopt, and saves cfg. It returns the
// stored record and the model it replaced, if any.
func (s *Store) Upsert(ctx context.Context, cfg *model.Configuration) (saved, previous *model.Configuration, err error) {
	if previous, err = s.Adopt(ctx, cfg); err != nil {
		return nil, nil, err
	}
	if saved, err = s.Save(ctx, cfg); err != nil {
		return nil, nil, err
	}
	return saved, previous, nil
}

// Get returns the model ref resolves to.
func (s *Store) Get(ctx context.Context, radio, ref string) (*Entry, error) {
	state, err := s.LoadState(ctx, radio)
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	return state.Resolve(ref)
}

// List returns every model of radio.
func (s *Store) List(ctx context.Context, radio string) ([]*model.Configuration, error) {
	state, err := s.LoadState(ctx, radio)
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	return state.List(), nil
}

// Delete removes the model ref resolves to and returns it.
func (s *Store) Delete(ctx context.Context, radio, ref string) (*model.Configuration, error) {
	e, err := s.Get(ctx, radio, ref)
	if err != nil {
		return nil, err
	}
	meta, _ := json.Marshal(map[string]string{"model_id": e.Model.ID})
	_, err = s.PublishEvent(ctx, Event{
		ID:     uuid.NewString(),
		Radio:  radio,
		Type:   nats.EventTypeModel,
		Action: "delete",
		Meta:   meta,
	})
	if err != nil {
		return nil, err
	}
	return e.Model, nil
}

// RecordInstall logs an SD card install for radio.
func (s *Store) RecordInstall(ctx context.Context, radio string, in Install) error {
	if in.InstalledAt.IsZero() {
		in.InstalledAt = time.Now().UTC()
	}
	meta, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal install: %w", err)
	}
	_, err = s.PublishEvent(ctx, Event{
		ID:     uuid.NewString(),
		Radio:  radio,
		Type:   nats.EventTypeSDCard,
		Action: "install",
		Meta:   meta,
	})
	return err
}

// Installs returns the install history of radio, oldest first.
func (s *Store) Installs(ctx context.Context, radio string) ([]*Install, error) {
	state, err := s.LoadState(ctx, radio)
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	return state.Installs, nil
}
