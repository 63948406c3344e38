package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orientation-service/internal/config"
	"orientation-service/internal/metrics"
)

type Type string

const (
	UniversityCreated Type = "university.created"
	UniversityUpdated Type = "university.updated"
	UniversityDeleted Type = "university.deleted"
	ProgramCreated    Type = "program.created"
	ProgramDeleted    Type = "program.deleted"
	LinkCreated       Type = "link.created"
	LinkDeleted       Type = "link.deleted"
)

// CatalogEvent announces a committed change to the catalog. RelatedID is the
// program id for link events and zero otherwise.
type CatalogEvent struct {
	Type       Type      `json:"type"`
	EntityID   int       `json:"entity_id"`
	RelatedID  int       `json:"related_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher sends catalog events to a broker.
type Publisher interface {
	Publish(ctx context.Context, subject string, event CatalogEvent) error
	Close() error
}

// Emitter builds events and hands them to a Publisher. Failures are logged
// and counted, never returned: the write that triggered the event is already
// committed.
type Emitter struct {
	publisher Publisher
	driver    string
	prefix    string
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewEmitter(publisher Publisher, driver, prefix string, logger *slog.Logger, m *metrics.Metrics) *Emitter {
	return &Emitter{
		publisher: publisher,
		driver:    driver,
		prefix:    prefix,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// NewNopEmitter returns an Emitter that drops every event.
func NewNopEmitter() *Emitter {
	return &Emitter{publisher: Nop{}, driver: "none"}
}

func (e *Emitter) Subject(t Type) string {
	if e.prefix == "" {
		return string(t)
	}
	return e.prefix + "." + string(t)
}

func (e *Emitter) Emit(ctx context.Context, t Type, entityID, relatedID int) {
	if e == nil || e.publisher == nil {
		return
	}
	if _, ok := e.publisher.(Nop); ok {
		return
	}

	event := CatalogEvent{
		Type:       t,
		EntityID:   entityID,
		RelatedID:  relatedID,
		OccurredAt: e.now().UTC(),
	}
	subject := e.Subject(t)

	start := time.Now()
	err := e.publisher.Publish(ctx, subject, event)
	if e.metrics != nil {
		e.metrics.Messaging.RecordPublish(ctx, e.driver, subject, time.Since(start), err)
	}
	if err != nil {
		e.logger.ErrorContext(ctx, "failed to publish catalog event", "subject", subject, "entity_id", entityID, "error", err)
	}
}

func (e *Emitter) Close() error {
	if e == nil || e.publisher == nil {
		return nil
	}
	return e.publisher.Close()
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, string, CatalogEvent) error { return nil }
func (Nop) Close() error                                         { return nil }

// NewPublisher builds the publisher selected by cfg.Driver.
func NewPublisher(cfg config.EventsConfig, logger *slog.Logger) (Publisher, error) {
	switch cfg.Driver {
	case "", "none":
		return Nop{}, nil
	case "nats":
		return NewNATSPublisher(cfg.URL, logger)
	case "kafka":
		return NewKafkaPublisher(cfg.Brokers, logger)
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}
