package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"orientation-service/internal/config"
	"orientation-service/internal/metrics"
	"orientation-service/testing/testnats"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	subjects []string
	events   []CatalogEvent
	err      error
	closed   bool
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, event CatalogEvent) error {
	p.subjects = append(p.subjects, subject)
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error {
	p.closed = true
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestEmitter(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Emit_BuildsSubjectAndEvent", func(t *testing.T) {
		pub := &recordingPublisher{}
		emitter := NewEmitter(pub, "test", "orientation.catalog", testLogger(), metrics.NewMock())
		emitter.now = func() time.Time { return fixed }

		emitter.Emit(context.Background(), LinkCreated, 3, 7)

		require.Len(t, pub.events, 1)
		assert.Equal(t, "orientation.catalog.link.created", pub.subjects[0])
		assert.Equal(t, CatalogEvent{Type: LinkCreated, EntityID: 3, RelatedID: 7, OccurredAt: fixed}, pub.events[0])
	})

	t.Run("Emit_PublishErrorIsSwallowed", func(t *testing.T) {
		pub := &recordingPublisher{err: errors.New("broker down")}
		emitter := NewEmitter(pub, "test", "", testLogger(), metrics.NewMock())

		assert.NotPanics(t, func() {
			emitter.Emit(context.Background(), UniversityDeleted, 1, 0)
		})
		assert.Equal(t, []string{"university.deleted"}, pub.subjects)
	})

	t.Run("NopEmitter_DropsEvents", func(t *testing.T) {
		emitter := NewNopEmitter()
		emitter.Emit(context.Background(), ProgramCreated, 1, 0)
		assert.NoError(t, emitter.Close())
	})

	t.Run("Close_ClosesPublisher", func(t *testing.T) {
		pub := &recordingPublisher{}
		emitter := NewEmitter(pub, "test", "x", testLogger(), nil)
		require.NoError(t, emitter.Close())
		assert.True(t, pub.closed)
	})
}

func TestNewPublisher_Drivers(t *testing.T) {
	pub, err := NewPublisher(config.EventsConfig{Driver: "none"}, testLogger())
	require.NoError(t, err)
	assert.IsType(t, Nop{}, pub)

	_, err = NewPublisher(config.EventsConfig{Driver: "carrier-pigeon"}, testLogger())
	assert.Error(t, err)
}

func TestKafkaPublisher(t *testing.T) {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true

	t.Run("Publish_SendsKeyedJSON", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, cfg)
		producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			key, err := msg.Key.Encode()
			if err != nil {
				return err
			}
			if string(key) != "42" {
				return errors.New("unexpected key " + string(key))
			}
			return nil
		})

		pub := newKafkaPublisher(producer, testLogger())
		err := pub.Publish(context.Background(), "orientation.catalog.university.created", CatalogEvent{Type: UniversityCreated, EntityID: 42})
		require.NoError(t, err)
		require.NoError(t, pub.Close())
	})

	t.Run("Publish_PropagatesBrokerError", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, cfg)
		producer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)

		pub := newKafkaPublisher(producer, testLogger())
		err := pub.Publish(context.Background(), "orientation.catalog.program.deleted", CatalogEvent{Type: ProgramDeleted, EntityID: 1})
		assert.ErrorIs(t, err, sarama.ErrNotLeaderForPartition)
		require.NoError(t, pub.Close())
	})
}

func TestNATSPublisherWithContainer(t *testing.T) {
	natsContainer := testnats.SetupSharedNATS(t)
	defer natsContainer.Cleanup(t)

	t.Run("Publish_DeliversToSubscriber", func(t *testing.T) {
		subject := "test.catalog." + strings.ReplaceAll(t.Name(), "/", ".")
		nc := natsContainer.Connect(t)

		received := make(chan *nats.Msg, 1)
		_, err := nc.Subscribe(subject, func(msg *nats.Msg) {
			received <- msg
		})
		require.NoError(t, err)
		require.NoError(t, nc.Flush())

		pub, err := NewNATSPublisher(natsContainer.URL, testLogger())
		require.NoError(t, err)
		defer pub.Close()

		err = pub.Publish(context.Background(), subject, CatalogEvent{Type: LinkDeleted, EntityID: 5, RelatedID: 9})
		require.NoError(t, err)

		select {
		case msg := <-received:
			var event CatalogEvent
			require.NoError(t, json.Unmarshal(msg.Data, &event))
			assert.Equal(t, LinkDeleted, event.Type)
			assert.Equal(t, 5, event.EntityID)
			assert.Equal(t, 9, event.RelatedID)
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for event")
		}
	})
}
