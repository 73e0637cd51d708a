// Package events carries store change notifications between bounded contexts.
package events

import (
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CatalogChanged = "catalog.changed"
	CartChanged    = "cart.changed"
	FilterChanged  = "filter.changed"
)

type Event struct {
	ID     string
	Topic  string
	At     time.Time
	Detail map[string]any
}

// Bus delivers events synchronously on the publishing goroutine.
type Bus struct {
	bus evbus.Bus
	now func() time.Time
}

func NewBus() *Bus {
	return &Bus{bus: evbus.New(), now: time.Now}
}

func (b *Bus) Publish(topic string, detail map[string]any) {
	if b == nil {
		return
	}
	b.bus.Publish(topic, Event{
		ID:     uuid.NewString(),
		Topic:  topic,
		At:     b.now().UTC(),
		Detail: detail,
	})
}

func (b *Bus) Subscribe(topic string, fn func(Event)) error {
	return b.bus.Subscribe(topic, fn)
}

// LogChanges writes every event on the given topics at debug level.
func LogChanges(b *Bus, log *zap.Logger, topics ...string) error {
	for _, topic := range topics {
		err := b.Subscribe(topic, func(e Event) {
			log.Debug("state changed",
				zap.String("event_id", e.ID),
				zap.String("topic", e.Topic),
				zap.Any("detail", e.Detail),
			)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
