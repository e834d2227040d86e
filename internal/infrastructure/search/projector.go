package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-employee-service/internal/domain/entity"
	"github.com/oksasatya/go-employee-service/internal/metrics"
)

// ErrMalformedEvent marks messages that can never be applied.
var ErrMalformedEvent = errors.New("malformed employee event")

type indexer interface {
	Upsert(ctx context.Context, ev entity.EmployeeEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Projector applies employee events from the broker to the search index.
type Projector struct {
	Index  indexer
	Logger *logrus.Logger
}

func NewProjector(index indexer, logger *logrus.Logger) *Projector {
	return &Projector{Index: index, Logger: logger}
}

// Handle decodes one message body and applies it. Errors wrapping
// ErrMalformedEvent should not be redelivered.
func (p *Projector) Handle(ctx context.Context, body []byte) error {
	var ev entity.EmployeeEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if ev.UUID == uuid.Nil {
		return fmt.Errorf("%w: missing uuid", ErrMalformedEvent)
	}

	var err error
	switch ev.EventType {
	case entity.EventCreated, entity.EventUpdated:
		err = p.Index.Upsert(ctx, ev)
	case entity.EventDeleted:
		err = p.Index.Delete(ctx, ev.UUID)
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrMalformedEvent, ev.EventType)
	}

	log := p.Logger.WithFields(logrus.Fields{
		"employee_id": ev.UUID,
		"event_id":    ev.EventID,
		"event_type":  ev.EventType,
	})
	if err != nil {
		metrics.EventsProjected.WithLabelValues(string(ev.EventType), "error").Inc()
		log.WithError(err).Warn("projecting event failed")
		return err
	}
	metrics.EventsProjected.WithLabelValues(string(ev.EventType), "ok").Inc()
	log.Debug("event projected")
	return nil
}
