package messaging

import (
	"context"

	"github.com/oksasatya/go-employee-service/internal/domain/entity"
	"github.com/oksasatya/go-employee-service/internal/domain/messaging"
	"github.com/oksasatya/go-employee-service/internal/metrics"
)

// JSONPublisher is satisfied by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmployeeEventPublisher sends employee events to the updates queue.
type EmployeeEventPublisher struct {
	pub JSONPublisher
}

func NewEmployeeEventPublisher(pub JSONPublisher) *EmployeeEventPublisher {
	return &EmployeeEventPublisher{pub: pub}
}

func (p *EmployeeEventPublisher) Publish(ctx context.Context, event entity.EmployeeEvent) error {
	err := p.pub.PublishJSON(ctx, event)
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.EventsPublished.WithLabelValues(string(event.EventType), result).Inc()
	return err
}

var _ messaging.EventPublisher = (*EmployeeEventPublisher)(nil)
