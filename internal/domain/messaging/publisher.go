package messaging

import (
	"context"

	"github.com/oksasatya/go-employee-service/internal/domain/entity"
)

//go:generate mockgen -source=publisher.go -destination=mock/publisher_mock.go -package=mock

// EventPublisher delivers employee events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.EmployeeEvent) error
}
