package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/go-employee-service/config"
	"github.com/oksasatya/go-employee-service/internal/infrastructure/search"
	"github.com/oksasatya/go-employee-service/pkg/helpers"
)

// event_worker projects employee events from the updates queue into the
// Elasticsearch employees index.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-event-worker", cfg.Env, cfg.LogLevel)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmployeeUpdatesQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	addrs := cfg.ESAddrs()
	if len(addrs) == 0 {
		logger.Fatal("Elasticsearch not configured")
	}

	es, err := search.NewClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.Fatalf("elasticsearch client: %v", err)
	}
	projector := search.NewProjector(search.NewEmployeeIndex(es, cfg.ESEmployeesIndex), logger)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueues(ch, cfg.RabbitMQEmployeeUpdatesQueue, cfg.RabbitMQEmployeeEventsQueue); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmployeeUpdatesQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			c, cancelMsg := context.WithTimeout(ctx, 15*time.Second)
			err := projector.Handle(c, msg.Body)
			cancelMsg()

			switch {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, search.ErrMalformedEvent):
				logger.WithError(err).Warn("dropping malformed message")
				_ = msg.Nack(false, false)
			default:
				_ = msg.Nack(false, true)
			}
		}
		close(done)
	}()

	logger.Infof("event worker listening on queue=%s", cfg.RabbitMQEmployeeUpdatesQueue)
	<-stop
	logger.Info("shutting down...")
	cancel()
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
