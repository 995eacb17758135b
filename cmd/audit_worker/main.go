package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/medisync/user-service/config"
	"github.com/medisync/user-service/internal/domain/entity"
	"github.com/medisync/user-service/internal/infrastructure/mongodb"
	"github.com/medisync/user-service/pkg/events"
	"github.com/medisync/user-service/pkg/helpers"
)

// Consumes auth events from RabbitMQ and persists them as audit log
// documents. Runs until SIGINT/SIGTERM.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-audit-worker", cfg.Env)

	if cfg.RabbitMQURL == "" {
		log.Fatal("RABBITMQ_URL is required for the audit worker")
	}

	ctx := context.Background()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	auditRepo := mongodb.NewAuditRepository(client.Database(cfg.MongoDatabase))

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(cfg.RabbitMQAuditQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("failed to set qos: %v", err)
	}

	deliveries, err := ch.Consume(cfg.RabbitMQAuditQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to start consumer: %v", err)
	}

	logger.Infof("audit worker consuming from %s", cfg.RabbitMQAuditQueue)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-quit:
			logger.Info("audit worker shutting down")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			handle(auditRepo, logger, d)
		}
	}
}

type auditInserter interface {
	Insert(ctx context.Context, log *entity.AuditLog) error
}

func handle(repo auditInserter, logger *logrus.Logger, d amqp.Delivery) {
	var ev events.AuthEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		logger.Errorf("discarding malformed audit event: %v", err)
		_ = d.Nack(false, false)
		return
	}

	entry := &entity.AuditLog{
		UserID:    ev.UserID,
		Username:  ev.Username,
		Action:    ev.Action,
		IP:        ev.IP,
		UserAgent: ev.UserAgent,
		Metadata:  ev.Metadata,
		CreatedAt: ev.At,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.Insert(ctx, entry); err != nil {
		logger.Errorf("failed to persist audit event: %v", err)
		// requeue once, the broker redelivers
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}
