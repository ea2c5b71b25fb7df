// Package sender собирает сервис отправки приветственных писем:
// подключение к RabbitMQ, SMTP-транспорт и потребитель очереди user.registered.
package sender

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/nandanksingh/secure-user-api/internal/config"
	"github.com/nandanksingh/secure-user-api/internal/lib/rabbitmq"
	"github.com/nandanksingh/secure-user-api/internal/lib/smtp"
	senderservice "github.com/nandanksingh/secure-user-api/internal/services/sender"
)

// App объединяет соединение с брокером и сервис отправки писем.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New собирает приложение отправки писем.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitConnectionString, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetUserEventQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(logger, transport)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди и ждет отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, "user.registered", a.senderService.SendWelcomeEmail)
	if err != nil {
		a.logger.Error("failed to start user.registered consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
