// Package sender собирает и запускает приложение отправки напоминаний.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/autopuzzle/dealership-crm/internal/config"
	"github.com/autopuzzle/dealership-crm/internal/lib/smtp"
	"github.com/autopuzzle/dealership-crm/internal/rabbitmq"
	reminderservice "github.com/autopuzzle/dealership-crm/internal/services/reminder"
	"github.com/autopuzzle/dealership-crm/internal/smsprovider"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *reminderservice.SenderService
	logger        *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQConnection, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetReminderQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	smsClient := smsprovider.NewClient(cfg.SMSProvider)
	senderService := reminderservice.NewSenderService(transport, smsClient, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, "reminders.sms", a.senderService.SendReminderSMS)
	if err != nil {
		a.logger.Error("failed to start reminders.sms consumer", slog.Any("err", err))
		return err
	}

	err = rabbitmq.ConsumerMessage(ctx, a.ch, "reminders.email", a.senderService.SendReminderEmail)
	if err != nil {
		a.logger.Error("failed to start reminders.email consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("reminder sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
