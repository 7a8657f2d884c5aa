package rabbitmq

// ExchangeReminders — обменник, в который планировщик публикует напоминания.
const ExchangeReminders = "reminders"

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "reminders.sms", RoutingKey: "sms"},
		{QueueName: "reminders.email", RoutingKey: "email"},
	}
}
