package rabbitmq

// MailExchange exchange для почтовых уведомлений.
const MailExchange = "mail"

// Очереди и ключи маршрутизации почтовых уведомлений.
const (
	VerificationQueue      = "mail.verification"
	VerificationRoutingKey = "verification"
)

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetMailQueues возвращает очереди, которые обслуживает sender.
func GetMailQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: VerificationQueue, RoutingKey: VerificationRoutingKey},
	}
}
