package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/mrxception/ofmreddit/internal/models"
)

// MailPublisherImpl публикует почтовые сообщения в exchange mail.
type MailPublisherImpl struct {
	ch *amqp.Channel
}

// NewMailPublisher создает новый экземпляр MailPublisherImpl.
func NewMailPublisher(ch *amqp.Channel) *MailPublisherImpl {
	return &MailPublisherImpl{ch: ch}
}

// PublishVerificationEmail публикует письмо подтверждения почты в очередь
// верификации. Сообщение сериализуется в JSON и помечается персистентным,
// чтобы не потерять код до доставки воркером sender.
func (p *MailPublisherImpl) PublishVerificationEmail(msg models.VerificationEmail) error {
	const op = "rabbitmq.PublishVerificationEmail"
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		MailExchange,
		VerificationRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
