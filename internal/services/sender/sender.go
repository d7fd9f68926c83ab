// Package services реализует отправку писем подтверждения почты.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mrxception/ofmreddit/internal/lib/sl"
	libsmtp "github.com/mrxception/ofmreddit/internal/lib/smtp"
	"github.com/mrxception/ofmreddit/internal/models"
)

// SenderService потребляет сообщения очереди и отправляет письма через SMTP.
type SenderService struct {
	transport Transport
	log       *slog.Logger
}

// Transport описывает SMTP транспорт.
type Transport interface {
	Connect() (libsmtp.Client, error)
	GetSMTPUser() string
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport Transport) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendVerificationEmail отправляет пользователю код подтверждения почты.
func (s *SenderService) SendVerificationEmail(body []byte) error {
	var message models.VerificationEmail
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Verify your OFMReddit account"
	bodyText := fmt.Sprintf("Hi %s!\n\nYour verification code is %s.\n\nIt expires in 15 minutes.",
		message.Username, message.Code)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("to", addr), sl.Err(err))
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		s.log.Error("failed to open DATA stream", sl.Err(err))
		return err
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write message body", sl.Err(err))
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		s.log.Error("failed to close DATA stream", sl.Err(err))
		return err
	}

	if err := client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP session", sl.Err(err))
	}
	s.log.Info("verification email sent", slog.String("to", strings.Join(to, ";")))
	return nil
}
