package notification

import (
	"talent-portal/internal/config"
	"talent-portal/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Dispatcher delivers notifications out-of-band. Implementations must
// never block the request path on delivery.
type Dispatcher interface {
	Dispatch(msg Message)
}

// Mailer is the SMTP-backed Dispatcher.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Dispatch sends the message from a goroutine. Delivery failures are
// logged and never surfaced to the caller.
func (m *Mailer) Dispatch(msg Message) {
	go func() {
		if err := m.send(msg); err != nil {
			logger.Error("Failed to send notification email",
				zap.String("recipient", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
			return
		}

		logger.Debug("Notification email sent",
			zap.String("recipient", msg.To),
			zap.String("subject", msg.Subject),
		)
	}()
}

func (m *Mailer) send(msg Message) error {
	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", msg.To)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		mail.AddAlternative("text/html", msg.HTML)
	}

	return m.dialer.DialAndSend(mail)
}
