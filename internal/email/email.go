package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/dentix/clinic-api/internal/model"
)

// Sender delivers clinic notification emails.
type Sender interface {
	SendAppointmentConfirmation(to string, appt *model.Appointment) error
	SendLowStockAlert(to string, item *model.InventoryItem) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg SMTPConfig) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpSender) SendAppointmentConfirmation(to string, appt *model.Appointment) error {
	subject := "Your appointment is confirmed"
	body := fmt.Sprintf(
		"Your %s appointment is booked for %s.\n\nIf you need to reschedule, please contact the clinic.",
		appt.ServiceType,
		appt.StartTime.Format("Monday, 2 January 2006 at 15:04"),
	)
	return s.send(to, subject, body)
}

func (s *smtpSender) SendLowStockAlert(to string, item *model.InventoryItem) error {
	subject := fmt.Sprintf("Low stock: %s", item.Name)
	body := fmt.Sprintf(
		"Inventory item %s (SKU %s) is down to %d %s, at or below the minimum of %d.\n\nPlease reorder.",
		item.Name, item.SKU, item.CurrentStock, item.Unit, item.MinimumStock,
	)
	return s.send(to, subject, body)
}

func (s *smtpSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
