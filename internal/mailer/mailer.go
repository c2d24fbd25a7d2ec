package mailer

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/lightbnb/lightbnb/config"
	"gopkg.in/mail.v2"
)

//go:embed "templates"
var templateFS embed.FS

// sendAttempts is the number of times a message is offered to the SMTP server.
const sendAttempts = 3

// Mailer sends templated e-mails through an SMTP server.
type Mailer struct {
	dialer *mail.Dialer
	sender string
}

// New configures a Mailer from the SMTP settings, with a 5-second dial timeout.
func New(cfg config.Config) *Mailer {
	dialer := mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	dialer.Timeout = 5 * time.Second
	return &Mailer{
		dialer: dialer,
		sender: cfg.SMTP.Sender,
	}
}

// Send renders templateFile with data and delivers it to recipient.
// A template file defines the "subject", "plainBody" and "htmlBody" templates.
func (m *Mailer) Send(recipient, templateFile string, data any) error {
	msg, err := m.compose(recipient, templateFile, data)
	if err != nil {
		return err
	}
	for i := 1; i <= sendAttempts; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
		time.Sleep(time.Second)
	}
	return err
}

func (m *Mailer) compose(recipient, templateFile string, data any) (*mail.Message, error) {
	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}
	var subject, plainBody, htmlBody bytes.Buffer
	for name, buf := range map[string]*bytes.Buffer{"subject": &subject, "plainBody": &plainBody, "htmlBody": &htmlBody} {
		err = tmpl.ExecuteTemplate(buf, name, data)
		if err != nil {
			return nil, err
		}
	}
	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())
	return msg, nil
}
