// Package mail delivers contact-form submissions to the site owner.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pkg/errors"
)

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Mailer sends contact messages.
type Mailer interface {
	SendContact(msg ContactMessage) error
}

// SMTPConf configures the smtp Mailer.
type SMTPConf struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	// To is the owner address that receives contact-form mail.
	To string `yaml:"to"`
}

// IsSet returns whether smtp delivery was configured.
func (c SMTPConf) IsSet() bool {
	return c.Host != "" && c.To != ""
}

type smtpMailer struct {
	conf SMTPConf
}

// NewSMTPMailer returns a Mailer that delivers via plain smtp with auth.
func NewSMTPMailer(conf SMTPConf) Mailer {
	return &smtpMailer{conf: conf}
}

// SendContact implements Mailer. Reply-To is set to the submitter so the
// owner can answer directly.
func (m *smtpMailer) SendContact(msg ContactMessage) error {
	c := m.conf
	from := c.From
	if from == "" {
		from = c.Username
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", c.To)
	fmt.Fprintf(&b, "Reply-To: %s <%s>\r\n", sanitizeHeader(msg.Name), sanitizeHeader(msg.Email))
	fmt.Fprintf(&b, "Subject: Contact form message from %s\r\n", sanitizeHeader(msg.Name))
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.Message)

	addr := fmt.Sprintf("%s:%d", c.Host, c.Port)
	var auth smtp.Auth
	if c.Username != "" {
		auth = smtp.PlainAuth("", c.Username, c.Password, c.Host)
	}
	if err := smtp.SendMail(addr, auth, from, []string{c.To}, []byte(b.String())); err != nil {
		return errors.Wrap(err, "mail: delivery failed")
	}
	return nil
}

// sanitizeHeader strips CR/LF to prevent header injection from form input.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
