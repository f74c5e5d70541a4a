package service

import (
	"fmt"
	"html"
	"net/mail"
	"net/smtp"
	"strings"

	"careercoach_backend/internal/config"
	"careercoach_backend/internal/util"
)

// ContactMessage is a contact-form submission relayed to the site admin.
type ContactMessage struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ContactService relays contact-form submissions to the admin mailbox
// over SMTP.
type ContactService struct {
	config *config.MailConfig
	send   func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func NewContactService(cfg *config.MailConfig) *ContactService {
	return &ContactService{config: cfg, send: smtp.SendMail}
}

func (s *ContactService) Configured() bool {
	return s.config.SMTPHost != "" && s.config.User != "" && s.config.AdminEmail != ""
}

// Relay validates the submission and mails it to the admin address.
func (s *ContactService) Relay(msg ContactMessage) error {
	if strings.TrimSpace(msg.Name) == "" ||
		strings.TrimSpace(msg.Email) == "" ||
		strings.TrimSpace(msg.Message) == "" {
		return util.ErrMissingContactField
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return util.ErrInvalidEmail
	}
	if !s.Configured() {
		return &util.ConfigurationError{Feature: "contact relay", Missing: "smtp settings"}
	}

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.SMTPHost)

	return s.send(addr, auth, s.config.User, []string{s.config.AdminEmail}, s.compose(msg))
}

func (s *ContactService) compose(msg ContactMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.config.User)
	fmt.Fprintf(&b, "To: %s\r\n", s.config.AdminEmail)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.Email)
	fmt.Fprintf(&b, "Subject: New contact message from %s\r\n", msg.Name)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "<h2>New contact form submission</h2>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(msg.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(msg.Email))
	fmt.Fprintf(&b, "<p><strong>Message:</strong></p><p>%s</p>",
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))
	return []byte(b.String())
}
