package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"financeiro/internal/shared/config"
)

// Mailer sends transactional e-mail over plain SMTP with AUTH. It implements
// user.Mailer.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendConfirmation mails the accept/reject links a new account must click
// before it is allowed to log in.
func (m *Mailer) SendConfirmation(ctx context.Context, to, name string, userID int64, token string) error {
	acceptURL := fmt.Sprintf("%s/validaremail?id=%d&token=%s&action=accept", m.cfg.BaseURL, userID, token)
	rejectURL := fmt.Sprintf("%s/validaremail?id=%d&token=%s&action=reject", m.cfg.BaseURL, userID, token)

	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&body, "To: %s\r\n", to)
	fmt.Fprintf(&body, "Subject: Confirme seu cadastro\r\n")
	fmt.Fprintf(&body, "MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&body, "<p>Olá, %s!</p>", name)
	fmt.Fprintf(&body, "<p>Recebemos um cadastro com este endereço de e-mail.</p>")
	fmt.Fprintf(&body, "<p><a href=%q>Fui eu, liberar acesso</a></p>", acceptURL)
	fmt.Fprintf(&body, "<p><a href=%q>Não fui eu, recusar</a></p>", rejectURL)
	fmt.Fprintf(&body, "<p>O link expira em 1 hora.</p>")

	return m.send(ctx, to, []byte(body.String()))
}

func (m *Mailer) send(ctx context.Context, to string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
