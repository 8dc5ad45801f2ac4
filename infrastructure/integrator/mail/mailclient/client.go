package mailclient

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
)

// Message é o e-mail já renderizado, pronto para o transporte
type Message struct {
	From     string
	FromName string
	To       []string
	Subject  string
	HTML     string
	Text     string
}

type Client interface {
	// Send entrega a mensagem e retorna o ID atribuído pelo provedor, quando houver
	Send(ctx context.Context, message *Message) (string, error)
	Provider() string
}

// NewClient cria o transporte configurado em EMAIL_PROVIDER
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	switch cfg.Email.Provider {
	case config.EmailProviderLog, "":
		return NewLogClient(), nil
	case config.EmailProviderSMTP:
		return NewSMTPClient(cfg.SMTP), nil
	case config.EmailProviderSendGrid:
		return NewSendGridClient(cfg.SendGrid.APIKey), nil
	case config.EmailProviderMailgun:
		return NewMailgunClient(cfg.Mailgun), nil
	case config.EmailProviderSES:
		return NewSESClient(ctx, cfg.SES.Region)
	}

	return nil, domain.NewConfigurationError(domain.ErrInvalidEmailProvider, cfg.Email.Provider)
}

// FormatAddress monta o remetente no formato "Nome <email>"
func (m *Message) FormatAddress() string {
	if strings.TrimSpace(m.FromName) == "" {
		return m.From
	}
	return (&mail.Address{Name: m.FromName, Address: m.From}).String()
}

func (m *Message) String() string {
	return fmt.Sprintf("para=%s assunto=%q", strings.Join(m.To, ","), m.Subject)
}
