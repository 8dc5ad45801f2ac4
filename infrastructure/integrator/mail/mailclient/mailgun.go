package mailclient

import (
	"context"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard/internal/config"
)

type MailgunClient struct {
	mg *mailgun.MailgunImpl
}

func NewMailgunClient(cfg config.Mailgun) *MailgunClient {
	mg := mailgun.NewMailgun(cfg.Domain, cfg.APIKey)
	if cfg.EU {
		mg.SetAPIBase(mailgun.APIBaseEU)
	}

	return &MailgunClient{mg: mg}
}

func (c *MailgunClient) Send(ctx context.Context, message *Message) (string, error) {
	m := c.mg.NewMessage(message.FormatAddress(), message.Subject, message.Text, message.To...)
	m.SetHtml(message.HTML)

	_, id, err := c.mg.Send(ctx, m)
	if err != nil {
		return "", errors.Wrap(err, "mailgun")
	}

	return id, nil
}

func (c *MailgunClient) Provider() string {
	return config.EmailProviderMailgun
}
