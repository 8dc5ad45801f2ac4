package mailclient

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/pkg/utils"
	gomail "github.com/wneessen/go-mail"
)

const smtpTimeout = 30 * time.Second

type sendFunc func(ctx context.Context, msg *gomail.Msg) error

// SMTPClient envia a mensagem como multipart/alternative (texto e HTML) via go-mail
type SMTPClient struct {
	cfg  config.SMTP
	send sendFunc
	now  func() time.Time
}

func NewSMTPClient(cfg config.SMTP) *SMTPClient {
	c := &SMTPClient{
		cfg: cfg,
		now: time.Now,
	}
	c.send = c.dialAndSend

	return c
}

func (c *SMTPClient) Send(ctx context.Context, message *Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id, err := utils.GenerateMessageID()
	if err != nil {
		return "", err
	}
	messageID := fmt.Sprintf("%s.%d@%s", id, c.now().Unix(), c.cfg.Host)

	msg, err := c.buildMessage(message, messageID)
	if err != nil {
		return "", errors.Wrap(err, "smtp: erro ao montar mensagem")
	}

	if err := c.send(ctx, msg); err != nil {
		return "", errors.Wrap(err, "smtp")
	}

	return "<" + messageID + ">", nil
}

func (c *SMTPClient) Provider() string {
	return config.EmailProviderSMTP
}

func (c *SMTPClient) buildMessage(message *Message, messageID string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()

	if err := msg.FromFormat(message.FromName, message.From); err != nil {
		return nil, err
	}
	if err := msg.To(message.To...); err != nil {
		return nil, err
	}

	msg.Subject(message.Subject)
	msg.SetMessageIDWithValue(messageID)
	msg.SetDateWithValue(c.now())

	switch {
	case message.Text != "" && message.HTML != "":
		msg.SetBodyString(gomail.TypeTextPlain, message.Text)
		msg.AddAlternativeString(gomail.TypeTextHTML, message.HTML)
	case message.HTML != "":
		msg.SetBodyString(gomail.TypeTextHTML, message.HTML)
	default:
		msg.SetBodyString(gomail.TypeTextPlain, message.Text)
	}

	return msg, nil
}

func (c *SMTPClient) dialAndSend(ctx context.Context, msg *gomail.Msg) error {
	options := []gomail.Option{
		gomail.WithPort(c.cfg.Port),
		gomail.WithTimeout(smtpTimeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if c.cfg.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(c.cfg.Username),
			gomail.WithPassword(c.cfg.Password),
		)
	}

	client, err := gomail.NewClient(c.cfg.Host, options...)
	if err != nil {
		return err
	}

	return client.DialAndSendWithContext(ctx, msg)
}
