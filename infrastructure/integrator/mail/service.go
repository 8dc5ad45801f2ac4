package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/vfg2006/sales-dashboard/infrastructure/integrator/mail/mailclient"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/pkg/log"
)

type Mailer interface {
	// Send entrega a mensagem. Falhas de transporte retornam DeliveryError e não são repetidas.
	Send(ctx context.Context, message *mailclient.Message) (string, error)
	Provider() string
}

type MailService struct {
	cfg    *config.Config
	Client mailclient.Client
}

func New(cfg *config.Config, client mailclient.Client) Mailer {
	return &MailService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *MailService) Send(ctx context.Context, message *mailclient.Message) (string, error) {
	provider := s.Client.Provider()

	recipients := make([]string, 0, len(message.To))
	for _, recipient := range message.To {
		if recipient = strings.TrimSpace(recipient); recipient != "" {
			recipients = append(recipients, recipient)
		}
	}

	if len(recipients) == 0 {
		return "", domain.NewDeliveryError(domain.ErrNoRecipients, provider, "")
	}
	message.To = recipients

	if message.From == "" {
		message.From = s.cfg.Email.From
	}
	if message.FromName == "" {
		message.FromName = s.cfg.Email.FromName
	}

	messageID, err := s.Client.Send(ctx, message)
	if err != nil {
		deliveryErr := domain.NewDeliveryError(
			fmt.Errorf("%w: %w", domain.ErrTransportRejected, err),
			provider,
			fmt.Sprintf("%d destinatário(s)", len(recipients)),
		)

		log.ForContext(ctx).WithError(err).WithFields(log.Fields{
			"provider":   provider,
			"recipients": len(recipients),
			"subject":    message.Subject,
		}).Error("Erro ao enviar e-mail")

		return "", deliveryErr
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"provider":   provider,
		"recipients": len(recipients),
		"message_id": messageID,
	}).Info("E-mail enviado com sucesso")

	return messageID, nil
}

func (s *MailService) Provider() string {
	return s.Client.Provider()
}
