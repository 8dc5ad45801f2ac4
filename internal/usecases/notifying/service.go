package notifying

import (
	"context"
	"time"

	"github.com/vfg2006/sales-dashboard/infrastructure/integrator/mail"
	"github.com/vfg2006/sales-dashboard/infrastructure/integrator/mail/mailclient"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/internal/presenter"
	"github.com/vfg2006/sales-dashboard/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard/pkg/log"
)

type Notifier interface {
	// SendSummary executa o pipeline e envia o resumo por e-mail.
	// Sem destinatários informados, usa EMAIL_RECIPIENTS.
	SendSummary(ctx context.Context, recipients []string, filters *domain.ReportFilters) (*domain.DeliveryReceipt, error)

	// Preview executa o pipeline e retorna o e-mail renderizado sem enviar
	Preview(ctx context.Context, filters *domain.ReportFilters) (*presenter.RenderedEmail, error)
}

type Service struct {
	cfg       *config.Config
	reporter  reporting.Reporter
	presenter *presenter.Presenter
	mailer    mail.Mailer
	now       func() time.Time
}

func NewService(cfg *config.Config, reporter reporting.Reporter, presenter *presenter.Presenter, mailer mail.Mailer) Notifier {
	return &Service{
		cfg:       cfg,
		reporter:  reporter,
		presenter: presenter,
		mailer:    mailer,
		now:       time.Now,
	}
}

func (s *Service) SendSummary(ctx context.Context, recipients []string, filters *domain.ReportFilters) (*domain.DeliveryReceipt, error) {
	if len(recipients) == 0 {
		recipients = s.cfg.Email.Recipients
	}

	// Sem destinatários não há motivo para consultar a planilha
	if len(recipients) == 0 {
		return nil, domain.NewDeliveryError(domain.ErrNoRecipients, s.mailer.Provider(), "informe destinatários ou defina EMAIL_RECIPIENTS")
	}

	report, err := s.reporter.GetReport(ctx, filters)
	if err != nil {
		return nil, err
	}

	ctx = log.WithRunID(ctx, report.RunID)
	logger := log.ForContext(ctx)

	email, err := s.presenter.RenderEmail(report)
	if err != nil {
		return nil, err
	}

	message := &mailclient.Message{
		From:     s.cfg.Email.From,
		FromName: s.cfg.Email.FromName,
		To:       recipients,
		Subject:  email.Subject,
		HTML:     email.HTML,
		Text:     email.Text,
	}

	messageID, err := s.mailer.Send(ctx, message)
	if err != nil {
		logger.WithError(err).Error("Resumo de vendas não enviado")
		return nil, err
	}

	receipt := &domain.DeliveryReceipt{
		RunID:      report.RunID,
		Provider:   s.mailer.Provider(),
		MessageID:  messageID,
		Recipients: message.To,
		Subject:    message.Subject,
		SentAt:     s.now(),
	}

	logger.WithField("provider", receipt.Provider).
		Infof("Resumo de vendas enviado para %d destinatário(s)", len(receipt.Recipients))

	return receipt, nil
}

func (s *Service) Preview(ctx context.Context, filters *domain.ReportFilters) (*presenter.RenderedEmail, error) {
	report, err := s.reporter.GetReport(ctx, filters)
	if err != nil {
		return nil, err
	}

	return s.presenter.RenderEmail(report)
}
