// Package app monta o pipeline compartilhado entre o servidor e a CLI
package app

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard/infrastructure/integrator/googlesheets"
	"github.com/vfg2006/sales-dashboard/infrastructure/integrator/googlesheets/sheetsclient"
	"github.com/vfg2006/sales-dashboard/infrastructure/integrator/mail"
	"github.com/vfg2006/sales-dashboard/infrastructure/integrator/mail/mailclient"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/internal/presenter"
	"github.com/vfg2006/sales-dashboard/internal/usecases/notifying"
	"github.com/vfg2006/sales-dashboard/internal/usecases/reporting"
)

// Pipeline reúne os serviços de leitura, apresentação e envio
type Pipeline struct {
	Reporter  reporting.Reporter
	Presenter *presenter.Presenter
	Mailer    mail.Mailer
	Notifier  notifying.Notifier
}

// NewPipeline resolve credenciais e transportes. Qualquer falha aqui é um ConfigurationError.
func NewPipeline(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	var secrets config.SecretStorage
	if renderClient := config.NewRenderClient(cfg); renderClient.Enabled(cfg.Render.ServiceID) {
		secrets = renderClient
	}

	creds, err := sheetsclient.LoadCredentials(ctx, cfg, secrets)
	if err != nil {
		return nil, err
	}

	sheetsClient, err := sheetsclient.NewClient(ctx, creds)
	if err != nil {
		return nil, domain.NewConfigurationError(domain.ErrMalformedCredentials, err.Error())
	}

	reporter := reporting.NewService(googlesheets.New(cfg, sheetsClient))

	p, err := presenter.New(cfg)
	if err != nil {
		return nil, domain.NewConfigurationError(err, "templates inválidos")
	}

	mailClient, err := mailclient.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mailer := mail.New(cfg, mailClient)

	logrus.WithFields(logrus.Fields{
		"spreadsheet_id": cfg.Sheet.SpreadsheetID,
		"worksheet":      cfg.Sheet.WorksheetName,
		"provider":       mailer.Provider(),
	}).Info("Pipeline de vendas configurado")

	return &Pipeline{
		Reporter:  reporter,
		Presenter: p,
		Mailer:    mailer,
		Notifier:  notifying.NewService(cfg, reporter, p, mailer),
	}, nil
}
