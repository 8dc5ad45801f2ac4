package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard/internal/api"
	"github.com/vfg2006/sales-dashboard/internal/api/handler"
	"github.com/vfg2006/sales-dashboard/internal/app"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/scheduler"
	"github.com/vfg2006/sales-dashboard/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard/pkg/log"
)

func main() {
	log.Configure("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipeline, err := app.NewPipeline(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar o pipeline de vendas")
	}

	authenticator := authenticating.NewService(cfg)

	emailDigestService := scheduler.NewEmailDigestService(pipeline.Notifier, cfg)
	if err := emailDigestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do resumo por e-mail")
	} else {
		logrus.Info("Agendador do resumo por e-mail iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Reporter:      pipeline.Reporter,
		Presenter:     pipeline.Presenter,
		Notifier:      pipeline.Notifier,
		Authenticator: authenticator,
		CronJobs: handler.CronJobServices{
			EmailDigestService: emailDigestService,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
