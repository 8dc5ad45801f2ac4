// Executa o pipeline uma vez e envia (ou gera a prévia do) resumo de vendas por e-mail
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yosssi/gohtml"

	"github.com/vfg2006/sales-dashboard/internal/app"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/pkg/log"
)

// Códigos de saída
const (
	exitOK            = 0
	exitConfiguration = 1
	exitRunFailed     = 2
	exitUsage         = 64
)

type options struct {
	recipients  []string
	startDate   string
	endDate     string
	salesRep    string
	status      string
	granularity string
	dryRun      bool
	previewPath string
	timeout     time.Duration
}

func parseOptions(args []string) (*options, error) {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)

	recipients := fs.String("recipients", "", "Destinatários separados por vírgula. Padrão: EMAIL_RECIPIENTS")
	opts := &options{}
	fs.StringVar(&opts.startDate, "start", "", "Data inicial (YYYY-MM-DD)")
	fs.StringVar(&opts.endDate, "end", "", "Data final inclusiva (YYYY-MM-DD)")
	fs.StringVar(&opts.salesRep, "rep", "", "Filtra por vendedor")
	fs.StringVar(&opts.status, "status", "", "Filtra por status")
	fs.StringVar(&opts.granularity, "granularity", "day", "Agrupamento da evolução: day, week ou month")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Registra o e-mail no log em vez de enviar")
	fs.StringVar(&opts.previewPath, "preview", "", "Grava o HTML do e-mail neste arquivo e não envia")
	fs.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Tempo máximo da execução")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("argumentos não reconhecidos: %s", strings.Join(fs.Args(), " "))
	}

	for _, recipient := range strings.Split(*recipients, ",") {
		if recipient = strings.TrimSpace(recipient); recipient != "" {
			opts.recipients = append(opts.recipients, recipient)
		}
	}

	return opts, nil
}

// configOptions troca o provedor por log quando nada será enviado,
// para que as credenciais do provedor real não sejam exigidas
func (o *options) configOptions() []config.Option {
	if o.dryRun || o.previewPath != "" {
		return []config.Option{config.WithEmailProvider(config.EmailProviderLog)}
	}
	return nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log.Configure("info")

	opts, err := parseOptions(args)
	if err != nil {
		logrus.Error(err)
		return exitUsage
	}

	cfg, err := config.NewConfig(opts.configOptions()...)
	if err != nil {
		logrus.WithError(err).Error("Configuração inválida")
		return exitConfiguration
	}
	log.Configure(cfg.App.LogLevel)

	filters, err := domain.ParseReportFilters(opts.startDate, opts.endDate, opts.salesRep, opts.status, opts.granularity, cfg.App.Location)
	if err != nil {
		logrus.WithError(err).Error("Filtros inválidos")
		return exitUsage
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	pipeline, err := app.NewPipeline(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Error("Erro ao configurar o pipeline de vendas")
		return exitCode(err)
	}

	if opts.previewPath != "" {
		email, err := pipeline.Notifier.Preview(ctx, filters)
		if err != nil {
			logrus.WithError(err).Error("Erro ao gerar a prévia do e-mail")
			return exitCode(err)
		}

		if err := os.WriteFile(opts.previewPath, []byte(gohtml.Format(email.HTML)), 0o644); err != nil {
			logrus.WithError(err).Error("Erro ao gravar a prévia do e-mail")
			return exitRunFailed
		}

		logrus.WithFields(logrus.Fields{
			"path":    opts.previewPath,
			"subject": email.Subject,
		}).Info("Prévia do e-mail gravada")
		return exitOK
	}

	receipt, err := pipeline.Notifier.SendSummary(ctx, opts.recipients, filters)
	if err != nil {
		logrus.WithError(err).Error("Resumo não enviado")
		return exitCode(err)
	}

	logrus.WithFields(logrus.Fields{
		"run_id":     receipt.RunID,
		"provider":   receipt.Provider,
		"message_id": receipt.MessageID,
		"recipients": strings.Join(receipt.Recipients, ","),
	}).Info("Resumo enviado")

	return exitOK
}

func exitCode(err error) int {
	if domain.IsConfigurationError(err) {
		return exitConfiguration
	}
	return exitRunFailed
}
