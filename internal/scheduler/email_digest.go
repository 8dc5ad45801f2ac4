// Package scheduler contém os serviços agendados do painel
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/internal/usecases/notifying"
)

// ErrDigestRunning indica que já existe um envio do resumo em andamento
var ErrDigestRunning = errors.New("envio do resumo por e-mail já está em execução")

// Tempo máximo de uma execução do resumo (leitura da planilha + envio)
const digestRunTimeout = 2 * time.Minute

type EmailDigestConfig struct {
	CronSchedule string
	LookbackDays int
	Enabled      bool
	Location     *time.Location
}

// EmailDigestService envia periodicamente o resumo de vendas por e-mail
type EmailDigestService struct {
	scheduler          *gocron.Scheduler
	notifier           notifying.Notifier
	config             EmailDigestConfig
	now                func() time.Time
	runRunning         bool
	runMutex           sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRunError       string
	lastReceipt        *domain.DeliveryReceipt
}

func NewEmailDigestService(notifier notifying.Notifier, cfg *config.Config) *EmailDigestService {
	location := cfg.App.Location
	if location == nil {
		location = time.Local
	}

	digestConfig := EmailDigestConfig{
		CronSchedule: cfg.EmailDigest.CronSchedule, // Default: segundas-feiras às 8h
		LookbackDays: cfg.EmailDigest.LookbackDays, // Default: 7 dias
		Enabled:      cfg.EmailDigest.Enabled,      // Default: desabilitado
		Location:     location,
	}
	if digestConfig.LookbackDays <= 0 {
		digestConfig.LookbackDays = 7
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": digestConfig.CronSchedule,
		"lookback_days": digestConfig.LookbackDays,
		"enabled":       digestConfig.Enabled,
	}).Info("Configuração do agendador do resumo por e-mail carregada")

	return &EmailDigestService{
		scheduler: gocron.NewScheduler(location),
		notifier:  notifier,
		config:    digestConfig,
		now:       time.Now,
	}
}

func (s *EmailDigestService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron do resumo por e-mail desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron do resumo por e-mail")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		_, err := s.RunDigest(ctx)
		switch {
		case errors.Is(err, ErrDigestRunning):
			logrus.Warn("Envio agendado ignorado: resumo por e-mail já está em execução")
		case err != nil:
			logrus.WithError(err).Error("Erro no envio agendado do resumo por e-mail")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar resumo por e-mail: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do resumo por e-mail")
		s.scheduler.Stop()
	}()

	return nil
}

// DigestFilters retorna o período do resumo: os últimos LookbackDays dias completos
func (s *EmailDigestService) DigestFilters() *domain.ReportFilters {
	today := s.now().In(s.config.Location)
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.config.Location).AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(s.config.LookbackDays - 1))

	return &domain.ReportFilters{
		StartDate:   &start,
		EndDate:     &end,
		Granularity: domain.GranularityDay,
	}
}

// RunDigest executa o envio uma vez. Retorna ErrDigestRunning se já houver uma execução em andamento.
func (s *EmailDigestService) RunDigest(ctx context.Context) (*domain.DeliveryReceipt, error) {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		return nil, ErrDigestRunning
	}
	s.runRunning = true
	s.lastRunStartedAt = s.now()
	s.runMutex.Unlock()

	ctx, cancel := context.WithTimeout(ctx, digestRunTimeout)
	defer cancel()

	filters := s.DigestFilters()
	logrus.WithFields(logrus.Fields{
		"start_date": filters.StartDate.Format("2006-01-02"),
		"end_date":   filters.EndDate.Format("2006-01-02"),
	}).Info("Iniciando envio do resumo por e-mail")

	receipt, err := s.notifier.SendSummary(ctx, nil, filters)

	s.runMutex.Lock()
	defer s.runMutex.Unlock()
	s.runRunning = false
	s.lastRunCompletedAt = s.now()
	if err != nil {
		s.lastRunError = err.Error()
		return nil, err
	}

	s.lastRunError = ""
	s.lastReceipt = receipt
	logrus.WithFields(logrus.Fields{
		"run_id":     receipt.RunID,
		"provider":   receipt.Provider,
		"recipients": len(receipt.Recipients),
	}).Info("Resumo por e-mail enviado")

	return receipt, nil
}

// TriggerManualSync dispara o envio em background. Retorna false se já houver execução em andamento.
func (s *EmailDigestService) TriggerManualSync() bool {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		logrus.Info("Envio do resumo por e-mail já em andamento, ignorando solicitação manual")
		return false
	}
	s.runMutex.Unlock()

	logrus.Info("Iniciando envio manual do resumo por e-mail")
	go func() {
		_, err := s.RunDigest(context.Background())
		switch {
		case errors.Is(err, ErrDigestRunning):
			logrus.Info("Envio manual ignorado: resumo por e-mail já está em execução")
		case err != nil:
			logrus.WithError(err).Error("Erro no envio manual do resumo por e-mail")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *EmailDigestService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	status := map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"lookback_days":         s.config.LookbackDays,
		"running":               s.runRunning,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_run_error":        s.lastRunError,
	}
	if s.lastReceipt != nil {
		status["last_run_id"] = s.lastReceipt.RunID
		status["last_message_id"] = s.lastReceipt.MessageID
	}

	return status
}
