package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		expectedError bool
		validate      func(t *testing.T, opts *options)
	}{
		{
			name: "Valores padrão",
			args: []string{},
			validate: func(t *testing.T, opts *options) {
				assert.Empty(t, opts.recipients)
				assert.Equal(t, "day", opts.granularity)
				assert.False(t, opts.dryRun)
				assert.Equal(t, 2*time.Minute, opts.timeout)
			},
		},
		{
			name: "Todas as flags",
			args: []string{
				"-recipients", " a@x.com, ,b@y.com ",
				"-start", "2024-01-01",
				"-end", "2024-01-31",
				"-rep", "Ana",
				"-status", "Fechado",
				"-granularity", "week",
				"-dry-run",
				"-preview", "out.html",
			},
			validate: func(t *testing.T, opts *options) {
				assert.Equal(t, []string{"a@x.com", "b@y.com"}, opts.recipients)
				assert.Equal(t, "2024-01-01", opts.startDate)
				assert.Equal(t, "2024-01-31", opts.endDate)
				assert.Equal(t, "Ana", opts.salesRep)
				assert.Equal(t, "Fechado", opts.status)
				assert.Equal(t, "week", opts.granularity)
				assert.True(t, opts.dryRun)
				assert.Equal(t, "out.html", opts.previewPath)
			},
		},
		{
			name:          "Flag desconhecida",
			args:          []string{"-foo"},
			expectedError: true,
		},
		{
			name:          "Argumento posicional",
			args:          []string{"enviar"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseOptions(tt.args)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.validate(t, opts)
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitConfiguration, exitCode(domain.NewConfigurationError(domain.ErrMissingCredentials, "")))
	assert.Equal(t, exitRunFailed, exitCode(domain.NewDataSourceError(domain.ErrWorksheetNotFound, "Vendas", "")))
	assert.Equal(t, exitRunFailed, exitCode(domain.NewDeliveryError(domain.ErrNoRecipients, "log", "")))
	assert.Equal(t, exitRunFailed, exitCode(errors.New("falha")))
}

func TestOptions_configOptions(t *testing.T) {
	tests := []struct {
		name             string
		opts             options
		expectedProvider string
	}{
		{name: "Envio real mantém o provedor", opts: options{}, expectedProvider: config.EmailProviderSendGrid},
		{name: "Dry-run usa log", opts: options{dryRun: true}, expectedProvider: config.EmailProviderLog},
		{name: "Prévia usa log", opts: options{previewPath: "out.html"}, expectedProvider: config.EmailProviderLog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Email: config.Email{Provider: config.EmailProviderSendGrid}}

			for _, opt := range tt.opts.configOptions() {
				opt(cfg)
			}

			assert.Equal(t, tt.expectedProvider, cfg.Email.Provider)
		})
	}
}

func TestRun_DryRunSemChaveDoProvedor(t *testing.T) {
	t.Setenv("SPREADSHEET_ID", "sheet-123")
	t.Setenv("WORKSHEET_NAME", "Vendas")
	t.Setenv("EMAIL_PROVIDER", "sendgrid")
	t.Setenv("SENDGRID_API_KEY", "")

	// Sem dry-run a chave ausente invalida a configuração
	assert.Equal(t, exitConfiguration, run([]string{"-start", "2024-01-01", "-end", "2023-01-01"}))

	// Com dry-run a configuração passa e a execução segue até os filtros
	assert.Equal(t, exitUsage, run([]string{"-dry-run", "-start", "2024-01-01", "-end", "2023-01-01"}))
}
