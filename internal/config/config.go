package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-dashboard/internal/domain"
)

// Provedores de e-mail suportados
const (
	EmailProviderLog      = "log"
	EmailProviderSMTP     = "smtp"
	EmailProviderSendGrid = "sendgrid"
	EmailProviderMailgun  = "mailgun"
	EmailProviderSES      = "ses"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Google      Google      `mapstructure:",squash"`
	Sheet       Sheet       `mapstructure:",squash"`
	Columns     Columns     `mapstructure:",squash"`
	Render      Render      `mapstructure:",squash"`
	Email       Email       `mapstructure:",squash"`
	SMTP        SMTP        `mapstructure:",squash"`
	SendGrid    SendGrid    `mapstructure:",squash"`
	Mailgun     Mailgun     `mapstructure:",squash"`
	SES         SES         `mapstructure:",squash"`
	EmailDigest EmailDigest `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	RateLimit   RateLimit   `mapstructure:",squash"`
}

type App struct {
	LogLevel       string         `mapstructure:"log_level"`
	Title          string         `mapstructure:"app_title"`
	Timezone       string         `mapstructure:"app_timezone"`
	CurrencySymbol string         `mapstructure:"app_currency_symbol"`
	Location       *time.Location `mapstructure:"-"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Google guarda as fontes possíveis da credencial da conta de serviço.
// A ordem de precedência é: JSON inline, arquivo, secret file do Render.
type Google struct {
	CredentialsJSON       string `mapstructure:"google_credentials_json"`
	CredentialsFile       string `mapstructure:"google_credentials_file"`
	CredentialsSecretName string `mapstructure:"google_credentials_secret_name"`
}

type Sheet struct {
	SpreadsheetID  string        `mapstructure:"spreadsheet_id"`
	WorksheetName  string        `mapstructure:"worksheet_name"`
	RequestTimeout time.Duration `mapstructure:"sheet_request_timeout"`
}

// Columns mapeia os campos do formulário para os cabeçalhos da aba
type Columns struct {
	Timestamp string `mapstructure:"sheet_column_timestamp"`
	Date      string `mapstructure:"sheet_column_date"`
	SalesRep  string `mapstructure:"sheet_column_rep"`
	Amount    string `mapstructure:"sheet_column_amount"`
	Status    string `mapstructure:"sheet_column_status"`
	Customer  string `mapstructure:"sheet_column_customer"`
	Product   string `mapstructure:"sheet_column_product"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
}

type Email struct {
	Provider   string   `mapstructure:"email_provider"`
	From       string   `mapstructure:"email_from"`
	FromName   string   `mapstructure:"email_from_name"`
	Recipients []string `mapstructure:"email_recipients"`
	Subject    string   `mapstructure:"email_subject"`
}

type SMTP struct {
	Host     string `mapstructure:"smtp_host"`
	Port     int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"smtp_username"`
	Password string `mapstructure:"smtp_password"`
}

type SendGrid struct {
	APIKey string `mapstructure:"sendgrid_api_key"`
}

type Mailgun struct {
	Domain string `mapstructure:"mailgun_domain"`
	APIKey string `mapstructure:"mailgun_api_key"`
	EU     bool   `mapstructure:"mailgun_eu"`
}

type SES struct {
	Region string `mapstructure:"aws_region"`
}

type EmailDigest struct {
	CronSchedule string `mapstructure:"email_digest_cron"`
	LookbackDays int    `mapstructure:"email_digest_lookback_days"`
	Enabled      bool   `mapstructure:"email_digest_enabled"`
}

type Auth struct {
	Secret            string        `mapstructure:"auth_secret"`
	AdminEmail        string        `mapstructure:"admin_email"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	TokenTTL          time.Duration `mapstructure:"auth_token_ttl"`
}

type RateLimit struct {
	PerSecond float64 `mapstructure:"rate_limit_per_second"`
	Burst     int     `mapstructure:"rate_limit_burst"`
	// IPs ou CIDRs dos proxies cujo X-Forwarded-For é aceito
	TrustedProxies []string `mapstructure:"rate_limit_trusted_proxies"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_TITLE", "Painel de Vendas")
	viper.SetDefault("APP_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("APP_CURRENCY_SYMBOL", "R$")

	viper.SetDefault("GOOGLE_CREDENTIALS_JSON", "")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "")
	viper.SetDefault("GOOGLE_CREDENTIALS_SECRET_NAME", "")

	viper.SetDefault("SPREADSHEET_ID", "")
	viper.SetDefault("WORKSHEET_NAME", "Respostas ao formulário 1")
	viper.SetDefault("SHEET_REQUEST_TIMEOUT", "30s")

	// Cabeçalhos padrão de um Google Form em português
	viper.SetDefault("SHEET_COLUMN_TIMESTAMP", "Carimbo de data/hora")
	viper.SetDefault("SHEET_COLUMN_DATE", "Data da venda")
	viper.SetDefault("SHEET_COLUMN_REP", "Vendedor")
	viper.SetDefault("SHEET_COLUMN_AMOUNT", "Valor")
	viper.SetDefault("SHEET_COLUMN_STATUS", "Status")
	viper.SetDefault("SHEET_COLUMN_CUSTOMER", "Cliente")
	viper.SetDefault("SHEET_COLUMN_PRODUCT", "Produto")

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")

	viper.SetDefault("EMAIL_PROVIDER", EmailProviderLog)
	viper.SetDefault("EMAIL_FROM", "vendas@example.com")
	viper.SetDefault("EMAIL_FROM_NAME", "Painel de Vendas")
	viper.SetDefault("EMAIL_RECIPIENTS", "")
	viper.SetDefault("EMAIL_SUBJECT", "Resumo de vendas")

	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")

	viper.SetDefault("SENDGRID_API_KEY", "")
	viper.SetDefault("MAILGUN_DOMAIN", "")
	viper.SetDefault("MAILGUN_API_KEY", "")
	viper.SetDefault("MAILGUN_EU", false)
	viper.SetDefault("AWS_REGION", "us-east-1")

	viper.SetDefault("EMAIL_DIGEST_CRON", "0 8 * * 1") // Segundas-feiras às 8h
	viper.SetDefault("EMAIL_DIGEST_LOOKBACK_DAYS", 7)  // Últimos 7 dias
	viper.SetDefault("EMAIL_DIGEST_ENABLED", false)    // Desabilitado por padrão

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("ADMIN_EMAIL", "admin@example.com")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("RATE_LIMIT_PER_SECOND", 1)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
	viper.SetDefault("RATE_LIMIT_TRUSTED_PROXIES", "")
}

// Option ajusta a configuração carregada antes da validação
type Option func(*Config)

// WithEmailProvider força o provedor de e-mail, ignorando EMAIL_PROVIDER
func WithEmailProvider(provider string) Option {
	return func(c *Config) {
		c.Email.Provider = strings.ToLower(strings.TrimSpace(provider))
	}
}

func NewConfig(opts ...Option) (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, domain.NewConfigurationError(err, "erro ao decodificar configuração")
	}

	config.normalize()

	for _, opt := range opts {
		opt(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize limpa listas e resolve o fuso horário configurado
func (c *Config) normalize() {
	recipients := make([]string, 0, len(c.Email.Recipients))
	for _, recipient := range c.Email.Recipients {
		recipient = strings.TrimSpace(recipient)
		if recipient != "" {
			recipients = append(recipients, recipient)
		}
	}
	c.Email.Recipients = recipients
	c.Email.Provider = strings.ToLower(strings.TrimSpace(c.Email.Provider))

	location, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		logrus.Warnf("Fuso horário inválido: %s, usando UTC", c.App.Timezone)
		location = time.UTC
	}
	c.App.Location = location

	if c.Sheet.RequestTimeout <= 0 {
		c.Sheet.RequestTimeout = 30 * time.Second
	}

	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
}

// Validate verifica a configuração mínima para o pipeline.
// As credenciais são validadas separadamente pelo carregador de credenciais.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Sheet.SpreadsheetID) == "" {
		return domain.NewConfigurationError(domain.ErrMissingSpreadsheetID, "defina SPREADSHEET_ID")
	}

	if strings.TrimSpace(c.Sheet.WorksheetName) == "" {
		return domain.NewConfigurationError(domain.ErrMissingWorksheet, "defina WORKSHEET_NAME")
	}

	switch c.Email.Provider {
	case EmailProviderLog:
	case EmailProviderSMTP:
		if c.SMTP.Host == "" || c.SMTP.Port == 0 {
			return domain.NewConfigurationError(domain.ErrMissingProviderKey, "defina SMTP_HOST e SMTP_PORT")
		}
	case EmailProviderSendGrid:
		if c.SendGrid.APIKey == "" {
			return domain.NewConfigurationError(domain.ErrMissingProviderKey, "defina SENDGRID_API_KEY")
		}
	case EmailProviderMailgun:
		if c.Mailgun.Domain == "" || c.Mailgun.APIKey == "" {
			return domain.NewConfigurationError(domain.ErrMissingProviderKey, "defina MAILGUN_DOMAIN e MAILGUN_API_KEY")
		}
	case EmailProviderSES:
		if c.SES.Region == "" {
			return domain.NewConfigurationError(domain.ErrMissingProviderKey, "defina AWS_REGION")
		}
	default:
		return domain.NewConfigurationError(domain.ErrInvalidEmailProvider, fmt.Sprintf("%q (use log, smtp, sendgrid, mailgun ou ses)", c.Email.Provider))
	}

	return nil
}

// Address retorna o endereço de escuta do servidor HTTP
func (s Server) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
