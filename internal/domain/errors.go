package domain

import (
	"errors"
	"fmt"
)

// Códigos de erro expostos pela API (ver pkg/apiErrors)
const (
	CodeConfiguration = "SRV_001"
	CodeDataSource    = "SRV_003"
	CodeDelivery      = "SRV_004"
)

var (
	// Erros de configuração
	ErrMissingCredentials   = errors.New("credenciais da conta de serviço não informadas")
	ErrMalformedCredentials = errors.New("credenciais da conta de serviço inválidas")
	ErrMissingSpreadsheetID = errors.New("ID da planilha não informado")
	ErrMissingWorksheet     = errors.New("nome da aba não informado")
	ErrInvalidEmailProvider = errors.New("provedor de e-mail inválido")
	ErrMissingProviderKey   = errors.New("configuração do provedor de e-mail incompleta")

	// Erros da fonte de dados
	ErrWorksheetNotFound   = errors.New("aba não encontrada na planilha")
	ErrSpreadsheetNotFound = errors.New("planilha não encontrada")
	ErrMissingColumn       = errors.New("coluna obrigatória ausente")
	ErrSheetRequest        = errors.New("falha ao consultar a API do Google Sheets")

	// Erros de envio
	ErrNoRecipients      = errors.New("nenhum destinatário informado")
	ErrTransportRejected = errors.New("mensagem rejeitada pelo transporte de e-mail")
)

// ConfigurationError indica credencial ou configuração ausente/inválida.
// É fatal na inicialização.
type ConfigurationError struct {
	Err     error
	Code    string
	Details string
}

func (e *ConfigurationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("configuração: %s: %s", e.Err.Error(), e.Details)
	}
	return "configuração: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError cria um novo ConfigurationError
func NewConfigurationError(err error, details string) *ConfigurationError {
	return &ConfigurationError{
		Err:     err,
		Code:    CodeConfiguration,
		Details: details,
	}
}

// DataSourceError indica falha ao ler a planilha. O dashboard exibe um aviso e o estado vazio.
type DataSourceError struct {
	Err       error
	Code      string
	Worksheet string
	Details   string
}

func (e *DataSourceError) Error() string {
	msg := "fonte de dados: " + e.Err.Error()
	if e.Worksheet != "" {
		msg = fmt.Sprintf("%s (aba %q)", msg, e.Worksheet)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// NewDataSourceError cria um novo DataSourceError
func NewDataSourceError(err error, worksheet string, details string) *DataSourceError {
	return &DataSourceError{
		Err:       err,
		Code:      CodeDataSource,
		Worksheet: worksheet,
		Details:   details,
	}
}

// DeliveryError indica que o e-mail não foi enviado. É registrado em log e não há nova tentativa.
type DeliveryError struct {
	Err      error
	Code     string
	Provider string
	Details  string
}

func (e *DeliveryError) Error() string {
	msg := "envio de e-mail: " + e.Err.Error()
	if e.Provider != "" {
		msg = fmt.Sprintf("%s (provedor %s)", msg, e.Provider)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// NewDeliveryError cria um novo DeliveryError
func NewDeliveryError(err error, provider string, details string) *DeliveryError {
	return &DeliveryError{
		Err:      err,
		Code:     CodeDelivery,
		Provider: provider,
		Details:  details,
	}
}

func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func IsDataSourceError(err error) bool {
	var target *DataSourceError
	return errors.As(err, &target)
}

func IsDeliveryError(err error) bool {
	var target *DeliveryError
	return errors.As(err, &target)
}
