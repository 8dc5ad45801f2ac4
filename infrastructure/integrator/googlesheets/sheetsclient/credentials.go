package sheetsclient

import (
	"context"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const serviceAccountType = "service_account"

// serviceAccountKey contém os campos mínimos de uma chave de conta de serviço
type serviceAccountKey struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	TokenURI     string `json:"token_uri"`
}

// LoadCredentials resolve a credencial da conta de serviço a partir da configuração.
// Precedência: GOOGLE_CREDENTIALS_JSON, GOOGLE_CREDENTIALS_FILE, secret file do Render.
// Qualquer ausência ou formato inválido resulta em ConfigurationError.
func LoadCredentials(ctx context.Context, cfg *config.Config, secrets config.SecretStorage) (*google.Credentials, error) {
	data, source, err := readCredentials(ctx, cfg, secrets)
	if err != nil {
		return nil, err
	}

	creds, err := ParseCredentials(ctx, data)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"source":     source,
		"project_id": creds.ProjectID,
	}).Info("Credenciais da conta de serviço carregadas")

	return creds, nil
}

func readCredentials(ctx context.Context, cfg *config.Config, secrets config.SecretStorage) ([]byte, string, error) {
	if strings.TrimSpace(cfg.Google.CredentialsJSON) != "" {
		return []byte(cfg.Google.CredentialsJSON), "env", nil
	}

	if path := strings.TrimSpace(cfg.Google.CredentialsFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", domain.NewConfigurationError(domain.ErrMissingCredentials, fmt.Sprintf("não foi possível ler %s: %v", path, err))
		}
		return data, "file", nil
	}

	if cfg.Google.CredentialsSecretName != "" && secrets != nil && cfg.Render.ServiceID != "" {
		content, err := secrets.GetSecret(ctx, cfg.Render.ServiceID, cfg.Google.CredentialsSecretName)
		if err != nil {
			return nil, "", domain.NewConfigurationError(domain.ErrMissingCredentials, fmt.Sprintf("secret file %s: %v", cfg.Google.CredentialsSecretName, err))
		}
		return []byte(content), "render", nil
	}

	return nil, "", domain.NewConfigurationError(domain.ErrMissingCredentials, "defina GOOGLE_CREDENTIALS_JSON ou GOOGLE_CREDENTIALS_FILE")
}

// ParseCredentials valida localmente a chave e monta as credenciais com escopo somente leitura.
// Nenhuma chamada de rede é feita aqui; o token só é obtido na primeira requisição.
func ParseCredentials(ctx context.Context, data []byte) (*google.Credentials, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, domain.NewConfigurationError(domain.ErrMissingCredentials, "conteúdo vazio")
	}

	var key serviceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, domain.NewConfigurationError(domain.ErrMalformedCredentials, "JSON inválido: "+err.Error())
	}

	if key.Type != serviceAccountType {
		return nil, domain.NewConfigurationError(domain.ErrMalformedCredentials, fmt.Sprintf("tipo %q, esperado %q", key.Type, serviceAccountType))
	}

	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, domain.NewConfigurationError(domain.ErrMalformedCredentials, "client_email e private_key são obrigatórios")
	}

	if err := validatePrivateKey(key.PrivateKey); err != nil {
		return nil, domain.NewConfigurationError(domain.ErrMalformedCredentials, "private_key inválida: "+err.Error())
	}

	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, domain.NewConfigurationError(domain.ErrMalformedCredentials, err.Error())
	}

	return creds, nil
}

// validatePrivateKey decodifica a chave PEM (PKCS#8 ou PKCS#1) sem contatar o Google
func validatePrivateKey(privateKey string) error {
	block, _ := pem.Decode([]byte(privateKey))
	if block == nil {
		return errors.New("conteúdo não está em formato PEM")
	}

	if _, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		return nil
	}
	if _, err := x509.ParsePKCS1PrivateKey(block.Bytes); err != nil {
		return fmt.Errorf("chave não é PKCS#8 nem PKCS#1: %w", err)
	}

	return nil
}
