package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	renderAPIURL   = "https://api.render.com/v1"
	renderPageSize = 100
	// Limite de páginas para não seguir cursores indefinidamente
	renderMaxPages = 10
)

// SecretStorage lê secret files de um provedor externo
type SecretStorage interface {
	ListSecrets(ctx context.Context, serviceID string) (map[string]string, error)
	GetSecret(ctx context.Context, serviceID, secretName string) (string, error)
}

// RenderClient lê os secret files de um serviço no Render.
// É usado para obter a chave da service account do Google em produção.
type RenderClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

type renderSecretFile struct {
	SecretFile struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	} `json:"secretFile"`
	Cursor string `json:"cursor"`
}

func NewRenderClient(config *Config) *RenderClient {
	return &RenderClient{
		APIKey:     config.Render.APIKey,
		BaseURL:    renderAPIURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled indica se há chave e serviço configurados para consultar o Render
func (c *RenderClient) Enabled(serviceID string) bool {
	return c != nil && c.APIKey != "" && serviceID != ""
}

// ListSecrets percorre as páginas de secret files e retorna nome -> conteúdo
func (c *RenderClient) ListSecrets(ctx context.Context, serviceID string) (map[string]string, error) {
	secrets := make(map[string]string)

	cursor := ""
	for page := 0; page < renderMaxPages; page++ {
		items, err := c.fetchPage(ctx, serviceID, cursor)
		if err != nil {
			return nil, err
		}

		for _, item := range items {
			secrets[item.SecretFile.Name] = item.SecretFile.Content
		}

		if len(items) < renderPageSize {
			return secrets, nil
		}
		cursor = items[len(items)-1].Cursor
	}

	return secrets, nil
}

func (c *RenderClient) fetchPage(ctx context.Context, serviceID, cursor string) ([]renderSecretFile, error) {
	query := url.Values{}
	query.Set("limit", fmt.Sprint(renderPageSize))
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	endpoint := fmt.Sprintf("%s/services/%s/secret-files?%s", c.BaseURL, url.PathEscape(serviceID), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "config: erro ao consultar o Render")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errors.Errorf("config: Render respondeu %d: %s", resp.StatusCode, body)
	}

	var items []renderSecretFile
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, errors.Wrap(err, "config: resposta inválida do Render")
	}

	return items, nil
}

// GetSecret retorna o conteúdo de um secret file específico
func (c *RenderClient) GetSecret(ctx context.Context, serviceID, secretName string) (string, error) {
	secrets, err := c.ListSecrets(ctx, serviceID)
	if err != nil {
		return "", err
	}

	content, ok := secrets[secretName]
	if !ok {
		return "", errors.Errorf("config: secret file %q not found", secretName)
	}

	return content, nil
}
