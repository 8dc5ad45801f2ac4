package mailclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	gomail "github.com/wneessen/go-mail"
)

func newTestMessage() *Message {
	return &Message{
		From:     "vendas@example.com",
		FromName: "Painel de Vendas",
		To:       []string{"gestor@example.com", "diretoria@example.com"},
		Subject:  "Resumo de vendas de março",
		HTML:     "<h1>Total R$ 600,00</h1>",
		Text:     "Total R$ 600,00",
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		expected string
	}{
		{name: "Provedor padrão", provider: "", expected: config.EmailProviderLog},
		{name: "Log", provider: config.EmailProviderLog, expected: config.EmailProviderLog},
		{name: "SMTP", provider: config.EmailProviderSMTP, expected: config.EmailProviderSMTP},
		{name: "SendGrid", provider: config.EmailProviderSendGrid, expected: config.EmailProviderSendGrid},
		{name: "Mailgun", provider: config.EmailProviderMailgun, expected: config.EmailProviderMailgun},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Email:    config.Email{Provider: tt.provider},
				SMTP:     config.SMTP{Host: "localhost", Port: 25},
				SendGrid: config.SendGrid{APIKey: "SG.key"},
				Mailgun:  config.Mailgun{Domain: "mg.example.com", APIKey: "key"},
			}

			client, err := NewClient(context.Background(), cfg)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, client.Provider())
		})
	}

	t.Run("Provedor desconhecido", func(t *testing.T) {
		cfg := &config.Config{Email: config.Email{Provider: "pombo-correio"}}

		client, err := NewClient(context.Background(), cfg)

		assert.Nil(t, client)
		assert.ErrorIs(t, err, domain.ErrInvalidEmailProvider)
	})
}

func TestMessage_FormatAddress(t *testing.T) {
	message := newTestMessage()
	assert.Equal(t, `"Painel de Vendas" <vendas@example.com>`, message.FormatAddress())

	message.FromName = ""
	assert.Equal(t, "vendas@example.com", message.FormatAddress())
}

func TestLogClient_Send(t *testing.T) {
	client := NewLogClient()

	id, err := client.Send(context.Background(), newTestMessage())

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "log-"))
}

func TestSMTPClient_Send(t *testing.T) {
	client := NewSMTPClient(config.SMTP{Host: "smtp.example.com", Port: 587, Username: "user", Password: "pass"})
	client.now = func() time.Time { return time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC) }

	t.Run("Mensagem multipart enviada", func(t *testing.T) {
		var sent *gomail.Msg
		client.send = func(_ context.Context, msg *gomail.Msg) error {
			sent = msg
			return nil
		}

		id, err := client.Send(context.Background(), newTestMessage())
		require.NoError(t, err)
		require.NotNil(t, sent)

		var buf bytes.Buffer
		_, err = sent.WriteTo(&buf)
		require.NoError(t, err)
		raw := strings.ToLower(buf.String())

		assert.True(t, strings.HasSuffix(id, "@smtp.example.com>"))
		assert.Contains(t, raw, "multipart/alternative")
		assert.Contains(t, raw, "text/plain; charset=utf-8")
		assert.Contains(t, raw, "text/html; charset=utf-8")
		assert.Contains(t, raw, "subject: =?utf-8?q?")
		assert.Contains(t, raw, strings.ToLower(id))

		recipients, err := sent.GetRecipients()
		require.NoError(t, err)
		assert.Equal(t, []string{"gestor@example.com", "diretoria@example.com"}, recipients)
	})

	t.Run("Destinatário inválido", func(t *testing.T) {
		client.send = func(context.Context, *gomail.Msg) error {
			t.Fatal("não deveria enviar")
			return nil
		}

		message := newTestMessage()
		message.To = []string{"sem-arroba"}

		id, err := client.Send(context.Background(), message)

		assert.Empty(t, id)
		assert.ErrorContains(t, err, "montar mensagem")
	})

	t.Run("Falha do servidor SMTP", func(t *testing.T) {
		client.send = func(context.Context, *gomail.Msg) error {
			return errors.New("550 mailbox unavailable")
		}

		id, err := client.Send(context.Background(), newTestMessage())

		assert.Empty(t, id)
		assert.ErrorContains(t, err, "550 mailbox unavailable")
	})
}

func TestSendGridClient_Send(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		expectedID  string
		expectError bool
	}{
		{name: "Mensagem aceita", status: http.StatusAccepted, expectedID: "sg-123"},
		{name: "Chave inválida", status: http.StatusUnauthorized, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, sendGridEndpoint, r.URL.Path)
				assert.Equal(t, "Bearer SG.key", r.Header.Get("Authorization"))

				body, _ := io.ReadAll(r.Body)
				assert.Contains(t, string(body), "gestor@example.com")
				assert.Contains(t, string(body), "text/html")

				w.Header().Set("X-Message-Id", "sg-123")
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewSendGridClient("SG.key")
			client.host = server.URL

			id, err := client.Send(context.Background(), newTestMessage())

			if tt.expectError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

type fakeSES struct {
	input  *sesv2.SendEmailInput
	output *sesv2.SendEmailOutput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	return f.output, f.err
}

func TestSESClient_Send(t *testing.T) {
	t.Run("Mensagem aceita", func(t *testing.T) {
		api := &fakeSES{output: &sesv2.SendEmailOutput{MessageId: aws.String("ses-1")}}
		client := &SESClient{api: api}

		id, err := client.Send(context.Background(), newTestMessage())

		require.NoError(t, err)
		assert.Equal(t, "ses-1", id)
		assert.Equal(t, []string{"gestor@example.com", "diretoria@example.com"}, api.input.Destination.ToAddresses)
		assert.Equal(t, "Resumo de vendas de março", aws.ToString(api.input.Content.Simple.Subject.Data))
		assert.NotNil(t, api.input.Content.Simple.Body.Text)
	})

	t.Run("Mensagem rejeitada", func(t *testing.T) {
		client := &SESClient{api: &fakeSES{err: errors.New("MessageRejected")}}

		id, err := client.Send(context.Background(), newTestMessage())

		assert.Empty(t, id)
		assert.ErrorContains(t, err, "MessageRejected")
	})
}
